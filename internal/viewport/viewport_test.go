package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThatOtherAndrew/Aetherfield/internal/models"
	"github.com/ThatOtherAndrew/Aetherfield/internal/opengl/opengltest"
)

type fakeSurface struct {
	w, h         float64
	ratio        float64
	backingW     int
	backingH     int
	backingCalls int
}

func (s *fakeSurface) LogicalSize() (float64, float64) { return s.w, s.h }
func (s *fakeSurface) PixelRatio() float64             { return s.ratio }
func (s *fakeSurface) SetBackingSize(w, h int) {
	s.backingW, s.backingH = w, h
	s.backingCalls++
}

func TestResizeScalesByPixelRatio(t *testing.T) {
	for _, ratio := range []float64{1, 2, 3} {
		session := models.NewSession()
		surface := &fakeSurface{w: 800, h: 600, ratio: ratio}
		rec := opengltest.NewRecorder()
		m := New(session, surface, rec)

		require.True(t, m.Resize())

		wantW, wantH := int(800*ratio), int(600*ratio)
		assert.Equal(t, wantW, surface.backingW)
		assert.Equal(t, wantH, surface.backingH)
		assert.Equal(t, models.Viewport{Width: int32(wantW), Height: int32(wantH), PixelRatio: float32(ratio)}, session.Viewport)

		require.Equal(t, 1, rec.Count("Viewport"))
		assert.Equal(t, []any{int32(0), int32(0), int32(wantW), int32(wantH)}, rec.Calls[0].Args)
	}
}

func TestResizeIsIdempotent(t *testing.T) {
	session := models.NewSession()
	surface := &fakeSurface{w: 1024, h: 768, ratio: 2}
	rec := opengltest.NewRecorder()
	m := New(session, surface, rec)

	assert.True(t, m.Resize())
	assert.False(t, m.Resize())
	assert.False(t, m.Resize())
	assert.Equal(t, 1, surface.backingCalls)
	assert.Equal(t, 1, rec.Count("Viewport"))

	surface.w = 1280
	assert.True(t, m.Resize())
	assert.Equal(t, int32(2560), session.Viewport.Width)
	assert.Equal(t, 2, rec.Count("Viewport"))
}

func TestResizeFollowsRatioChange(t *testing.T) {
	session := models.NewSession()
	surface := &fakeSurface{w: 100, h: 50, ratio: 1}
	m := New(session, surface, opengltest.NewRecorder())
	m.Resize()

	surface.ratio = 2
	assert.True(t, m.Resize())
	assert.Equal(t, int32(200), session.Viewport.Width)
	assert.Equal(t, int32(100), session.Viewport.Height)
}

func TestZeroContainerIsIgnored(t *testing.T) {
	session := models.NewSession()
	surface := &fakeSurface{w: 640, h: 480, ratio: 1}
	rec := opengltest.NewRecorder()
	m := New(session, surface, rec)
	m.Resize()

	surface.w = 0
	assert.False(t, m.Resize())
	assert.Equal(t, int32(640), session.Viewport.Width)
	assert.Equal(t, 1, rec.Count("Viewport"))
}

func TestTinyContainerClampsToOnePixel(t *testing.T) {
	session := models.NewSession()
	surface := &fakeSurface{w: 0.25, h: 0.25, ratio: 1}
	m := New(session, surface, opengltest.NewRecorder())

	assert.True(t, m.Resize())
	assert.Equal(t, int32(1), session.Viewport.Width)
	assert.Equal(t, int32(1), session.Viewport.Height)
}

func TestInvalidRatioFallsBackToOne(t *testing.T) {
	session := models.NewSession()
	surface := &fakeSurface{w: 300, h: 200, ratio: 0}
	m := New(session, surface, opengltest.NewRecorder())

	m.Resize()
	assert.Equal(t, float32(1), session.Viewport.PixelRatio)
	assert.Equal(t, int32(300), session.Viewport.Width)
}

func TestFractionalRatioMatchesFramebuffer(t *testing.T) {
	for _, ratio := range []float64{1.25, 1.5, 1.75, 2.25} {
		for fb := 1; fb <= 4000; fb++ {
			session := models.NewSession()
			// Desktop hosts report the framebuffer divided by the content scale.
			surface := &fakeSurface{w: float64(fb) / ratio, h: float64(fb) / ratio, ratio: ratio}
			m := New(session, surface, opengltest.NewRecorder())
			m.Resize()

			if !assert.Equal(t, int32(fb), session.Viewport.Width, "ratio=%v framebuffer=%d", ratio, fb) {
				return
			}
			assert.Equal(t, int32(fb), session.Viewport.Height)
		}
	}
}

func TestFractionalLogicalSizeStillTruncates(t *testing.T) {
	session := models.NewSession()
	surface := &fakeSurface{w: 100.5, h: 50.9, ratio: 1}
	m := New(session, surface, opengltest.NewRecorder())

	m.Resize()
	assert.Equal(t, int32(100), session.Viewport.Width)
	assert.Equal(t, int32(50), session.Viewport.Height)
}

func TestZeroContainerAtStartupAppliesPlaceholder(t *testing.T) {
	session := models.NewSession()
	surface := &fakeSurface{w: 0, h: 0, ratio: 2}
	rec := opengltest.NewRecorder()
	m := New(session, surface, rec)

	assert.True(t, m.Resize())
	require.Equal(t, 1, rec.Count("Viewport"))
	assert.Equal(t, []any{int32(0), int32(0), int32(1), int32(1)}, rec.Calls[0].Args)
	assert.Equal(t, models.Viewport{Width: 1, Height: 1, PixelRatio: 1}, session.Viewport)
	assert.Equal(t, 1, surface.backingW)

	assert.False(t, m.Resize())
	assert.Equal(t, 1, rec.Count("Viewport"))

	surface.w, surface.h = 320, 240
	assert.True(t, m.Resize())
	assert.Equal(t, int32(640), session.Viewport.Width)
	assert.Equal(t, 2, rec.Count("Viewport"))
}
