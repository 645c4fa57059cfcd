package viewport

import (
	"math"

	"github.com/ThatOtherAndrew/Aetherfield/internal/models"
	"github.com/ThatOtherAndrew/Aetherfield/internal/opengl"
)

// Surface is the resizable drawing surface as seen by the viewport manager.
type Surface interface {
	// LogicalSize is the container size in logical pixels.
	LogicalSize() (width, height float64)
	// PixelRatio is the device pixel ratio of the display showing the surface.
	PixelRatio() float64
	// SetBackingSize sizes the surface's backing store in device pixels.
	SetBackingSize(width, height int)
}

// Manager owns Session.Viewport.
type Manager struct {
	app     *models.Session
	surface Surface
	ctx     opengl.Context
	applied bool
}

func New(app *models.Session, surface Surface, ctx opengl.Context) *Manager {
	return &Manager{app: app, surface: surface, ctx: ctx}
}

// Resize matches the backing store and GL viewport to the container.
// A zero-sized container is ignored and the previous size is kept; if no
// size was ever applied, the session's placeholder size is applied so the
// GL viewport and the resolution uniform agree. It reports whether
// anything changed.
func (m *Manager) Resize() bool {
	logicalW, logicalH := m.surface.LogicalSize()
	if logicalW <= 0 || logicalH <= 0 {
		if m.applied {
			return false
		}
		m.apply(m.app.Viewport)
		return true
	}

	ratio := m.surface.PixelRatio()
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1
	}

	width := backing(logicalW, ratio)
	height := backing(logicalH, ratio)

	next := models.Viewport{
		Width:      int32(width),
		Height:     int32(height),
		PixelRatio: float32(ratio),
	}
	if m.applied && next == m.app.Viewport {
		return false
	}

	m.apply(next)
	return true
}

func (m *Manager) apply(vp models.Viewport) {
	m.surface.SetBackingSize(int(vp.Width), int(vp.Height))
	m.ctx.Viewport(0, 0, vp.Width, vp.Height)
	m.app.Viewport = vp
	m.applied = true
}

// roundTrip absorbs the error of a host that reports its pixel size
// divided by a fractional ratio.
const roundTrip = 1e-6

// backing truncates like a canvas width assignment, never below one pixel.
func backing(logical, ratio float64) int {
	px := int(math.Floor(logical*ratio + roundTrip))
	if px < 1 {
		return 1
	}
	return px
}
