package input

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/ThatOtherAndrew/Aetherfield/internal/models"
)

type presser struct {
	presses, releases int
}

func (p *presser) Press()   { p.presses++ }
func (p *presser) Release() { p.releases++ }

func TestMoveScalesToDevicePixels(t *testing.T) {
	session := models.NewSession()
	session.Viewport.PixelRatio = 2
	tr := New(session, &presser{})

	tr.Move(mgl32.Vec2{10, 20.5})
	assert.Equal(t, mgl32.Vec2{20, 41}, session.Pointer)

	tr.Move(mgl32.Vec2{0, 0})
	assert.Equal(t, mgl32.Vec2{0, 0}, session.Pointer)
}

func TestMoveWithoutRatio(t *testing.T) {
	session := models.NewSession()
	session.Viewport.PixelRatio = 0
	tr := New(session, &presser{})

	tr.Move(mgl32.Vec2{3, 4})
	assert.Equal(t, mgl32.Vec2{3, 4}, session.Pointer)
}

func TestTouchUsesFirstPoint(t *testing.T) {
	session := models.NewSession()
	tr := New(session, &presser{})

	tr.TouchMove([]mgl32.Vec2{{5, 6}, {100, 100}})
	assert.Equal(t, mgl32.Vec2{5, 6}, session.Pointer)
}

func TestEmptyTouchIsIgnored(t *testing.T) {
	session := models.NewSession()
	tr := New(session, &presser{})
	tr.Move(mgl32.Vec2{7, 8})

	tr.TouchMove(nil)
	tr.TouchMove([]mgl32.Vec2{})
	assert.Equal(t, mgl32.Vec2{7, 8}, session.Pointer)
}

func TestPressEdgesForwarded(t *testing.T) {
	p := &presser{}
	tr := New(models.NewSession(), p)

	tr.PressStart()
	tr.PressEnd()
	tr.PressStart()
	assert.Equal(t, 2, p.presses)
	assert.Equal(t, 1, p.releases)
}
