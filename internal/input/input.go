package input

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ThatOtherAndrew/Aetherfield/internal/models"
)

// Presser receives press and release edges.
type Presser interface {
	Press()
	Release()
}

// Tracker owns Session.Pointer and forwards press edges to the presence
// machine. Positions are logical pixels relative to the surface's top-left
// corner; the tracker scales them to device pixels.
type Tracker struct {
	app      *models.Session
	presence Presser
}

func New(app *models.Session, presence Presser) *Tracker {
	return &Tracker{app: app, presence: presence}
}

// Move records the latest mouse position.
func (t *Tracker) Move(pos mgl32.Vec2) {
	ratio := t.app.Viewport.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	t.app.Pointer = pos.Mul(ratio)
}

// TouchMove records the first active touch point. An empty list is ignored.
func (t *Tracker) TouchMove(touches []mgl32.Vec2) {
	if len(touches) == 0 {
		return
	}
	t.Move(touches[0])
}

func (t *Tracker) PressStart() {
	t.presence.Press()
}

func (t *Tracker) PressEnd() {
	t.presence.Release()
}
