package draw

import (
	"github.com/ThatOtherAndrew/Aetherfield/internal/models"
	"github.com/ThatOtherAndrew/Aetherfield/internal/opengl"
	"github.com/ThatOtherAndrew/Aetherfield/internal/pulse"
)

// DefaultStep is the frame-time increment per drawn frame, one 60 Hz frame.
const DefaultStep = 0.016

// Renderer owns Session.FrameTime and is the only component that writes to
// the GL context once setup is done.
type Renderer struct {
	app     *models.Session
	program *opengl.Program
	step    float32
	band    pulse.Band
}

func New(app *models.Session, program *opengl.Program, step float32, band pulse.Band) *Renderer {
	if step <= 0 {
		step = DefaultStep
	}
	return &Renderer{app: app, program: program, step: step, band: band}
}

// Frame advances frame time, uploads every uniform and draws the field once.
func (a *Renderer) Frame() {
	a.app.FrameTime += float64(a.step)
	currentPulse := a.band.Value(a.app.FrameTime, a.app.Presence)

	a.program.Bind()

	a.program.SetFloat(opengl.UniformTime, float32(a.app.FrameTime))
	a.program.SetVec2(opengl.UniformResolution, a.app.Viewport.Resolution())
	a.program.SetVec2(opengl.UniformPointer, a.app.Pointer)
	a.program.SetFloat(opengl.UniformPresence, a.app.Presence)
	a.program.SetFloat(opengl.UniformDensity, a.app.Density)
	a.program.SetFloat(opengl.UniformPulse, currentPulse)

	a.program.Draw()
}
