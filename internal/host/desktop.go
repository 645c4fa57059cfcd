//go:build !js

// Package host adapts a desktop window to the engine's Host interface and
// drives its timers and frame callbacks from the main loop.
package host

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/ThatOtherAndrew/Aetherfield/internal/engine"
	"github.com/ThatOtherAndrew/Aetherfield/internal/opengl"
	"github.com/ThatOtherAndrew/Aetherfield/internal/schedule"
	"github.com/ThatOtherAndrew/Aetherfield/pkg/window"
)

// idleWait bounds how long an inert window blocks waiting for events, so
// timers keep running.
const idleWait = 0.016

type Desktop struct {
	win   *window.Window
	gl    *opengl.Desktop
	log   *zap.Logger
	sched *schedule.Scheduler
	start float64

	frame     func()
	frameSeq  uint64
	listeners map[uint64]engine.Listener
	nextID    uint64
	pressed   bool
}

func NewDesktop(win *window.Window, gl *opengl.Desktop, log *zap.Logger) *Desktop {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Desktop{
		win:       win,
		gl:        gl,
		log:       log,
		sched:     schedule.New(),
		start:     win.Time(),
		listeners: make(map[uint64]engine.Listener),
	}

	win.SetCursorCallback(func(x, y float64) {
		pos := d.toLogical(x, y)
		d.each(func(l engine.Listener) { l.Move(pos) })
	})
	win.SetButtonCallback(func(pressed bool) {
		if pressed == d.pressed {
			return
		}
		d.pressed = pressed
		d.each(func(l engine.Listener) {
			if pressed {
				l.PressStart()
			} else {
				l.PressEnd()
			}
		})
	})
	win.SetResizeCallback(func() {
		d.each(func(l engine.Listener) { l.Resize() })
	})
	win.HideCursor()

	return d
}

// toLogical converts a cursor position in screen coordinates to logical
// pixels, which may differ on platforms where screen coordinates are
// already device pixels.
func (d *Desktop) toLogical(x, y float64) mgl32.Vec2 {
	winW, _ := d.win.GetSize()
	fbW, _ := d.win.GetFramebufferSize()
	scale := 1.0
	if winW > 0 && fbW > 0 {
		scale = float64(fbW) / float64(winW) / d.PixelRatio()
	}
	return mgl32.Vec2{float32(x * scale), float32(y * scale)}
}

func (d *Desktop) LogicalSize() (float64, float64) {
	fbW, fbH := d.win.GetFramebufferSize()
	ratio := d.PixelRatio()
	return float64(fbW) / ratio, float64(fbH) / ratio
}

func (d *Desktop) PixelRatio() float64 {
	if scale := d.win.ContentScale(); scale > 0 {
		return scale
	}
	return 1
}

// SetBackingSize is a no-op: the window system sizes the framebuffer.
func (d *Desktop) SetBackingSize(int, int) {}

func (d *Desktop) GL() opengl.Context {
	if d.gl == nil {
		return nil
	}
	return d.gl
}

func (d *Desktop) Timers() schedule.Timers {
	return d.sched
}

// RequestFrame holds fn until the next Step. Only one frame can be pending.
func (d *Desktop) RequestFrame(fn func()) func() {
	d.frameSeq++
	seq := d.frameSeq
	d.frame = fn
	return func() {
		if d.frameSeq == seq {
			d.frame = nil
		}
	}
}

func (d *Desktop) Subscribe(l engine.Listener) func() {
	id := d.nextID
	d.nextID++
	d.listeners[id] = l
	return func() {
		delete(d.listeners, id)
	}
}

func (d *Desktop) each(fn func(engine.Listener)) {
	for _, l := range d.listeners {
		fn(l)
	}
}

// Step runs one iteration of the main loop: dispatch window events, fire
// due timers, then draw and present the pending frame if there is one.
func (d *Desktop) Step() {
	if d.frame == nil {
		d.win.WaitEvents(idleWait)
	} else {
		d.win.PollEvents()
	}

	d.sched.Advance(d.Elapsed())

	if fn := d.frame; fn != nil {
		d.frame = nil
		fn()
		d.win.SwapBuffers()
	}
}

// Elapsed is the time since the host was created on the window clock.
func (d *Desktop) Elapsed() time.Duration {
	return time.Duration((d.win.Time() - d.start) * float64(time.Second))
}

// Run steps until the window is asked to close.
func (d *Desktop) Run() {
	for !d.win.ShouldClose() {
		d.Step()
	}
	d.log.Debug("Window closing", zap.Duration("uptime", d.Elapsed()))
}

// Close stops any timers the engine left behind and reports them as a leak.
func (d *Desktop) Close() error {
	n := d.sched.Pending()
	if n == 0 {
		return nil
	}
	d.log.Warn("Timers still pending at close", zap.Int("count", n))
	d.sched.StopAll()
	return fmt.Errorf("%d timer(s) still pending at close", n)
}

var _ engine.Host = (*Desktop)(nil)
