// Package engine wires the field's components to a host surface and owns
// their lifetime through an explicit Initialize/Teardown pair.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ThatOtherAndrew/Aetherfield/internal/config"
	"github.com/ThatOtherAndrew/Aetherfield/internal/density"
	"github.com/ThatOtherAndrew/Aetherfield/internal/draw"
	"github.com/ThatOtherAndrew/Aetherfield/internal/input"
	"github.com/ThatOtherAndrew/Aetherfield/internal/models"
	"github.com/ThatOtherAndrew/Aetherfield/internal/opengl"
	"github.com/ThatOtherAndrew/Aetherfield/internal/presence"
	"github.com/ThatOtherAndrew/Aetherfield/internal/pulse"
	"github.com/ThatOtherAndrew/Aetherfield/internal/schedule"
	"github.com/ThatOtherAndrew/Aetherfield/internal/shaders"
	"github.com/ThatOtherAndrew/Aetherfield/internal/viewport"
)

// Listener receives surface events from the host. Positions are in
// logical pixels relative to the surface's top-left corner.
type Listener interface {
	Move(pos mgl32.Vec2)
	TouchMove(touches []mgl32.Vec2)
	PressStart()
	PressEnd()
	Resize()
}

// Host is the platform the field runs on: a desktop window or a browser
// canvas.
type Host interface {
	viewport.Surface
	draw.Frames

	// GL returns the surface's rendering context, or nil if none could be
	// acquired.
	GL() opengl.Context
	Timers() schedule.Timers
	// Subscribe starts delivering surface events to l until remove is called.
	Subscribe(l Listener) (remove func())
}

type Option func(*Engine)

// WithPresenceObserver registers fn to be called whenever presence changes.
func WithPresenceObserver(fn func(float32)) Option {
	return func(e *Engine) {
		e.observer = fn
	}
}

// WithClock replaces the wall clock the density drift follows.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

type Engine struct {
	host     Host
	settings *config.Settings
	log      *zap.Logger
	observer func(float32)
	now      func() time.Time

	app         *models.Session
	ctx         opengl.Context
	program     *opengl.Program
	viewport    *viewport.Manager
	presence    *presence.Machine
	drift       *density.Drift
	tracker     *input.Tracker
	loop        *draw.Loop
	unsubscribe func()
	enabled     bool
}

// New returns an engine that does nothing until Initialize. Nil settings
// mean defaults and a nil logger discards everything.
func New(host Host, settings *config.Settings, log *zap.Logger, opts ...Option) *Engine {
	if settings == nil {
		settings = config.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		host:     host,
		settings: settings,
		log:      log,
		app:      models.NewSession(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize builds the field program, sizes the viewport, subscribes to
// input and starts the timers and the render loop. If the program cannot
// be built the error is logged and returned, and the engine stays
// disabled with nothing registered on the host.
func (e *Engine) Initialize() error {
	if e.enabled {
		return nil
	}

	ctx := e.host.GL()
	if ctx == nil {
		e.log.Error("No rendering context available", zap.Error(opengl.ErrNoContext))
		return opengl.ErrNoContext
	}

	fragment, err := shaders.Fragment(e.settings.FragmentShader)
	if err != nil {
		e.log.Error("Failed to load fragment shader", zap.String("path", e.settings.FragmentShader), zap.Error(err))
		return err
	}

	program, err := opengl.Build(ctx, shaders.FieldVertex, fragment)
	if err != nil {
		e.reportBuildError(err)
		return fmt.Errorf("failed to build field program: %w", err)
	}
	if missing := program.Missing(); len(missing) > 0 {
		e.log.Warn("Field program does not use some uniforms", zap.Strings("uniforms", missing))
	}
	e.ctx = ctx
	e.program = program

	e.viewport = viewport.New(e.app, e.host, ctx)
	e.viewport.Resize()

	e.presence = presence.New(e.app, e.host.Timers(), e.observer)
	e.drift = density.New(e.app, e.host.Timers(), e.now)
	e.tracker = input.New(e.app, e.presence)

	band := pulse.Band{Base: e.settings.PulseBaseFrequency, Max: e.settings.PulseMaxFrequency}
	renderer := draw.New(e.app, program, e.settings.TimeStep, band)
	e.loop = draw.NewLoop(renderer, e.host)

	e.unsubscribe = e.host.Subscribe(events{e})
	e.drift.Start()
	e.loop.Start()
	e.enabled = true

	e.log.Info("Field initialized",
		zap.Int32("width", e.app.Viewport.Width),
		zap.Int32("height", e.app.Viewport.Height),
		zap.Float32("pixel_ratio", e.app.Viewport.PixelRatio),
	)
	return nil
}

func (e *Engine) reportBuildError(err error) {
	var compileErr *opengl.CompileError
	var linkErr *opengl.LinkError
	switch {
	case errors.As(err, &compileErr):
		e.log.Error("Shader compilation failed",
			zap.Stringer("stage", compileErr.Stage),
			zap.String("log", compileErr.Log),
		)
	case errors.As(err, &linkErr):
		e.log.Error("Shader program linking failed", zap.String("log", linkErr.Log))
	default:
		e.log.Error("Failed to build field program", zap.Error(err))
	}
}

// Teardown cancels the pending frame, removes every listener, stops both
// timers and releases the program. GL errors left over from rendering and
// errors raised by the release are combined into the returned error.
// Calling it on a disabled engine does nothing.
func (e *Engine) Teardown() error {
	if !e.enabled {
		return nil
	}
	e.enabled = false

	e.loop.Stop()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.presence.Stop()
	e.drift.Stop()

	var err error
	if reporter, ok := e.ctx.(opengl.ErrorReporter); ok {
		if renderErr := reporter.Err(); renderErr != nil {
			err = multierr.Append(err, fmt.Errorf("rendering left a pending GL error: %w", renderErr))
		}
	}
	err = multierr.Append(err, e.program.Destroy())
	e.program = nil

	e.log.Info("Field torn down", zap.Uint64("frames", e.loop.Frames()), zap.Error(err))
	return err
}

// Enabled reports whether the engine is between a successful Initialize
// and Teardown.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// Session exposes the live shared state. Callers must treat it as read-only.
func (e *Engine) Session() *models.Session {
	return e.app
}

// Frames returns the number of frames drawn so far.
func (e *Engine) Frames() uint64 {
	if e.loop == nil {
		return 0
	}
	return e.loop.Frames()
}

// events routes host events to the component that owns the state they
// change.
type events struct {
	e *Engine
}

func (ev events) Move(pos mgl32.Vec2) {
	ev.e.tracker.Move(pos)
}

func (ev events) TouchMove(touches []mgl32.Vec2) {
	ev.e.tracker.TouchMove(touches)
}

func (ev events) PressStart() {
	ev.e.tracker.PressStart()
}

func (ev events) PressEnd() {
	ev.e.tracker.PressEnd()
}

func (ev events) Resize() {
	if ev.e.viewport.Resize() {
		vp := ev.e.app.Viewport
		ev.e.log.Debug("Viewport resized",
			zap.Int32("width", vp.Width),
			zap.Int32("height", vp.Height),
			zap.Float32("pixel_ratio", vp.PixelRatio),
		)
	}
}
