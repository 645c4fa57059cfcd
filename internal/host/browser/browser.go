//go:build js && wasm

// Package browser hosts the field on an HTML canvas.
package browser

import (
	"fmt"
	"syscall/js"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/ThatOtherAndrew/Aetherfield/internal/engine"
	"github.com/ThatOtherAndrew/Aetherfield/internal/opengl"
	"github.com/ThatOtherAndrew/Aetherfield/internal/schedule"
)

// Canvas implements engine.Host for a canvas element. Input is read from
// window-level events so presses that start outside the canvas still count.
type Canvas struct {
	window js.Value
	canvas js.Value
	gl     *opengl.WebGL
	log    *zap.Logger

	frameFn  js.Func
	frame    func()
	frameID  js.Value
	frameSeq uint64
}

// New finds the canvas with the given element id and acquires a WebGL2
// context for it. A missing context is logged and leaves GL nil.
func New(canvasID string, log *zap.Logger) (*Canvas, error) {
	if log == nil {
		log = zap.NewNop()
	}
	window := js.Global()
	canvas := window.Get("document").Call("getElementById", canvasID)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, fmt.Errorf("canvas %q not found", canvasID)
	}
	canvas.Get("style").Set("cursor", "none")

	c := &Canvas{window: window, canvas: canvas, log: log}
	gl, err := opengl.NewWebGL(canvas)
	if err != nil {
		log.Error("WebGL2 unavailable", zap.Error(err))
	} else {
		c.gl = gl
	}

	c.frameFn = js.FuncOf(func(js.Value, []js.Value) interface{} {
		fn := c.frame
		c.frame = nil
		c.frameID = js.Undefined()
		if fn != nil {
			fn()
		}
		return nil
	})
	return c, nil
}

func (c *Canvas) LogicalSize() (float64, float64) {
	rect := c.canvas.Call("getBoundingClientRect")
	return rect.Get("width").Float(), rect.Get("height").Float()
}

func (c *Canvas) PixelRatio() float64 {
	dpr := c.window.Get("devicePixelRatio")
	if dpr.Type() != js.TypeNumber {
		return 1
	}
	return dpr.Float()
}

func (c *Canvas) SetBackingSize(width, height int) {
	c.canvas.Set("width", width)
	c.canvas.Set("height", height)
}

func (c *Canvas) GL() opengl.Context {
	if c.gl == nil {
		return nil
	}
	return c.gl
}

func (c *Canvas) Timers() schedule.Timers {
	return intervals{window: c.window}
}

func (c *Canvas) RequestFrame(fn func()) func() {
	c.frameSeq++
	seq := c.frameSeq
	c.frame = fn
	c.frameID = c.window.Call("requestAnimationFrame", c.frameFn)
	return func() {
		if c.frameSeq != seq || c.frame == nil {
			return
		}
		c.window.Call("cancelAnimationFrame", c.frameID)
		c.frame = nil
		c.frameID = js.Undefined()
	}
}

// Subscribe registers window listeners for l. The returned function removes
// them and releases their callbacks.
func (c *Canvas) Subscribe(l engine.Listener) func() {
	handlers := map[string]js.Func{
		"mousemove": js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
			l.Move(c.relative(args[0]))
			return nil
		}),
		"touchmove": js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
			l.TouchMove(c.touches(args[0]))
			return nil
		}),
		"mousedown": js.FuncOf(func(js.Value, []js.Value) interface{} {
			l.PressStart()
			return nil
		}),
		"touchstart": js.FuncOf(func(_ js.Value, args []js.Value) interface{} {
			l.TouchMove(c.touches(args[0]))
			l.PressStart()
			return nil
		}),
		"mouseup": js.FuncOf(func(js.Value, []js.Value) interface{} {
			l.PressEnd()
			return nil
		}),
		"touchend": js.FuncOf(func(js.Value, []js.Value) interface{} {
			l.PressEnd()
			return nil
		}),
		"resize": js.FuncOf(func(js.Value, []js.Value) interface{} {
			l.Resize()
			return nil
		}),
	}
	for event, fn := range handlers {
		c.window.Call("addEventListener", event, fn)
	}
	return func() {
		for event, fn := range handlers {
			c.window.Call("removeEventListener", event, fn)
			fn.Release()
		}
	}
}

// relative converts an event's client position to logical pixels from the
// canvas's top-left corner.
func (c *Canvas) relative(event js.Value) mgl32.Vec2 {
	rect := c.canvas.Call("getBoundingClientRect")
	return mgl32.Vec2{
		float32(event.Get("clientX").Float() - rect.Get("left").Float()),
		float32(event.Get("clientY").Float() - rect.Get("top").Float()),
	}
}

func (c *Canvas) touches(event js.Value) []mgl32.Vec2 {
	list := event.Get("touches")
	if list.IsUndefined() || list.IsNull() {
		return nil
	}
	n := list.Get("length").Int()
	points := make([]mgl32.Vec2, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, c.relative(list.Index(i)))
	}
	return points
}

// NotifyPresence forwards presence to window.aetherfield.onPresence when the
// page defines it.
func (c *Canvas) NotifyPresence(p float32) {
	ns := c.window.Get("aetherfield")
	if ns.Type() != js.TypeObject {
		return
	}
	if cb := ns.Get("onPresence"); cb.Type() == js.TypeFunction {
		cb.Invoke(p)
	}
}

// Close releases the frame callback and the context's handle tables.
func (c *Canvas) Close() {
	if c.frame != nil {
		c.window.Call("cancelAnimationFrame", c.frameID)
		c.frame = nil
	}
	c.frameFn.Release()
	if c.gl != nil {
		c.gl.Release()
	}
}

// intervals maps schedule timers onto setInterval.
type intervals struct {
	window js.Value
}

func (t intervals) Every(interval time.Duration, fn func()) schedule.Timer {
	cb := js.FuncOf(func(js.Value, []js.Value) interface{} {
		fn()
		return nil
	})
	id := t.window.Call("setInterval", cb, interval.Milliseconds())
	return &intervalTimer{window: t.window, id: id, cb: cb}
}

type intervalTimer struct {
	window  js.Value
	id      js.Value
	cb      js.Func
	stopped bool
}

func (t *intervalTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.window.Call("clearInterval", t.id)
	t.cb.Release()
	return true
}

var _ engine.Host = (*Canvas)(nil)
