//go:build !js

package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW event handling must run on the main thread.
	runtime.LockOSThread()
}

type Key = glfw.Key

const KeyEscape = glfw.KeyEscape

type WindowError struct {
	msg string
	err error
}

func (e *WindowError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *WindowError) Unwrap() error {
	return e.err
}

type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window is a GLFW window with a current OpenGL 4.1 core context.
type Window struct {
	handle *glfw.Window

	onCursor func(x, y float64)
	onButton func(pressed bool)
	onResize func()
	onKey    func(key Key)
}

func NewWindow(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &WindowError{"failed to initialise GLFW", err}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, glfw.True)

	width, height := opts.Width, opts.Height
	var monitor *glfw.Monitor
	if opts.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			glfw.Terminate()
			return nil, &WindowError{msg: "no monitor available for fullscreen"}
		}
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	}

	handle, err := glfw.CreateWindow(width, height, opts.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &WindowError{"failed to create window", err}
	}
	handle.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{handle: handle}
	handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.onCursor != nil {
			w.onCursor(x, y)
		}
	})
	handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || action == glfw.Repeat {
			return
		}
		if w.onButton != nil {
			w.onButton(action == glfw.Press)
		}
	})
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		if w.onResize != nil {
			w.onResize()
		}
	})
	handle.SetContentScaleCallback(func(_ *glfw.Window, _, _ float32) {
		if w.onResize != nil {
			w.onResize()
		}
	})
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press && w.onKey != nil {
			w.onKey(key)
		}
	})

	return w, nil
}

// GetSize returns the window size in screen coordinates.
func (w *Window) GetSize() (int, int) {
	return w.handle.GetSize()
}

// GetFramebufferSize returns the drawable size in device pixels.
func (w *Window) GetFramebufferSize() (int, int) {
	return w.handle.GetFramebufferSize()
}

// ContentScale is the ratio between device pixels and logical pixels for
// the monitor the window is on.
func (w *Window) ContentScale() float64 {
	x, _ := w.handle.GetContentScale()
	return float64(x)
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.handle.GetCursorPos()
}

func (w *Window) GetMouseButton() bool {
	return w.handle.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press
}

// HideCursor hides the cursor while it is over the window.
func (w *Window) HideCursor() {
	w.handle.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
}

// SetCursorCallback is called with the cursor position in screen
// coordinates relative to the top-left of the window.
func (w *Window) SetCursorCallback(fn func(x, y float64)) {
	w.onCursor = fn
}

// SetButtonCallback is called when the primary button goes down or up.
func (w *Window) SetButtonCallback(fn func(pressed bool)) {
	w.onButton = fn
}

// SetResizeCallback is called when the framebuffer size or content scale
// changes.
func (w *Window) SetResizeCallback(fn func()) {
	w.onResize = fn
}

func (w *Window) SetKeyCallback(fn func(key Key)) {
	w.onKey = fn
}

func (w *Window) ShouldClose() bool {
	return w.handle.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.handle.SetShouldClose(v)
}

func (w *Window) SwapBuffers() {
	w.handle.SwapBuffers()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// WaitEvents blocks until an event arrives or timeout seconds pass.
func (w *Window) WaitEvents(timeout float64) {
	glfw.WaitEventsTimeout(timeout)
}

// Time returns seconds since the window system was initialised.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) Destroy() {
	if w.handle != nil {
		w.handle.Destroy()
		w.handle = nil
	}
	glfw.Terminate()
}
