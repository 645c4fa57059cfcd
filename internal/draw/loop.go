package draw

// Frames schedules a callback for the next display frame. The returned
// function cancels the request if it has not fired yet.
type Frames interface {
	RequestFrame(fn func()) (cancel func())
}

// Loop redraws once per display frame until stopped.
type Loop struct {
	renderer *Renderer
	frames   Frames
	cancel   func()
	running  bool
	count    uint64
}

func NewLoop(renderer *Renderer, frames Frames) *Loop {
	return &Loop{renderer: renderer, frames: frames}
}

func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.cancel = l.frames.RequestFrame(l.tick)
}

func (l *Loop) tick() {
	l.cancel = nil
	if !l.running {
		return
	}
	l.renderer.Frame()
	l.count++
	l.cancel = l.frames.RequestFrame(l.tick)
}

// Stop cancels the pending frame request.
func (l *Loop) Stop() {
	l.running = false
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *Loop) Running() bool {
	return l.running
}

// Frames returns how many frames have been drawn.
func (l *Loop) Frames() uint64 {
	return l.count
}
