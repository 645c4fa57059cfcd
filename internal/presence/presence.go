package presence

import (
	"math"
	"time"

	"github.com/ThatOtherAndrew/Aetherfield/internal/models"
	"github.com/ThatOtherAndrew/Aetherfield/internal/schedule"
)

const (
	DecayFactor   = 0.95
	DecayFloor    = 0.01
	DecayInterval = 16 * time.Millisecond
)

type State int

const (
	AtRest State = iota
	Engaged
	Decaying
	// Stopped means a decay was cancelled by Stop before reaching rest.
	Stopped
)

func (s State) String() string {
	switch s {
	case AtRest:
		return "at_rest"
	case Engaged:
		return "engaged"
	case Decaying:
		return "decaying"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Machine owns Session.Presence and Session.Decaying. Presence jumps to 1
// on press and decays geometrically after release until it falls to the
// floor, where it snaps to exactly 0 and the decay timer is cancelled.
type Machine struct {
	app      *models.Session
	timers   schedule.Timers
	timer    schedule.Timer
	observer func(float32)
}

// New returns a machine at rest. observer, if non-nil, is called with the
// new presence whenever it changes.
func New(app *models.Session, timers schedule.Timers, observer func(float32)) *Machine {
	return &Machine{app: app, timers: timers, observer: observer}
}

func (m *Machine) State() State {
	switch {
	case m.timer != nil:
		return Decaying
	case m.app.Presence >= 1:
		return Engaged
	case m.app.Presence <= 0:
		return AtRest
	default:
		return Stopped
	}
}

// Press cancels any pending decay and sets presence to exactly 1.
func (m *Machine) Press() {
	m.cancel()
	m.app.Decaying = false
	m.set(1)
}

// Release starts the decay unless one is already running. Releasing with
// nothing to decay leaves the machine at rest.
func (m *Machine) Release() {
	if m.timer != nil || m.app.Presence <= 0 {
		return
	}
	m.app.Decaying = true
	m.timer = m.timers.Every(DecayInterval, m.Tick)
}

// Tick applies one decay step. It is driven by the decay timer.
func (m *Machine) Tick() {
	if !m.app.Decaying {
		return
	}
	next := m.app.Presence * DecayFactor
	if next <= DecayFloor {
		m.cancel()
		m.app.Decaying = false
		next = 0
	}
	m.set(next)
}

// Stop cancels the decay timer, leaving presence where it is.
func (m *Machine) Stop() {
	m.cancel()
	m.app.Decaying = false
}

func (m *Machine) cancel() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Machine) set(p float32) {
	if p == m.app.Presence {
		return
	}
	m.app.Presence = p
	if m.observer != nil {
		m.observer(p)
	}
}

// TicksToRest is the number of decay ticks needed to take presence from p0
// to exactly 0.
func TicksToRest(p0 float32) int {
	if p0 <= 0 {
		return 0
	}
	n := int(math.Ceil(math.Log(DecayFloor/float64(p0)) / math.Log(DecayFactor)))
	if n < 1 {
		return 1
	}
	return n
}
