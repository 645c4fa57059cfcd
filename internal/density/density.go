package density

import (
	"math"
	"time"

	"github.com/ThatOtherAndrew/Aetherfield/internal/models"
	"github.com/ThatOtherAndrew/Aetherfield/internal/schedule"
)

const (
	TickInterval = 100 * time.Millisecond

	Midpoint  = 0.5
	Amplitude = 0.1
	// Angular rate of the target, per millisecond of wall-clock time.
	Rate      = 0.0001
	Smoothing = 0.99
)

// Drift owns Session.Density. Each tick low-pass filters density toward a
// target that oscillates slowly with wall-clock time, so density never
// leaves [Midpoint-Amplitude, Midpoint+Amplitude] once inside it.
type Drift struct {
	app    *models.Session
	timers schedule.Timers
	now    func() time.Time
	timer  schedule.Timer
}

// New returns a stopped drift. A nil clock means time.Now.
func New(app *models.Session, timers schedule.Timers, now func() time.Time) *Drift {
	if now == nil {
		now = time.Now
	}
	return &Drift{app: app, timers: timers, now: now}
}

// Target is the value density is currently being pulled toward.
func Target(wall time.Time) float32 {
	ms := float64(wall.UnixMilli())
	return float32(Midpoint + Amplitude*math.Sin(ms*Rate))
}

func (d *Drift) Start() {
	if d.timer != nil {
		return
	}
	d.timer = d.timers.Every(TickInterval, d.Tick)
}

func (d *Drift) Tick() {
	target := Target(d.now())
	d.app.Density = d.app.Density*Smoothing + target*(1-Smoothing)
}

func (d *Drift) Running() bool {
	return d.timer != nil
}

func (d *Drift) Stop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
