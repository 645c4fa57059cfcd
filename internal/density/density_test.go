package density

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThatOtherAndrew/Aetherfield/internal/models"
	"github.com/ThatOtherAndrew/Aetherfield/internal/schedule"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func TestTargetBounds(t *testing.T) {
	base := time.UnixMilli(0)
	for ms := int64(0); ms < 200000; ms += 37 {
		target := Target(base.Add(time.Duration(ms) * time.Millisecond))
		assert.GreaterOrEqual(t, target, float32(0.4)-1e-6)
		assert.LessOrEqual(t, target, float32(0.6)+1e-6)
	}
	assert.InDelta(t, 0.5, Target(time.UnixMilli(0)), 1e-6)
}

func TestTickIsConvexStep(t *testing.T) {
	session := models.NewSession()
	clock := &fakeClock{t: time.UnixMilli(0)}
	d := New(session, schedule.New(), clock.Now)

	session.Density = 0.4
	d.Tick()
	assert.InDelta(t, 0.4*0.99+0.5*0.01, session.Density, 1e-6)
}

func TestDensityStaysBounded(t *testing.T) {
	session := models.NewSession()
	sched := schedule.New()
	start := time.UnixMilli(1_700_000_000_000)
	clock := &fakeClock{t: start}
	d := New(session, sched, clock.Now)
	d.Start()

	// Step wall time much faster than real time so the target sweeps its
	// whole range several times.
	for i := 1; i <= 20000; i++ {
		clock.t = start.Add(time.Duration(i) * 5 * time.Second)
		sched.Advance(time.Duration(i) * TickInterval)
		require.GreaterOrEqual(t, session.Density, float32(0.4)-1e-5)
		require.LessOrEqual(t, session.Density, float32(0.6)+1e-5)
	}
}

func TestDensityConvergesToConstantTarget(t *testing.T) {
	session := models.NewSession()
	frozen := time.UnixMilli(15708) // sin(1.5708) ~ 1
	clock := &fakeClock{t: frozen}
	d := New(session, schedule.New(), clock.Now)

	for i := 0; i < 2000; i++ {
		d.Tick()
	}
	assert.InDelta(t, Target(frozen), session.Density, 1e-4)
	assert.InDelta(t, 0.6, session.Density, 1e-4)
}

func TestStartStop(t *testing.T) {
	session := models.NewSession()
	sched := schedule.New()
	d := New(session, sched, nil)

	d.Start()
	d.Start()
	assert.True(t, d.Running())
	assert.Equal(t, 1, sched.Pending())

	d.Stop()
	assert.False(t, d.Running())
	assert.Equal(t, 0, sched.Pending())

	before := session.Density
	sched.Advance(time.Minute)
	assert.Equal(t, before, session.Density)
}
