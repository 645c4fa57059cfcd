package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyEndpoints(t *testing.T) {
	assert.InDelta(t, 0.783, Default.Frequency(0), 1e-6)
	assert.InDelta(t, 1.3, Default.Frequency(1), 1e-6)
	assert.InDelta(t, 0.783+0.5*(1.3-0.783), Default.Frequency(0.5), 1e-6)
}

func TestFrequencyClampsPresence(t *testing.T) {
	assert.Equal(t, Default.Frequency(0), Default.Frequency(-3))
	assert.Equal(t, Default.Frequency(1), Default.Frequency(7))
}

func TestFrequencyMonotonicInPresence(t *testing.T) {
	prev := Default.Frequency(0)
	for i := 1; i <= 100; i++ {
		f := Default.Frequency(float32(i) / 100)
		assert.GreaterOrEqual(t, f, prev)
		prev = f
	}
}

func TestValueInUnitRange(t *testing.T) {
	for step := 0; step < 5000; step++ {
		frameTime := float64(step) * 0.016
		for _, presence := range []float32{0, 0.25, 0.5, 0.95, 1} {
			v := Default.Value(frameTime, presence)
			assert.GreaterOrEqual(t, v, float32(0))
			assert.LessOrEqual(t, v, float32(1))
		}
	}
}

func TestValueWithoutPresenceKeepsBasePeriod(t *testing.T) {
	period := 1 / float64(Default.Frequency(0))

	// A quarter period in is the crest, three quarters in is rectified away.
	assert.InDelta(t, 1, Default.Value(period/4, 0), 1e-4)
	assert.Equal(t, float32(0), Default.Value(3*period/4, 0))

	for _, frameTime := range []float64{0.1, 0.37, 0.9, 2.2} {
		assert.InDelta(t, Default.Value(frameTime, 0), Default.Value(frameTime+period, 0), 1e-4)
	}
}

func TestValueAtZeroTime(t *testing.T) {
	assert.Equal(t, float32(0), Default.Value(0, 0))
	assert.Equal(t, float32(0), Default.Value(0, 1))
}

func TestValueStaysPeriodicAtLargeFrameTime(t *testing.T) {
	// About a week of frames at 60 Hz.
	start := 604800.0
	period := 1 / float64(Default.Frequency(0))
	for _, offset := range []float64{0.1, 0.37, 0.9} {
		assert.InDelta(t, Default.Value(offset, 0), Default.Value(start*period+offset, 0), 1e-3)
	}
}
