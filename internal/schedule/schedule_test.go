package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryFiresOnInterval(t *testing.T) {
	s := New()
	count := 0
	s.Every(16*time.Millisecond, func() { count++ })

	s.Advance(15 * time.Millisecond)
	assert.Equal(t, 0, count)

	s.Advance(16 * time.Millisecond)
	assert.Equal(t, 1, count)

	s.Advance(32 * time.Millisecond)
	assert.Equal(t, 2, count)
}

func TestAdvanceCoalescesMissedTicks(t *testing.T) {
	s := New()
	count := 0
	s.Every(10*time.Millisecond, func() { count++ })

	s.Advance(time.Second)
	assert.Equal(t, 1, count)

	s.Advance(time.Second + 9*time.Millisecond)
	assert.Equal(t, 1, count)

	s.Advance(time.Second + 10*time.Millisecond)
	assert.Equal(t, 2, count)
}

func TestStopInsideCallback(t *testing.T) {
	s := New()
	count := 0
	var timer Timer
	timer = s.Every(time.Millisecond, func() {
		count++
		if count == 3 {
			assert.True(t, timer.Stop())
		}
	})

	for i := 1; i <= 10; i++ {
		s.Advance(time.Duration(i) * time.Millisecond)
	}

	assert.Equal(t, 3, count)
	assert.Equal(t, 0, s.Pending())
	assert.False(t, timer.Stop())
}

func TestStoppedTimerDoesNotFireInSameAdvance(t *testing.T) {
	s := New()
	var second Timer
	fired := false
	s.Every(time.Millisecond, func() { second.Stop() })
	second = s.Every(time.Millisecond, func() { fired = true })

	s.Advance(time.Millisecond)
	assert.False(t, fired)
	assert.Equal(t, 1, s.Pending())
}

func TestOrderingByDeadline(t *testing.T) {
	s := New()
	var order []string
	s.Every(20*time.Millisecond, func() { order = append(order, "slow") })
	s.Every(5*time.Millisecond, func() { order = append(order, "fast") })

	s.Advance(5 * time.Millisecond)
	s.Advance(20 * time.Millisecond)
	require.Equal(t, []string{"fast", "fast", "slow"}, order)
}

func TestStopAll(t *testing.T) {
	s := New()
	a := s.Every(time.Millisecond, func() { t.Fatal("should not fire") })
	s.Every(time.Millisecond, func() { t.Fatal("should not fire") })

	s.StopAll()
	s.Advance(time.Second)
	assert.Equal(t, 0, s.Pending())
	assert.False(t, a.Stop())
}

func TestAdvanceBackwardsIsIgnored(t *testing.T) {
	s := New()
	s.Advance(time.Second)
	s.Advance(time.Millisecond)
	assert.Equal(t, time.Second, s.Now())
}
