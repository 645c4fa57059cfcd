// Package schedule provides the repeating timers used by the presence and
// density updaters.
//
// Scheduler is cooperative: nothing fires until the host calls Advance from
// its main loop, so every callback runs on the same thread as rendering.
package schedule

import (
	"sort"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the timer was still active.
	Stop() bool
}

// Timers creates repeating timers.
type Timers interface {
	Every(interval time.Duration, fn func()) Timer
}

type entry struct {
	seq      uint64
	interval time.Duration
	deadline time.Duration
	fn       func()
	stopped  bool
	owner    *Scheduler
}

func (e *entry) Stop() bool {
	if e.stopped {
		return false
	}
	e.stopped = true
	e.owner.remove(e)
	return true
}

// Scheduler is a single-threaded timer queue driven by an external clock.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	entries []*entry
}

func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the time of the last Advance.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every schedules fn to run each interval, starting one interval from now.
// Non-positive intervals are treated as one nanosecond.
func (s *Scheduler) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		interval = time.Nanosecond
	}
	s.seq++
	e := &entry{
		seq:      s.seq,
		interval: interval,
		deadline: s.now + interval,
		fn:       fn,
		owner:    s,
	}
	s.entries = append(s.entries, e)
	return e
}

// Advance moves the clock to the given time and runs every callback that
// has come due, earliest first. A timer fires at most once per Advance; a
// timer that fell behind is rescheduled one interval after the new time,
// the way browser intervals coalesce instead of bursting.
func (s *Scheduler) Advance(to time.Duration) {
	if to < s.now {
		return
	}
	s.now = to

	var due []*entry
	for _, e := range s.entries {
		if e.deadline <= to {
			due = append(due, e)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline != due[j].deadline {
			return due[i].deadline < due[j].deadline
		}
		return due[i].seq < due[j].seq
	})

	for _, e := range due {
		if e.stopped {
			continue
		}
		e.deadline += e.interval
		if e.deadline <= to {
			e.deadline = to + e.interval
		}
		e.fn()
	}
}

// Pending returns the number of active timers.
func (s *Scheduler) Pending() int {
	return len(s.entries)
}

// StopAll cancels every active timer.
func (s *Scheduler) StopAll() {
	for _, e := range s.entries {
		e.stopped = true
	}
	s.entries = nil
}

func (s *Scheduler) remove(target *entry) {
	for i, e := range s.entries {
		if e == target {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}
