package scheduler

import (
	"slices"
	"time"
)

// Manual is a deterministic Scheduler for tests. Time only moves when
// Advance or Sleep is called, and callbacks run on the caller's goroutine.
// Manual is not safe for concurrent use.
type Manual struct {
	now    time.Time
	seq    int
	timers []*manualTimer
}

// NewManual creates a manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now implements Scheduler.
func (m *Manual) Now() time.Time {
	return m.now
}

// Schedule implements Scheduler.
func (m *Manual) Schedule(delay time.Duration, repeat bool, fn func() bool) Handle {
	m.seq++
	t := &manualTimer{
		due:    m.now.Add(delay),
		seq:    m.seq,
		delay:  delay,
		repeat: repeat,
		fn:     fn,
		active: true,
	}
	m.timers = append(m.timers, t)
	return t
}

// Sleep moves the clock forward by d without firing timers, as if a
// callback had been busy for d.
func (m *Manual) Sleep(d time.Duration) {
	m.now = m.now.Add(d)
}

// Advance moves the clock forward by d, firing every timer that falls due on
// the way in due-time order. It returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now.Add(d)
	fired := 0
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		if t.due.After(m.now) {
			m.now = t.due
		}
		fired++
		again := t.fn()
		if t.repeat && again && t.active {
			m.seq++
			t.seq = m.seq
			t.due = m.now.Add(t.delay)
		} else {
			t.active = false
		}
	}
	if target.After(m.now) {
		m.now = target
	}
	return fired
}

// Pending returns the number of active timers.
func (m *Manual) Pending() int {
	m.prune()
	return len(m.timers)
}

// next returns the earliest active timer due at or before target.
func (m *Manual) next(target time.Time) *manualTimer {
	m.prune()
	var best *manualTimer
	for _, t := range m.timers {
		if t.due.After(target) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) prune() {
	m.timers = slices.DeleteFunc(m.timers, func(t *manualTimer) bool {
		return !t.active
	})
}

type manualTimer struct {
	due    time.Time
	seq    int
	delay  time.Duration
	repeat bool
	fn     func() bool
	active bool
}

func (t *manualTimer) Cancel() {
	t.active = false
}

func (t *manualTimer) Active() bool {
	return t.active
}
