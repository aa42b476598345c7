package scheduler

import (
	"errors"
	"time"
)

// ErrStopped is returned by Loop.Call after the loop has been stopped.
var ErrStopped = errors.New("scheduler: loop stopped")

// Handle controls a scheduled timer.
type Handle interface {
	// Cancel stops the timer. It is safe to call more than once.
	Cancel()
	// Active reports whether the callback may still run.
	Active() bool
}

// Scheduler creates timers whose callbacks run on an event loop.
type Scheduler interface {
	// Schedule runs fn after delay. If repeat is true, fn runs again every
	// delay for as long as it returns true. The return value of a one-shot
	// timer is ignored.
	Schedule(delay time.Duration, repeat bool, fn func() bool) Handle

	// Now returns the scheduler's current monotonic time.
	Now() time.Time
}
