package scheduler

import (
	"context"
	"sync"
	"time"
)

// Loop is a single-goroutine event loop. Posted functions and timer
// callbacks run one at a time on the goroutine executing Run.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
}

// NewLoop creates a loop. Call Run to start processing.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Run processes posted work until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		stopped := l.stopped
		l.mu.Unlock()

		if stopped {
			return nil
		}
		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Post queues fn to run on the loop. It reports false if the loop has been
// stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Call runs fn on the loop and waits for it to finish.
// It must not be called from the loop goroutine.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop makes Run return after the batch in progress. Queued work is dropped.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.queue = nil
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Now returns the current time; it carries a monotonic reading.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Schedule implements Scheduler.
func (l *Loop) Schedule(delay time.Duration, repeat bool, fn func() bool) Handle {
	t := &loopTimer{loop: l, delay: delay, repeat: repeat, fn: fn, active: true}
	t.arm()
	return t
}

type loopTimer struct {
	loop   *Loop
	delay  time.Duration
	repeat bool
	fn     func() bool

	mu     sync.Mutex
	timer  *time.Timer
	active bool
}

func (t *loopTimer) arm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(t.delay, func() {
		if !t.loop.Post(t.fire) {
			t.Cancel()
		}
	})
}

// fire runs on the loop goroutine.
func (t *loopTimer) fire() {
	if !t.Active() {
		return
	}
	again := t.fn()
	if t.repeat && again && t.Active() {
		t.arm()
		return
	}
	t.mu.Lock()
	t.active = false
	t.mu.Unlock()
}

func (t *loopTimer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = false
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *loopTimer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}
