// Package scheduler provides the cooperative timers that drive background
// work on a single event-loop goroutine.
//
// A Scheduler hands out cancellable timer Handles. Callbacks never run
// concurrently with each other: Loop executes them one at a time on the
// goroutine that called Run, and Manual executes them from Advance. Work that
// must yield between steps does so by returning from its callback and
// asking, through the return value of a repeating timer, to be called again.
//
//	loop := scheduler.NewLoop()
//	go loop.Run(ctx)
//
//	h := loop.Schedule(200*time.Millisecond, true, func() bool {
//	    return doSomeWork() // true: run again after another 200ms
//	})
//	...
//	h.Cancel()
//
// A cancelled Handle never runs its callback again, even if the timer had
// already fired and the callback was queued behind other work.
package scheduler
