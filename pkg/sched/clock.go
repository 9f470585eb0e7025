package sched

import (
	"sync/atomic"
	"time"
)

// CancelFunc cancels a scheduled callback. After CancelFunc returns,
// the callback is guaranteed not to run. Calling it more than once is
// safe.
type CancelFunc func()

// Clock schedules delayed callbacks.
type Clock interface {
	// AfterFunc schedules fn to run after duration d.
	// A non-positive duration runs fn synchronously before AfterFunc
	// returns, and the returned CancelFunc is a no-op.
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

// System returns a Clock backed by the runtime timer.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, fn func()) CancelFunc {
	if d <= 0 {
		fn()
		return func() {}
	}

	// The fired flag makes cancel-vs-fire a single atomic race:
	// whichever side swaps first wins, so a cancelled timer can never
	// run its callback even if the runtime timer already expired.
	var fired atomic.Bool
	t := time.AfterFunc(d, func() {
		if fired.CompareAndSwap(false, true) {
			fn()
		}
	})
	return func() {
		fired.Store(true)
		t.Stop()
	}
}

// Dispatcher runs functions on a single event loop.
type Dispatcher interface {
	Dispatch(fn func())
}

// Dispatched wraps c so that scheduled callbacks are handed to d
// instead of running on the clock's own goroutine. Cancellation is
// still checked at fire time, so a callback cancelled while queued on
// the loop is dropped.
func Dispatched(c Clock, d Dispatcher) Clock {
	return &dispatchedClock{clock: c, dispatcher: d}
}

type dispatchedClock struct {
	clock      Clock
	dispatcher Dispatcher
}

func (dc *dispatchedClock) AfterFunc(d time.Duration, fn func()) CancelFunc {
	if d <= 0 {
		fn()
		return func() {}
	}

	var cancelled atomic.Bool
	cancel := dc.clock.AfterFunc(d, func() {
		dc.dispatcher.Dispatch(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	return func() {
		cancelled.Store(true)
		cancel()
	}
}
