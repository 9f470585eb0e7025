// Package sched provides the timer service used by the popover's
// hover-delay handling.
//
// A Clock schedules delayed callbacks and returns a CancelFunc that
// guarantees the callback never runs after cancellation. The System
// clock fires on the Go runtime's timer goroutine; wrap it with
// Dispatched to route callbacks onto a single-threaded event loop so
// that all state transitions stay serialized. Manual is a deterministic
// clock for tests.
package sched
