package visibility

import (
	"time"

	"github.com/vango-dev/popover/pkg/sched"
)

// direction indexes the timer table.
type direction uint8

const (
	dirOpen direction = iota
	dirClose
)

// timerTable holds at most one outstanding hover timer per direction.
// Arming a direction replaces any pending timer for it; an accepted
// request in one direction cancels the pending timer of the other.
type timerTable struct {
	slots [2]sched.CancelFunc
}

// arm schedules fn after d for the given direction, replacing any
// pending timer for the same direction. A non-positive delay runs fn
// synchronously (the clock contract).
func (t *timerTable) arm(clock sched.Clock, dir direction, d time.Duration, fn func()) {
	t.cancel(dir)
	t.slots[dir] = clock.AfterFunc(d, fn)
}

// cancel drops the pending timer for the given direction, if any.
func (t *timerTable) cancel(dir direction) {
	if c := t.slots[dir]; c != nil {
		c()
		t.slots[dir] = nil
	}
}

// cancelAll drops both pending timers. Called on teardown before any
// further processing so no timer can fire into a disposed controller.
func (t *timerTable) cancelAll() {
	t.cancel(dirOpen)
	t.cancel(dirClose)
}
