package sched

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic Clock for tests. Time only moves when
// Advance is called, and due callbacks fire synchronously inside
// Advance, in schedule order for equal deadlines.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []*manualTimer
}

type manualTimer struct {
	due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

// NewManual creates a manual clock starting at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements Clock.
func (m *Manual) AfterFunc(d time.Duration, fn func()) CancelFunc {
	if d <= 0 {
		fn()
		return func() {}
	}

	m.mu.Lock()
	m.seq++
	t := &manualTimer{due: m.now + d, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		t.cancelled = true
		m.mu.Unlock()
	}
}

// Advance moves the clock forward by d and fires every timer that
// comes due, in deadline order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		t := m.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// popDue removes and returns the earliest non-cancelled timer due at
// or before target, advancing the clock to its deadline. Returns nil
// when no timer is due.
func (m *Manual) popDue(target time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.pending[:0]
	for _, t := range m.pending {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.pending = live

	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due != m.pending[j].due {
			return m.pending[i].due < m.pending[j].due
		}
		return m.pending[i].seq < m.pending[j].seq
	})

	if len(m.pending) == 0 || m.pending[0].due > target {
		return nil
	}

	t := m.pending[0]
	m.pending = m.pending[1:]
	if t.due > m.now {
		m.now = t.due
	}
	return t
}

// Pending returns the number of outstanding (non-cancelled) timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}
