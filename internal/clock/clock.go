// Package clock provides the timer surface the engine schedules against.
//
// All engine callbacks run on a single goroutine. Manual is a virtual clock
// that fires callbacks synchronously from Advance; Loop drives a Manual from
// wall time so production and tests share one code path.
package clock

import (
	"container/heap"
	"time"
)

// Clock is the scheduling surface consumed by every component.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the timer
	// was still pending.
	Stop() bool
}

// Epoch is the starting instant of a zero-value Manual clock.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Manual is a virtual clock. Time only moves when Advance is called.
type Manual struct {
	now     time.Time
	seq     uint64
	pending timerHeap
}

// NewManual returns a virtual clock starting at start. A zero start uses Epoch.
func NewManual(start time.Time) *Manual {
	if start.IsZero() {
		start = Epoch
	}
	return &Manual{now: start}
}

// Now returns the current virtual time.
func (m *Manual) Now() time.Time {
	if m.now.IsZero() {
		m.now = Epoch
	}
	return m.now
}

// AfterFunc schedules fn to run once the clock has advanced by d.
// A non-positive d fires on the next Advance, including Advance(0).
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{
		clock:    m,
		deadline: m.Now().Add(d),
		seq:      m.seq,
		fn:       fn,
		index:    -1,
	}
	heap.Push(&m.pending, t)
	return t
}

// Advance moves time forward by d, running every callback whose deadline
// falls inside the window in deadline order. Callbacks scheduled while
// advancing also run if they come due before the window ends.
func (m *Manual) Advance(d time.Duration) {
	target := m.Now().Add(d)
	for m.pending.Len() > 0 {
		next := m.pending[0]
		if next.deadline.After(target) {
			break
		}
		heap.Pop(&m.pending)
		m.now = next.deadline
		next.fn()
	}
	m.now = target
}

// Pending returns the number of scheduled callbacks.
func (m *Manual) Pending() int {
	return m.pending.Len()
}

type manualTimer struct {
	clock    *Manual
	deadline time.Time
	seq      uint64
	fn       func()
	index    int
}

func (t *manualTimer) Stop() bool {
	if t.index < 0 {
		return false
	}
	heap.Remove(&t.clock.pending, t.index)
	return true
}

type timerHeap []*manualTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
