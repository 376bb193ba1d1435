package clock

import "time"

// Guard reports whether scheduled work is still wanted.
type Guard func() bool

// Plan is a set of (delay, action) steps bound to one guard. Each step
// rechecks the guard when it fires, not when it was scheduled.
type Plan struct {
	clock  Clock
	guard  Guard
	nextID int
	timers map[int]Timer
}

// NewPlan returns an empty plan. A nil guard always passes.
func NewPlan(c Clock, guard Guard) *Plan {
	if guard == nil {
		guard = func() bool { return true }
	}
	return &Plan{clock: c, guard: guard, timers: make(map[int]Timer)}
}

// After schedules fn to run after d if the guard still holds at that time.
func (p *Plan) After(d time.Duration, fn func()) {
	p.nextID++
	id := p.nextID
	p.timers[id] = p.clock.AfterFunc(d, func() {
		delete(p.timers, id)
		if !p.guard() {
			return
		}
		fn()
	})
}

// Pending returns the number of steps that have not fired yet.
func (p *Plan) Pending() int {
	return len(p.timers)
}

// Cancel drops every pending step.
func (p *Plan) Cancel() {
	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
}

// Repeater is a self-rescheduling loop.
type Repeater struct {
	clock   Clock
	guard   Guard
	next    func() time.Duration
	fn      func()
	timer   Timer
	stopped bool
}

// Repeat runs fn after first and then after every next() interval for as
// long as guard holds. The loop stops itself the first time the guard fails.
func Repeat(c Clock, first time.Duration, next func() time.Duration, guard Guard, fn func()) *Repeater {
	if guard == nil {
		guard = func() bool { return true }
	}
	r := &Repeater{clock: c, guard: guard, next: next, fn: fn}
	r.timer = c.AfterFunc(first, r.fire)
	return r
}

func (r *Repeater) fire() {
	if r.stopped {
		return
	}
	if !r.guard() {
		r.stopped = true
		return
	}
	r.fn()
	if r.stopped {
		return
	}
	r.timer = r.clock.AfterFunc(r.next(), r.fire)
}

// Stop cancels the loop.
func (r *Repeater) Stop() {
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
	}
}

// Running reports whether the loop is still scheduled.
func (r *Repeater) Running() bool {
	return !r.stopped
}

// Debouncer collapses bursts of triggers into one trailing call.
type Debouncer struct {
	clock Clock
	wait  time.Duration
	timer Timer
}

// NewDebouncer returns a debouncer that waits d after the last trigger.
func NewDebouncer(c Clock, d time.Duration) *Debouncer {
	return &Debouncer{clock: c, wait: d}
}

// SetWait changes the quiet period used by later triggers.
func (d *Debouncer) SetWait(wait time.Duration) {
	d.wait = wait
}

// Trigger restarts the quiet period and runs fn once it elapses.
func (d *Debouncer) Trigger(fn func()) {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.wait, func() {
		d.timer = nil
		fn()
	})
}
