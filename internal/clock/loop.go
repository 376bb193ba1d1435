package clock

import (
	"context"
	"time"
)

// Loop advances a Manual clock from wall time and serializes externally
// posted events onto the same goroutine.
type Loop struct {
	clock   *Manual
	tick    time.Duration
	events  chan func()
	onFrame func()
}

// NewLoop returns a loop that advances m every tick.
func NewLoop(m *Manual, tick time.Duration) *Loop {
	if tick <= 0 {
		tick = time.Second / 60
	}
	return &Loop{clock: m, tick: tick, events: make(chan func(), 64)}
}

// OnFrame registers fn to run after every clock advance.
func (l *Loop) OnFrame(fn func()) {
	l.onFrame = fn
}

// Post queues fn to run on the loop goroutine. It reports false when the
// queue is full and the event was dropped.
func (l *Loop) Post(fn func()) bool {
	select {
	case l.events <- fn:
		return true
	default:
		return false
	}
}

// Run drives the clock until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		case now := <-ticker.C:
			l.clock.Advance(now.Sub(last))
			last = now
			if l.onFrame != nil {
				l.onFrame()
			}
		}
	}
}
