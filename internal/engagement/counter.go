// Package engagement counts qualifying clicks and touches and triggers the
// fireworks show once enough of them land inside the reset window.
package engagement

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/clock"
	"github.com/Zachkp/aurora-portfolio/internal/device"
	"github.com/Zachkp/aurora-portfolio/internal/fireworks"
	"github.com/Zachkp/aurora-portfolio/internal/panel"
)

const (
	// StartDelay separates the "start now" control from the show.
	StartDelay = 100 * time.Millisecond
	// TutorialDelay is how long after page load the tutorial is offered.
	TutorialDelay = 1500 * time.Millisecond
)

var (
	interactiveTags    = []string{"a", "button", "input", "textarea", "select"}
	interactiveClasses = []string{"nav-item", "theme-switch", "sound-control", "fireworks-notification"}
)

// Target describes the element an event landed on and its ancestors.
type Target struct {
	Tags    []string
	Classes []string
}

// Interactive reports whether the target is, or sits inside, a control.
func (t Target) Interactive() bool {
	for _, tag := range t.Tags {
		if slices.Contains(interactiveTags, tag) {
			return true
		}
	}
	for _, class := range t.Classes {
		if slices.Contains(interactiveClasses, class) {
			return true
		}
	}
	return false
}

// Show is the part of the fireworks engine the counter drives.
type Show interface {
	Active() bool
	StartAfter(d time.Duration)
	Start() bool
	Restart()
}

// Counter is the Idle -> Counting -> Triggered state machine.
type Counter struct {
	clock   clock.Clock
	profile device.Profile
	panels  *panel.Controller
	show    Show
	log     *zap.Logger

	count         int
	last          time.Time
	seen          bool
	reset         clock.Timer
	tutorialShown bool
	onChange      func(count, threshold int)
}

// New returns an idle counter.
func New(c clock.Clock, p device.Profile, panels *panel.Controller, show Show, log *zap.Logger) *Counter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Counter{clock: c, profile: p, panels: panels, show: show, log: log}
}

// OnChange registers fn to observe count updates.
func (c *Counter) OnChange(fn func(count, threshold int)) {
	c.onChange = fn
}

// SetProfile swaps the threshold and timing used by later events.
func (c *Counter) SetProfile(p device.Profile) {
	c.profile = p
}

// Count returns the current count.
func (c *Counter) Count() int { return c.count }

// Threshold returns the count that triggers a show.
func (c *Counter) Threshold() int { return c.profile.Threshold }

// Progress returns count/threshold in [0, 1].
func (c *Counter) Progress() float64 {
	if c.profile.Threshold <= 0 {
		return 0
	}
	return min(1, float64(c.count)/float64(c.profile.Threshold))
}

// TutorialShown reports whether the tutorial has been offered this session.
func (c *Counter) TutorialShown() bool { return c.tutorialShown }

// Pointer handles a click or touch. It reports whether the event counted.
// Events on controls, events during a show and events arriving within the
// debounce interval of the last counted one are dropped.
func (c *Counter) Pointer(target Target) bool {
	if c.show.Active() || target.Interactive() {
		return false
	}
	now := c.clock.Now()
	if c.seen && now.Sub(c.last) < c.profile.Debounce {
		return false
	}
	c.seen = true
	c.last = now

	c.count++
	c.log.Debug("engagement", zap.Int("count", c.count), zap.Int("threshold", c.profile.Threshold))
	c.refresh()
	if c.count == 1 && !c.tutorialShown {
		c.panels.Show(panel.Tutorial)
		c.tutorialShown = true
	}

	if c.reset != nil {
		c.reset.Stop()
	}
	c.reset = c.clock.AfterFunc(c.profile.ResetWindow, func() {
		c.reset = nil
		if c.count < c.profile.Threshold {
			c.count = 0
			c.refresh()
			c.panels.Hide(panel.Counter)
		}
	})

	if c.count >= c.profile.Threshold {
		c.log.Info("engagement threshold reached", zap.Int("threshold", c.profile.Threshold))
		c.show.Start()
	}
	return true
}

// OfferTutorial shows the tutorial unless it was already offered or a show
// is running.
func (c *Counter) OfferTutorial() {
	if c.tutorialShown || c.show.Active() {
		return
	}
	c.panels.Show(panel.Tutorial)
	c.tutorialShown = true
}

// StartNow skips counting and starts the show.
func (c *Counter) StartNow() {
	c.count = c.profile.Threshold
	c.refresh()
	c.panels.Hide(panel.Tutorial)
	c.tutorialShown = true
	c.show.StartAfter(StartDelay)
}

// Restart forces the count to the threshold and restarts the show.
func (c *Counter) Restart() {
	c.count = c.profile.Threshold
	c.refresh()
	c.show.Restart()
}

// CloseTutorial dismisses the tutorial in favor of the counter.
func (c *Counter) CloseTutorial() {
	c.panels.Hide(panel.Tutorial)
	c.tutorialShown = true
	c.panels.Show(panel.Counter)
}

// CloseCounter dismisses the counter panel.
func (c *Counter) CloseCounter() {
	c.panels.Hide(panel.Counter)
}

// ShowStarted resets the count whenever a show begins, whatever started it.
func (c *Counter) ShowStarted(time.Time) {
	c.count = 0
	if c.reset != nil {
		c.reset.Stop()
		c.reset = nil
	}
	c.refresh()
}

// ShowEnded is part of fireworks.Observer.
func (c *Counter) ShowEnded(time.Time, fireworks.Reason, time.Duration) {}

// refresh publishes the count and surfaces the counter panel while counting.
func (c *Counter) refresh() {
	if c.onChange != nil {
		c.onChange(c.count, c.profile.Threshold)
	}
	if c.count > 0 && !c.show.Active() {
		c.panels.Show(panel.Counter)
	}
}
