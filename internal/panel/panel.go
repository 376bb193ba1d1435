// Package panel drives the four mutually exclusive notification overlays.
package panel

import (
	"time"

	"github.com/Zachkp/aurora-portfolio/internal/clock"
)

// Kind names one of the overlays.
type Kind int

const (
	Tutorial Kind = iota
	Counter
	Active
	Ended
)

// Kinds lists every overlay in display order.
var Kinds = []Kind{Tutorial, Counter, Active, Ended}

func (k Kind) String() string {
	switch k {
	case Tutorial:
		return "tutorial"
	case Counter:
		return "counter"
	case Active:
		return "active"
	case Ended:
		return "ended"
	}
	return "unknown"
}

const (
	// FrameDelay stands in for one animation frame between display and the
	// active class, so the enter transition has a starting state.
	FrameDelay = 16 * time.Millisecond
	// HideDelay is how long an inactive panel stays in layout for its exit
	// transition.
	HideDelay = 300 * time.Millisecond

	// DefaultSoundBottom is the sound toggle offset with no active panel.
	DefaultSoundBottom = 100.0
	soundGap           = 20.0
)

// Layout is the geometry the sound toggle is positioned against.
type Layout struct {
	ViewportHeight float64
	// ActiveTop is the top edge of the active-show panel in viewport pixels.
	ActiveTop float64
}

type state struct {
	displayed bool
	active    bool
	gen       uint64
}

// Controller shows and hides panels. It is not safe for concurrent use;
// all calls happen on the clock's goroutine.
type Controller struct {
	clock       clock.Clock
	states      [4]state
	layout      Layout
	soundBottom float64
	onChange    func(k Kind, visible bool)
}

// New returns a controller with every panel hidden.
func New(c clock.Clock) *Controller {
	return &Controller{clock: c, soundBottom: DefaultSoundBottom}
}

// OnChange registers fn to be called whenever a panel gains or loses its
// active class.
func (c *Controller) OnChange(fn func(k Kind, visible bool)) {
	c.onChange = fn
}

// Show hides every other panel immediately, puts k into layout and
// activates it one frame later. A later Show or Hide of k supersedes the
// pending activation.
func (c *Controller) Show(k Kind) {
	if !valid(k) {
		return
	}
	for _, other := range Kinds {
		s := &c.states[other]
		s.gen++
		s.displayed = false
		c.setActive(other, false)
	}

	s := &c.states[k]
	s.displayed = true
	gen := s.gen
	c.clock.AfterFunc(FrameDelay, func() {
		s := &c.states[k]
		if s.gen != gen || !s.displayed {
			return
		}
		c.setActive(k, true)
		c.reflow()
	})
	c.reflow()
}

// Hide deactivates k now and drops it from layout after HideDelay, unless
// it was shown again in between.
func (c *Controller) Hide(k Kind) {
	if !valid(k) {
		return
	}
	s := &c.states[k]
	s.gen++
	gen := s.gen
	c.setActive(k, false)
	if s.displayed {
		c.clock.AfterFunc(HideDelay, func() {
			s := &c.states[k]
			if s.gen == gen && !s.active {
				s.displayed = false
			}
		})
	}
	c.reflow()
}

// HideAll hides every panel that is displayed.
func (c *Controller) HideAll() {
	for _, k := range Kinds {
		if c.states[k].displayed || c.states[k].active {
			c.Hide(k)
		}
	}
}

// Visible reports whether k carries the active class.
func (c *Controller) Visible(k Kind) bool {
	return valid(k) && c.states[k].active
}

// Displayed reports whether k takes part in layout, including during its
// enter and exit transitions.
func (c *Controller) Displayed(k Kind) bool {
	return valid(k) && c.states[k].displayed
}

// Current returns the visible panel, if any.
func (c *Controller) Current() (Kind, bool) {
	for _, k := range Kinds {
		if c.states[k].active {
			return k, true
		}
	}
	return 0, false
}

// Resize updates the geometry and repositions the sound toggle.
func (c *Controller) Resize(l Layout) {
	c.layout = l
	c.reflow()
}

// SoundToggleBottom is the distance from the viewport bottom to the sound
// toggle. It sits above the active-show panel while that panel is visible.
func (c *Controller) SoundToggleBottom() float64 {
	return c.soundBottom
}

func (c *Controller) reflow() {
	if c.states[Active].active && c.layout.ViewportHeight > 0 {
		c.soundBottom = c.layout.ViewportHeight - c.layout.ActiveTop + soundGap
		return
	}
	c.soundBottom = DefaultSoundBottom
}

func (c *Controller) setActive(k Kind, active bool) {
	s := &c.states[k]
	if s.active == active {
		return
	}
	s.active = active
	if c.onChange != nil {
		c.onChange(k, active)
	}
}

func valid(k Kind) bool {
	return k >= Tutorial && k <= Ended
}
