// Package cursor animates the custom pointer: a triangle pinned to the
// mouse, a circle and a trail easing toward it at different rates.
package cursor

import (
	"math"

	"github.com/Zachkp/aurora-portfolio/internal/particle"
)

const (
	circleEase = 0.15
	trailEase  = 0.05
)

// Follower holds the per-frame cursor state.
type Follower struct {
	enabled  bool
	mouse    particle.Vec
	circle   particle.Vec
	trail    particle.Vec
	rotation float64
	hovering bool
	pressed  bool
}

// New returns a follower. A disabled follower ignores input.
func New(enabled bool) *Follower {
	return &Follower{enabled: enabled}
}

// SetEnabled turns the follower on or off.
func (f *Follower) SetEnabled(on bool) { f.enabled = on }

// Enabled reports whether the follower runs.
func (f *Follower) Enabled() bool { return f.enabled }

// Move records the pointer position.
func (f *Follower) Move(x, y float64) {
	if !f.enabled {
		return
	}
	f.mouse = particle.Vec{X: x, Y: y}
}

// Hover marks whether the pointer is over a control.
func (f *Follower) Hover(on bool) { f.hovering = on }

// Press marks whether a button is held.
func (f *Follower) Press(on bool) { f.pressed = on }

// Frame advances the interpolation by one frame.
func (f *Follower) Frame() {
	if !f.enabled {
		return
	}
	f.circle = f.circle.Lerp(f.mouse, circleEase)
	f.trail = f.trail.Lerp(f.mouse, trailEase)
	d := f.mouse.Sub(f.circle)
	f.rotation = math.Atan2(d.Y, d.X)*180/math.Pi + 90
}

// Pointer returns where the triangle is drawn.
func (f *Follower) Pointer() particle.Vec { return f.mouse }

// Circle returns the circle position.
func (f *Follower) Circle() particle.Vec { return f.circle }

// Trail returns the trail position.
func (f *Follower) Trail() particle.Vec { return f.trail }

// Rotation returns the triangle heading in degrees.
func (f *Follower) Rotation() float64 { return f.rotation }

// CircleSize returns the circle diameter for the current state.
func (f *Follower) CircleSize() float64 {
	switch {
	case f.pressed:
		return 35
	case f.hovering:
		return 60
	}
	return 40
}

// TrailSize returns the trail diameter for the current state.
func (f *Follower) TrailSize() float64 {
	if f.hovering {
		return 30
	}
	return 20
}

// TriangleScale returns the triangle scale for the current state.
func (f *Follower) TriangleScale() float64 {
	switch {
	case f.pressed:
		return 0.8
	case f.hovering:
		return 1.3
	}
	return 1
}
