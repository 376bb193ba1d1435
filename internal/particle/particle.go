// Package particle holds ephemeral visual entities. Every entity has a
// lifetime and is retired by its owning Arena once that lifetime runs out.
package particle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ID identifies an entity for the life of its arena. IDs are never reused.
type ID uint64

// Kind tells a renderer how to draw an entity.
type Kind int

const (
	Rocket Kind = iota
	Flash
	Spark
	Banner
	Star
	Starfall
	ShootingStar
	Meteor
	Debris
)

func (k Kind) String() string {
	switch k {
	case Rocket:
		return "rocket"
	case Flash:
		return "flash"
	case Spark:
		return "spark"
	case Banner:
		return "banner"
	case Star:
		return "star"
	case Starfall:
		return "starfall"
	case ShootingStar:
		return "shooting-star"
	case Meteor:
		return "meteor"
	case Debris:
		return "debris"
	}
	return "unknown"
}

// Vec is a point or offset in viewport pixels.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }

// Lerp interpolates between v and o.
func (v Vec) Lerp(o Vec, t float64) Vec {
	return Vec{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Polar returns the offset of length r along angle a (radians).
func Polar(a, r float64) Vec {
	return Vec{math.Cos(a) * r, math.Sin(a) * r}
}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Hex parses "#rrggbb". It panics on malformed input and is meant for
// palette literals.
func Hex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("parse color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Motion selects how Position evolves.
type Motion int

const (
	// Tween moves from Origin to Target over the lifetime.
	Tween Motion = iota
	// Still stays at Origin.
	Still
	// Orbit drifts from Origin toward Target and back once per Period.
	Orbit
)

// Fade selects how Alpha evolves.
type Fade int

const (
	// FadeOut goes from Opacity to zero.
	FadeOut Fade = iota
	// FadeIn goes from zero to Opacity.
	FadeIn
	// FadeInOut rises to Opacity at the midpoint and falls back to zero.
	FadeInOut
	// Twinkle pulses around Opacity once per Period.
	Twinkle
	// Solid keeps Opacity.
	Solid
)

// Entity is one animated element.
type Entity struct {
	ID     ID
	Kind   Kind
	Label  string
	Origin Vec
	Target Vec
	Color  Color
	Size   float64
	// Length is the streak length for trail-like kinds.
	Length float64
	// Angle is the streak rotation in degrees.
	Angle   float64
	Opacity float64

	CreatedAt time.Time
	Delay     time.Duration
	// Lifetime of zero means the entity lives until its arena is cleared.
	Lifetime time.Duration
	Period   time.Duration
	Motion   Motion
	Fade     Fade
	Easing   Easing

	// OnExpire runs after the entity has been retired.
	OnExpire func(e Entity)
}

// Progress returns the linear fraction of the lifetime elapsed at now,
// clamped to [0, 1]. Entities without a lifetime report 0.
func (e *Entity) Progress(now time.Time) float64 {
	if e.Lifetime <= 0 {
		return 0
	}
	elapsed := now.Sub(e.CreatedAt) - e.Delay
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(e.Lifetime)
	if p > 1 {
		return 1
	}
	return p
}

// Started reports whether the entity's delay has elapsed.
func (e *Entity) Started(now time.Time) bool {
	return now.Sub(e.CreatedAt) >= e.Delay
}

// Expired reports whether the lifetime has run out.
func (e *Entity) Expired(now time.Time) bool {
	if e.Lifetime <= 0 {
		return false
	}
	return now.Sub(e.CreatedAt) >= e.Delay+e.Lifetime
}

// Position returns the entity location at now.
func (e *Entity) Position(now time.Time) Vec {
	switch e.Motion {
	case Still:
		return e.Origin
	case Orbit:
		phase := e.cycle(now)
		return e.Origin.Lerp(e.Target, math.Sin(phase*math.Pi))
	}
	t := e.Progress(now)
	if e.Easing != nil {
		t = e.Easing(t)
	}
	return e.Origin.Lerp(e.Target, t)
}

// Alpha returns the opacity at now in [0, 1].
func (e *Entity) Alpha(now time.Time) float64 {
	if !e.Started(now) {
		return 0
	}
	t := e.Progress(now)
	var a float64
	switch e.Fade {
	case FadeOut:
		a = e.Opacity * (1 - t)
	case FadeIn:
		a = e.Opacity * t
	case FadeInOut:
		a = e.Opacity * (1 - math.Abs(2*t-1))
	case Twinkle:
		a = e.Opacity * (0.6 + 0.4*math.Sin(2*math.Pi*e.cycle(now)))
	default:
		a = e.Opacity
	}
	return math.Max(0, math.Min(1, a))
}

// cycle is the fraction of the current Period elapsed since the delay.
func (e *Entity) cycle(now time.Time) float64 {
	if e.Period <= 0 {
		return 0
	}
	elapsed := now.Sub(e.CreatedAt) - e.Delay
	if elapsed < 0 {
		return 0
	}
	return float64(elapsed%e.Period) / float64(e.Period)
}
