// Package audio controls the looping show soundtrack and its volume.
package audio

import "math"

const (
	// DefaultLevel is the starting volume and the level restored on unmute.
	DefaultLevel = 0.3
	// Step is the increment used by Up and Down.
	Step = 0.1
)

// Icon is the volume glyph shown on the sound toggle.
type Icon int

const (
	IconMuted Icon = iota
	IconLow
	IconHigh
)

func (i Icon) String() string {
	switch i {
	case IconMuted:
		return "volume-mute"
	case IconLow:
		return "volume-down"
	case IconHigh:
		return "volume-up"
	}
	return "unknown"
}

// IconFor maps a level to its glyph: muted at 0, low up to 0.5, high above.
func IconFor(level float64) Icon {
	switch {
	case level <= 0:
		return IconMuted
	case level <= 0.5:
		return IconLow
	default:
		return IconHigh
	}
}

// Volume is a level in [0, 1] adjusted in tenths.
type Volume struct {
	level float64
}

// NewVolume returns a volume at DefaultLevel.
func NewVolume() *Volume {
	return &Volume{level: DefaultLevel}
}

// Level returns the current level.
func (v *Volume) Level() float64 { return v.level }

// Up raises the level by one step, stopping at 1.
func (v *Volume) Up() float64 {
	v.level = clamp(round(v.level + Step))
	return v.level
}

// Down lowers the level by one step, stopping at 0.
func (v *Volume) Down() float64 {
	v.level = clamp(round(v.level - Step))
	return v.level
}

// ToggleMute switches between silence and DefaultLevel. Unmuting does not
// restore the level in effect before muting.
func (v *Volume) ToggleMute() float64 {
	if v.level == 0 {
		v.level = DefaultLevel
	} else {
		v.level = 0
	}
	return v.level
}

// Muted reports whether the level is zero.
func (v *Volume) Muted() bool { return v.level == 0 }

// Icon returns the glyph for the current level.
func (v *Volume) Icon() Icon { return IconFor(v.level) }

func round(f float64) float64 {
	return math.Round(f*10) / 10
}

func clamp(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}
