package fireworks

import (
	"math"
	"time"

	"github.com/Zachkp/aurora-portfolio/internal/particle"
)

// Pattern names a parametric shape drawn with sparks.
type Pattern string

const (
	Heart  Pattern = "heart"
	Spiral Pattern = "spiral"
	Star   Pattern = "star"
	Ring   Pattern = "ring"
)

// Cue is a pattern scheduled at a fixed offset from show start.
type Cue struct {
	At      time.Duration
	Pattern Pattern
}

// Cues is the desktop pattern schedule.
var Cues = []Cue{
	{At: 3 * time.Second, Pattern: Heart},
	{At: 10 * time.Second, Pattern: Spiral},
	{At: 20 * time.Second, Pattern: Star},
	{At: 30 * time.Second, Pattern: Ring},
}

// Point is one spark of a pattern relative to the pattern center.
type Point struct {
	Offset particle.Vec
	Delay  time.Duration
	Color  int
}

// Points returns the sparks of p in firing order. Color is an index into
// the caller's palette.
func (p Pattern) Points() []Point {
	var pts []Point
	switch p {
	case Heart:
		for i := 0; i < 180; i += 10 {
			a := float64(i) * math.Pi / 180
			x := 16 * math.Pow(math.Sin(a), 3)
			y := -(13*math.Cos(a) - 5*math.Cos(2*a) - 2*math.Cos(3*a) - math.Cos(4*a))
			pts = append(pts, Point{
				Offset: particle.Vec{X: x * 6, Y: y * 6},
				Delay:  time.Duration(i) * 40 * time.Millisecond,
				Color:  i,
			})
		}
	case Spiral:
		for i := 0; i < 360; i += 15 {
			a := float64(i) * math.Pi / 180
			pts = append(pts, Point{
				Offset: particle.Polar(a, float64(i)*0.3),
				Delay:  time.Duration(i) * 20 * time.Millisecond,
				Color:  i / 72,
			})
		}
	case Star:
		const tips = 5
		for i := 0; i <= tips*2; i++ {
			r := 30.0
			if i%2 == 0 {
				r = 80
			}
			pts = append(pts, Point{
				Offset: particle.Polar(math.Pi/tips*float64(i), r),
				Delay:  time.Duration(i) * 120 * time.Millisecond,
				Color:  i,
			})
		}
	case Ring:
		for i := 0; i < 360; i += 10 {
			a := float64(i) * math.Pi / 180
			pts = append(pts, Point{
				Offset: particle.Polar(a, 120),
				Delay:  time.Duration(i) * 25 * time.Millisecond,
				Color:  i / 36,
			})
		}
	}
	return pts
}
