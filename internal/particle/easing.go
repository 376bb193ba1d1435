package particle

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// CubicBezier returns the CSS cubic-bezier(x1, y1, x2, y2) timing function.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	sample := func(a1, a2, t float64) float64 {
		u := 1 - t
		return 3*u*u*t*a1 + 3*u*t*t*a2 + t*t*t
	}
	slope := func(a1, a2, t float64) float64 {
		u := 1 - t
		return 3*u*u*a1 + 6*u*t*(a2-a1) + 3*t*t*(1-a2)
	}
	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		// Newton steps on x(t) = x, falling back to bisection.
		t := x
		for i := 0; i < 8; i++ {
			dx := sample(x1, x2, t) - x
			d := slope(x1, x2, t)
			if d > -1e-6 && d < 1e-6 {
				break
			}
			t -= dx / d
		}
		if t < 0 || t > 1 || abs(sample(x1, x2, t)-x) > 1e-5 {
			lo, hi := 0.0, 1.0
			t = x
			for i := 0; i < 40; i++ {
				if sample(x1, x2, t) < x {
					lo = t
				} else {
					hi = t
				}
				t = (lo + hi) / 2
			}
		}
		return sample(y1, y2, t)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Curves used by the show and the background.
var (
	EaseRocket   = CubicBezier(0.2, 0.9, 0.1, 1)
	EaseSpark    = CubicBezier(0.2, 0.8, 0.4, 1)
	EaseStandard = CubicBezier(0.4, 0, 0.2, 1)
)
