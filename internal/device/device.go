// Package device classifies the runtime as mobile or desktop and carries the
// tuning that every other component reads from.
package device

import (
	"regexp"
	"time"
)

// MobileWidth is the widest viewport still treated as mobile.
const MobileWidth = 768

var mobileAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// Generator names a background generator.
type Generator string

const (
	Starfield     Generator = "starfield"
	Starfall      Generator = "starfall"
	ShootingStars Generator = "shooting-stars"
	Meteors       Generator = "meteors"
	Debris        Generator = "debris"
)

// Profile is the behavior configuration for one class of device.
type Profile struct {
	Name   string `json:"name"`
	Mobile bool   `json:"mobile"`

	// Engagement counter.
	Threshold   int           `json:"threshold"`
	Debounce    time.Duration `json:"debounce"`
	ResetWindow time.Duration `json:"reset_window"`

	// Show engine.
	ShowDuration  time.Duration `json:"show_duration"`
	EndedDismiss  time.Duration `json:"ended_dismiss"`
	MaxFireworks  int           `json:"max_fireworks"`
	ParticleCap   int           `json:"particle_cap"`
	Rockets       bool          `json:"rockets"`
	Patterns      bool          `json:"patterns"`
	Banner        bool          `json:"banner"`
	TickerMin     time.Duration `json:"ticker_min"`
	TickerMax     time.Duration `json:"ticker_max"`
	BurstMin      int           `json:"burst_min"`
	BurstMax      int           `json:"burst_max"`
	SparkLifeMin  time.Duration `json:"spark_life_min"`
	SparkLifeMax  time.Duration `json:"spark_life_max"`
	SparkSizeMin  float64       `json:"spark_size_min"`
	SparkSizeMax  float64       `json:"spark_size_max"`
	SparkRangeMin float64       `json:"spark_range_min"`
	SparkRangeMax float64       `json:"spark_range_max"`

	// Side systems.
	Cursor         bool          `json:"cursor"`
	SectionKeys    bool          `json:"section_keys"`
	StarDensity    float64       `json:"star_density"`
	Generators     []Generator   `json:"generators"`
	ResizeDebounce time.Duration `json:"resize_debounce"`
}

// Desktop returns the full-fidelity profile.
func Desktop() Profile {
	return Profile{
		Name:          "desktop",
		Threshold:     10,
		Debounce:      100 * time.Millisecond,
		ResetWindow:   2 * time.Second,
		ShowDuration:  90 * time.Second,
		EndedDismiss:  5 * time.Second,
		Rockets:       true,
		Patterns:      true,
		Banner:        true,
		TickerMin:     300 * time.Millisecond,
		TickerMax:     500 * time.Millisecond,
		BurstMin:      40,
		BurstMax:      80,
		SparkLifeMin:  1500 * time.Millisecond,
		SparkLifeMax:  5 * time.Second,
		SparkSizeMin:  3,
		SparkSizeMax:  9,
		SparkRangeMin: 150,
		SparkRangeMax: 350,
		Cursor:        true,
		SectionKeys:   true,
		StarDensity:   1,
		Generators:    []Generator{Starfield, Starfall, ShootingStars, Meteors, Debris},

		ResizeDebounce: 250 * time.Millisecond,
	}
}

// Mobile returns the reduced profile for small or touch devices.
func Mobile() Profile {
	return Profile{
		Name:          "mobile",
		Mobile:        true,
		Threshold:     3,
		Debounce:      150 * time.Millisecond,
		ResetWindow:   2500 * time.Millisecond,
		ShowDuration:  45 * time.Second,
		EndedDismiss:  3 * time.Second,
		MaxFireworks:  30,
		ParticleCap:   400,
		TickerMin:     800 * time.Millisecond,
		TickerMax:     1200 * time.Millisecond,
		BurstMin:      15,
		BurstMax:      25,
		SparkLifeMin:  time.Second,
		SparkLifeMax:  2 * time.Second,
		SparkSizeMin:  2,
		SparkSizeMax:  4,
		SparkRangeMin: 60,
		SparkRangeMax: 140,
		StarDensity:   0.5,
		Generators:    []Generator{Starfield, Starfall},

		ResizeDebounce: 500 * time.Millisecond,
	}
}

// For returns Mobile when mobile is set and Desktop otherwise.
func For(mobile bool) Profile {
	if mobile {
		return Mobile()
	}
	return Desktop()
}

// IsMobile matches the user agent against known handheld platforms or
// treats a narrow viewport as mobile. A width of zero is ignored.
func IsMobile(userAgent string, width int) bool {
	if mobileAgent.MatchString(userAgent) {
		return true
	}
	return width > 0 && width <= MobileWidth
}

// Detect returns the profile for the given user agent and viewport width.
func Detect(userAgent string, width int) Profile {
	return For(IsMobile(userAgent, width))
}

// Enabled reports whether g runs under this profile.
func (p Profile) Enabled(g Generator) bool {
	for _, e := range p.Generators {
		if e == g {
			return true
		}
	}
	return false
}
