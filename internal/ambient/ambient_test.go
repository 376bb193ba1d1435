package ambient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/aurora-portfolio/internal/clock"
	"github.com/Zachkp/aurora-portfolio/internal/device"
	"github.com/Zachkp/aurora-portfolio/internal/particle"
	"github.com/Zachkp/aurora-portfolio/internal/random"
)

func newGenerators(p device.Profile) (*Generators, *clock.Manual) {
	m := clock.NewManual(time.Time{})
	g := New(Config{
		Clock:    m,
		Profile:  p,
		Rand:     random.New(21),
		Viewport: Viewport{W: 1440, H: 900},
	})
	return g, m
}

func step(m *clock.Manual, g *Generators, d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += 50 * time.Millisecond {
		m.Advance(50 * time.Millisecond)
		g.Frame()
	}
}

func TestDesktopBackground(t *testing.T) {
	g, m := newGenerators(device.Desktop())
	g.Start()

	a := g.Arena()
	assert.Equal(t, 750, a.Count(particle.Star))
	assert.Equal(t, DebrisCount, a.Count(particle.Debris))

	sawFall, sawShooting, sawMeteor := false, false, false
	for i := 0; i < 200; i++ {
		step(m, g, 100*time.Millisecond)
		sawFall = sawFall || a.Count(particle.Starfall) > 0
		sawShooting = sawShooting || a.Count(particle.ShootingStar) > 0
		sawMeteor = sawMeteor || a.Count(particle.Meteor) > 0
	}
	assert.True(t, sawFall)
	assert.True(t, sawShooting)
	assert.True(t, sawMeteor)
	assert.Equal(t, 750, a.Count(particle.Star), "static layers never retire")
}

func TestMobileBackgroundIsReduced(t *testing.T) {
	g, m := newGenerators(device.Mobile())
	g.Start()

	a := g.Arena()
	assert.Equal(t, 375, a.Count(particle.Star))
	assert.Zero(t, a.Count(particle.Debris))

	step(m, g, 20*time.Second)
	assert.Zero(t, a.Count(particle.ShootingStar))
	assert.Zero(t, a.Count(particle.Meteor))
}

func TestStopHaltsLoops(t *testing.T) {
	g, m := newGenerators(device.Desktop())
	g.Start()
	step(m, g, 5*time.Second)
	g.Stop()
	assert.False(t, g.Running())
	assert.Zero(t, g.Arena().Len())

	step(m, g, 20*time.Second)
	assert.Zero(t, g.Arena().Len())
	assert.Zero(t, m.Pending())
}

func TestResetSwitchesProfile(t *testing.T) {
	g, m := newGenerators(device.Desktop())
	g.Start()
	step(m, g, 2*time.Second)

	g.Reset(device.Mobile(), Viewport{W: 390, H: 844})
	require.True(t, g.Running())
	assert.Zero(t, g.Arena().Count(particle.Debris))

	g.Arena().Each(func(e *particle.Entity) {
		if e.Kind == particle.Star {
			assert.LessOrEqual(t, e.Origin.X, 390.0)
			assert.LessOrEqual(t, e.Origin.Y, 844.0)
		}
	})
}

func TestStartTwiceIsNoop(t *testing.T) {
	g, _ := newGenerators(device.Desktop())
	g.Start()
	n := g.Arena().Len()
	g.Start()
	assert.Equal(t, n, g.Arena().Len())
}
