// Package ambient spawns the decorative background: static star layers,
// drifting debris, and looping starfall, shooting stars and meteors.
//
// Each loop owns its own guard and stops itself once the generators are
// stopped or restarted.
package ambient

import (
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/clock"
	"github.com/Zachkp/aurora-portfolio/internal/device"
	"github.com/Zachkp/aurora-portfolio/internal/particle"
	"github.com/Zachkp/aurora-portfolio/internal/random"
)

// Layer is one band of the static starfield.
type Layer struct {
	Count   int
	Size    float64
	Opacity float64
	Color   particle.Color
}

// Layers is the full-density starfield.
var Layers = []Layer{
	{Count: 300, Size: 1, Opacity: 0.8, Color: particle.Hex("#ffffff")},
	{Count: 200, Size: 2, Opacity: 0.6, Color: particle.Hex("#e2e8f0")},
	{Count: 150, Size: 3, Opacity: 0.4, Color: particle.Hex("#94a3b8")},
	{Count: 100, Size: 4, Opacity: 0.3, Color: particle.Hex("#6366f1")},
}

// DebrisCount is the number of drifting debris specks.
const DebrisCount = 30

var (
	starfallColors = hexes("#ffffff", "#e2e8f0", "#cbd5e1", "#FFD700", "#FFEC8B")
	shootingColors = hexes("#ffffff", "#FFD700", "#22d3ee", "#818cf8")
	meteorColor    = particle.Hex("#fde68a")
	debrisColor    = particle.Hex("#94a3b8")
)

// Viewport is the drawable area in pixels.
type Viewport struct {
	W, H float64
}

// Config wires a Generators.
type Config struct {
	Clock    clock.Clock
	Profile  device.Profile
	Rand     *rand.Rand
	Logger   *zap.Logger
	Viewport Viewport
}

// Generators owns the background arena and the loops that feed it.
type Generators struct {
	clock    clock.Clock
	profile  device.Profile
	rand     *rand.Rand
	log      *zap.Logger
	viewport Viewport
	arena    *particle.Arena

	running bool
	gen     uint64
	loops   []*clock.Repeater
}

// New returns stopped generators.
func New(cfg Config) *Generators {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Rand == nil {
		cfg.Rand = random.New(uint64(time.Now().UnixNano()))
	}
	return &Generators{
		clock:    cfg.Clock,
		profile:  cfg.Profile,
		rand:     cfg.Rand,
		log:      cfg.Logger,
		viewport: cfg.Viewport,
		arena:    particle.NewArena(0),
	}
}

// Arena exposes the background entities for rendering.
func (g *Generators) Arena() *particle.Arena { return g.arena }

// Running reports whether the generators are started.
func (g *Generators) Running() bool { return g.running }

// Start lays out the static layers and starts the loops enabled by the
// profile.
func (g *Generators) Start() {
	if g.running {
		return
	}
	g.running = true
	g.gen++
	gen := g.gen
	guard := func() bool { return g.running && g.gen == gen }

	p := g.profile
	if p.Enabled(device.Starfield) {
		g.starfield()
	}
	if p.Enabled(device.Debris) {
		g.debris()
	}
	if p.Enabled(device.Starfall) {
		g.loop(time.Second, 500*time.Millisecond, 1500*time.Millisecond, guard, g.starfall)
	}
	if p.Enabled(device.ShootingStars) {
		g.loop(1500*time.Millisecond, 2*time.Second, 5*time.Second, guard, g.shootingStars)
	}
	if p.Enabled(device.Meteors) {
		g.loop(3*time.Second, 3*time.Second, 8*time.Second, guard, g.meteors)
	}
	g.log.Debug("ambient started",
		zap.String("profile", p.Name),
		zap.Int("entities", g.arena.Len()),
		zap.Int("loops", len(g.loops)))
}

// Stop halts every loop and clears the background.
func (g *Generators) Stop() {
	g.running = false
	for _, l := range g.loops {
		l.Stop()
	}
	g.loops = nil
	g.arena.Clear()
}

// Reset re-runs setup for a new profile or viewport.
func (g *Generators) Reset(p device.Profile, v Viewport) {
	g.Stop()
	g.profile = p
	g.viewport = v
	g.Start()
}

// Frame retires finished entities.
func (g *Generators) Frame() {
	g.arena.Retire(g.clock.Now())
}

func (g *Generators) loop(first, min, max time.Duration, guard clock.Guard, fn func()) {
	next := func() time.Duration { return random.Duration(g.rand, min, max) }
	g.loops = append(g.loops, clock.Repeat(g.clock, first, next, guard, fn))
}

func (g *Generators) starfield() {
	now := g.clock.Now()
	for _, l := range Layers {
		n := int(math.Round(float64(l.Count) * g.profile.StarDensity))
		for i := 0; i < n; i++ {
			pos := particle.Vec{
				X: g.rand.Float64() * g.viewport.W,
				Y: g.rand.Float64() * g.viewport.H,
			}
			g.arena.Spawn(particle.Entity{
				Kind:      particle.Star,
				Origin:    pos,
				Target:    pos,
				Color:     l.Color,
				Size:      l.Size,
				Opacity:   math.Min(1, l.Opacity+g.rand.Float64()*0.5),
				CreatedAt: now,
				Delay:     random.Duration(g.rand, 0, 10*time.Second),
				Period:    random.Duration(g.rand, 5*time.Second, 15*time.Second),
				Motion:    particle.Still,
				Fade:      particle.Twinkle,
			})
		}
	}
}

func (g *Generators) debris() {
	now := g.clock.Now()
	for i := 0; i < DebrisCount; i++ {
		pos := particle.Vec{
			X: g.rand.Float64() * g.viewport.W,
			Y: g.rand.Float64() * g.viewport.H,
		}
		drift := particle.Vec{X: random.Float(g.rand, -100, 100), Y: random.Float(g.rand, -100, 100)}
		g.arena.Spawn(particle.Entity{
			Kind:      particle.Debris,
			Origin:    pos,
			Target:    pos.Add(drift),
			Color:     debrisColor,
			Size:      random.Float(g.rand, 1, 6),
			Opacity:   random.Float(g.rand, 0.1, 0.4),
			CreatedAt: now,
			Delay:     random.Duration(g.rand, 0, 10*time.Second),
			Period:    random.Duration(g.rand, 20*time.Second, 50*time.Second),
			Motion:    particle.Orbit,
			Fade:      particle.Solid,
		})
	}
}

func (g *Generators) starfall() {
	now := g.clock.Now()
	n := random.Int(g.rand, 2, 4)
	for i := 0; i < n; i++ {
		length := random.Float(g.rand, 100, 250)
		origin := particle.Vec{X: g.rand.Float64() * g.viewport.W, Y: -30}
		g.arena.Spawn(particle.Entity{
			Kind:      particle.Starfall,
			Origin:    origin,
			Target:    origin.Add(particle.Vec{Y: length * 2}),
			Color:     random.Pick(g.rand, starfallColors),
			Size:      1,
			Length:    length,
			Angle:     90,
			Opacity:   random.Float(g.rand, 0.3, 0.9),
			CreatedAt: now,
			Delay:     random.Duration(g.rand, 0, 2*time.Second),
			Lifetime:  random.Duration(g.rand, time.Second, 3*time.Second),
			Fade:      particle.FadeInOut,
			Easing:    particle.EaseStandard,
		})
	}
}

func (g *Generators) shootingStars() {
	now := g.clock.Now()
	n := random.Int(g.rand, 1, 2)
	for i := 0; i < n; i++ {
		angle := random.Float(g.rand, 15, 40)
		dist := random.Float(g.rand, 300, 700)
		origin := particle.Vec{X: -150, Y: random.Float(g.rand, 0.2, 0.8) * g.viewport.H}
		g.arena.Spawn(particle.Entity{
			Kind:      particle.ShootingStar,
			Origin:    origin,
			Target:    origin.Add(particle.Polar(angle*math.Pi/180, dist)),
			Color:     random.Pick(g.rand, shootingColors),
			Size:      2,
			Length:    120,
			Angle:     angle,
			Opacity:   random.Float(g.rand, 0.3, 0.9),
			CreatedAt: now,
			Lifetime:  random.Duration(g.rand, 1500*time.Millisecond, 4*time.Second),
			Fade:      particle.FadeInOut,
			Easing:    particle.EaseStandard,
		})
	}
}

func (g *Generators) meteors() {
	now := g.clock.Now()
	n := random.Int(g.rand, 1, 3)
	for i := 0; i < n; i++ {
		// Meteors enter from the top right and fall toward the lower left.
		angle := 180 - random.Float(g.rand, 30, 55)
		dist := random.Float(g.rand, 400, 900)
		origin := particle.Vec{X: random.Float(g.rand, 0.3, 1.2) * g.viewport.W, Y: -20}
		g.arena.Spawn(particle.Entity{
			Kind:      particle.Meteor,
			Origin:    origin,
			Target:    origin.Add(particle.Polar(angle*math.Pi/180, dist)),
			Color:     meteorColor,
			Size:      3,
			Length:    80,
			Angle:     angle,
			Opacity:   random.Float(g.rand, 0.4, 0.9),
			CreatedAt: now,
			Lifetime:  random.Duration(g.rand, 2*time.Second, 5*time.Second),
			Fade:      particle.FadeInOut,
			Easing:    particle.EaseStandard,
		})
	}
}

func hexes(values ...string) []particle.Color {
	out := make([]particle.Color, len(values))
	for i, v := range values {
		out[i] = particle.Hex(v)
	}
	return out
}
