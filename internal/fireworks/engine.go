// Package fireworks runs the generative fireworks show.
//
// The engine is a two-state machine (inactive, active) scheduled entirely
// against an injected clock. Every spawn rechecks that the show that
// scheduled it is still running when it fires, so nothing outlives Stop.
package fireworks

import (
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/clock"
	"github.com/Zachkp/aurora-portfolio/internal/device"
	"github.com/Zachkp/aurora-portfolio/internal/panel"
	"github.com/Zachkp/aurora-portfolio/internal/particle"
	"github.com/Zachkp/aurora-portfolio/internal/random"
)

const (
	// RestartDelay separates a restart request from the new show.
	RestartDelay = 100 * time.Millisecond
	// BatchStagger spaces rockets within one batch.
	BatchStagger = 50 * time.Millisecond
	// BannerText is the celebratory headline shown at show start.
	BannerText = "🎉 FIREWORKS! 🎉"
	// BannerLife is how long the headline stays on screen.
	BannerLife = 2 * time.Second

	flashLife = 1500 * time.Millisecond
)

// Reason records why a show ended.
type Reason string

const (
	ReasonManual  Reason = "manual"
	ReasonTimeout Reason = "timeout"
	ReasonKey     Reason = "key"
)

var (
	rocketColors  = hexes("#FF0000", "#FF4500", "#FFD700", "#FFFF00", "#00FF00", "#00FFFF", "#0000FF")
	patternColors = hexes("#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#FF00FF")
	bannerColor   = particle.Hex("#FFD700")
	flashSize     = 8.0
)

// Sound is the audio the show starts and stops.
type Sound interface {
	Start()
	Stop()
}

// Observer is told when shows begin and end.
type Observer interface {
	ShowStarted(at time.Time)
	ShowEnded(at time.Time, reason Reason, ran time.Duration)
}

// Viewport is the drawable area in pixels.
type Viewport struct {
	W, H float64
}

// Config wires an Engine.
type Config struct {
	Clock    clock.Clock
	Profile  device.Profile
	Panels   *panel.Controller
	Sound    Sound
	Rand     *rand.Rand
	Logger   *zap.Logger
	Viewport Viewport
}

// Engine owns the show state and its particles. It is not safe for
// concurrent use; drive it from the clock's goroutine.
type Engine struct {
	clock    clock.Clock
	profile  device.Profile
	panels   *panel.Controller
	sound    Sound
	rand     *rand.Rand
	log      *zap.Logger
	viewport Viewport
	arena    *particle.Arena

	active    bool
	visual    bool
	gen       uint64
	startedAt time.Time
	remaining int
	launched  int

	plan      *clock.Plan
	ticker    *clock.Repeater
	countdown *clock.Repeater
	endTimer  clock.Timer
	dismiss   clock.Timer
	restart   clock.Timer

	observers []Observer
}

// New returns an inactive engine.
func New(cfg Config) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Rand == nil {
		cfg.Rand = random.New(uint64(time.Now().UnixNano()))
	}
	if cfg.Panels == nil {
		cfg.Panels = panel.New(cfg.Clock)
	}
	return &Engine{
		clock:    cfg.Clock,
		profile:  cfg.Profile,
		panels:   cfg.Panels,
		sound:    cfg.Sound,
		rand:     cfg.Rand,
		log:      cfg.Logger,
		viewport: cfg.Viewport,
		arena:    particle.NewArena(cfg.Profile.ParticleCap),
	}
}

// Observe registers o for show lifecycle events.
func (e *Engine) Observe(o Observer) {
	e.observers = append(e.observers, o)
}

// SetProfile swaps the tuning. A running show keeps its duration and
// schedule; spawn parameters apply immediately.
func (e *Engine) SetProfile(p device.Profile) {
	e.profile = p
	e.arena.SetCap(p.ParticleCap)
}

// SetViewport updates the drawable area used for new spawns.
func (e *Engine) SetViewport(v Viewport) {
	e.viewport = v
}

// Active reports whether a show is running.
func (e *Engine) Active() bool { return e.active }

// Visual reports whether the page-wide show styling is on.
func (e *Engine) Visual() bool { return e.visual }

// Remaining returns the countdown in whole seconds.
func (e *Engine) Remaining() int { return e.remaining }

// Launched returns the number of fireworks fired by the current or last show.
func (e *Engine) Launched() int { return e.launched }

// Arena exposes the live show entities for rendering.
func (e *Engine) Arena() *particle.Arena { return e.arena }

// Start begins a show. It reports false when one is already running.
func (e *Engine) Start() bool {
	if e.active {
		return false
	}
	e.active = true
	e.gen++
	e.startedAt = e.clock.Now()
	e.launched = 0
	e.log.Info("fireworks show starting",
		zap.String("profile", e.profile.Name),
		zap.Duration("duration", e.profile.ShowDuration))

	for _, o := range e.observers {
		o.ShowStarted(e.startedAt)
	}

	if e.dismiss != nil {
		e.dismiss.Stop()
	}
	e.panels.HideAll()
	e.visual = true
	if e.sound != nil {
		e.sound.Start()
	}
	e.panels.Show(panel.Active)
	e.startCountdown()
	if e.profile.Banner {
		e.spawnBanner()
	}
	e.launch()

	if e.endTimer != nil {
		e.endTimer.Stop()
	}
	e.endTimer = e.clock.AfterFunc(e.profile.ShowDuration, func() {
		e.Stop(ReasonTimeout)
	})
	return true
}

// Stop ends the running show. It reports false when no show is running.
func (e *Engine) Stop(reason Reason) bool {
	if !e.active {
		return false
	}
	e.active = false
	e.visual = false
	if e.sound != nil {
		e.sound.Stop()
	}
	if e.endTimer != nil {
		e.endTimer.Stop()
		e.endTimer = nil
	}
	e.plan.Cancel()
	e.ticker.Stop()
	e.countdown.Stop()

	e.panels.Hide(panel.Active)
	e.panels.Show(panel.Ended)
	if e.dismiss != nil {
		e.dismiss.Stop()
	}
	e.dismiss = e.clock.AfterFunc(e.profile.EndedDismiss, func() {
		e.dismiss = nil
		e.panels.Hide(panel.Ended)
	})
	cleared := e.arena.Clear()

	now := e.clock.Now()
	ran := now.Sub(e.startedAt)
	e.log.Info("fireworks show ended",
		zap.String("reason", string(reason)),
		zap.Duration("ran", ran),
		zap.Int("launched", e.launched),
		zap.Int("cleared", cleared))
	for _, o := range e.observers {
		o.ShowEnded(now, reason, ran)
	}
	return true
}

// Restart hides the ended panel and starts a new show after RestartDelay.
func (e *Engine) Restart() {
	e.panels.Hide(panel.Ended)
	e.StartAfter(RestartDelay)
}

// StartAfter starts a show once d has elapsed. A newer request replaces a
// pending one.
func (e *Engine) StartAfter(d time.Duration) {
	if e.restart != nil {
		e.restart.Stop()
	}
	e.restart = e.clock.AfterFunc(d, func() {
		e.restart = nil
		e.Start()
	})
}

// Frame retires finished entities. Call it once per rendered frame.
func (e *Engine) Frame() {
	e.arena.Retire(e.clock.Now())
}

// running returns a guard bound to the current show.
func (e *Engine) running() clock.Guard {
	gen := e.gen
	return func() bool { return e.active && e.gen == gen }
}

func (e *Engine) startCountdown() {
	e.remaining = int(e.profile.ShowDuration / time.Second)
	e.countdown = clock.Repeat(e.clock, time.Second, func() time.Duration { return time.Second }, e.running(), func() {
		e.remaining--
		if e.remaining <= 0 {
			e.remaining = 0
			e.countdown.Stop()
		}
	})
}

func (e *Engine) launch() {
	guard := e.running()
	e.plan = clock.NewPlan(e.clock, guard)

	next := func() time.Duration {
		return random.Duration(e.rand, e.profile.TickerMin, e.profile.TickerMax)
	}
	e.ticker = clock.Repeat(e.clock, next(), next, guard, func() {
		if e.profile.MaxFireworks > 0 && e.launched >= e.profile.MaxFireworks {
			e.ticker.Stop()
			return
		}
		if !e.profile.Rockets {
			e.firework()
			return
		}
		n := random.Int(e.rand, 2, 3)
		for i := 0; i < n; i++ {
			e.plan.After(time.Duration(i)*BatchStagger, e.firework)
		}
	})

	if !e.profile.Patterns {
		return
	}
	for _, cue := range Cues {
		pattern := cue.Pattern
		e.plan.After(cue.At, func() { e.spawnPattern(pattern) })
	}
}

// firework launches one rocket, or on profiles without rockets, bursts
// directly at a random point in the sky.
func (e *Engine) firework() {
	if !e.active {
		return
	}
	if e.profile.MaxFireworks > 0 && e.launched >= e.profile.MaxFireworks {
		return
	}
	e.launched++

	w, h := e.viewport.W, e.viewport.H
	color := random.Pick(e.rand, rocketColors)
	target := particle.Vec{
		X: random.Float(e.rand, 0.1*w, 0.9*w),
		Y: random.Float(e.rand, 0.1*h, h*random.Float(e.rand, 0.6, 0.7)),
	}
	if !e.profile.Rockets {
		e.explode(target, color)
		return
	}

	origin := particle.Vec{X: random.Float(e.rand, 0, w), Y: h}
	target.X = math.Max(0, math.Min(w, origin.X+random.Float(e.rand, -200, 200)))
	guard := e.running()
	e.arena.Spawn(particle.Entity{
		Kind:      particle.Rocket,
		Origin:    origin,
		Target:    target,
		Color:     color,
		Size:      2,
		Length:    20,
		Opacity:   1,
		CreatedAt: e.clock.Now(),
		Lifetime:  random.Duration(e.rand, 300*time.Millisecond, 600*time.Millisecond),
		Fade:      particle.FadeIn,
		Easing:    particle.EaseRocket,
		OnExpire: func(r particle.Entity) {
			if guard() {
				e.explode(r.Target, r.Color)
			}
		},
	})
}

func (e *Engine) explode(at particle.Vec, color particle.Color) {
	if !e.active {
		return
	}
	e.arena.Spawn(particle.Entity{
		Kind:      particle.Flash,
		Origin:    at,
		Target:    at,
		Color:     color,
		Size:      flashSize,
		Opacity:   1,
		CreatedAt: e.clock.Now(),
		Lifetime:  flashLife,
		Motion:    particle.Still,
		Fade:      particle.FadeOut,
	})
	n := random.Int(e.rand, e.profile.BurstMin, e.profile.BurstMax)
	for i := 0; i < n; i++ {
		e.spark(at, color)
	}
}

func (e *Engine) spark(at particle.Vec, color particle.Color) {
	if !e.active {
		return
	}
	angle := e.rand.Float64() * 2 * math.Pi
	dist := random.Float(e.rand, e.profile.SparkRangeMin, e.profile.SparkRangeMax)
	e.arena.Spawn(particle.Entity{
		Kind:      particle.Spark,
		Origin:    at,
		Target:    at.Add(particle.Polar(angle, dist)),
		Color:     color,
		Size:      random.Float(e.rand, e.profile.SparkSizeMin, e.profile.SparkSizeMax),
		Opacity:   1,
		CreatedAt: e.clock.Now(),
		Lifetime:  random.Duration(e.rand, e.profile.SparkLifeMin, e.profile.SparkLifeMax),
		Fade:      particle.FadeOut,
		Easing:    particle.EaseSpark,
	})
}

func (e *Engine) spawnPattern(p Pattern) {
	if !e.active {
		return
	}
	center := particle.Vec{X: e.viewport.W / 2, Y: e.viewport.H / 3}
	e.log.Debug("fireworks pattern", zap.String("pattern", string(p)))
	for _, pt := range p.Points() {
		e.plan.After(pt.Delay, func() {
			e.spark(center.Add(pt.Offset), patternColors[pt.Color%len(patternColors)])
		})
	}
}

func (e *Engine) spawnBanner() {
	e.arena.Spawn(particle.Entity{
		Kind:      particle.Banner,
		Label:     BannerText,
		Origin:    particle.Vec{X: e.viewport.W / 2, Y: e.viewport.H / 2},
		Target:    particle.Vec{X: e.viewport.W / 2, Y: e.viewport.H / 2},
		Color:     bannerColor,
		Size:      64,
		Opacity:   1,
		CreatedAt: e.clock.Now(),
		Lifetime:  BannerLife,
		Motion:    particle.Still,
		Fade:      particle.FadeInOut,
	})
}

func hexes(values ...string) []particle.Color {
	out := make([]particle.Color, len(values))
	for i, v := range values {
		out[i] = particle.Hex(v)
	}
	return out
}
