// Package session wires the engine components for one page view and routes
// input, resizes and frame ticks to them.
package session

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/aurora-portfolio/internal/ambient"
	"github.com/Zachkp/aurora-portfolio/internal/audio"
	"github.com/Zachkp/aurora-portfolio/internal/clock"
	"github.com/Zachkp/aurora-portfolio/internal/cursor"
	"github.com/Zachkp/aurora-portfolio/internal/device"
	"github.com/Zachkp/aurora-portfolio/internal/engagement"
	"github.com/Zachkp/aurora-portfolio/internal/fireworks"
	"github.com/Zachkp/aurora-portfolio/internal/panel"
	"github.com/Zachkp/aurora-portfolio/internal/random"
	"github.com/Zachkp/aurora-portfolio/internal/typewriter"
)

// Phrases cycle in the hero headline.
var Phrases = []string{
	"Full Stack Developer",
	"GoldenSparrow",
	"Problem Solver",
	"Tech Enthusiast",
	"Creative Thinker",
}

// Active panel geometry, anchored to the bottom of the viewport.
const (
	ActivePanelHeight = 120.0
	PanelMargin       = 20.0
)

// Key is a keyboard shortcut.
type Key int

const (
	KeyEscape Key = iota
	KeySpace
	KeyUp
	KeyDown
)

// Config wires a Session.
type Config struct {
	Clock     *clock.Manual
	UserAgent string
	Width     float64
	Height    float64
	Player    audio.Player
	Rand      *rand.Rand
	Logger    *zap.Logger
	Phrases   []string
	// Profile forces a profile instead of detecting one.
	Profile *device.Profile
}

// Session is one page view. Drive every method from a single goroutine.
type Session struct {
	clock     *clock.Manual
	log       *zap.Logger
	userAgent string
	forced    bool
	width     float64
	height    float64
	profile   device.Profile

	panels   *panel.Controller
	audio    *audio.Controller
	engine   *fireworks.Engine
	counter  *engagement.Counter
	ambient  *ambient.Generators
	cursor   *cursor.Follower
	writer   *typewriter.Writer
	sections *Sections
	resize   *clock.Debouncer
}

// New builds a session. Nothing runs until Start.
func New(cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Rand == nil {
		cfg.Rand = random.New(uint64(time.Now().UnixNano()))
	}
	if cfg.Phrases == nil {
		cfg.Phrases = Phrases
	}
	profile := device.Detect(cfg.UserAgent, int(cfg.Width))
	if cfg.Profile != nil {
		profile = *cfg.Profile
	}

	s := &Session{
		clock:     cfg.Clock,
		log:       cfg.Logger,
		userAgent: cfg.UserAgent,
		forced:    cfg.Profile != nil,
		width:     cfg.Width,
		height:    cfg.Height,
		profile:   profile,
		panels:    panel.New(cfg.Clock),
		audio:     audio.NewController(cfg.Player, cfg.Logger),
		cursor:    cursor.New(profile.Cursor),
		writer:    typewriter.New(cfg.Clock, cfg.Phrases),
		sections:  NewSections(DefaultSections),
		resize:    clock.NewDebouncer(cfg.Clock, profile.ResizeDebounce),
	}
	s.engine = fireworks.New(fireworks.Config{
		Clock:    cfg.Clock,
		Profile:  profile,
		Panels:   s.panels,
		Sound:    s.audio,
		Rand:     cfg.Rand,
		Logger:   cfg.Logger.Named("fireworks"),
		Viewport: fireworks.Viewport{W: cfg.Width, H: cfg.Height},
	})
	s.counter = engagement.New(cfg.Clock, profile, s.panels, s.engine, cfg.Logger.Named("engagement"))
	s.engine.Observe(s.counter)
	s.ambient = ambient.New(ambient.Config{
		Clock:    cfg.Clock,
		Profile:  profile,
		Rand:     cfg.Rand,
		Logger:   cfg.Logger.Named("ambient"),
		Viewport: ambient.Viewport{W: cfg.Width, H: cfg.Height},
	})
	s.panels.Resize(s.layout())
	return s
}

// Start lays out the background, starts the headline and schedules the
// tutorial.
func (s *Session) Start() {
	s.ambient.Start()
	s.writer.Start()
	s.clock.AfterFunc(engagement.TutorialDelay, s.counter.OfferTutorial)
	s.log.Info("session started",
		zap.String("profile", s.profile.Name),
		zap.Float64("width", s.width),
		zap.Float64("height", s.height))
}

// Close stops every loop and any running show.
func (s *Session) Close() {
	s.engine.Stop(fireworks.ReasonManual)
	s.ambient.Stop()
	s.writer.Stop()
	s.audio.Stop()
}

// Tick advances virtual time by dt and steps per-frame state.
func (s *Session) Tick(dt time.Duration) {
	s.clock.Advance(dt)
	s.Frame()
}

// Frame retires finished entities and eases the cursor. Use it directly
// when something else advances the clock.
func (s *Session) Frame() {
	s.engine.Frame()
	s.ambient.Frame()
	s.cursor.Frame()
}

// Pointer handles a click or touch at (x, y) on target. It reports whether
// the event counted toward the show.
func (s *Session) Pointer(x, y float64, target engagement.Target) bool {
	s.cursor.Move(x, y)
	return s.counter.Pointer(target)
}

// MouseMove updates the cursor follower.
func (s *Session) MouseMove(x, y float64) {
	s.cursor.Move(x, y)
}

// Key handles a keyboard shortcut. It reports whether the key did anything.
func (s *Session) Key(k Key) bool {
	switch k {
	case KeyEscape:
		if _, ok := s.panels.Current(); !ok {
			return false
		}
		s.panels.HideAll()
		return true
	case KeySpace:
		return s.engine.Stop(fireworks.ReasonKey)
	case KeyUp, KeyDown:
		if !s.profile.SectionKeys {
			return false
		}
		if k == KeyDown {
			s.sections.Next()
		} else {
			s.sections.Prev()
		}
		return true
	}
	return false
}

// Resize records the new viewport and, once resizing settles, re-detects
// the profile and re-runs setup.
func (s *Session) Resize(w, h float64) {
	s.width, s.height = w, h
	s.resize.Trigger(s.applyResize)
}

func (s *Session) applyResize() {
	p := s.profile
	if !s.forced {
		p = device.Detect(s.userAgent, int(s.width))
	}
	if p.Name != s.profile.Name {
		s.log.Info("device profile changed", zap.String("from", s.profile.Name), zap.String("to", p.Name))
	}
	s.profile = p
	s.resize.SetWait(p.ResizeDebounce)
	s.counter.SetProfile(p)
	s.engine.SetProfile(p)
	s.engine.SetViewport(fireworks.Viewport{W: s.width, H: s.height})
	s.ambient.Reset(p, ambient.Viewport{W: s.width, H: s.height})
	s.cursor.SetEnabled(p.Cursor)
	s.panels.Resize(s.layout())
}

// Observe registers o for show lifecycle events.
func (s *Session) Observe(o fireworks.Observer) {
	s.engine.Observe(o)
}

// ProfileName names the current device profile.
func (s *Session) ProfileName() string { return s.profile.Name }

// Launched is the number of fireworks launched by the latest show.
func (s *Session) Launched() int { return s.engine.Launched() }

func (s *Session) layout() panel.Layout {
	return panel.Layout{
		ViewportHeight: s.height,
		ActiveTop:      s.height - PanelMargin - ActivePanelHeight,
	}
}

func (s *Session) Clock() *clock.Manual         { return s.clock }
func (s *Session) Profile() device.Profile      { return s.profile }
func (s *Session) Size() (w, h float64)         { return s.width, s.height }
func (s *Session) Panels() *panel.Controller    { return s.panels }
func (s *Session) Audio() *audio.Controller     { return s.audio }
func (s *Session) Engine() *fireworks.Engine    { return s.engine }
func (s *Session) Counter() *engagement.Counter { return s.counter }
func (s *Session) Ambient() *ambient.Generators { return s.ambient }
func (s *Session) Cursor() *cursor.Follower     { return s.cursor }
func (s *Session) Headline() string             { return s.writer.Text() }
func (s *Session) Sections() *Sections          { return s.sections }
