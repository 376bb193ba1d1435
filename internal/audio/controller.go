package audio

import (
	"go.uber.org/zap"
)

// Player is the playback surface of a looping track.
type Player interface {
	Rewind() error
	Play() error
	Pause() error
	SetVolume(level float64)
}

// Controller ties a Player to a Volume. A nil Player makes every call a
// silent no-op.
type Controller struct {
	player   Player
	volume   *Volume
	log      *zap.Logger
	playing  bool
	onChange func(level float64, icon Icon)
}

// NewController returns a controller at DefaultLevel.
func NewController(p Player, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{player: p, volume: NewVolume(), log: log}
	if p != nil {
		p.SetVolume(c.volume.Level())
	}
	return c
}

// OnChange registers fn to observe level changes.
func (c *Controller) OnChange(fn func(level float64, icon Icon)) {
	c.onChange = fn
}

// Start plays the track from the beginning. Playback failures such as an
// autoplay rejection are logged and otherwise ignored.
func (c *Controller) Start() {
	if c.player == nil {
		return
	}
	if err := c.player.Rewind(); err != nil {
		c.log.Debug("audio rewind failed", zap.Error(err))
	}
	c.player.SetVolume(c.volume.Level())
	if err := c.player.Play(); err != nil {
		c.log.Info("audio play failed", zap.Error(err))
		return
	}
	c.playing = true
}

// Stop pauses and rewinds the track.
func (c *Controller) Stop() {
	if c.player == nil {
		return
	}
	if err := c.player.Pause(); err != nil {
		c.log.Info("audio pause failed", zap.Error(err))
	}
	if err := c.player.Rewind(); err != nil {
		c.log.Debug("audio rewind failed", zap.Error(err))
	}
	c.playing = false
}

// Playing reports whether the last Start succeeded and no Stop followed.
func (c *Controller) Playing() bool { return c.playing }

// Up raises the volume one step.
func (c *Controller) Up() { c.volume.Up(); c.apply() }

// Down lowers the volume one step.
func (c *Controller) Down() { c.volume.Down(); c.apply() }

// ToggleMute switches between silence and the default level.
func (c *Controller) ToggleMute() { c.volume.ToggleMute(); c.apply() }

// Level returns the current volume level.
func (c *Controller) Level() float64 { return c.volume.Level() }

// Icon returns the glyph for the current level.
func (c *Controller) Icon() Icon { return c.volume.Icon() }

func (c *Controller) apply() {
	if c.player != nil {
		c.player.SetVolume(c.volume.Level())
	}
	if c.onChange != nil {
		c.onChange(c.volume.Level(), c.volume.Icon())
	}
}
