package audio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestVolumeClamps(t *testing.T) {
	v := NewVolume()
	for i := 0; i < 9; i++ {
		v.Up()
	}
	assert.Equal(t, 1.0, v.Level())

	v = NewVolume()
	for i := 0; i < 6; i++ {
		v.Down()
	}
	assert.Equal(t, 0.0, v.Level())
}

func TestVolumeStepsStayOnTenths(t *testing.T) {
	v := NewVolume()
	assert.Equal(t, 0.4, v.Up())
	assert.Equal(t, 0.5, v.Up())
	assert.Equal(t, 0.4, v.Down())
}

func TestToggleMuteRestoresDefault(t *testing.T) {
	v := NewVolume()
	v.Up()
	v.Up()
	v.Up()
	assert.Equal(t, 0.6, v.Level())

	assert.Equal(t, 0.0, v.ToggleMute())
	assert.True(t, v.Muted())
	assert.Equal(t, DefaultLevel, v.ToggleMute())
}

func TestIconFor(t *testing.T) {
	assert.Equal(t, IconMuted, IconFor(0))
	assert.Equal(t, IconLow, IconFor(0.1))
	assert.Equal(t, IconLow, IconFor(0.5))
	assert.Equal(t, IconHigh, IconFor(0.6))
	assert.Equal(t, IconHigh, IconFor(1))
}

type fakePlayer struct {
	playErr error
	volume  float64
	plays   int
	pauses  int
	rewinds int
}

func (f *fakePlayer) Rewind() error          { f.rewinds++; return nil }
func (f *fakePlayer) Play() error            { f.plays++; return f.playErr }
func (f *fakePlayer) Pause() error           { f.pauses++; return nil }
func (f *fakePlayer) SetVolume(level float64) { f.volume = level }

func TestControllerStartStop(t *testing.T) {
	p := &fakePlayer{}
	c := NewController(p, zap.NewNop())
	assert.Equal(t, DefaultLevel, p.volume)

	c.Start()
	assert.True(t, c.Playing())
	assert.Equal(t, 1, p.plays)
	assert.Equal(t, 1, p.rewinds)

	c.Stop()
	assert.False(t, c.Playing())
	assert.Equal(t, 1, p.pauses)
	assert.Equal(t, 2, p.rewinds)
}

func TestControllerSwallowsAutoplayRejection(t *testing.T) {
	p := &fakePlayer{playErr: errors.New("NotAllowedError")}
	c := NewController(p, nil)
	assert.NotPanics(t, c.Start)
	assert.False(t, c.Playing())
}

func TestControllerWithoutPlayer(t *testing.T) {
	c := NewController(nil, nil)
	c.Start()
	c.Up()
	c.Stop()
	assert.Equal(t, 0.4, c.Level())
}

func TestControllerPushesVolume(t *testing.T) {
	p := &fakePlayer{}
	c := NewController(p, nil)
	var icons []Icon
	c.OnChange(func(_ float64, icon Icon) { icons = append(icons, icon) })

	c.Up()
	c.Up()
	c.Up()
	c.ToggleMute()
	assert.Equal(t, 0.0, p.volume)
	assert.Equal(t, []Icon{IconLow, IconLow, IconHigh, IconMuted}, icons)
}
