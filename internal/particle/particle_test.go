package particle

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestArenaMonotonicIDs(t *testing.T) {
	a := NewArena(0)
	id1, ok := a.Spawn(Entity{Lifetime: time.Second, CreatedAt: t0})
	require.True(t, ok)
	id2, _ := a.Spawn(Entity{Lifetime: time.Second, CreatedAt: t0})
	a.Clear()
	id3, _ := a.Spawn(Entity{Lifetime: time.Second, CreatedAt: t0})

	assert.Less(t, id1, id2)
	assert.Less(t, id2, id3)
	assert.Equal(t, 1, a.Len())
}

func TestArenaCap(t *testing.T) {
	a := NewArena(2)
	_, ok := a.Spawn(Entity{})
	assert.True(t, ok)
	_, ok = a.Spawn(Entity{})
	assert.True(t, ok)
	_, ok = a.Spawn(Entity{})
	assert.False(t, ok)
	assert.Equal(t, 2, a.Len())
}

func TestRetireRunsCallbacksAfterRemoval(t *testing.T) {
	a := NewArena(0)
	var seen []Kind
	a.Spawn(Entity{Kind: Rocket, CreatedAt: t0, Lifetime: 500 * time.Millisecond, OnExpire: func(e Entity) {
		seen = append(seen, e.Kind)
		a.Spawn(Entity{Kind: Spark, CreatedAt: t0.Add(500 * time.Millisecond), Lifetime: time.Second})
	}})
	a.Spawn(Entity{Kind: Star, CreatedAt: t0})

	assert.Zero(t, a.Retire(t0.Add(499*time.Millisecond)))
	assert.Equal(t, 1, a.Retire(t0.Add(500*time.Millisecond)))
	assert.Equal(t, []Kind{Rocket}, seen)
	assert.Equal(t, 1, a.Count(Spark))
	assert.Equal(t, 1, a.Count(Star))

	a.Retire(t0.Add(time.Hour))
	assert.Equal(t, 1, a.Len(), "entities without a lifetime stay until cleared")
}

func TestClearSkipsCallbacks(t *testing.T) {
	a := NewArena(0)
	called := false
	a.Spawn(Entity{CreatedAt: t0, Lifetime: time.Millisecond, OnExpire: func(Entity) { called = true }})
	assert.Equal(t, 1, a.Clear())
	a.Retire(t0.Add(time.Second))
	assert.False(t, called)
}

func TestTweenPositionAndFade(t *testing.T) {
	e := Entity{
		Origin:    Vec{0, 0},
		Target:    Vec{100, -200},
		CreatedAt: t0,
		Lifetime:  time.Second,
		Opacity:   1,
		Fade:      FadeOut,
	}
	mid := t0.Add(500 * time.Millisecond)
	assert.Equal(t, Vec{50, -100}, e.Position(mid))
	assert.InDelta(t, 0.5, e.Alpha(mid), 1e-9)
	assert.Equal(t, Vec{100, -200}, e.Position(t0.Add(2*time.Second)))
	assert.True(t, e.Expired(t0.Add(time.Second)))
}

func TestDelayHoldsEntity(t *testing.T) {
	e := Entity{CreatedAt: t0, Delay: time.Second, Lifetime: time.Second, Opacity: 1, Fade: FadeInOut}
	assert.Zero(t, e.Alpha(t0.Add(500*time.Millisecond)))
	assert.InDelta(t, 1, e.Alpha(t0.Add(1500*time.Millisecond)), 1e-9)
	assert.False(t, e.Expired(t0.Add(1999*time.Millisecond)))
	assert.True(t, e.Expired(t0.Add(2*time.Second)))
}

func TestOrbitReturnsToOrigin(t *testing.T) {
	e := Entity{Origin: Vec{10, 10}, Target: Vec{110, 10}, CreatedAt: t0, Period: 4 * time.Second, Motion: Orbit}
	assert.InDelta(t, 10, e.Position(t0).X, 1e-9)
	assert.InDelta(t, 110, e.Position(t0.Add(2*time.Second)).X, 1e-9)
	assert.InDelta(t, 10, e.Position(t0.Add(4*time.Second)).X, 1e-9)
}

func TestCubicBezier(t *testing.T) {
	linear := CubicBezier(0, 0, 1, 1)
	for _, x := range []float64{0, 0.1, 0.5, 0.9, 1} {
		assert.InDelta(t, x, linear(x), 1e-4)
	}
	for x := 0.05; x < 1; x += 0.05 {
		y := EaseRocket(x)
		assert.False(t, math.IsNaN(y))
		assert.Greater(t, y, x, "rocket curve front-loads motion at %v", x)
	}
	assert.Equal(t, 0.0, EaseSpark(-1))
	assert.Equal(t, 1.0, EaseSpark(2))
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#FFD700")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0xff, G: 0xd7, B: 0x00}, c)

	_, err = ParseHex("#fff")
	assert.Error(t, err)
	_, err = ParseHex("zzzzzz")
	assert.Error(t, err)
}
