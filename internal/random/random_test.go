package random

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRanges(t *testing.T) {
	r := New(42)
	for i := 0; i < 1000; i++ {
		f := Float(r, 1.5, 5)
		assert.GreaterOrEqual(t, f, 1.5)
		assert.Less(t, f, 5.0)

		n := Int(r, 2, 3)
		assert.Contains(t, []int{2, 3}, n)

		d := Duration(r, 300*time.Millisecond, 500*time.Millisecond)
		assert.GreaterOrEqual(t, d, 300*time.Millisecond)
		assert.Less(t, d, 500*time.Millisecond)
	}
}

func TestDegenerateRanges(t *testing.T) {
	r := New(1)
	assert.Equal(t, 4.0, Float(r, 4, 4))
	assert.Equal(t, 7, Int(r, 7, 3))
	assert.Equal(t, time.Second, Duration(r, time.Second, time.Second))
}

func TestSameSeedSameSequence(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}
