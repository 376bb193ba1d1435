package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zachkp/aurora-portfolio/internal/particle"
)

func TestFollowerEasesTowardPointer(t *testing.T) {
	f := New(true)
	f.Move(100, 0)
	f.Frame()

	assert.InDelta(t, 15, f.Circle().X, 1e-9)
	assert.InDelta(t, 5, f.Trail().X, 1e-9)
	assert.InDelta(t, 90, f.Rotation(), 1e-9)

	for i := 0; i < 500; i++ {
		f.Frame()
	}
	assert.InDelta(t, 100, f.Circle().X, 1e-6)
	assert.InDelta(t, 100, f.Trail().X, 1e-6)
}

func TestDisabledFollowerIgnoresInput(t *testing.T) {
	f := New(false)
	f.Move(50, 50)
	f.Frame()
	assert.Equal(t, particle.Vec{}, f.Pointer())
	assert.Equal(t, particle.Vec{}, f.Circle())
}

func TestSizes(t *testing.T) {
	f := New(true)
	assert.Equal(t, 40.0, f.CircleSize())
	f.Hover(true)
	assert.Equal(t, 60.0, f.CircleSize())
	assert.Equal(t, 30.0, f.TrailSize())
	assert.Equal(t, 1.3, f.TriangleScale())
	f.Press(true)
	assert.Equal(t, 35.0, f.CircleSize())
	assert.Equal(t, 0.8, f.TriangleScale())
}
