package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsMobile(t *testing.T) {
	tests := []struct {
		name  string
		agent string
		width int
		want  bool
	}{
		{name: "desktop chrome", agent: "Mozilla/5.0 (X11; Linux x86_64) Chrome/126.0", width: 1440, want: false},
		{name: "iphone", agent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", width: 1440, want: true},
		{name: "android lowercase", agent: "mozilla/5.0 (linux; android 14)", width: 0, want: true},
		{name: "narrow desktop", agent: "Mozilla/5.0 (Windows NT 10.0)", width: 768, want: true},
		{name: "just wide enough", agent: "Mozilla/5.0 (Windows NT 10.0)", width: 769, want: false},
		{name: "unknown width", agent: "curl/8.0", width: 0, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMobile(tt.agent, tt.width))
		})
	}
}

func TestProfiles(t *testing.T) {
	d := Desktop()
	assert.Equal(t, 10, d.Threshold)
	assert.Equal(t, 100*time.Millisecond, d.Debounce)
	assert.Equal(t, 2*time.Second, d.ResetWindow)
	assert.Equal(t, 90*time.Second, d.ShowDuration)
	assert.True(t, d.Enabled(Debris))
	assert.True(t, d.Cursor)

	m := Mobile()
	assert.Equal(t, 3, m.Threshold)
	assert.Equal(t, 150*time.Millisecond, m.Debounce)
	assert.Equal(t, 2500*time.Millisecond, m.ResetWindow)
	assert.Equal(t, 45*time.Second, m.ShowDuration)
	assert.Equal(t, 30, m.MaxFireworks)
	assert.False(t, m.Enabled(Debris))
	assert.False(t, m.Rockets || m.Patterns || m.Banner || m.Cursor)

	assert.Equal(t, m, Detect("iPad", 1024))
	assert.Equal(t, d, Detect("", 1920))
}
