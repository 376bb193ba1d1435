package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.ImageTimeout)
	assert.Equal(t, "https://formspree.io/f/meegkrwa", cfg.RelayEndpoint)
	assert.Equal(t, []string{"images/profile_image.png", "images/profile_image.jpg"}, cfg.ProfileImages)
	assert.Equal(t, "587", cfg.SMTP.Port)
}

func TestServerOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PROFILE_IMAGES", "a.png,https://cdn.example.com/b.png")
	t.Setenv("SMTP_USER", "bot@example.com")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"a.png", "https://cdn.example.com/b.png"}, cfg.ProfileImages)
	assert.Equal(t, "bot@example.com", cfg.SMTP.User)
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("SHOWCASE_WIDTH", "wide")
	_, err := LoadShowcase()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = NewLogger("chatty")
	assert.Error(t, err)
}
