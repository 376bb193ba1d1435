// Package theme holds the light/dark preference and its palette.
package theme

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Theme is a color scheme name.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	// Default applies when no preference was stored.
	Default = Dark
)

// Parse validates s.
func Parse(s string) (Theme, error) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Palette returns the CSS custom properties for t.
func (t Theme) Palette() map[string]string {
	if t == Light {
		return map[string]string{
			"--cosmic-dark":    "#ffffff",
			"--cosmic-darker":  "#f8fafc",
			"--cosmic-light":   "#f1f5f9",
			"--cosmic-lighter": "#e2e8f0",
			"--text-primary":   "#1e293b",
			"--text-secondary": "#475569",
			"--text-muted":     "#64748b",
			"--glass-bg":       "rgba(255, 255, 255, 0.1)",
			"--glass-border":   "rgba(0, 0, 0, 0.1)",
		}
	}
	return map[string]string{
		"--cosmic-dark":    "#050511",
		"--cosmic-darker":  "#020208",
		"--cosmic-light":   "#0a0a1a",
		"--cosmic-lighter": "#11112e",
		"--text-primary":   "#ffffff",
		"--text-secondary": "#e2e8f0",
		"--text-muted":     "#94a3b8",
		"--glass-bg":       "rgba(255, 255, 255, 0.05)",
		"--glass-border":   "rgba(255, 255, 255, 0.1)",
	}
}

// Store persists one theme per visitor key.
type Store interface {
	Theme(ctx context.Context, key string) (Theme, bool, error)
	SetTheme(ctx context.Context, key string, t Theme) error
}

// Preference reads and writes themes through a Store.
type Preference struct {
	store Store
	log   *zap.Logger
}

// NewPreference returns a preference backed by store.
func NewPreference(store Store, log *zap.Logger) *Preference {
	if log == nil {
		log = zap.NewNop()
	}
	return &Preference{store: store, log: log}
}

// Load returns the stored theme for key, or Default when none is stored or
// the store fails.
func (p *Preference) Load(ctx context.Context, key string) Theme {
	t, ok, err := p.store.Theme(ctx, key)
	if err != nil {
		p.log.Warn("load theme", zap.Error(err))
		return Default
	}
	if !ok {
		return Default
	}
	return t
}

// Set stores t for key.
func (p *Preference) Set(ctx context.Context, key string, t Theme) error {
	if err := p.store.SetTheme(ctx, key, t); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// Toggle flips and stores the theme for key.
func (p *Preference) Toggle(ctx context.Context, key string) (Theme, error) {
	next := p.Load(ctx, key).Toggle()
	if err := p.Set(ctx, key, next); err != nil {
		return "", err
	}
	return next, nil
}
