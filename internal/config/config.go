// Package config loads server and showcase settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// SMTP holds optional mail relay credentials.
type SMTP struct {
	Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"SMTP_PORT" envDefault:"587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
}

// Server configures the portfolio web server.
type Server struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	DatabasePath  string        `env:"DATABASE_PATH" envDefault:"portfolio.db"`
	StaticDir     string        `env:"STATIC_DIR" envDefault:"./static"`
	ImagesDir     string        `env:"IMAGES_DIR" envDefault:"./images"`
	ProfileImages []string      `env:"PROFILE_IMAGES" envSeparator:"," envDefault:"images/profile_image.png,images/profile_image.jpg"`
	ImageTimeout  time.Duration `env:"IMAGE_TIMEOUT" envDefault:"2s"`
	RelayEndpoint string        `env:"FORMSPREE_ENDPOINT" envDefault:"https://formspree.io/f/meegkrwa"`
	Inbox         string        `env:"TO_EMAIL" envDefault:"zach@zachkp.dev"`
	AdminUser     string        `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPass     string        `env:"ADMIN_PASSWORD" envDefault:"admin123"`
	HashSalt      string        `env:"VISITOR_SALT" envDefault:"aurora"`
	Retention     time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	SMTP          SMTP
}

// Showcase configures the desktop renderer. Flags override these.
type Showcase struct {
	Width     int    `env:"SHOWCASE_WIDTH" envDefault:"1280"`
	Height    int    `env:"SHOWCASE_HEIGHT" envDefault:"800"`
	Audio     string `env:"SHOWCASE_AUDIO" envDefault:"audio/fireworks.mp3"`
	ReportURL string `env:"SHOWCASE_REPORT_URL"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadServer parses Server from the environment.
func LoadServer() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// LoadShowcase parses Showcase from the environment.
func LoadShowcase() (Showcase, error) {
	var cfg Showcase
	if err := ParseEnv(&cfg); err != nil {
		return Showcase{}, err
	}
	return cfg, nil
}

// NewLogger builds a production zap logger at the named level.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
