// Package config loads the terminal client's settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const appDir = "crime-report-hub"

// EmailJS identifies the relay account and template used for crime reports.
type EmailJS struct {
	ServiceID  string `env:"SERVICE_ID"`
	TemplateID string `env:"TEMPLATE_ID"`
	UserID     string `env:"USER_ID"`
	Endpoint   string `env:"ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
}

// Configured reports whether every identifier needed to send is present.
func (e EmailJS) Configured() bool {
	return e.ServiceID != "" && e.TemplateID != "" && e.UserID != ""
}

// Config holds the client runtime configuration.
type Config struct {
	ServerDomain   string        `env:"SERVER_DOMAIN" envDefault:"http://localhost:5000"`
	SessionFile    string        `env:"SESSION_FILE"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	Debug          bool          `env:"CLIENT_DEBUG"`
	EmailJS        EmailJS       `envPrefix:"EMAILJS_"`
}

// Load reads the environment, filling in the default session file location.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.ServerDomain = strings.TrimRight(strings.TrimSpace(cfg.ServerDomain), "/")
	if cfg.ServerDomain == "" {
		return Config{}, fmt.Errorf("SERVER_DOMAIN must not be empty")
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}

	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve session dir: %w", err)
		}
		cfg.SessionFile = filepath.Join(dir, appDir, "session.json")
	}
	return cfg, nil
}
