package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const developmentMode = "development"

// Config holds runtime configuration sourced from env vars.
type Config struct {
	ClientURL       string        `env:"CLIENT_URL" envDefault:"http://localhost:5173"`
	DBLocation      string        `env:"DB_LOCATION,notEmpty"`
	Port            string        `env:"PORT" envDefault:"5000"`
	SecretAccessKey string        `env:"SECRET_ACCESS_KEY,notEmpty"`
	AppEnv          string        `env:"APP_ENV" envDefault:"production"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	BcryptCost      int           `env:"BCRYPT_COST" envDefault:"10"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	cfg.Port = strings.TrimSpace(cfg.Port)
	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Development reports whether error details may be returned to clients.
func (c Config) Development() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), developmentMode)
}

// AllowedOrigins splits CLIENT_URL into normalized CORS origins.
func (c Config) AllowedOrigins() []string {
	return parseCSV(c.ClientURL)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimRight(strings.TrimSpace(part), "/")
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
