package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"8080"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	SessionSecret string        `env:"SESSION_SECRET,required" validate:"required,min=32"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"30m"   validate:"min=1m"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`
	BcryptCost    int           `env:"BCRYPT_COST"    envDefault:"10"    validate:"min=4,max=31"`

	// Empty means in-memory storage.
	DatabaseURL string `env:"DATABASE_URL"`
	SeedDemo    bool   `env:"SEED_DEMO" envDefault:"false"`

	ResendAPIKey  string `env:"RESEND_API_KEY"  validate:"required_if=Env production,required_if=Env staging"`
	EmailFrom     string `env:"EMAIL_FROM"      validate:"required_if=Env production,required_if=Env staging"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080" validate:"url"`
}

// Load reads an optional .env file, then the process environment.
// Variables already set in the environment win over .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
