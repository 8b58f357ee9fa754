package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port string `env:"PORT" envDefault:"8080" validate:"required"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	// RSA key pair for RS256 token signing. PEM, base64-encoded into a
	// single line so it survives env var transport.
	JWTPrivateKeyBase64 string `env:"JWT_PRIVATE_KEY_BASE64,required" validate:"required"`
	JWTPublicKeyBase64  string `env:"JWT_PUBLIC_KEY_BASE64,required"  validate:"required"`

	AccessTokenTTLMin int `env:"ACCESS_TOKEN_TTL_MIN" envDefault:"1440" validate:"min=1,max=10080"`
	ClockSkewSec      int `env:"CLOCK_SKEW_SEC"       envDefault:"0"    validate:"min=0,max=300"`

	// 0 means bcrypt.DefaultCost.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"0" validate:"min=0,max=31"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMin) * time.Minute
}

func (c *Config) ClockSkew() time.Duration {
	return time.Duration(c.ClockSkewSec) * time.Second
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
