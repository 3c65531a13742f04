package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the client configuration.
type Config struct {
	LogLevel  LogLeveler `mapstructure:"LOG_LEVEL"`
	LogOutput string     `mapstructure:"LOG_OUTPUT"`
	HTTP      HTTP       `mapstructure:",squash"`
	Backend   Backend    `mapstructure:",squash"`
	Receipt   Receipt    `mapstructure:",squash"`
	Redis     Redis      `mapstructure:",squash"`
}

// HTTP configures the local session view server.
type HTTP struct {
	Port           int           `mapstructure:"HTTP_PORT"`
	Timeout        time.Duration `mapstructure:"HTTP_TIMEOUT"`
	AllowedOrigins []string      `mapstructure:"HTTP_ALLOWED_ORIGINS"`
}

// Backend points at the booking backend. Timeout and MaxRetries default to
// zero: no timeout, one attempt.
type Backend struct {
	BaseURL            string        `mapstructure:"BACKEND_BASE_URL"`
	Timeout            time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	MaxRetries         int           `mapstructure:"BACKEND_MAX_RETRIES"`
	RateLimitRPS       int           `mapstructure:"BACKEND_RATE_LIMIT"`
	PricingConcurrency int           `mapstructure:"BACKEND_PRICING_CONCURRENCY"`
}

type Receipt struct {
	Dir string `mapstructure:"RECEIPT_DIR"`
}

// Redis backs the optional backend rate limiter. Leave REDIS_ADDR empty to
// run without it.
type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

// RateLimited reports whether backend calls go through the redis limiter.
func (c Config) RateLimited() bool {
	return c.Redis.Addr != "" && c.Backend.RateLimitRPS > 0
}
