package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is wrapped by server configuration validation failures.
var ErrInvalidConfig = errors.New("server: invalid config")

var validate = validator.New()

// Config holds the HTTP server settings. MaxCandidates bounds the work of
// one search layer regardless of catalog size. MaxBodyBytes and
// MaxExpressionLength bound what a request may send.
type Config struct {
	Addr                string        `mapstructure:"addr" validate:"required"`
	MaxResistorsLimit   int           `mapstructure:"max_resistors_limit" validate:"gte=1"`
	MaxCandidates       int           `mapstructure:"max_candidates" validate:"gte=1"`
	MaxBodyBytes        int64         `mapstructure:"max_body_bytes" validate:"gte=1"`
	MaxExpressionLength int           `mapstructure:"max_expression_length" validate:"gte=1"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout" validate:"gte=0"`
	ShutdownTimeout     time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// DefaultConfig returns a config listening on :8080.
func DefaultConfig() Config {
	return Config{
		Addr:                ":8080",
		MaxResistorsLimit:   8,
		MaxCandidates:       10_000_000,
		MaxBodyBytes:        1 << 20,
		MaxExpressionLength: 4096,
		RequestTimeout:      30 * time.Second,
		ShutdownTimeout:     5 * time.Second,
	}
}

// Validate checks the struct constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
