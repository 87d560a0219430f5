package engine

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"

	"github.com/wildfunctions/equivalent_resistance/pkg/search"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("engine: invalid config")

var validate = validator.New()

// Config holds all parameters for an approximation run. The catalog comes
// from Values if set, else from CatalogFile, else from the registered
// catalog named Catalog. MaxCandidates caps the combinations one search
// layer may examine, with 0 meaning no cap.
type Config struct {
	Catalog       string    `mapstructure:"catalog" json:"catalog,omitempty" validate:"required_without_all=CatalogFile Values"`
	CatalogFile   string    `mapstructure:"catalog_file" json:"catalog_file,omitempty"`
	Values        []float64 `mapstructure:"values" json:"values,omitempty" validate:"omitempty,dive,gte=0"`
	Target        string    `mapstructure:"target" json:"target"`
	MaxResistors  int       `mapstructure:"max_resistors" json:"max_resistors" validate:"gte=1"`
	Strategy      string    `mapstructure:"strategy" json:"strategy" validate:"required"`
	Workers       int       `mapstructure:"workers" json:"workers" validate:"gte=0"`
	Format        string    `mapstructure:"format" json:"format" validate:"oneof=text json latex"`
	MaxCandidates int       `mapstructure:"max_candidates" json:"max_candidates,omitempty" validate:"gte=0"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Catalog:      "e12",
		Target:       "1k",
		MaxResistors: 3,
		Strategy:     search.DefaultStrategy,
		Workers:      runtime.NumCPU(),
		Format:       "text",
	}
}

// Validate checks struct constraints and that the strategy is registered.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := search.Get(c.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
