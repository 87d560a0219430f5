package search

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wildfunctions/equivalent_resistance/pkg/catalog"
)

type targetKind int

const (
	kindValue targetKind = iota
	kindMaximize
	kindMinimize
)

// Target is what a search aims for: a specific resistance, the largest
// achievable resistance, or the smallest. The zero Target is Value(0).
type Target struct {
	kind  targetKind
	value float64
}

// Value targets resistance r.
func Value(r float64) Target { return Target{kind: kindValue, value: r} }

// Maximize targets the largest achievable resistance.
func Maximize() Target { return Target{kind: kindMaximize} }

// Minimize targets the smallest achievable resistance.
func Minimize() Target { return Target{kind: kindMinimize} }

// IsMaximize reports whether t is the maximize variant.
func (t Target) IsMaximize() bool { return t.kind == kindMaximize }

// IsMinimize reports whether t is the minimize variant.
func (t Target) IsMinimize() bool { return t.kind == kindMinimize }

// Resistance returns the targeted value. Minimize targets zero; Maximize
// returns +Inf.
func (t Target) Resistance() float64 {
	switch t.kind {
	case kindMaximize:
		return math.Inf(1)
	case kindMinimize:
		return 0
	default:
		return t.value
	}
}

// Validate rejects value targets that are negative, NaN or infinite, the
// same values ParseTarget refuses.
func (t Target) Validate() error {
	if t.kind == kindValue && (math.IsNaN(t.value) || math.IsInf(t.value, 0) || t.value < 0) {
		return fmt.Errorf("%w: %g is not a finite non-negative resistance", ErrInvalidTarget, t.value)
	}
	return nil
}

// errorOf is the distance between value and a non-maximize target.
func (t Target) errorOf(value float64) float64 {
	return math.Abs(value - t.Resistance())
}

func (t Target) String() string {
	switch t.kind {
	case kindMaximize:
		return "max"
	case kindMinimize:
		return "min"
	default:
		return strconv.FormatFloat(t.value, 'g', -1, 64)
	}
}

// ParseTarget accepts "max", "maximize" or "inf" for Maximize, "min" or
// "minimize" for Minimize, and otherwise a resistance understood by
// catalog.ParseValue.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximize", "inf", "+inf":
		return Maximize(), nil
	case "min", "minimize":
		return Minimize(), nil
	}
	v, err := catalog.ParseValue(s)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}
	return Value(v), nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Target) UnmarshalText(text []byte) error {
	parsed, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON writes value targets as numbers and the variants as strings.
func (t Target) MarshalJSON() ([]byte, error) {
	if t.kind == kindValue {
		return json.Marshal(t.value)
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts a number or any string ParseTarget understands.
func (t *Target) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return t.UnmarshalText([]byte(s))
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, data)
	}
	*t = Value(v)
	return t.Validate()
}
