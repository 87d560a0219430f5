package catalog

import (
	"fmt"
	"math"
	"sort"
)

// Catalog is an ordered list of base resistor values. Indices are the leaf
// indices used in SCF text. Duplicate values are allowed.
type Catalog []float64

// Validate reports ErrInvalidCatalog if the catalog is empty or holds a value
// that is not a finite positive resistance.
func (c Catalog) Validate() error {
	return c.check(false)
}

// ValidateForEval is Validate with zero values allowed. A zero-valued
// resistor can still be evaluated in series; in parallel it is a division
// by zero reported by the evaluator.
func (c Catalog) ValidateForEval() error {
	return c.check(true)
}

func (c Catalog) check(allowZero bool) error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no values", ErrInvalidCatalog)
	}
	for i, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || (v == 0 && !allowZero) {
			return fmt.Errorf("%w: value %g at index %d is not a positive resistance", ErrInvalidCatalog, v, i)
		}
	}
	return nil
}

// Clone returns a copy that does not share storage with c.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	copy(out, c)
	return out
}

var registry = map[string]func() Catalog{}

// Register adds a catalog constructor to the registry.
func Register(name string, constructor func() Catalog) {
	registry[name] = constructor
}

// Get returns a fresh copy of the named catalog.
func Get(name string) (Catalog, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownCatalog, name, Names())
	}
	return ctor(), nil
}

// Names returns all registered catalog names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
