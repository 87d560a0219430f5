package search

import (
	"fmt"
	"sort"
)

// Split names the two source layers combined into a new layer: every entry
// of layer Left is paired with every entry of layer Right.
type Split struct {
	Left, Right int
}

// Strategy decides which lower layers are combined to build each layer.
// Splits must reference layers below n whose resistor counts sum to n, and
// must be returned in the order they are combined.
type Strategy interface {
	Name() string
	Splits(n int) []Split
}

var registry = map[string]func() Strategy{}

// Register adds a strategy constructor to the registry.
func Register(name string, constructor func() Strategy) {
	registry[name] = constructor
}

// Get returns a strategy by name.
func Get(name string) (Strategy, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownStrategy, name, Names())
	}
	return ctor(), nil
}

// Names returns all registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
