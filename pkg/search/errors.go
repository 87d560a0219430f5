package search

import (
	"errors"

	"github.com/wildfunctions/equivalent_resistance/pkg/catalog"
)

var (
	// ErrInvalidCatalog indicates an empty catalog or one with non-positive values.
	ErrInvalidCatalog = catalog.ErrInvalidCatalog
	// ErrInvalidBudget indicates a resistor budget below one.
	ErrInvalidBudget = errors.New("search: resistor budget must be at least 1")
	// ErrInvalidTarget indicates a target that is not a finite resistance.
	ErrInvalidTarget = errors.New("search: invalid target")
	// ErrUnknownStrategy indicates a name with no registered strategy.
	ErrUnknownStrategy = errors.New("search: unknown strategy")
	// ErrTooManyCandidates indicates a layer that would examine more
	// combinations than the searcher's candidate limit.
	ErrTooManyCandidates = errors.New("search: layer exceeds candidate limit")
)
