package catalog

import "errors"

var (
	// ErrInvalidCatalog indicates an empty catalog or one with non-positive values.
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")
	// ErrInvalidValue indicates resistance text that cannot be parsed.
	ErrInvalidValue = errors.New("catalog: invalid resistance value")
	// ErrUnknownCatalog indicates a name with no registered catalog.
	ErrUnknownCatalog = errors.New("catalog: unknown catalog")
)
