package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Value is a resistance that decodes from either a YAML number or a string
// accepted by ParseValue.
type Value float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a scalar", ErrInvalidValue, node.Line)
	}
	f, err := ParseValue(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = Value(f)
	return nil
}

// File is the on-disk catalog format. JSON files are accepted as well since
// JSON is valid YAML.
//
//	name: bench
//	values: [1, 4.7k, 2M2]
type File struct {
	Name   string  `yaml:"name" json:"name"`
	Values []Value `yaml:"values" json:"values"`
}

// Read decodes a catalog from r. The document is either a File mapping or a
// bare sequence of values. The result is validated.
func Read(r io.Reader) (Catalog, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
	}

	var values []Value
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&values); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var f File
		if err := root.Decode(&f); err != nil {
			return nil, err
		}
		values = f.Values
	default:
		return nil, fmt.Errorf("%w: line %d: expected a mapping or a sequence", ErrInvalidCatalog, root.Line)
	}

	c := make(Catalog, len(values))
	for i, v := range values {
		c[i] = float64(v)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a catalog file from path.
func Load(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
