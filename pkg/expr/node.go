package expr

import (
	"fmt"
	"math/big"
)

// Node is the interface for all configuration tree nodes. A tree is either a
// single Leaf or a Composite joining two subtrees with an operator. Trees are
// never mutated after construction.
type Node interface {
	Eval(catalog []float64) (float64, error)
	EvalExact(catalog []float64) (*big.Rat, error)
	String() string
	LaTeX() string
	NodeCount() int
	Resistors() int
	Depth() int
}

// Op identifies how a composite combines its two children.
type Op int

const (
	OpSeries Op = iota
	OpParallel
)

// Leaf references one resistor of the catalog by index.
type Leaf struct {
	Index int
}

// Composite combines two child configurations with Op.
type Composite struct {
	Op          Op
	Left, Right Node
}

// NewLeaf returns a leaf for index, checked against a catalog of catalogLen values.
func NewLeaf(index, catalogLen int) (*Leaf, error) {
	if index < 0 || index >= catalogLen {
		return nil, fmt.Errorf("%w: index %d, catalog has %d values", ErrIndexOutOfRange, index, catalogLen)
	}
	return &Leaf{Index: index}, nil
}

// NewComposite joins left and right with op. Both children must be non-nil.
func NewComposite(op Op, left, right Node) (*Composite, error) {
	if !op.valid() {
		return nil, fmt.Errorf("%w: unknown operator %d", ErrMalformedExpression, op)
	}
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: composite requires two children", ErrMalformedExpression)
	}
	return &Composite{Op: op, Left: left, Right: right}, nil
}

func (op Op) valid() bool {
	return op == OpSeries || op == OpParallel
}
