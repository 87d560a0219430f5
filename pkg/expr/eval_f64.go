package expr

import (
	"fmt"
)

// Series returns the resistance of a and b connected end to end.
func Series(a, b float64) float64 {
	return a + b
}

// Parallel returns the resistance of a and b connected side by side.
// Callers must rule out zero operands; see Op.Apply.
func Parallel(a, b float64) float64 {
	return 1 / (1/a + 1/b)
}

// Apply combines a and b with op.
func (op Op) Apply(a, b float64) (float64, error) {
	switch op {
	case OpSeries:
		return Series(a, b), nil
	case OpParallel:
		if a == 0 || b == 0 {
			return 0, fmt.Errorf("%w: %g // %g", ErrDivisionByZero, a, b)
		}
		return Parallel(a, b), nil
	default:
		return 0, fmt.Errorf("%w: unknown operator %d", ErrMalformedExpression, op)
	}
}

// Eval for Leaf looks the resistance up in the catalog.
func (l *Leaf) Eval(catalog []float64) (float64, error) {
	if l.Index < 0 || l.Index >= len(catalog) {
		return 0, fmt.Errorf("%w: index %d, catalog has %d values", ErrIndexOutOfRange, l.Index, len(catalog))
	}
	return catalog[l.Index], nil
}

// Eval for Composite reduces both children and combines them.
func (c *Composite) Eval(catalog []float64) (float64, error) {
	left, err := c.Left.Eval(catalog)
	if err != nil {
		return 0, err
	}
	right, err := c.Right.Eval(catalog)
	if err != nil {
		return 0, err
	}
	return c.Op.Apply(left, right)
}

// Evaluate decodes scf against catalog and reduces it to a resistance.
func Evaluate(scf string, catalog []float64) (float64, error) {
	node, err := Parse(scf)
	if err != nil {
		return 0, err
	}
	return node.Eval(catalog)
}
