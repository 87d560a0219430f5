package expr

import (
	"fmt"
	"math"
	"math/big"
)

// EvalExact for Leaf converts the catalog value to an exact rational.
func (l *Leaf) EvalExact(catalog []float64) (*big.Rat, error) {
	v, err := l.Eval(catalog)
	if err != nil {
		return nil, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, fmt.Errorf("%w: catalog value %g at index %d is not finite", ErrMalformedExpression, v, l.Index)
	}
	return new(big.Rat).SetFloat64(v), nil
}

// EvalExact for Composite applies the series/parallel algebra without rounding.
// Parallel is computed as ab/(a+b), which equals 1/(1/a+1/b) for nonzero operands.
func (c *Composite) EvalExact(catalog []float64) (*big.Rat, error) {
	left, err := c.Left.EvalExact(catalog)
	if err != nil {
		return nil, err
	}
	right, err := c.Right.EvalExact(catalog)
	if err != nil {
		return nil, err
	}

	switch c.Op {
	case OpSeries:
		return new(big.Rat).Add(left, right), nil
	case OpParallel:
		if left.Sign() == 0 || right.Sign() == 0 {
			return nil, fmt.Errorf("%w: %s // %s", ErrDivisionByZero, left.RatString(), right.RatString())
		}
		sum := new(big.Rat).Add(left, right)
		if sum.Sign() == 0 {
			return nil, fmt.Errorf("%w: operands %s and %s cancel", ErrDivisionByZero, left.RatString(), right.RatString())
		}
		prod := new(big.Rat).Mul(left, right)
		return prod.Quo(prod, sum), nil
	default:
		return nil, fmt.Errorf("%w: unknown operator %d", ErrMalformedExpression, c.Op)
	}
}

// EvaluateExact decodes scf and reduces it over exact rationals.
func EvaluateExact(scf string, catalog []float64) (*big.Rat, error) {
	node, err := Parse(scf)
	if err != nil {
		return nil, err
	}
	return node.EvalExact(catalog)
}
