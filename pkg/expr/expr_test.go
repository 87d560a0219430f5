package expr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(i int) Node { return &Leaf{Index: i} }

func series(l, r Node) Node { return &Composite{Op: OpSeries, Left: l, Right: r} }

func parallel(l, r Node) Node { return &Composite{Op: OpParallel, Left: l, Right: r} }

// piTree is ((0+0)+((0+0)//((0+0)+(0//(0+0))))) over a unit catalog, 22/7.
func piTree() Node {
	two := func() Node { return series(leaf(0), leaf(0)) }
	inner := series(two(), parallel(leaf(0), two()))
	return series(two(), parallel(two(), inner))
}

func TestLeafString(t *testing.T) {
	assert.Equal(t, "0", leaf(0).String())
	assert.Equal(t, "17", leaf(17).String())
}

func TestCompositeString(t *testing.T) {
	tree := series(parallel(leaf(0), leaf(4)), parallel(leaf(3), leaf(2)))
	assert.Equal(t, "((0)//(4))+((3)//(2))", tree.String())

	assert.Equal(t, "(0)+(1)", series(leaf(0), leaf(1)).String())
	assert.Equal(t, "(0)//(1)", parallel(leaf(0), leaf(1)).String())
}

func TestCounts(t *testing.T) {
	tree := piTree()
	assert.Equal(t, 9, tree.Resistors())
	assert.Equal(t, 17, tree.NodeCount())
	assert.Equal(t, 6, tree.Depth())

	l := leaf(3)
	assert.Equal(t, 1, l.Resistors())
	assert.Equal(t, 1, l.NodeCount())
	assert.Equal(t, 1, l.Depth())
}

func TestConstructors(t *testing.T) {
	l, err := NewLeaf(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Index)

	_, err = NewLeaf(3, 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = NewLeaf(-1, 3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	c, err := NewComposite(OpParallel, leaf(0), leaf(1))
	require.NoError(t, err)
	assert.Equal(t, "(0)//(1)", c.String())

	_, err = NewComposite(OpSeries, leaf(0), nil)
	assert.ErrorIs(t, err, ErrMalformedExpression)
	_, err = NewComposite(Op(7), leaf(0), leaf(1))
	assert.ErrorIs(t, err, ErrMalformedExpression)
}

func TestEval(t *testing.T) {
	catalog := []float64{1, 2, 3}

	v, err := series(leaf(0), leaf(2)).Eval(catalog)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	v, err = parallel(leaf(1), leaf(1)).Eval(catalog)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = parallel(leaf(0), leaf(1)).Eval(catalog)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, v, 1e-15)
}

func TestEvalIndexOutOfRange(t *testing.T) {
	_, err := series(leaf(0), leaf(5)).Eval([]float64{1, 2})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Evaluate("3", []float64{1, 2})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestEvalDivisionByZero(t *testing.T) {
	_, err := Evaluate("(0)//(1)", []float64{0, 5})
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = EvaluateExact("(1)//(0)", []float64{0, 5})
	assert.ErrorIs(t, err, ErrDivisionByZero)

	// Series with a zero operand is fine.
	v, err := Evaluate("(0)+(1)", []float64{0, 5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestEvalExact(t *testing.T) {
	got, err := piTree().EvalExact([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, "22/7", got.RatString())

	f, err := piTree().Eval([]float64{1})
	require.NoError(t, err)
	exact, _ := big.NewRat(22, 7).Float64()
	assert.InDelta(t, exact, f, 1e-12)
}

func TestLaTeX(t *testing.T) {
	assert.Equal(t, "R_{0}", leaf(0).LaTeX())
	assert.Equal(t, "R_{0} + R_{1}", series(leaf(0), leaf(1)).LaTeX())
	assert.Equal(t, "R_{0} \\parallel \\left(R_{1} + R_{2}\\right)",
		parallel(leaf(0), series(leaf(1), leaf(2))).LaTeX())
}

func TestOpApply(t *testing.T) {
	v, err := OpSeries.Apply(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	v, err = OpParallel.Apply(3, 6)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-15)

	_, err = Op(9).Apply(1, 1)
	assert.ErrorIs(t, err, ErrMalformedExpression)

	assert.Equal(t, "series", OpSeries.String())
	assert.Equal(t, "parallel", OpParallel.String())
}
