package expr

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	catalog := []float64{1, 2.2, 4.7, 10, 33}

	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(12)
		tree := Random(rng, len(catalog), n)
		assert.Equal(t, n, tree.Resistors())
		assert.Equal(t, 2*n-1, tree.NodeCount())

		parsed, err := Decode(tree.String(), len(catalog))
		require.NoError(t, err, tree.String())
		assert.Equal(t, tree.String(), parsed.String())

		v, err := tree.Eval(catalog)
		require.NoError(t, err)
		exact, err := tree.EvalExact(catalog)
		require.NoError(t, err)
		f, _ := exact.Float64()
		assert.InEpsilon(t, f, v, 1e-12, tree.String())
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := series(leaf(0), parallel(leaf(1), leaf(2)))
	cp := Clone(orig).(*Composite)
	cp.Right.(*Composite).Op = OpSeries
	cp.Left.(*Leaf).Index = 7

	assert.Equal(t, "(0)+((1)//(2))", orig.String())
	assert.Equal(t, "(7)+((1)+(2))", cp.String())
}

func TestMutateLeavesInputUnchanged(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	orig := Random(rng, 4, 6)
	text := orig.String()

	changed := 0
	for i := 0; i < 100; i++ {
		m := Mutate(orig, 4, rng)
		assert.Equal(t, text, orig.String())

		_, err := Decode(m.String(), 4)
		require.NoError(t, err)
		assert.LessOrEqual(t, m.Resistors(), 7)
		if m.String() != text {
			changed++
		}
	}
	assert.Greater(t, changed, 30)
}
