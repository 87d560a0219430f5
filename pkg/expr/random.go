package expr

import "math/rand"

// Random returns a random configuration with exactly resistors leaves
// drawn from indices 0..catalogLen-1. It panics if either argument is
// below 1.
func Random(rng *rand.Rand, catalogLen, resistors int) Node {
	if resistors == 1 {
		return &Leaf{Index: rng.Intn(catalogLen)}
	}
	k := 1 + rng.Intn(resistors-1)
	return &Composite{
		Op:    Op(rng.Intn(2)),
		Left:  Random(rng, catalogLen, k),
		Right: Random(rng, catalogLen, resistors-k),
	}
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch v := n.(type) {
	case *Leaf:
		return &Leaf{Index: v.Index}
	case *Composite:
		return &Composite{Op: v.Op, Left: Clone(v.Left), Right: Clone(v.Right)}
	default:
		return n
	}
}

// MutationType identifies a kind of mutation.
type MutationType int

const (
	MutPoint   MutationType = iota // flip an operator or re-pick a leaf index
	MutSubtree                     // replace a subtree with a random one of the same size
	MutShrink                      // replace a composite with one of its children
	MutGrow                        // combine a leaf with a new random leaf
)

// Mutate returns a mutated copy of root; root itself is not modified.
func Mutate(root Node, catalogLen int, rng *rand.Rand) Node {
	out := Clone(root)
	nodes := collectNodes(&out)
	slot := nodes[rng.Intn(len(nodes))]

	switch MutationType(rng.Intn(4)) {
	case MutPoint:
		switch v := (*slot).(type) {
		case *Leaf:
			v.Index = rng.Intn(catalogLen)
		case *Composite:
			v.Op = 1 - v.Op
		}
	case MutSubtree:
		*slot = Random(rng, catalogLen, (*slot).Resistors())
	case MutShrink:
		if c, ok := (*slot).(*Composite); ok {
			if rng.Intn(2) == 0 {
				*slot = c.Left
			} else {
				*slot = c.Right
			}
		}
	case MutGrow:
		if l, ok := (*slot).(*Leaf); ok {
			*slot = &Composite{Op: Op(rng.Intn(2)), Left: l, Right: &Leaf{Index: rng.Intn(catalogLen)}}
		}
	}
	return out
}

// collectNodes returns pointers to every node slot in pre-order.
func collectNodes(root *Node) []*Node {
	var result []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		result = append(result, n)
		if c, ok := (*n).(*Composite); ok {
			walk(&c.Left)
			walk(&c.Right)
		}
	}
	walk(root)
	return result
}
