package search

import (
	"context"

	"github.com/wildfunctions/equivalent_resistance/pkg/catalog"
	"github.com/wildfunctions/equivalent_resistance/pkg/expr"
)

// Ref locates an entry: position Pos in the layer for Layer resistors.
type Ref struct {
	Layer int
	Pos   int
}

// Entry is one distinct value of a layer and how it was first reached.
// Layer-1 entries are catalog leaves; all others combine two earlier
// entries with Op.
type Entry struct {
	Value       float64
	Op          expr.Op
	Leaf        int
	Left, Right Ref
}

// Layer holds every distinct value reachable with exactly Resistors()
// resistors, in the order each value was first found. Only the first entry
// for a value is kept: later combinations depend on the value alone.
type Layer struct {
	n       int
	entries []Entry
	seen    map[float64]struct{}
}

func newLayer(n, capacity int) *Layer {
	return &Layer{
		n:       n,
		entries: make([]Entry, 0, capacity),
		seen:    make(map[float64]struct{}, capacity),
	}
}

// Resistors returns the resistor count shared by every entry of the layer.
func (l *Layer) Resistors() int { return l.n }

// Len returns the number of distinct values in the layer.
func (l *Layer) Len() int { return len(l.entries) }

// Entries returns the layer's entries in discovery order. The slice must
// not be modified.
func (l *Layer) Entries() []Entry { return l.entries }

// add stores e unless its value is already present.
func (l *Layer) add(e Entry) bool {
	if _, ok := l.seen[e.Value]; ok {
		return false
	}
	l.seen[e.Value] = struct{}{}
	l.entries = append(l.entries, e)
	return true
}

// seedLayer builds layer 1: one leaf per catalog index, first index wins
// among equal values.
func seedLayer(c catalog.Catalog) *Layer {
	l := newLayer(1, len(c))
	for i, v := range c {
		l.add(Entry{Value: v, Leaf: i})
	}
	return l
}

// combine adds the series and parallel combination of every (a, b) entry
// pair to dst and returns the number of combinations examined. Values are
// positive, so the parallel form is always defined.
func combine(ctx context.Context, dst, a, b *Layer) (int, error) {
	examined := 0
	for pa, ea := range a.entries {
		if err := ctx.Err(); err != nil {
			return examined, err
		}
		left := Ref{Layer: a.n, Pos: pa}
		for pb, eb := range b.entries {
			right := Ref{Layer: b.n, Pos: pb}
			dst.add(Entry{
				Value: expr.Series(ea.Value, eb.Value),
				Op:    expr.OpSeries,
				Left:  left,
				Right: right,
			})
			dst.add(Entry{
				Value: expr.Parallel(ea.Value, eb.Value),
				Op:    expr.OpParallel,
				Left:  left,
				Right: right,
			})
		}
		examined += 2 * len(b.entries)
	}
	return examined, nil
}

// layerSet indexes built layers by resistor count; index 0 is unused.
type layerSet []*Layer

// tree materializes a fresh configuration tree for the entry at r.
func (ls layerSet) tree(r Ref) expr.Node {
	e := ls[r.Layer].entries[r.Pos]
	if r.Layer == 1 {
		return &expr.Leaf{Index: e.Leaf}
	}
	return &expr.Composite{
		Op:    e.Op,
		Left:  ls.tree(e.Left),
		Right: ls.tree(e.Right),
	}
}
