package search

import (
	"time"

	"github.com/wildfunctions/equivalent_resistance/pkg/expr"
)

// LayerStats summarizes one built layer.
type LayerStats struct {
	Resistors  int `json:"resistors"`
	Distinct   int `json:"distinct"`
	Candidates int `json:"candidates"`
}

// Result is the best configuration found by a search.
type Result struct {
	SCF       string        `json:"scf"`
	Tree      expr.Node     `json:"-"`
	Value     float64       `json:"value"`
	Target    Target        `json:"target"`
	Error     float64       `json:"error"` // |Value - target|, 0 when maximizing
	Resistors int           `json:"resistors"`
	Strategy  string        `json:"strategy"`
	Layers    []LayerStats  `json:"layers"`
	Elapsed   time.Duration `json:"elapsed"`
}

// RelativeError returns Error / target, or 0 for maximize and zero targets.
func (r *Result) RelativeError() float64 {
	t := r.Target.Resistance()
	if r.Target.IsMaximize() || t == 0 {
		return 0
	}
	return r.Error / t
}

// best accumulates the winning entry across layers.
type best struct {
	found     bool
	ref       Ref
	value     float64
	err       float64
	resistors int
}

// offer considers value at ref, built from n resistors, and keeps it if it
// beats the current best. Maximize keeps strictly larger values. Otherwise
// a strictly smaller error wins, then equal error with fewer resistors;
// remaining ties keep the earlier candidate.
func (b *best) offer(t Target, value float64, n int, ref Ref) bool {
	var e float64
	if !t.IsMaximize() {
		e = t.errorOf(value)
	}

	better := !b.found
	if b.found {
		if t.IsMaximize() {
			better = value > b.value
		} else {
			better = e < b.err || (e == b.err && n < b.resistors)
		}
	}
	if !better {
		return false
	}
	*b = best{found: true, ref: ref, value: value, err: e, resistors: n}
	return true
}

// scan offers every entry of l in discovery order.
func (b *best) scan(t Target, l *Layer) {
	for pos, e := range l.entries {
		b.offer(t, e.Value, l.n, Ref{Layer: l.n, Pos: pos})
	}
}
