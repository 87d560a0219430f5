package search

import (
	"context"
	"math/big"

	"github.com/wildfunctions/equivalent_resistance/pkg/catalog"
)

// ExploreStats counts what one layer can reach.
type ExploreStats struct {
	Resistors int `json:"resistors"`
	// Distinct values reachable with exactly Resistors resistors.
	Distinct int `json:"distinct"`
	// Cumulative distinct values reachable with at most Resistors resistors.
	Cumulative int `json:"cumulative"`
	// Topologies is the number of operator-labelled binary trees with
	// Resistors leaves, an upper bound on networks before value dedup.
	Topologies *big.Int `json:"topologies"`
}

// Explore builds layers 1..maxResistors without a target and reports how
// many distinct values each layer holds.
func (s *Searcher) Explore(ctx context.Context, c []float64, maxResistors int) ([]ExploreStats, error) {
	if err := validate(c, maxResistors); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "Searcher.Explore")
	defer span.End()

	topo := Topologies(maxResistors)
	out := make([]ExploreStats, 0, maxResistors)
	all := make(map[float64]struct{})
	cumulative := make(map[int]int, maxResistors)
	_, stats, err := s.build(ctx, catalog.Catalog(c), maxResistors, func(l *Layer) {
		for _, e := range l.entries {
			all[e.Value] = struct{}{}
		}
		cumulative[l.n] = len(all)
	})
	if err != nil {
		return nil, err
	}

	// build reports empty layers too, so stats[i] is layer i+1.
	running := 0
	for i, st := range stats {
		if v, ok := cumulative[st.Resistors]; ok {
			running = v
		}
		out = append(out, ExploreStats{
			Resistors:  st.Resistors,
			Distinct:   st.Distinct,
			Cumulative: running,
			Topologies: topo[i+1],
		})
	}
	return out, nil
}

// Topologies returns T(1..n), where T(1) = 1 and T(n) = Σ 2·T(k)·T(n−k)
// over k = 1..n−1. Index 0 is unused.
func Topologies(n int) []*big.Int {
	t := make([]*big.Int, n+1)
	if n < 1 {
		return t
	}
	t[1] = big.NewInt(1)
	for m := 2; m <= n; m++ {
		sum := new(big.Int)
		for k := 1; k < m; k++ {
			p := new(big.Int).Mul(t[k], t[m-k])
			sum.Add(sum, p.Lsh(p, 1))
		}
		t[m] = sum
	}
	return t
}
