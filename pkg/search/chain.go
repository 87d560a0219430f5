package search

func init() {
	Register("chain", func() Strategy { return &ChainStrategy{} })
}

// ChainStrategy only ever extends a network by one catalog resistor: layer
// n pairs layer n-1 with layer 1. It explores ladder networks such as
// ((0)+(1))//(2) and misses balanced ones such as ((0)+(1))//((2)+(3)),
// so it is much cheaper than LayeredStrategy and never more accurate.
type ChainStrategy struct{}

func (s *ChainStrategy) Name() string { return "chain" }

func (s *ChainStrategy) Splits(n int) []Split {
	if n < 2 {
		return nil
	}
	return []Split{{Left: n - 1, Right: 1}}
}
