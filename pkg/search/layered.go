package search

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = "layered"

func init() {
	Register("layered", func() Strategy { return &LayeredStrategy{} })
}

// LayeredStrategy builds layer n from every split i + j = n with i <= j, in
// ascending i. Since any series/parallel network of n resistors splits at
// its root into networks of i and n-i resistors, this reaches every value
// achievable with exactly n resistors.
type LayeredStrategy struct{}

func (s *LayeredStrategy) Name() string { return "layered" }

func (s *LayeredStrategy) Splits(n int) []Split {
	splits := make([]Split, 0, n/2)
	for i := 1; i <= n/2; i++ {
		splits = append(splits, Split{Left: i, Right: n - i})
	}
	return splits
}
