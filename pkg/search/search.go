package search

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wildfunctions/equivalent_resistance/pkg/catalog"
)

// Searcher runs layered searches over series/parallel networks.
type Searcher struct {
	strategy      Strategy
	workers       int
	maxCandidates int
	logger        *zap.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithStrategy selects a registered strategy by name.
func WithStrategy(name string) Option {
	return func(s *Searcher) error {
		st, err := Get(name)
		if err != nil {
			return err
		}
		s.strategy = st
		return nil
	}
}

// WithWorkers bounds how many splits of a layer are combined concurrently.
// Values below 1 mean sequential.
func WithWorkers(n int) Option {
	return func(s *Searcher) error {
		s.workers = n
		return nil
	}
}

// WithMaxCandidates bounds the combinations a single layer may examine.
// A layer over the limit fails with ErrTooManyCandidates before any of it is
// built. Zero means no limit.
func WithMaxCandidates(n int) Option {
	return func(s *Searcher) error {
		if n < 0 {
			return fmt.Errorf("search: negative candidate limit %d", n)
		}
		s.maxCandidates = n
		return nil
	}
}

// WithLogger sets the logger used for per-layer progress.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Searcher) error {
		s.logger = logger
		return nil
	}
}

// New returns a Searcher using the layered strategy on all CPUs.
func New(opts ...Option) (*Searcher, error) {
	s := &Searcher{
		strategy: &LayeredStrategy{},
		workers:  runtime.NumCPU(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s, nil
}

// Approximate returns the SCF text of the configuration of at most
// maxResistors resistors from c that best matches target.
func Approximate(c []float64, target Target, maxResistors int) (string, error) {
	s, err := New()
	if err != nil {
		return "", err
	}
	res, err := s.Run(context.Background(), c, target, maxResistors)
	if err != nil {
		return "", err
	}
	return res.SCF, nil
}

func validate(c catalog.Catalog, maxResistors int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if maxResistors < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidBudget, maxResistors)
	}
	return nil
}

// Run searches layers 1..maxResistors and returns the best configuration.
// No layers are built when the inputs are invalid.
func (s *Searcher) Run(ctx context.Context, c []float64, target Target, maxResistors int) (res *Result, err error) {
	start := time.Now()
	name := s.strategy.Name()
	ctx, span := tracer.Start(ctx, "Searcher.Run", trace.WithAttributes(
		attribute.String("strategy", name),
		attribute.String("target", target.String()),
		attribute.Int("max_resistors", maxResistors),
		attribute.Int("catalog_size", len(c)),
	))
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		searchRuns.WithLabelValues(name, outcome).Inc()
		searchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		span.End()
	}()

	if err := validate(c, maxResistors); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	var b best
	layers, stats, err := s.build(ctx, c, maxResistors, func(l *Layer) {
		b.scan(target, l)
		s.logger.Debug("layer scanned",
			zap.Int("resistors", l.n),
			zap.Int("distinct", l.Len()),
			zap.Float64("best_value", b.value),
			zap.Float64("best_error", b.err),
			zap.Int("best_resistors", b.resistors))
	})
	if err != nil {
		return nil, err
	}
	if !b.found {
		// Unreachable with a valid catalog: layer 1 is never empty.
		return nil, errors.New("search: no configuration found")
	}

	tree := layers.tree(b.ref)
	res = &Result{
		SCF:       tree.String(),
		Tree:      tree,
		Value:     b.value,
		Target:    target,
		Error:     b.err,
		Resistors: b.resistors,
		Strategy:  name,
		Layers:    stats,
		Elapsed:   time.Since(start),
	}
	span.SetAttributes(
		attribute.String("scf", res.SCF),
		attribute.Float64("value", res.Value),
		attribute.Int("resistors", res.Resistors),
	)
	s.logger.Info("search complete",
		zap.String("strategy", name),
		zap.String("target", target.String()),
		zap.String("scf", res.SCF),
		zap.Float64("value", res.Value),
		zap.Float64("error", res.Error),
		zap.Int("resistors", res.Resistors),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// build constructs layers 1..maxResistors, calling visit after each
// non-empty layer is complete. Empty layers are skipped and never used as
// sources.
func (s *Searcher) build(ctx context.Context, c catalog.Catalog, maxResistors int, visit func(*Layer)) (layerSet, []LayerStats, error) {
	layers := make(layerSet, maxResistors+1)
	stats := make([]LayerStats, 0, maxResistors)

	for n := 1; n <= maxResistors; n++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		var (
			l        *Layer
			examined int
		)
		if n == 1 {
			l = seedLayer(c)
			examined = len(c)
		} else {
			var err error
			l, examined, err = s.buildLayer(ctx, layers, n)
			if err != nil {
				return nil, nil, err
			}
		}

		stats = append(stats, LayerStats{Resistors: n, Distinct: l.Len(), Candidates: examined})
		layerDistinct.Observe(float64(l.Len()))
		if l.Len() == 0 {
			continue
		}
		layers[n] = l
		visit(l)
	}
	return layers, stats, nil
}

// buildLayer combines the strategy's splits for layer n. With more than one
// worker, splits are combined concurrently into private layers and merged
// in split order, which yields exactly the sequential result.
func (s *Searcher) buildLayer(ctx context.Context, layers layerSet, n int) (*Layer, int, error) {
	ctx, span := tracer.Start(ctx, "Searcher.buildLayer", trace.WithAttributes(attribute.Int("resistors", n)))
	defer span.End()

	var splits []Split
	for _, sp := range s.strategy.Splits(n) {
		if sp.Left < 1 || sp.Right < 1 || sp.Left+sp.Right != n {
			return nil, 0, fmt.Errorf("search: strategy %s produced split %d+%d for layer %d", s.strategy.Name(), sp.Left, sp.Right, n)
		}
		if layers[sp.Left] == nil || layers[sp.Right] == nil {
			continue
		}
		splits = append(splits, sp)
	}

	candidates := 0
	for _, sp := range splits {
		candidates += 2 * layers[sp.Left].Len() * layers[sp.Right].Len()
	}
	if s.maxCandidates > 0 && candidates > s.maxCandidates {
		return nil, 0, fmt.Errorf("%w: layer %d needs %d, limit %d", ErrTooManyCandidates, n, candidates, s.maxCandidates)
	}
	capacity := capHint(candidates)

	if s.workers <= 1 || len(splits) <= 1 {
		dst := newLayer(n, capacity)
		total := 0
		for _, sp := range splits {
			examined, err := combine(ctx, dst, layers[sp.Left], layers[sp.Right])
			total += examined
			if err != nil {
				return nil, total, err
			}
		}
		span.SetAttributes(attribute.Int("distinct", dst.Len()))
		return dst, total, nil
	}

	parts := make([]*Layer, len(splits))
	counts := make([]int, len(splits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, sp := range splits {
		i, sp := i, sp
		g.Go(func() error {
			a, b := layers[sp.Left], layers[sp.Right]
			parts[i] = newLayer(n, capHint(2*a.Len()*b.Len()))
			examined, err := combine(gctx, parts[i], a, b)
			counts[i] = examined
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	dst := newLayer(n, capacity)
	total := 0
	for i, part := range parts {
		for _, e := range part.entries {
			dst.add(e)
		}
		total += counts[i]
	}
	span.SetAttributes(attribute.Int("distinct", dst.Len()))
	return dst, total, nil
}

// maxPrealloc bounds layer preallocation; dedup usually keeps layers far
// smaller than the number of combinations examined.
const maxPrealloc = 1 << 16

func capHint(n int) int {
	if n > maxPrealloc {
		return maxPrealloc
	}
	return n
}
