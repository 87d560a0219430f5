package engine

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wildfunctions/equivalent_resistance/pkg/catalog"
	"github.com/wildfunctions/equivalent_resistance/pkg/expr"
	"github.com/wildfunctions/equivalent_resistance/pkg/search"
)

// Engine resolves a Config into a catalog, target and searcher, and runs
// approximations, verifications and explorations against them.
type Engine struct {
	cfg         Config
	catalog     catalog.Catalog
	catalogName string
	target      search.Target
	hasTarget   bool
	searcher    *search.Searcher
	logger      *zap.Logger
}

// New validates cfg and creates a new engine. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, name, err := resolveCatalog(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		catalog:     c,
		catalogName: name,
		logger:      logger,
	}
	if cfg.Target != "" {
		t, err := search.ParseTarget(cfg.Target)
		if err != nil {
			return nil, err
		}
		e.target, e.hasTarget = t, true
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = 1
	}
	e.searcher, err = search.New(
		search.WithStrategy(cfg.Strategy),
		search.WithWorkers(workers),
		search.WithMaxCandidates(cfg.MaxCandidates),
		search.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func resolveCatalog(cfg Config) (catalog.Catalog, string, error) {
	switch {
	case len(cfg.Values) > 0:
		// Zero values are left for Verify to report; searches reject them.
		c := catalog.Catalog(cfg.Values).Clone()
		return c, "custom", c.ValidateForEval()
	case cfg.CatalogFile != "":
		c, err := catalog.Load(cfg.CatalogFile)
		return c, filepath.Base(cfg.CatalogFile), err
	default:
		c, err := catalog.Get(cfg.Catalog)
		return c, cfg.Catalog, err
	}
}

// Catalog returns a copy of the resolved catalog.
func (e *Engine) Catalog() catalog.Catalog { return e.catalog.Clone() }

// CatalogName returns the registered name, file name, or "custom".
func (e *Engine) CatalogName() string { return e.catalogName }

// Config returns the configuration the engine was built from.
func (e *Engine) Config() Config { return e.cfg }

// Run searches for the configured target and returns the final report.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	if !e.hasTarget {
		return nil, fmt.Errorf("%w: target is required", ErrInvalidConfig)
	}

	runID := uuid.NewString()
	logger := e.logger.With(zap.String("run_id", runID))
	logger.Info("starting search",
		zap.String("catalog", e.catalogName),
		zap.Int("catalog_size", len(e.catalog)),
		zap.String("target", e.target.String()),
		zap.Int("max_resistors", e.cfg.MaxResistors),
		zap.String("strategy", e.cfg.Strategy),
		zap.Int("workers", e.cfg.Workers))

	res, err := e.searcher.Run(ctx, e.catalog, e.target, e.cfg.MaxResistors)
	if err != nil {
		logger.Error("search failed", zap.Error(err))
		return nil, err
	}

	return &Report{
		RunID:        runID,
		Catalog:      e.catalogName,
		CatalogSize:  len(e.catalog),
		MaxResistors: e.cfg.MaxResistors,
		Result:       res,
		LaTeX:        res.Tree.LaTeX(),
		Timestamp:    time.Now().UTC(),
	}, nil
}

// Verify decodes scf against the engine's catalog and evaluates it. With
// exact set, the value is also reduced over rationals.
func (e *Engine) Verify(scf string, exact bool) (*Verification, error) {
	node, err := expr.Decode(scf, len(e.catalog))
	if err != nil {
		return nil, err
	}
	v, err := node.Eval(e.catalog)
	if err != nil {
		return nil, err
	}

	out := &Verification{
		SCF:       node.String(),
		Catalog:   e.catalogName,
		Value:     v,
		LaTeX:     node.LaTeX(),
		Resistors: node.Resistors(),
		Depth:     node.Depth(),
	}
	if exact {
		r, err := node.EvalExact(e.catalog)
		if err != nil {
			return nil, err
		}
		out.Exact = r.RatString()
	}
	if e.hasTarget && !e.target.IsMaximize() {
		t, d := e.target, math.Abs(v-e.target.Resistance())
		out.Target = &t
		out.Error = &d
	}
	return out, nil
}

// Explore reports how many distinct values each layer up to MaxResistors
// can reach with the engine's catalog.
func (e *Engine) Explore(ctx context.Context) (*ExploreReport, error) {
	runID := uuid.NewString()
	start := time.Now()
	layers, err := e.searcher.Explore(ctx, e.catalog, e.cfg.MaxResistors)
	if err != nil {
		return nil, err
	}
	e.logger.Info("exploration complete",
		zap.String("run_id", runID),
		zap.String("catalog", e.catalogName),
		zap.Int("max_resistors", e.cfg.MaxResistors),
		zap.Duration("elapsed", time.Since(start)))

	return &ExploreReport{
		RunID:       runID,
		Catalog:     e.catalogName,
		CatalogSize: len(e.catalog),
		Layers:      layers,
		Elapsed:     time.Since(start),
	}, nil
}
