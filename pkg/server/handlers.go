package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wildfunctions/equivalent_resistance/pkg/catalog"
	"github.com/wildfunctions/equivalent_resistance/pkg/engine"
	"github.com/wildfunctions/equivalent_resistance/pkg/search"
)

// ApproximateRequest is the body of POST /api/approximate. Values take
// precedence over Catalog; with neither, the server's default catalog is
// used.
type ApproximateRequest struct {
	Catalog      string         `json:"catalog"`
	Values       []float64      `json:"values"`
	Target       *search.Target `json:"target" binding:"required"`
	MaxResistors int            `json:"max_resistors" binding:"required,gte=1"`
	Strategy     string         `json:"strategy"`
}

// EvaluateRequest is the body of POST /api/evaluate.
type EvaluateRequest struct {
	SCF     string         `json:"scf" binding:"required"`
	Catalog string         `json:"catalog"`
	Values  []float64      `json:"values"`
	Target  *search.Target `json:"target"`
	Exact   bool           `json:"exact"`
}

// CatalogInfo describes one registered catalog.
type CatalogInfo struct {
	Name   string    `json:"name"`
	Size   int       `json:"size"`
	Values []float64 `json:"values"`
}

// CatalogsResponse is the body of GET /api/catalogs.
type CatalogsResponse struct {
	Catalogs   []CatalogInfo `json:"catalogs"`
	Strategies []string      `json:"strategies"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleCatalogs(c *gin.Context) {
	resp := CatalogsResponse{Strategies: search.Names()}
	for _, name := range catalog.Names() {
		values, err := catalog.Get(name)
		if err != nil {
			s.fail(c, s.requestLog(c, "catalogs"), err)
			return
		}
		resp.Catalogs = append(resp.Catalogs, CatalogInfo{Name: name, Size: len(values), Values: values})
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleApproximate(c *gin.Context) {
	logger := s.requestLog(c, "approximate")

	var req ApproximateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, logger, err)
		return
	}
	if req.MaxResistors > s.cfg.MaxResistorsLimit {
		s.fail(c, logger, fmt.Errorf("%w: %d > %d", ErrBudgetTooLarge, req.MaxResistors, s.cfg.MaxResistorsLimit))
		return
	}

	cfg := s.engineConfig(req.Catalog, req.Values, req.Target)
	cfg.MaxResistors = req.MaxResistors
	if req.Strategy != "" {
		cfg.Strategy = req.Strategy
	}

	e, err := engine.New(cfg, logger)
	if err != nil {
		s.fail(c, logger, err)
		return
	}

	ctx := c.Request.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	report, err := e.Run(ctx)
	if err != nil {
		s.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleEvaluate(c *gin.Context) {
	logger := s.requestLog(c, "evaluate")

	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, logger, err)
		return
	}
	if len(req.SCF) > s.cfg.MaxExpressionLength {
		s.fail(c, logger, fmt.Errorf("%w: %d > %d bytes", ErrExpressionTooLong, len(req.SCF), s.cfg.MaxExpressionLength))
		return
	}

	e, err := engine.New(s.engineConfig(req.Catalog, req.Values, req.Target), logger)
	if err != nil {
		s.fail(c, logger, err)
		return
	}
	v, err := e.Verify(req.SCF, req.Exact)
	if err != nil {
		s.fail(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// engineConfig overlays request fields on the server defaults. Catalog
// files are never read on behalf of a request.
func (s *Server) engineConfig(name string, values []float64, target *search.Target) engine.Config {
	cfg := s.defaults
	cfg.CatalogFile = ""
	cfg.Format = "json"
	switch {
	case len(values) > 0:
		cfg.Values = values
	case name != "":
		cfg.Catalog = name
		cfg.Values = nil
	}
	cfg.MaxCandidates = s.cfg.MaxCandidates
	cfg.Target = ""
	if target != nil {
		cfg.Target = target.String()
	}
	return cfg
}

// badRequest reports a body that could not be bound. Targets keep their
// domain code; oversized bodies get 413.
func (s *Server) badRequest(c *gin.Context, logger *zap.Logger, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		logger.Warn("request body too large", zap.Int64("limit", tooLarge.Limit))
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error(), Code: "BODY_TOO_LARGE"})
	case errors.Is(err, search.ErrInvalidTarget):
		s.fail(c, logger, err)
	default:
		logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
	}
}

func (s *Server) fail(c *gin.Context, logger *zap.Logger, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err), zap.String("code", code))
	} else {
		logger.Warn("request rejected", zap.Error(err), zap.String("code", code))
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}
