package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/wildfunctions/equivalent_resistance/pkg/engine"
)

// Server exposes the engine over HTTP.
type Server struct {
	cfg      Config
	defaults engine.Config
	logger   *zap.Logger
	router   *gin.Engine
}

// New creates a server. defaults supplies every engine setting a request
// does not override.
func New(cfg Config, defaults engine.Config, logger *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		defaults: defaults,
		logger:   logger,
	}
	s.initRouter()
	return s, nil
}

func (s *Server) initRouter() {
	s.router = gin.New()
	s.router.Use(gin.Recovery(), otelgin.Middleware("equivalent-resistance"), requestLogger(s.logger))

	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api", bodyLimit(s.cfg.MaxBodyBytes))
	api.GET("/catalogs", s.handleCatalogs)
	api.POST("/approximate", s.handleApproximate)
	api.POST("/evaluate", s.handleEvaluate)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
