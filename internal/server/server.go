// Package server exposes the simulator over a JSON REST API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/store"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr    string
	Version string
	// App supplies presets and default window lengths for requests that
	// leave inputs unset.
	App config.Config
}

// Server serves the /api endpoints.
type Server struct {
	cfg    Config
	store  store.Store
	log    *zap.SugaredLogger
	engine *gin.Engine
}

// New returns a server backed by st. st may be nil, in which case the
// scenario endpoints answer 503.
func New(cfg Config, st store.Store, log *zap.SugaredLogger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:5000"
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	s := &Server{cfg: cfg, store: st, log: log}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/project", s.handleProject)
	api.GET("/cohort", s.handleCohort)
	api.GET("/sensitivity", s.handleSensitivity)
	api.GET("/tornado", s.handleTornado)
	api.GET("/presets", s.handlePresets)

	scenarios := api.Group("/scenarios", s.requireStore)
	scenarios.GET("", s.handleListScenarios)
	scenarios.POST("", s.handleSaveScenario)
	scenarios.GET("/:name", s.handleLoadScenario)
	scenarios.DELETE("/:name", s.handleDeleteScenario)

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "no such endpoint")
	})
	return r
}

// Handler returns the HTTP handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Infow("api listening", "addr", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Infow("api shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("api http server: %w", err)
	}
}
