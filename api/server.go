// Package api provides the HTTP surface over the estimation engines. The
// server owns one estimator session: a baseline input set, the scenario
// arena, and an optional snapshot archive.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sealcost/decision/compliance"
	"sealcost/decision/estimation"
	"sealcost/decision/scenario"
	"sealcost/decision/sensitivity"
	"sealcost/internal/config"
	"sealcost/pkg/api"
)

// Archiver persists finished computations. The engines never depend on it;
// the server calls it after a successful estimate when archiving is on.
type Archiver interface {
	SaveEstimate(ctx context.Context, in api.ProjectInputs, comp *api.Computation) (uuid.UUID, error)
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	engine     *estimation.Engine
	manager    *scenario.Manager
	analyzer   *sensitivity.Analyzer
	archiver   Archiver
	cfg        config.Config
}

// NewServer wires the engines for one session. The baseline starts from
// defaults and is replaced through PUT /api/v1/baseline.
func NewServer(cfg config.Config) *Server {
	engine := estimation.NewEngine().WithEvaluator(
		compliance.NewEvaluator().WithThresholds(compliance.Thresholds{
			MinMarginPercent: cfg.MarginFloorPercent,
			MaxWaterPercent:  cfg.MaxWaterPercent,
		}))

	return &Server{
		engine:   engine,
		manager:  scenario.NewManager(engine, api.ProjectInputs{}, api.DefaultBusinessSettings()),
		analyzer: sensitivity.NewAnalyzer(engine),
		cfg:      cfg,
	}
}

// WithArchiver attaches the snapshot store.
func (s *Server) WithArchiver(a Archiver) *Server {
	s.archiver = a
	return s
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(requestCounter)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/estimate", s.handleEstimate)
		r.Put("/baseline", s.handleSetBaseline)
		r.Get("/baseline", s.handleGetBaseline)
		r.Post("/sweep", s.handleSweep)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", s.handleListScenarios)
			r.Post("/", s.handleCreateScenario)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetScenario)
				r.Patch("/", s.handleUpdateScenario)
				r.Delete("/", s.handleRemoveScenario)
				r.Post("/run", s.handleRunScenario)
				r.Post("/primary", s.handleSetPrimary)
			})
		})
	})
	return r
}

// Start runs the server until the listener fails.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	slog.Info("API server listening", "port", s.cfg.Port)
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown runs the server and drains on SIGINT/SIGTERM.
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// requestLogger logs method, path, status, and duration for every request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
