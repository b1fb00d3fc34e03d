// Package api serves the floorplanner over HTTP.
//
// Routes:
//
//	POST /v1/solve        solve a problem given as text
//	POST /v1/score        score and verify a solution
//	GET  /v1/runs         list recorded runs, newest first
//	GET  /v1/runs/{id}    fetch one run
//	GET  /v1/strategies   list placement strategies
//	GET  /healthz         liveness probe
//
// Errors are JSON objects {"error": {"code": ..., "message": ...}} with the
// code from pkg/errors.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/floorplan/pkg/observability"
	"github.com/matzehuels/floorplan/pkg/pipeline"
	"github.com/matzehuels/floorplan/pkg/store"
)

// MaxBodySize caps request bodies.
const MaxBodySize = 32 << 20

// Server handles API requests with one shared Runner.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
}

// New creates a server. defaults supplies options a request leaves unset,
// and its node budget and timeout are also the most a request may ask for.
// A runner without a store gets a MemoryStore so runs can be listed.
func New(runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *Server {
	if defaults.MaxNodes <= 0 {
		defaults.MaxNodes = pipeline.DefaultMaxNodes
	}
	if defaults.Timeout <= 0 {
		defaults.Timeout = pipeline.DefaultTimeout
	}
	if runner.Store == nil {
		runner.Store = store.NewMemoryStore()
	}
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, defaults: defaults, logger: logger}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Post("/score", s.handleScore)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Get("/strategies", s.handleStrategies)
	})
	return r
}

// observe logs each request and reports it to the server hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
