package watch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/seobuilder/internal/metrics"
)

// Server exposes health, status, manual trigger and metrics endpoints.
type Server struct {
	router *chi.Mux
	server *http.Server
	runner *Runner
	ctx    context.Context
}

// NewServer builds the router. reg may be nil, in which case /metrics is
// not mounted.
func NewServer(ctx context.Context, addr string, runner *Runner, reg *prom.Registry) *Server {
	s := &Server{router: chi.NewRouter(), runner: runner, ctx: ctx}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/status", s.handleStatus)
	s.router.Post("/rebuild", s.handleRebuild)
	if reg != nil {
		s.router.Handle("/metrics", metrics.Handler(reg))
	}

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("Watch server listening", slog.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	st := s.runner.Status()
	if st.Runs > 0 && st.LastError != "" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": st.LastError})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.Status())
}

func (s *Server) handleRebuild(w http.ResponseWriter, _ *http.Request) {
	s.runner.Trigger(s.ctx, "manual")
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
