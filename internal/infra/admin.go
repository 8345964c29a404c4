package infra

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okutsev/httpool/internal/workerpool"
)

// PageStats is what the admin surface needs from the page store.
type PageStats interface {
	CacheLen() int
}

// AdminServer exposes health, status and metrics on a side listener,
// separate from the pooled accept loop.
type AdminServer struct {
	srv     *http.Server
	pool    *workerpool.Pool
	pages   PageStats
	started time.Time
}

func NewAdmin(addr string, pool *workerpool.Pool, pages PageStats) *AdminServer {
	a := &AdminServer{
		pool:    pool,
		pages:   pages,
		started: time.Now(),
	}

	r := chi.NewMux()
	r.Get("/healthz", a.handleHealth)
	r.Get("/status", a.handleStatus)
	r.Handle("/metrics", promhttp.Handler())

	a.srv = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
	return a
}

func (a *AdminServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
		slog.Warn("admin write failed", "error", err)
	}
}

func (a *AdminServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":         "running",
		"workers":        a.pool.WorkerCount(),
		"queue_depth":    a.pool.QueueDepth(),
		"uptime_seconds": int(time.Since(a.started).Seconds()),
	}
	if a.pages != nil {
		status["pages_cached"] = a.pages.CacheLen()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		slog.Error("failed to encode status", "error", err)
		http.Error(w, "encoding error", http.StatusInternalServerError)
	}
}

// Handler exposes the admin mux, mainly for tests.
func (a *AdminServer) Handler() http.Handler { return a.srv.Handler }

func (a *AdminServer) Start() {
	go func() {
		slog.Info("admin HTTP listening", "addr", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("admin listen error", "error", err)
		}
	}()
}

func (a *AdminServer) Shutdown(ctx context.Context) {
	if err := a.srv.Shutdown(ctx); err != nil {
		slog.Warn("admin shutdown error", "error", err)
	}
}
