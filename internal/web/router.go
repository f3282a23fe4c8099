// Package web serves the identifier form and renders evaluation results.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/IFCA-Advanced-Computing/fair-eva-web-client/internal/config"
	"github.com/IFCA-Advanced-Computing/fair-eva-web-client/internal/evaluator"
)

func NewRouter(loader evaluator.Client, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))

	h := NewHandler(loader, cfg, logger)

	r.Get("/", h.Index)
	r.Post("/", h.Index)
	r.Get("/evaluator", h.Evaluator)
	r.Post("/evaluator", h.Evaluator)
	r.Get("/error", h.ErrorPage)

	if cfg.UI.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.UI.StaticDir))))
	}

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
