package web

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IFCA-Advanced-Computing/fair-eva-web-client/internal/config"
	"github.com/IFCA-Advanced-Computing/fair-eva-web-client/internal/evaluator"
	"github.com/IFCA-Advanced-Computing/fair-eva-web-client/internal/fairscore"
)

type Handler struct {
	loader evaluator.Client
	cfg    *config.Config
	logger *slog.Logger
}

func NewHandler(loader evaluator.Client, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{loader: loader, cfg: cfg, logger: logger}
}

func (h *Handler) page() page {
	return page{
		Title:     h.cfg.UI.Title,
		LogoURL:   h.cfg.UI.LogoURL,
		LogoImage: h.cfg.UI.LogoImage,
	}
}

func (h *Handler) plugins() []pluginOption {
	opts := make([]pluginOption, 0, len(h.cfg.UI.Plugins))
	for _, p := range h.cfg.UI.Plugins {
		opts = append(opts, pluginOption{ID: p.ID, Label: p.Label})
	}
	return opts
}

// Index serves the identifier form; a valid submission redirects to the
// results view with the identifier and plugin as query parameters.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	view := indexView{page: h.page(), Plugins: h.plugins()}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			view.FormError = "Could not read the submitted form."
			h.render(w, http.StatusBadRequest, "index.html", view)
			return
		}
		itemID := strings.TrimSpace(r.PostFormValue("item_id"))
		if itemID == "" {
			view.FormError = "An identifier is required."
			h.render(w, http.StatusOK, "index.html", view)
			return
		}
		q := url.Values{}
		q.Set("item_id", itemID)
		q.Set("plugin", r.PostFormValue("plugin"))
		http.Redirect(w, r, "/evaluator?"+q.Encode(), http.StatusSeeOther)
		return
	}

	h.render(w, http.StatusOK, "index.html", view)
}

// Evaluator obtains one evaluation document, aggregates it and renders the
// results page. Accepts item_id and plugin via query or form values.
func (h *Handler) Evaluator(w http.ResponseWriter, r *http.Request) {
	itemID := strings.TrimSpace(r.FormValue("item_id"))
	if itemID == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	plugin := strings.TrimSpace(r.FormValue("plugin"))
	if plugin == "" {
		plugin = "default"
	}

	evaluationID := uuid.New().String()

	start := time.Now()
	doc, err := h.loader.Evaluate(r.Context(), itemID, h.cfg.Evaluation.Language)
	evaluationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "load_error"
		if errors.Is(err, evaluator.ErrNoData) {
			outcome = "no_data"
		}
		evaluationsTotal.WithLabelValues(outcome).Inc()
		h.logger.Error("evaluation failed",
			"item_id", itemID,
			"plugin", plugin,
			"evaluation_id", evaluationID,
			"error", err,
		)
		h.renderError(w, http.StatusBadGateway, userMessage(err))
		return
	}
	evaluationsTotal.WithLabelValues("ok").Inc()

	summary := fairscore.Aggregate(doc)

	h.logger.Info("evaluation rendered",
		"item_id", itemID,
		"plugin", plugin,
		"evaluation_id", evaluationID,
		"fair_points", summary.Points,
	)

	view := evalView{
		page:         h.page(),
		ResourceID:   itemID,
		PluginName:   plugin,
		EvaluationID: evaluationID,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		FAIRPoints:   summary.Points,
		FAIRColor:    summary.Color,
		Areas:        buildAreas(summary),
	}
	h.render(w, http.StatusOK, "eval.html", view)
}

// ErrorPage serves the generic error page reached by direct navigation.
func (h *Handler) ErrorPage(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, http.StatusOK, "An unexpected error occurred.")
}

func (h *Handler) renderError(w http.ResponseWriter, status int, msg string) {
	h.render(w, status, "error.html", errorView{page: h.page(), Message: msg})
}

// userMessage maps loader failures to the text shown on the error page.
func userMessage(err error) string {
	if errors.Is(err, evaluator.ErrNoData) {
		return "No evaluation data returned."
	}
	return "Error loading evaluation data: " + err.Error()
}
