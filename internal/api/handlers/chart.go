package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ramonehamilton/ygo-catalog/internal/api/response"
	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/charts"
)

// ChartHandler renders catalog distributions as HTML charts.
type ChartHandler struct {
	store *catalog.Store
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(store *catalog.Store) *ChartHandler {
	return &ChartHandler{store: store}
}

// GetChart renders ?by=type|race|archetype, optionally as ?kind=pie, with ?limit=N.
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	counts, title, err := charts.Distribution(snap.Stats, r.URL.Query().Get("by"))
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	cfg := charts.DefaultChartConfig()
	cfg.Title = title
	cfg.Subtitle = fmt.Sprintf("%d cards", snap.Stats.Total)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.BadRequest(w, fmt.Errorf("invalid limit %q", raw))
			return
		}
		cfg.Limit = limit
	}

	render := charts.RenderDistribution
	if r.URL.Query().Get("kind") == "pie" {
		render = charts.RenderShare
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render(w, counts, cfg); err != nil {
		response.InternalError(w, err)
	}
}
