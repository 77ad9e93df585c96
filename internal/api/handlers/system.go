package handlers

import (
	"net/http"
	"time"

	"github.com/ramonehamilton/ygo-catalog/internal/api/response"
	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/metrics"
	"github.com/ramonehamilton/ygo-catalog/internal/session"
	"github.com/ramonehamilton/ygo-catalog/internal/version"
)

// SystemHandler handles system-related API requests.
type SystemHandler struct {
	store    *catalog.Store
	sessions *session.Manager
	started  time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(store *catalog.Store, sessions *session.Manager) *SystemHandler {
	return &SystemHandler{store: store, sessions: sessions, started: time.Now()}
}

// Status describes the running server.
type Status struct {
	Version       string          `json:"version"`
	CatalogSource string          `json:"catalog_source"`
	CatalogCount  int             `json:"catalog_count"`
	LoadedAt      time.Time       `json:"loaded_at"`
	Races         int             `json:"races"`
	Archetypes    int             `json:"archetypes"`
	Sessions      int             `json:"sessions"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	FilterLatency metrics.Summary `json:"filter_latency"`
}

// GetStatus returns the system status.
func (h *SystemHandler) GetStatus(w http.ResponseWriter, _ *http.Request) {
	snap := h.store.Snapshot()
	status := Status{
		Version:       version.GetVersion(),
		CatalogSource: snap.Dataset.Source(),
		CatalogCount:  snap.Dataset.Len(),
		LoadedAt:      snap.Dataset.LoadedAt(),
		Races:         len(snap.Facets.Races),
		Archetypes:    len(snap.Facets.Archetypes),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
	}
	if h.sessions != nil {
		status.Sessions = h.sessions.Len()
		status.FilterLatency = h.sessions.Latency().Summary()
	}
	response.Success(w, status)
}

// GetVersion returns the application version.
func (h *SystemHandler) GetVersion(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"version": version.GetVersion(),
		"build":   version.String(),
	})
}
