package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/ygo-catalog/internal/api/handlers"
	"github.com/ramonehamilton/ygo-catalog/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoints (no versioning)
	s.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	s.router.Get("/health", s.healthCheck)

	// WebSocket endpoint (no JSON content-type requirement)
	s.router.Get("/ws", s.wsHub.ServeWs)

	// API v1 routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Card routes
		cardHandler := handlers.NewCardHandler(s.store, s.pageSize)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.SearchCards)
			r.Get("/facets", cardHandler.GetFacets)
			r.Get("/stats", cardHandler.GetStats)
			r.Get("/{cardID}", cardHandler.GetCard)
		})

		// Chart routes
		chartHandler := handlers.NewChartHandler(s.store)
		r.Get("/charts", chartHandler.GetChart)

		// Session routes
		sessionHandler := handlers.NewSessionHandler(s.sessions)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.CreateSession)
			r.Get("/{sessionID}", sessionHandler.GetSession)
			r.Delete("/{sessionID}", sessionHandler.DeleteSession)
			r.Put("/{sessionID}/criteria", sessionHandler.SetCriteria)
			r.Put("/{sessionID}/page", sessionHandler.SetPage)
			r.Post("/{sessionID}/next", sessionHandler.NextPage)
			r.Post("/{sessionID}/prev", sessionHandler.PrevPage)
		})

		// System routes
		systemHandler := handlers.NewSystemHandler(s.store, s.sessions)
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", systemHandler.GetStatus)
			r.Get("/version", systemHandler.GetVersion)
		})

		// Settings routes
		settingsHandler := handlers.NewSettingsHandler(s.settings)
		r.Route("/settings", func(r chi.Router) {
			r.Get("/language", settingsHandler.GetLanguage)
			r.Put("/language", settingsHandler.SetLanguage)
			r.Delete("/language", settingsHandler.ResetLanguage)
		})
	})

	// Static frontend
	if s.staticDir != "" {
		fs := http.FileServer(http.Dir(s.staticDir))
		s.router.With(cacheControl).Handle("/*", fs)
	}
}

// healthCheck returns the health status of the API.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]interface{}{
		"status":  "healthy",
		"cards":   s.store.Dataset().Len(),
		"clients": s.wsHub.ClientCount(),
	})
}
