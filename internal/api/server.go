// Package api serves the catalog over REST and WebSocket.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ramonehamilton/ygo-catalog/internal/api/handlers"
	"github.com/ramonehamilton/ygo-catalog/internal/api/websocket"
	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/charts"
	"github.com/ramonehamilton/ygo-catalog/internal/session"
)

// Server represents the REST API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	port       int

	// Browser auto-open configuration
	openBrowser bool
	frontendURL string

	staticDir      string
	allowedOrigins []string
	pageSize       int

	// WebSocket hub for real-time events
	wsHub *websocket.Hub

	store    *catalog.Store
	sessions *session.Manager
	settings handlers.LanguageService
}

// Config holds configuration for the API server.
type Config struct {
	Port           int
	OpenBrowser    bool   // Whether to auto-open browser on startup
	FrontendURL    string // URL to open in browser; defaults to the server itself
	StaticDir      string // Directory served at /, empty to disable
	AllowedOrigins []string
	PageSize       int
}

// DefaultConfig returns the default API server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		PageSize:       catalog.DefaultPageSize,
	}
}

// Deps holds the services the API server exposes.
type Deps struct {
	Store    *catalog.Store
	Sessions *session.Manager
	Settings handlers.LanguageService // optional
	Hub      *websocket.Hub           // optional, created when nil
}

// NewServer creates a new API server.
func NewServer(cfg *Config, deps Deps) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if deps.Store == nil {
		return nil, errors.New("catalog store is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("session manager is required")
	}

	hub := deps.Hub
	if hub == nil {
		hub = websocket.NewHub(
			websocket.WithSessions(deps.Sessions),
			websocket.WithCheckOrigin(originChecker(cfg.AllowedOrigins)),
		)
	}

	s := &Server{
		router:         chi.NewRouter(),
		port:           cfg.Port,
		openBrowser:    cfg.OpenBrowser,
		frontendURL:    cfg.FrontendURL,
		staticDir:      cfg.StaticDir,
		allowedOrigins: cfg.AllowedOrigins,
		pageSize:       cfg.PageSize,
		wsHub:          hub,
		store:          deps.Store,
		sessions:       deps.Sessions,
		settings:       deps.Settings,
	}
	if s.frontendURL == "" {
		s.frontendURL = fmt.Sprintf("http://localhost:%d/", s.port)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	// Request ID for tracing
	s.router.Use(middleware.RequestID)

	// Real IP detection
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(middleware.Logger)

	// Panic recovery
	s.router.Use(middleware.Recoverer)

	// Request timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Content-Type enforcement for POST/PUT/PATCH only (not GET/DELETE/OPTIONS)
	s.router.Use(s.jsonContentTypeMiddleware)
}

// jsonContentTypeMiddleware enforces application/json content-type for requests with bodies.
func (s *Server) jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			// Skip if there's no content
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			if contentType == "" || (contentType != "application/json" && !strings.HasPrefix(contentType, "application/json;")) {
				http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// cacheControl sets caching headers for static files. The card data file is
// never cached so a refresh always picks up a new download.
func cacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch strings.ToLower(path.Ext(r.URL.Path)) {
		case ".json":
			w.Header().Set("Cache-Control", "no-store")
		case ".css", ".js":
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		next.ServeHTTP(w, r)
	})
}

// originChecker accepts requests without an Origin header and origins
// matching one of the CORS patterns.
func originChecker(patterns []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, p := range patterns {
			if p == "*" || p == origin {
				return true
			}
			if ok, _ := path.Match(p, origin); ok {
				return true
			}
		}
		return false
	}
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the API server in a goroutine.
func (s *Server) Start() error {
	// Start WebSocket hub
	go s.wsHub.Run()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("API server starting on port %d", s.port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("API server error: %v", err)
		}
	}()

	// Open browser after short delay to ensure server is ready
	if s.openBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			if err := charts.OpenInBrowser(s.frontendURL); err != nil {
				log.Printf("Failed to open browser: %v", err)
			} else {
				log.Printf("Opened browser to %s", s.frontendURL)
			}
		}()
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.wsHub.Stop()
	if s.httpServer == nil {
		return nil
	}

	log.Println("Shutting down API server...")
	return s.httpServer.Shutdown(ctx)
}

// Port returns the port the server is configured to listen on.
func (s *Server) Port() int {
	return s.port
}

// WebSocketHub returns the WebSocket hub for external integration.
func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}

// NewWebSocketObserver creates a new WebSocket observer that can be registered
// with an EventDispatcher to forward events to WebSocket clients.
func (s *Server) NewWebSocketObserver() *websocket.WebSocketObserver {
	return websocket.NewWebSocketObserver(s.wsHub)
}
