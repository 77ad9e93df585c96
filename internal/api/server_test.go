package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	apiwebsocket "github.com/ramonehamilton/ygo-catalog/internal/api/websocket"
	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/events"
	"github.com/ramonehamilton/ygo-catalog/internal/session"
	"github.com/ramonehamilton/ygo-catalog/internal/settings"
	"github.com/ramonehamilton/ygo-catalog/internal/storage"
	"github.com/ramonehamilton/ygo-catalog/internal/storage/repository"
)

func testDeps(t *testing.T, n int) Deps {
	t.Helper()
	cards := make([]catalog.Card, n)
	for i := range cards {
		cards[i] = catalog.Card{ID: int64(i + 1), Name: fmt.Sprintf("Card %03d", i+1), Type: "Effect Monster", Race: "Dragon"}
	}
	store := catalog.NewStore(catalog.NewDataset(cards))
	sessions, err := session.NewManager(session.ManagerConfig{Store: store, Clock: session.NewManualClock()})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return Deps{Store: store, Sessions: sessions}
}

func newTestServer(t *testing.T, cfg *Config) (*Server, *httptest.Server) {
	t.Helper()
	server, err := NewServer(cfg, testDeps(t, 45))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	go server.wsHub.Run()
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(func() {
		ts.Close()
		server.wsHub.Stop()
	})
	return server, ts
}

func TestNewServer(t *testing.T) {
	cfg := DefaultConfig()

	server, err := NewServer(cfg, testDeps(t, 1))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	if server.port != cfg.Port {
		t.Errorf("Expected port %d, got %d", cfg.Port, server.port)
	}
	if server.wsHub == nil {
		t.Error("Expected wsHub to be initialized")
	}
	if server.frontendURL != "http://localhost:8080/" {
		t.Errorf("Expected frontend URL to default to the server, got %s", server.frontendURL)
	}
}

func TestNewServer_NilConfig(t *testing.T) {
	server, err := NewServer(nil, testDeps(t, 1))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	if server.Port() != 8080 {
		t.Errorf("Expected default port 8080, got %d", server.Port())
	}
}

func TestNewServer_RequiresDeps(t *testing.T) {
	deps := testDeps(t, 1)

	if _, err := NewServer(nil, Deps{Sessions: deps.Sessions}); err == nil {
		t.Error("Expected error without a store")
	}
	if _, err := NewServer(nil, Deps{Store: deps.Store}); err == nil {
		t.Error("Expected error without a session manager")
	}
}

func TestNewServer_UsesGivenHub(t *testing.T) {
	deps := testDeps(t, 1)
	deps.Hub = apiwebsocket.NewHub()

	server, err := NewServer(nil, deps)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	if server.WebSocketHub() != deps.Hub {
		t.Error("Expected the given hub to be used")
	}
}

func TestServer_Healthz(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("Expected 200 ok, got %d %q", resp.StatusCode, body)
	}
}

func TestServer_Health(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Data struct {
			Status string `json:"status"`
			Cards  int    `json:"cards"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Data.Status != "healthy" || body.Data.Cards != 45 {
		t.Errorf("Unexpected health response: %+v", body.Data)
	}
}

func TestServer_CardRoutes(t *testing.T) {
	_, ts := newTestServer(t, nil)

	tests := []struct {
		target         string
		expectedStatus int
	}{
		{"/api/v1/cards?page=2", http.StatusOK},
		{"/api/v1/cards/facets", http.StatusOK},
		{"/api/v1/cards/stats", http.StatusOK},
		{"/api/v1/cards/7", http.StatusOK},
		{"/api/v1/cards/999", http.StatusNotFound},
		{"/api/v1/charts?by=race", http.StatusOK},
		{"/api/v1/system/status", http.StatusOK},
		{"/api/v1/settings/language", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.target)
			if err != nil {
				t.Fatalf("GET failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}
		})
	}
}

func TestServer_LanguageRoutes(t *testing.T) {
	dbConfig := storage.DefaultConfig(":memory:")
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc, err := settings.NewService(settings.Config{
		Repo:            repository.NewPreferences(db.Conn()),
		DefaultLanguage: "zh",
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	deps := testDeps(t, 3)
	deps.Settings = svc
	server, err := NewServer(nil, deps)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	do := func(method, body string) string {
		t.Helper()
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req, _ := http.NewRequest(method, ts.URL+"/api/v1/settings/language", reader)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s failed: %v", method, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", method, resp.StatusCode)
		}
		var out struct {
			Data struct {
				Language string `json:"language"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		return out.Data.Language
	}

	if got := do(http.MethodGet, ""); got != "zh" {
		t.Errorf("Expected default zh, got %s", got)
	}
	if got := do(http.MethodPut, `{"language":"en"}`); got != "en" {
		t.Errorf("Expected en after PUT, got %s", got)
	}
	if got := do(http.MethodDelete, ""); got != "zh" {
		t.Errorf("Expected zh after DELETE, got %s", got)
	}
	if got := do(http.MethodGet, ""); got != "zh" {
		t.Errorf("Expected the default to stick after reset, got %s", got)
	}
}

func TestServer_SessionLifecycle(t *testing.T) {
	server, ts := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/api/v1/sessions", "application/json", nil)
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	err = json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201 with a session, got %d (%v)", resp.StatusCode, err)
	}

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/sessions/"+created.Data.ID+"/page",
		strings.NewReader(`{"page":3}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	s, err := server.sessions.Get(created.Data.ID)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if page := s.View().Page; page != 3 {
		t.Errorf("Expected page 3, got %d", page)
	}

	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/sessions/"+created.Data.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", resp.StatusCode)
	}
}

func TestServer_RejectsNonJSONBody(t *testing.T) {
	server, ts := newTestServer(t, nil)
	s := server.sessions.Create()

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/sessions/"+s.ID()+"/page",
		strings.NewReader(`page=3`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Errorf("Expected 415, got %d", resp.StatusCode)
	}
}

func TestServer_StaticFilesCacheControl(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"index.html":  "<html></html>",
		"card.json":   `{"data":[]}`,
		"script.js":   "console.log(1)",
		"Backup.JSON": `{"data":[]}`,
		"STYLE.CSS":   "body{}",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	cfg := DefaultConfig()
	cfg.StaticDir = dir
	_, ts := newTestServer(t, cfg)

	tests := []struct {
		path          string
		expectedCache string
	}{
		{"/card.json", "no-store"},
		{"/script.js", "public, max-age=3600"},
		{"/Backup.JSON", "no-store"},
		{"/STYLE.CSS", "public, max-age=3600"},
		{"/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatalf("GET failed: %v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("Expected 200, got %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Cache-Control"); got != tt.expectedCache {
				t.Errorf("Expected Cache-Control %q, got %q", tt.expectedCache, got)
			}
		})
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:*", "https://cards.example.com"})

	tests := []struct {
		origin   string
		expected bool
	}{
		{"", true},
		{"http://localhost:5173", true},
		{"https://cards.example.com", true},
		{"http://evil.example.com", false},
		{"http://localhost.evil.com:80", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if got := check(req); got != tt.expected {
			t.Errorf("origin %q: expected %v, got %v", tt.origin, tt.expected, got)
		}
	}
}

func TestServer_WebSocketReceivesDispatchedEvents(t *testing.T) {
	server, ts := newTestServer(t, nil)

	dispatcher := events.NewEventDispatcher()
	dispatcher.Register(server.NewWebSocketObserver())

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	read := func() apiwebsocket.Event {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, message, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Failed to read message: %v", err)
		}
		var event apiwebsocket.Event
		if err := json.Unmarshal(message, &event); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		return event
	}

	if event := read(); event.Type != apiwebsocket.TypeSession {
		t.Fatalf("Expected session event first, got %s", event.Type)
	}

	deadline := time.Now().Add(time.Second)
	for server.wsHub.ClientCount() < 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	dispatcher.Dispatch(events.NewTypedEvent(context.Background(), events.CatalogReloaded,
		events.CatalogReloadedEvent{Source: "card.json", Cards: 45}))

	event := read()
	if event.Type != events.CatalogReloaded {
		t.Fatalf("Expected %s, got %s", events.CatalogReloaded, event.Type)
	}
	data, ok := event.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected object payload, got %T", event.Data)
	}
	if data["cards"] != float64(45) {
		t.Errorf("Expected cards=45, got %v", data["cards"])
	}
}

func TestServer_Shutdown_NotStarted(t *testing.T) {
	server, err := NewServer(nil, testDeps(t, 1))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	if err := server.Shutdown(context.Background()); err != nil {
		t.Errorf("Expected no error on shutdown of non-started server, got %v", err)
	}
}
