package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/metrics"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Handle is a managed session. All access is serialized by its mutex, which
// makes the session a single logical thread even when driven from HTTP
// handlers, websocket readers and debounce timers at once.
type Handle struct {
	id      string
	dataset *catalog.Dataset
	facets  catalog.Facets
	created time.Time

	mu       sync.Mutex
	input    *Input
	lastSeen time.Time
	now      func() time.Time
}

// ID returns the session identifier.
func (h *Handle) ID() string {
	return h.id
}

// Dataset returns the dataset the session was created with.
func (h *Handle) Dataset() *catalog.Dataset {
	return h.dataset
}

// Facets returns the races and archetypes of the session's dataset. They do
// not change when the catalog is reloaded.
func (h *Handle) Facets() catalog.Facets {
	return h.facets
}

// Update runs fn with exclusive access to the session input and returns the
// resulting view.
func (h *Handle) Update(fn func(in *Input)) View {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastSeen = h.now()
	fn(h.input)
	return h.input.ctrl.View()
}

// View returns the current view.
func (h *Handle) View() View {
	return h.Update(func(*Input) {})
}

// OnChange registers a listener for every state change of the session,
// including debounced query applications.
func (h *Handle) OnChange(fn func(View)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.input.ctrl.OnChange(fn)
}

func (h *Handle) idleSince() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastSeen
}

func (h *Handle) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.input.Close()
}

// locked runs fn under the session lock; used for debounced calls.
func (h *Handle) locked(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn()
}

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	Store    *catalog.Store
	PageSize int
	Debounce time.Duration
	IdleTTL  time.Duration
	Clock    Clock
	Logger   *slog.Logger
	Latency  *metrics.Histogram
	Now      func() time.Time
	OnExpire func(removed, remaining int) // called after a sweep removes sessions
}

// Manager owns the live sessions of a server process.
type Manager struct {
	store    *catalog.Store
	pageSize int
	debounce time.Duration
	idleTTL  time.Duration
	clock    Clock
	logger   *slog.Logger
	latency  *metrics.Histogram
	now      func() time.Time
	onExpire func(removed, remaining int)

	mu       sync.RWMutex
	sessions map[string]*Handle
}

// NewManager creates a session manager.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = catalog.DefaultPageSize
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Latency == nil {
		cfg.Latency = metrics.NewHistogram(0)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Manager{
		store:    cfg.Store,
		pageSize: cfg.PageSize,
		debounce: cfg.Debounce,
		idleTTL:  cfg.IdleTTL,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		latency:  cfg.Latency,
		now:      cfg.Now,
		onExpire: cfg.OnExpire,
		sessions: make(map[string]*Handle),
	}, nil
}

// Create starts a session over the catalog's current dataset.
func (m *Manager) Create() *Handle {
	snap := m.store.Snapshot()
	ds := snap.Dataset
	now := m.now()

	h := &Handle{
		id:       uuid.NewString(),
		dataset:  ds,
		facets:   snap.Facets,
		created:  now,
		lastSeen: now,
		now:      m.now,
	}
	ctrl := NewController(ds,
		WithPageSize(m.pageSize),
		WithFilterHook(m.latency.Record),
	)
	h.input = NewInput(ctrl, NewDebouncer(m.debounce, m.clock), h.locked)

	m.mu.Lock()
	m.sessions[h.id] = h
	m.mu.Unlock()

	m.logger.Debug("Session created", "id", h.id, "cards", ds.Len())
	return h
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Handle, error) {
	m.mu.RLock()
	h, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return h, nil
}

// Delete ends a session. It reports whether the session existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	h, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		h.close()
		m.logger.Debug("Session deleted", "id", id)
	}
	return ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Latency returns the refilter latency histogram shared by all sessions.
func (m *Manager) Latency() *metrics.Histogram {
	return m.latency
}

// Sweep removes sessions idle for longer than the idle TTL and returns how
// many were removed. A zero TTL disables expiry.
func (m *Manager) Sweep(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}

	m.mu.RLock()
	var expired []string
	for id, h := range m.sessions {
		if now.Sub(h.idleSince()) > m.idleTTL {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	removed := 0
	for _, id := range expired {
		if m.Delete(id) {
			removed++
		}
	}
	if removed > 0 {
		remaining := m.Len()
		m.logger.Info("Expired idle sessions", "removed", removed, "remaining", remaining)
		if m.onExpire != nil {
			m.onExpire(removed, remaining)
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	if m.idleTTL <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(m.now())
		}
	}
}
