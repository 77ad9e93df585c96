package session

import (
	"errors"
	"testing"
	"time"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
)

func newTestManager(t *testing.T, clock Clock, now func() time.Time) *Manager {
	t.Helper()
	m, err := NewManager(ManagerConfig{
		Store:   catalog.NewStore(makeDataset(45)),
		Clock:   clock,
		IdleTTL: 10 * time.Minute,
		Now:     now,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func TestNewManager_RequiresStore(t *testing.T) {
	if _, err := NewManager(ManagerConfig{}); err == nil {
		t.Error("Expected error without a store")
	}
}

func TestManager_CreateGetDelete(t *testing.T) {
	m := newTestManager(t, NewManualClock(), nil)

	h := m.Create()
	if h.ID() == "" {
		t.Fatal("Expected a session ID")
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Len())
	}

	got, err := m.Get(h.ID())
	if err != nil || got != h {
		t.Fatalf("Get returned %v, %v", got, err)
	}

	if !m.Delete(h.ID()) {
		t.Error("Expected Delete to report an existing session")
	}
	if _, err := m.Get(h.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
	if m.Delete(h.ID()) {
		t.Error("Expected second Delete to report false")
	}
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	m := newTestManager(t, NewManualClock(), nil)
	a, b := m.Create(), m.Create()

	a.Update(func(in *Input) { in.GoToPage(3) })

	if a.View().Page != 3 || b.View().Page != 1 {
		t.Errorf("Expected pages 3 and 1, got %d and %d", a.View().Page, b.View().Page)
	}
}

func TestManager_DebouncedQueryNotifies(t *testing.T) {
	clock := NewManualClock()
	m := newTestManager(t, clock, nil)
	h := m.Create()

	var pushed []View
	h.OnChange(func(v View) { pushed = append(pushed, v) })

	h.Update(func(in *Input) { in.TypeQuery("Card 04") })
	if len(pushed) != 0 {
		t.Fatalf("Expected no push before the pause, got %d", len(pushed))
	}

	clock.Advance(DefaultDebounce)
	if len(pushed) != 1 {
		t.Fatalf("Expected one push after the pause, got %d", len(pushed))
	}
	if pushed[0].FilteredCount != 6 {
		t.Errorf("Expected 6 matches for 'Card 04', got %d", pushed[0].FilteredCount)
	}
}

func TestManager_SessionKeepsDatasetAcrossReload(t *testing.T) {
	store := catalog.NewStore(makeDataset(45))
	m, err := NewManager(ManagerConfig{Store: store, Clock: NewManualClock()})
	if err != nil {
		t.Fatal(err)
	}

	old := m.Create()
	store.Replace(makeDataset(5))
	fresh := m.Create()

	if old.View().TotalCount != 45 {
		t.Errorf("Expected existing session to keep 45 cards, got %d", old.View().TotalCount)
	}
	if fresh.View().TotalCount != 5 {
		t.Errorf("Expected new session to see 5 cards, got %d", fresh.View().TotalCount)
	}
	if old.Dataset() == fresh.Dataset() {
		t.Error("Expected different datasets")
	}
}

func TestManager_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := newTestManager(t, NewManualClock(), func() time.Time { return now })

	idle := m.Create()
	active := m.Create()

	now = now.Add(8 * time.Minute)
	active.View()
	now = now.Add(5 * time.Minute)

	if removed := m.Sweep(now); removed != 1 {
		t.Fatalf("Expected 1 expired session, got %d", removed)
	}
	if _, err := m.Get(idle.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected idle session to be removed")
	}
	if _, err := m.Get(active.ID()); err != nil {
		t.Error("Expected active session to survive")
	}
}

func TestManager_LatencyRecorded(t *testing.T) {
	m := newTestManager(t, NewManualClock(), nil)
	h := m.Create()
	h.Update(func(in *Input) { in.SelectRace("Warrior") })

	if got := m.Latency().Total(); got != 2 {
		t.Errorf("Expected 2 recorded filter passes, got %d", got)
	}
}

func TestManager_OnExpire(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var removed, remaining int
	m, err := NewManager(ManagerConfig{
		Store:   catalog.NewStore(makeDataset(3)),
		Clock:   NewManualClock(),
		IdleTTL: time.Minute,
		Now:     func() time.Time { return now },
		OnExpire: func(r, left int) {
			removed, remaining = r, left
		},
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	m.Create()
	m.Create()

	if m.Sweep(now); removed != 0 {
		t.Fatalf("Expected no callback without expiry, got removed=%d", removed)
	}

	m.Sweep(now.Add(2 * time.Minute))
	if removed != 2 || remaining != 0 {
		t.Errorf("Expected removed=2 remaining=0, got removed=%d remaining=%d", removed, remaining)
	}
}

func TestManager_FacetsSurviveReload(t *testing.T) {
	m := newTestManager(t, NewManualClock(), nil)
	old := m.Create()

	m.store.Replace(blueEyesDataset())
	fresh := m.Create()

	if got := old.Facets().Races; len(got) != 1 || got[0] != "Warrior" {
		t.Errorf("Expected the original races [Warrior], got %v", got)
	}
	if old.Dataset().Len() != 45 {
		t.Errorf("Expected the original 45 cards, got %d", old.Dataset().Len())
	}
	if !fresh.Facets().HasRace("Dragon") || fresh.Facets().HasRace("Warrior") {
		t.Errorf("Expected the reloaded races, got %v", fresh.Facets().Races)
	}
}
