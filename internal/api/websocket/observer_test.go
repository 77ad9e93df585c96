package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ramonehamilton/ygo-catalog/internal/events"
)

func TestWebSocketObserver_Basics(t *testing.T) {
	hub := NewHub()
	observer := NewWebSocketObserver(hub)

	if observer.GetName() != "WebSocketObserver" {
		t.Errorf("Expected name 'WebSocketObserver', got '%s'", observer.GetName())
	}
	for _, eventType := range []string{events.CatalogReloaded, events.LanguageChanged, "custom:event"} {
		if !observer.ShouldHandle(eventType) {
			t.Errorf("Expected ShouldHandle(%s) to return true", eventType)
		}
	}
}

func TestWebSocketObserver_OnEvent_NilHub(t *testing.T) {
	observer := &WebSocketObserver{name: "TestObserver"}

	if err := observer.OnEvent(events.Event{Type: "test:event"}); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestWebSocketObserver_ForwardsTypedData(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	conn := dialHub(t, hub)
	waitForClients(t, hub, 1)

	dispatcher := events.NewEventDispatcher()
	dispatcher.Register(NewWebSocketObserver(hub))
	dispatcher.Dispatch(events.NewTypedEvent(context.Background(), events.CatalogReloaded, events.CatalogReloadedEvent{
		Source:   "card.json",
		Cards:    12000,
		LoadedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}))

	event := readEvent(t, conn)
	if event.Type != events.CatalogReloaded {
		t.Fatalf("Expected type %s, got %s", events.CatalogReloaded, event.Type)
	}

	raw, _ := json.Marshal(event.Data)
	var payload events.CatalogReloadedEvent
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if payload.Cards != 12000 || payload.Source != "card.json" {
		t.Errorf("Unexpected payload: %+v", payload)
	}
}
