package events

import "time"

// CatalogReloadedEvent is the payload for catalog:reloaded events.
// Sent when the watcher swaps in a new dataset. Existing sessions keep
// browsing the dataset they were created with.
type CatalogReloadedEvent struct {
	Source   string    `json:"source"`
	Cards    int       `json:"cards"`
	Races    int       `json:"races"`
	LoadedAt time.Time `json:"loadedAt"`
}

// LanguageChangedEvent is the payload for settings:language events.
type LanguageChangedEvent struct {
	Language string `json:"language"`
	Previous string `json:"previous,omitempty"`
}

// SessionsExpiredEvent is the payload for sessions:expired events.
type SessionsExpiredEvent struct {
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}
