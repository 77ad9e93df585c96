package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Loader retrieves the card collection once per session.
type Loader struct {
	source Source
	logger *slog.Logger
}

// NewLoader creates a loader for the given source.
func NewLoader(source Source, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: source, logger: logger}
}

// Load reads and parses the dataset. Any failure yields a *LoadError and a nil dataset.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	name := l.source.Name()

	rc, err := l.source.Open(ctx)
	if err != nil {
		return nil, &LoadError{Op: "open", Source: name, Err: err}
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &LoadError{Op: "read", Source: name, Err: err}
	}

	cards, err := parseCards(data, l.logger)
	if err != nil {
		return nil, &LoadError{Op: "parse", Source: name, Err: err}
	}

	ds := newDataset(cards, name, time.Now())
	l.logger.Info("Card catalog loaded",
		"source", name,
		"cards", ds.Len(),
		"elapsed", time.Since(start))
	return ds, nil
}

// ParseDataset parses a `{"data": [...]}` document into a dataset.
func ParseDataset(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	cards, err := parseCards(data, slog.Default())
	if err != nil {
		return nil, err
	}
	return NewDataset(cards), nil
}

// parseCards extracts the card list from the wrapper document.
// A payload that is not JSON, or is null, is an error. Any other document
// without a usable data array is an empty collection.
func parseCards(data []byte, logger *slog.Logger) ([]Card, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrNullDocument
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		logger.Warn("Card document is not an object, using empty catalog")
		return []Card{}, nil
	}

	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("parse wrapper: %w", err)
	}

	if len(wrapper.Data) == 0 || bytes.Equal(bytes.TrimSpace(wrapper.Data), []byte("null")) {
		logger.Warn("Card document has no data field, using empty catalog")
		return []Card{}, nil
	}

	var cards []Card
	if err := json.Unmarshal(wrapper.Data, &cards); err != nil {
		logger.Warn("Card document data field is malformed, using empty catalog", "error", err)
		return []Card{}, nil
	}
	if cards == nil {
		cards = []Card{}
	}
	return cards, nil
}
