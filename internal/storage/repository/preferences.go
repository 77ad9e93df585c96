// Package repository provides typed access to the tables in the preference database.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrSettingNotFound is returned when a preference key has never been stored.
var ErrSettingNotFound = errors.New("setting not found")

// Preferences stores JSON-encoded user preferences in the settings table.
type Preferences struct {
	db  *sql.DB
	now func() time.Time
}

// NewPreferences returns a Preferences backed by db.
func NewPreferences(db *sql.DB) *Preferences {
	return &Preferences{db: db, now: time.Now}
}

// Load decodes the value stored under key into target.
func (p *Preferences) Load(ctx context.Context, key string, target any) error {
	var raw string
	err := p.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrSettingNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to read preference %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("failed to decode preference %s: %w", key, err)
	}
	return nil
}

// Store saves value under key, replacing any previous value.
func (p *Preferences) Store(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode preference %s: %w", key, err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(encoded), p.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store preference %s: %w", key, err)
	}
	return nil
}

// Remove deletes key and reports whether a value was stored.
func (p *Preferences) Remove(ctx context.Context, key string) (bool, error) {
	res, err := p.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key)
	if err != nil {
		return false, fmt.Errorf("failed to remove preference %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove preference %s: %w", key, err)
	}
	return n > 0, nil
}
