package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// dirName is the per-user directory holding the config file and database.
const dirName = ".ygo-catalog"

// Config represents the application configuration.
type Config struct {
	// Card catalog source
	Catalog CatalogConfig `toml:"catalog"`

	// Browsing session behavior
	Session SessionConfig `toml:"session"`

	// HTTP server
	Server ServerConfig `toml:"server"`

	// Preference database
	Storage StorageConfig `toml:"storage"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// CatalogConfig contains dataset location settings.
type CatalogConfig struct {
	Source    string `toml:"source"`     // File path or http(s) URL of card.json
	Watch     bool   `toml:"watch"`      // Reload the file when it changes
	RemoteURL string `toml:"remote_url"` // Endpoint used by the fetch command
}

// SessionConfig contains browsing session settings.
type SessionConfig struct {
	PageSize int    `toml:"page_size"` // Cards per page
	Debounce string `toml:"debounce"`  // Search input quiescence window (e.g., "300ms")
	IdleTTL  string `toml:"idle_ttl"`  // Idle session expiry (e.g., "30m", "0" disables)
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port           int      `toml:"port"`
	StaticDir      string   `toml:"static_dir"`      // Optional directory served at /
	OpenBrowser    bool     `toml:"open_browser"`    // Open the browser once listening
	AllowedOrigins []string `toml:"allowed_origins"` // CORS origins
}

// StorageConfig contains database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"` // SQLite file; empty uses the default location
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode       bool   `toml:"debug_mode"`       // Enable debug logging
	DefaultLanguage string `toml:"default_language"` // Language used until the user picks one
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Source:    "card.json",
			Watch:     false,
			RemoteURL: "https://db.ygoprodeck.com/api/v7/cardinfo.php",
		},
		Session: SessionConfig{
			PageSize: 20,
			Debounce: "300ms",
			IdleTTL:  "30m",
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
		Storage: StorageConfig{
			DBPath: "",
		},
		App: AppConfig{
			DebugMode:       false,
			DefaultLanguage: "zh",
		},
	}
}

// Dir returns the per-user configuration directory, creating it if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// Path returns the default path of the configuration file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the default location.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from path. Returns default config if the
// file doesn't exist; keys missing from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the default location.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo saves the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Catalog.Source) == "" {
		return errors.New("catalog source cannot be empty")
	}

	if c.Session.PageSize <= 0 {
		return fmt.Errorf("page size must be positive: %d", c.Session.PageSize)
	}

	d, err := time.ParseDuration(c.Session.Debounce)
	if err != nil {
		return fmt.Errorf("invalid debounce %q: %w", c.Session.Debounce, err)
	}
	if d < 0 {
		return fmt.Errorf("debounce cannot be negative: %s", c.Session.Debounce)
	}

	ttl, err := time.ParseDuration(c.Session.IdleTTL)
	if err != nil {
		return fmt.Errorf("invalid idle TTL %q: %w", c.Session.IdleTTL, err)
	}
	if ttl < 0 {
		return fmt.Errorf("idle TTL cannot be negative: %s", c.Session.IdleTTL)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if strings.TrimSpace(c.App.DefaultLanguage) == "" {
		return errors.New("default language cannot be empty")
	}

	return nil
}

// GetDebounce returns the search debounce window as a duration.
func (c *Config) GetDebounce() (time.Duration, error) {
	return time.ParseDuration(c.Session.Debounce)
}

// GetIdleTTL returns the idle session expiry as a duration.
func (c *Config) GetIdleTTL() (time.Duration, error) {
	return time.ParseDuration(c.Session.IdleTTL)
}

// DBPath returns the configured database path, or the default location.
func (c *Config) DBPath() (string, error) {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data.db"), nil
}
