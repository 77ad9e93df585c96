package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadSettle is how long the watcher waits after the last write before reloading,
// so that a file being rewritten in several chunks is read once complete.
const reloadSettle = 250 * time.Millisecond

// Watcher reloads a file-backed catalog into a Store whenever the file changes.
type Watcher struct {
	path     string
	store    *Store
	loader   *Loader
	logger   *slog.Logger
	onReload func(*Snapshot)
}

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	Path     string
	Store    *Store
	Logger   *slog.Logger
	OnReload func(*Snapshot) // called after each successful reload
}

// NewWatcher creates a watcher for the dataset file at cfg.Path.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Watcher{
		path:     cfg.Path,
		store:    cfg.Store,
		loader:   NewLoader(FileSource{Path: cfg.Path}, cfg.Logger),
		logger:   cfg.Logger,
		onReload: cfg.OnReload,
	}, nil
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// Watch the directory: editors and downloaders replace the file by rename.
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	target := filepath.Clean(w.path)

	w.logger.Info("Watching card catalog for changes", "path", w.path)

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				settle = time.After(reloadSettle)
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("File watcher error", "error", werr)
		case <-settle:
			settle = nil
			w.Reload(ctx)
		}
	}
}

// Reload loads the file once and publishes it. The previous dataset stays
// in place when loading fails.
func (w *Watcher) Reload(ctx context.Context) bool {
	ds, err := w.loader.Load(ctx)
	if err != nil {
		w.logger.Warn("Catalog reload failed, keeping previous dataset", "error", err)
		return false
	}
	snap := w.store.Replace(ds)
	if w.onReload != nil {
		w.onReload(snap)
	}
	return true
}
