package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/ygo-catalog/internal/api"
	"github.com/ramonehamilton/ygo-catalog/internal/api/handlers"
	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/events"
	"github.com/ramonehamilton/ygo-catalog/internal/session"
)

// sweepInterval is how often idle sessions are expired.
const sweepInterval = time.Minute

var serveOpts struct {
	port   int
	source string
	static string
	watch  bool
	open   bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over HTTP and WebSocket",
	Long: `Starts the REST API under /api/v1, the WebSocket session endpoint at /ws
and, with --static, the web frontend at /.

With --watch, changes to a file-backed card.json are picked up without a
restart. Sessions that are already open keep browsing the data they started
with; new sessions see the new data.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&serveOpts.port, "port", 0, "listen port (default from config)")
	addSourceFlag(serveCmd, &serveOpts.source)
	serveCmd.Flags().StringVar(&serveOpts.static, "static", "", "frontend directory served at / (default from config)")
	serveCmd.Flags().BoolVar(&serveOpts.watch, "watch", false, "reload card.json when it changes")
	serveCmd.Flags().BoolVar(&serveOpts.open, "open", false, "open the browser once listening")
}

// serve runs the server until ctx is cancelled.
func serve(ctx context.Context) error {
	source := serveOpts.source
	if source == "" {
		source = cfg.Catalog.Source
	}
	port := serveOpts.port
	if port == 0 {
		port = cfg.Server.Port
	}
	staticDir := serveOpts.static
	if staticDir == "" {
		staticDir = cfg.Server.StaticDir
	}

	ds, err := loadCatalog(ctx, source)
	if err != nil {
		return err
	}
	store := catalog.NewStore(ds)

	dispatcher := events.NewEventDispatcher()
	dispatcher.Register(events.NewLoggingObserver(debug || cfg.App.DebugMode))

	debounce, err := cfg.GetDebounce()
	if err != nil {
		return err
	}
	idleTTL, err := cfg.GetIdleTTL()
	if err != nil {
		return err
	}

	sessions, err := session.NewManager(session.ManagerConfig{
		Store:    store,
		PageSize: cfg.Session.PageSize,
		Debounce: debounce,
		IdleTTL:  idleTTL,
		Logger:   logger,
		OnExpire: func(removed, remaining int) {
			dispatcher.DispatchAsync(events.NewTypedEvent(ctx, events.SessionsExpired, events.SessionsExpiredEvent{
				Removed:   removed,
				Remaining: remaining,
			}))
		},
	})
	if err != nil {
		return err
	}

	var langSvc handlers.LanguageService
	settingsSvc, db, err := openSettings(dispatcher)
	if err != nil {
		logger.Warn("Language preference unavailable", "error", err)
	} else {
		defer db.Close()
		langSvc = settingsSvc
	}

	server, err := api.NewServer(&api.Config{
		Port:           port,
		OpenBrowser:    serveOpts.open || cfg.Server.OpenBrowser,
		StaticDir:      staticDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		PageSize:       cfg.Session.PageSize,
	}, api.Deps{
		Store:    store,
		Sessions: sessions,
		Settings: langSvc,
	})
	if err != nil {
		return err
	}
	dispatcher.Register(server.NewWebSocketObserver())

	if serveOpts.watch || cfg.Catalog.Watch {
		if err := startWatcher(ctx, source, store, dispatcher); err != nil {
			return err
		}
	}

	go sessions.RunSweeper(ctx, sweepInterval)

	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info("Catalog server running", "url", fmt.Sprintf("http://localhost:%d", port), "cards", ds.Len())

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	logger.Info("Catalog server stopped")
	return nil
}

func startWatcher(ctx context.Context, source string, store *catalog.Store, dispatcher *events.EventDispatcher) error {
	fs, ok := catalog.SourceFor(source).(catalog.FileSource)
	if !ok {
		logger.Warn("Only file sources can be watched", "source", source)
		return nil
	}

	watcher, err := catalog.NewWatcher(catalog.WatcherConfig{
		Path:   fs.Path,
		Store:  store,
		Logger: logger,
		OnReload: func(snap *catalog.Snapshot) {
			dispatcher.Dispatch(events.NewTypedEvent(ctx, events.CatalogReloaded, events.CatalogReloadedEvent{
				Source:   snap.Dataset.Source(),
				Cards:    snap.Dataset.Len(),
				Races:    len(snap.Facets.Races),
				LoadedAt: snap.Dataset.LoadedAt(),
			}))
		},
	})
	if err != nil {
		return err
	}

	go func() {
		if err := watcher.Run(ctx); err != nil {
			logger.Error("Catalog watcher stopped", "error", err)
		}
	}()
	return nil
}
