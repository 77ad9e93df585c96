package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/ygo-catalog/internal/events"
	"github.com/ramonehamilton/ygo-catalog/internal/settings"
	"github.com/ramonehamilton/ygo-catalog/internal/storage"
	"github.com/ramonehamilton/ygo-catalog/internal/storage/repository"
)

var langCmd = &cobra.Command{
	Use:   "lang [zh|en]",
	Short: "Show or save the display language",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLang,
}

var langReset bool

func init() {
	langCmd.Flags().BoolVar(&langReset, "reset", false, "forget the saved preference and use the configured default")
}

func runLang(cmd *cobra.Command, args []string) error {
	svc, db, err := openSettings(nil)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if langReset {
		if len(args) > 0 {
			return fmt.Errorf("--reset takes no language argument")
		}
		lang, err := svc.ResetLanguage(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Language reset to %s\n", lang)
		return nil
	}
	if len(args) == 0 {
		lang, err := svc.Language(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), lang)
		return nil
	}

	lang, err := svc.SetLanguage(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Language set to %s\n", lang)
	return nil
}

// openSettings opens the preference database and the settings service over it.
func openSettings(dispatcher *events.EventDispatcher) (*settings.Service, *storage.DB, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dbConfig := storage.DefaultConfig(dbPath)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	svc, err := settings.NewService(settings.Config{
		Repo:            repository.NewPreferences(db.Conn()),
		Dispatcher:      dispatcher,
		DefaultLanguage: cfg.App.DefaultLanguage,
		Logger:          logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return svc, db, nil
}

// displayLanguage resolves the language of printed output: --lang, then the
// saved preference, then the configured default.
func displayLanguage(ctx context.Context) string {
	if langFlag != "" {
		if lang, err := settings.Normalize(langFlag); err == nil {
			return lang
		}
		logger.Warn("Ignoring unsupported language", "language", langFlag)
	}

	svc, db, err := openSettings(nil)
	if err != nil {
		logger.Debug("Language preference unavailable", "error", err)
		if lang, err := settings.Normalize(cfg.App.DefaultLanguage); err == nil {
			return lang
		}
		return settings.SupportedLanguages[0]
	}
	defer db.Close()

	lang, err := svc.Language(ctx)
	if err != nil {
		logger.Debug("Failed to read language preference", "error", err)
		return settings.SupportedLanguages[0]
	}
	return lang
}
