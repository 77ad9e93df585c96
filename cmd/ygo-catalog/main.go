// Command ygo-catalog browses the Yu-Gi-Oh! card catalog from the terminal
// or serves it to a browser.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/config"
	"github.com/ramonehamilton/ygo-catalog/internal/display"
	"github.com/ramonehamilton/ygo-catalog/internal/settings"
)

var (
	configPath string
	debug      bool
	langFlag   string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ygo-catalog",
	Short: "Search and browse the Yu-Gi-Oh! card catalog",
	Long: `ygo-catalog loads the YGOPRODeck card collection (card.json) and lets you
search it by text, filter it by type, race and archetype, and page through
the results.

Run "ygo-catalog fetch" once to download card.json, then "ygo-catalog browse"
for the terminal browser or "ygo-catalog serve" for the web frontend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		level := slog.LevelInfo
		if debug || cfg.App.DebugMode {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.ygo-catalog/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "display language (zh or en), overrides the saved preference")

	rootCmd.AddCommand(fetchCmd, serveCmd, browseCmd, searchCmd, showCmd, statsCmd, chartCmd, langCmd, serviceCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if catalog.IsLoadError(err) {
			fmt.Fprintln(os.Stderr, retryMessage())
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// retryMessage is the load failure notice in the display language.
func retryMessage() string {
	if cfg == nil || logger == nil {
		lang, _ := settings.Normalize(langFlag)
		return display.LabelsFor(lang).LoadFailed
	}
	return display.LabelsFor(displayLanguage(context.Background())).LoadFailed
}
