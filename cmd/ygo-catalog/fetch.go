package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/ygoprodeck"
)

var fetchOpts struct {
	out string
	url string
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the card collection from YGOPRODeck",
	Long: `Downloads every card from the YGOPRODeck cardinfo endpoint and writes it
as an indented card.json. The existing file is only replaced once the
download is complete and valid.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchOpts.out, "out", "", "output file (default: catalog source from config)")
	fetchCmd.Flags().StringVar(&fetchOpts.url, "url", "", "cardinfo endpoint (default from config)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	out := fetchOpts.out
	if out == "" {
		out = cfg.Catalog.Source
	}
	if _, ok := catalog.SourceFor(out).(catalog.FileSource); !ok {
		return fmt.Errorf("output must be a file path, got %s", out)
	}
	url := fetchOpts.url
	if url == "" {
		url = cfg.Catalog.RemoteURL
	}

	client := ygoprodeck.NewClient(ygoprodeck.WithBaseURL(url), ygoprodeck.WithLogger(logger))
	fmt.Fprintf(cmd.OutOrStdout(), "Fetching cards from %s...\n", client.BaseURL())

	n, err := client.Download(cmd.Context(), out)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %d bytes to %s\n", n, out)
	return nil
}
