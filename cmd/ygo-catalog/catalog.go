package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
)

// addSourceFlag registers --source on cmd.
func addSourceFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "source", "", "card.json path or URL (default from config)")
}

// loadCatalog loads the dataset from source, or the configured source when empty.
func loadCatalog(ctx context.Context, source string) (*catalog.Dataset, error) {
	if source == "" {
		source = cfg.Catalog.Source
	}
	return catalog.NewLoader(catalog.SourceFor(source), logger).Load(ctx)
}
