package main

import (
	"github.com/spf13/cobra"

	"github.com/ramonehamilton/ygo-catalog/internal/tui"
)

var browseSource string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadCatalog(cmd.Context(), browseSource)
		if err != nil {
			return err
		}

		debounce, err := cfg.GetDebounce()
		if err != nil {
			return err
		}
		return tui.Run(ds, tui.Options{
			Language: displayLanguage(cmd.Context()),
			PageSize: cfg.Session.PageSize,
			Debounce: debounce,
		})
	},
}

func init() {
	addSourceFlag(browseCmd, &browseSource)
}
