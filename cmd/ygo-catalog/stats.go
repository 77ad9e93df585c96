package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/display"
)

var statsOpts struct {
	limit  int
	source string
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the filter values and card counts of the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadCatalog(cmd.Context(), statsOpts.source)
		if err != nil {
			return err
		}

		cards := ds.Cards()
		p := display.NewPrinter(cmd.OutOrStdout(), displayLanguage(cmd.Context()))
		p.PrintFacets(catalog.ExtractFacets(cards))
		fmt.Fprintln(cmd.OutOrStdout())
		p.PrintStats(catalog.ComputeStats(cards), statsOpts.limit)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsOpts.limit, "limit", 10, "values listed per dimension (0 for all)")
	addSourceFlag(statsCmd, &statsOpts.source)
}
