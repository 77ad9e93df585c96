package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/display"
)

var showSource string

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the details of one card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid card ID %q", args[0])
		}

		ds, err := loadCatalog(cmd.Context(), showSource)
		if err != nil {
			return err
		}

		card, ok := ds.ByID(id)
		if !ok {
			return fmt.Errorf("%w: %d", catalog.ErrCardNotFound, id)
		}
		display.NewPrinter(cmd.OutOrStdout(), displayLanguage(cmd.Context())).PrintCard(card)
		return nil
	},
}

func init() {
	addSourceFlag(showCmd, &showSource)
}
