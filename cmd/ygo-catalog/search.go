package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/display"
	"github.com/ramonehamilton/ygo-catalog/internal/session"
)

var searchOpts struct {
	criteria catalog.Criteria
	page     int
	source   string
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Print one page of cards matching the filters",
	Long: `Prints the cards matching every given filter. The query matches card names
and descriptions case-insensitively; --type, --race and --archetype must
match exactly (see "ygo-catalog stats" for the values).

Example:
  ygo-catalog search blue --race Dragon --page 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&searchOpts.criteria.Query, "query", "q", "", "text to search for")
	f.StringVar(&searchOpts.criteria.Type, "type", "", "exact card type")
	f.StringVar(&searchOpts.criteria.Race, "race", "", "exact race")
	f.StringVar(&searchOpts.criteria.Archetype, "archetype", "", "exact archetype")
	f.IntVar(&searchOpts.page, "page", 1, "page number")
	addSourceFlag(searchCmd, &searchOpts.source)
}

func runSearch(cmd *cobra.Command, args []string) error {
	criteria := searchOpts.criteria
	if len(args) == 1 {
		criteria.Query = args[0]
	}

	ds, err := loadCatalog(cmd.Context(), searchOpts.source)
	if err != nil {
		return err
	}

	ctrl := session.NewController(ds, session.WithPageSize(cfg.Session.PageSize))
	ctrl.SetCriteria(criteria)
	if searchOpts.page != 1 && !ctrl.GoToPage(searchOpts.page) {
		return fmt.Errorf("page %d out of range [1, %d]", searchOpts.page, ctrl.TotalPages())
	}

	display.NewPrinter(cmd.OutOrStdout(), displayLanguage(cmd.Context())).PrintPage(ctrl.View())
	return nil
}
