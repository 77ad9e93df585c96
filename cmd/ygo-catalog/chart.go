package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/charts"
)

var chartOpts struct {
	by     string
	kind   string
	limit  int
	out    string
	open   bool
	source string
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the card distribution as an HTML chart",
	Args:  cobra.NoArgs,
	RunE:  runChart,
}

func init() {
	f := chartCmd.Flags()
	f.StringVar(&chartOpts.by, "by", "type", "dimension: type, race or archetype")
	f.StringVar(&chartOpts.kind, "kind", "bar", "chart kind: bar or pie")
	f.IntVar(&chartOpts.limit, "limit", 25, "largest values shown, the rest are grouped (0 for all)")
	f.StringVar(&chartOpts.out, "out", "chart.html", "output HTML file")
	f.BoolVar(&chartOpts.open, "open", false, "open the chart in the browser")
	addSourceFlag(chartCmd, &chartOpts.source)
}

func runChart(cmd *cobra.Command, args []string) error {
	ds, err := loadCatalog(cmd.Context(), chartOpts.source)
	if err != nil {
		return err
	}

	stats := catalog.ComputeStats(ds.Cards())
	counts, title, err := charts.Distribution(stats, chartOpts.by)
	if err != nil {
		return err
	}

	config := charts.DefaultChartConfig()
	config.Title = title
	config.Subtitle = fmt.Sprintf("%d cards", stats.Total)
	config.Limit = chartOpts.limit

	var render func(io.Writer) error
	switch chartOpts.kind {
	case "bar":
		render = func(w io.Writer) error { return charts.RenderDistribution(w, counts, config) }
	case "pie":
		render = func(w io.Writer) error { return charts.RenderShare(w, counts, config) }
	default:
		return fmt.Errorf("unknown chart kind %q: use bar or pie", chartOpts.kind)
	}

	if err := charts.RenderToFile(chartOpts.out, render); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Chart written to %s\n", chartOpts.out)

	if chartOpts.open {
		return charts.OpenInBrowser(chartOpts.out)
	}
	return nil
}
