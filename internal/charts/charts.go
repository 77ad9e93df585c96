// Package charts renders card distribution charts as standalone HTML pages.
package charts

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string   // Chart title
	Subtitle   string   // Chart subtitle
	SeriesName string   // Legend entry
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	Limit      int      // Keep the largest N values and fold the rest into "Other" (0 = all)
	Colors     []string // Custom colors
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		SeriesName: "Cards",
		Width:      "1100px",
		Height:     "560px",
		Theme:      "light",
		ShowLegend: false,
		Limit:      25,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

// Distribution selects the counts of one stats dimension: "type" (the
// default), "race" or "archetype". It also returns a chart title.
func Distribution(s catalog.Stats, by string) ([]catalog.Count, string, error) {
	switch by {
	case "", "type":
		return s.ByType, "Cards by type", nil
	case "race":
		return s.ByRace, "Cards by race", nil
	case "archetype":
		return s.ByArchetype, "Cards by archetype", nil
	default:
		return nil, "", fmt.Errorf("unknown dimension %q: use type, race or archetype", by)
	}
}

// OtherLabel is the bucket collecting values beyond the limit.
const OtherLabel = "Other"

// Fold keeps the first limit counts and sums the rest into an "Other" entry.
// counts are expected in descending order, as catalog.ComputeStats returns them.
func Fold(counts []catalog.Count, limit int) []catalog.Count {
	if limit <= 0 || len(counts) <= limit {
		return counts
	}

	out := make([]catalog.Count, limit, limit+1)
	copy(out, counts[:limit])

	other := 0
	for _, c := range counts[limit:] {
		other += c.Count
	}
	return append(out, catalog.Count{Value: OtherLabel, Count: other})
}

func globalOptions(config ChartConfig) []charts.GlobalOpts {
	colors := config.Colors
	if len(colors) == 0 {
		colors = DefaultChartConfig().Colors
	}
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors(colors)),
	}
}

// RenderDistribution writes a bar chart of counts as an HTML page.
func RenderDistribution(w io.Writer, counts []catalog.Count, config ChartConfig) error {
	counts = Fold(counts, config.Limit)

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOptions(config),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{Rotate: 45, Interval: "0"},
		}),
	)...)

	xLabels := make([]string, len(counts))
	yData := make([]opts.BarData, len(counts))
	for i, c := range counts {
		xLabels[i] = c.Value
		yData[i] = opts.BarData{Value: c.Count}
	}

	bar.SetXAxis(xLabels).
		AddSeries(config.SeriesName, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:     opts.Bool(true),
				Position: "top",
			}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// RenderShare writes a pie chart of counts as an HTML page.
func RenderShare(w io.Writer, counts []catalog.Count, config ChartConfig) error {
	counts = Fold(counts, config.Limit)

	pie := charts.NewPie()
	pie.SetGlobalOptions(globalOptions(config)...)

	data := make([]opts.PieData, len(counts))
	for i, c := range counts {
		data[i] = opts.PieData{Name: c.Value, Value: c.Count}
	}

	pie.AddSeries(config.SeriesName, data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}: {c}",
			}),
		)

	if err := pie.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// RenderToFile renders with render into a new file at outputPath.
func RenderToFile(outputPath string, render func(io.Writer) error) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// OpenInBrowser opens the given file path or URL in the default web browser.
func OpenInBrowser(target string) error {
	if !isURL(target) {
		absPath, err := filepath.Abs(target)
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %w", err)
		}
		target = absPath
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	case "linux":
		cmd = exec.Command("xdg-open", target)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
