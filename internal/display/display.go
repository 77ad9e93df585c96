// Package display renders catalog pages and card details as plain text.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/session"
)

const rule = "═══════════════════════════════════════════════════════════════"

// Printer writes views and cards to w.
type Printer struct {
	w      io.Writer
	labels Labels
}

// NewPrinter creates a printer using the labels of lang.
func NewPrinter(w io.Writer, lang string) *Printer {
	return &Printer{w: w, labels: LabelsFor(lang)}
}

// Labels returns the labels in use.
func (p *Printer) Labels() Labels {
	return p.labels
}

// PrintPage writes the current page of a view: counts, one line per card and
// the page indicator.
func (p *Printer) PrintPage(v session.View) {
	l := p.labels
	fmt.Fprintf(p.w, "%s: %d  %s: %d\n", l.Total, v.TotalCount, l.Filtered, v.FilteredCount)
	fmt.Fprintln(p.w, rule)

	if v.NoResults {
		fmt.Fprintln(p.w, l.NoResults)
		return
	}

	for _, c := range v.Items {
		fmt.Fprintln(p.w, CardLine(c))
	}

	if v.ShowPagination {
		fmt.Fprintln(p.w, rule)
		fmt.Fprintf(p.w, "%s %d/%d\n", l.Page, v.Page, v.TotalPages)
	}
}

// CardLine is the one-line summary of a card used in listings.
func CardLine(c catalog.Card) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10d %s", c.ID, c.Name)

	var tags []string
	for _, t := range []string{c.Type, c.Race, c.Archetype} {
		if t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) > 0 {
		fmt.Fprintf(&b, "  [%s]", strings.Join(tags, " / "))
	}

	if stats := statLine(c); stats != "" {
		fmt.Fprintf(&b, "  %s", stats)
	}
	return b.String()
}

func statLine(c catalog.Card) string {
	var parts []string
	if c.ATK != nil {
		parts = append(parts, "ATK "+strconv.Itoa(*c.ATK))
	}
	if c.DEF != nil {
		parts = append(parts, "DEF "+strconv.Itoa(*c.DEF))
	}
	if c.Level != nil {
		parts = append(parts, "LV "+strconv.Itoa(*c.Level))
	}
	if c.LinkVal != nil {
		parts = append(parts, "LINK-"+strconv.Itoa(*c.LinkVal))
	}
	return strings.Join(parts, " ")
}

// PrintCard writes the detail panel of a card.
func (p *Printer) PrintCard(c catalog.Card) {
	l := p.labels

	fmt.Fprintln(p.w, rule)
	fmt.Fprintf(p.w, "%s (#%d)\n", c.Name, c.ID)
	fmt.Fprintln(p.w, rule)

	fmt.Fprintf(p.w, "├─ %s\n", orDefault(c.Type, l.UnknownType))
	fmt.Fprintf(p.w, "├─ %s\n", orDefault(c.Race, l.NoRace))
	fmt.Fprintf(p.w, "├─ %s\n", orDefault(c.Archetype, l.NoArchetype))
	if img := c.PrimaryImage(); img != "" {
		fmt.Fprintf(p.w, "└─ %s: %s\n", l.Image, img)
	}

	fmt.Fprintf(p.w, "\n%s\n", l.Stats)
	if c.HasStats() {
		for _, s := range []struct {
			label string
			value *int
		}{
			{l.ATK, c.ATK},
			{l.DEF, c.DEF},
			{l.Level, c.Level},
			{l.LinkVal, c.LinkVal},
		} {
			if s.value != nil {
				fmt.Fprintf(p.w, "  %s: %d\n", s.label, *s.value)
			}
		}
	} else {
		fmt.Fprintf(p.w, "  %s\n", l.NoStats)
	}

	fmt.Fprintf(p.w, "\n%s\n", orDefault(strings.TrimSpace(c.Desc), l.NoDescription))

	fmt.Fprintf(p.w, "\n%s\n", l.Sets)
	if len(c.CardSets) == 0 {
		fmt.Fprintf(p.w, "  %s\n", l.NoSets)
		return
	}
	for _, s := range c.CardSets {
		line := fmt.Sprintf("  %s (%s) | %s", s.SetName, s.SetCode, s.SetRarity)
		if price, ok := s.Price(); ok {
			line += fmt.Sprintf(" | %s: $%.2f", l.Price, price)
		}
		fmt.Fprintln(p.w, line)
	}
}

// PrintFacets writes the selectable values of each facet.
func (p *Printer) PrintFacets(f catalog.Facets) {
	l := p.labels
	fmt.Fprintf(p.w, "%s (%d)\n", l.Types, len(catalog.CardTypes))
	for _, t := range catalog.CardTypes {
		fmt.Fprintf(p.w, "  %s\n", t)
	}
	fmt.Fprintf(p.w, "\n%s (%d)\n", l.Races, len(f.Races))
	for _, r := range f.Races {
		fmt.Fprintf(p.w, "  %s\n", r)
	}
	fmt.Fprintf(p.w, "\n%s (%d)\n", l.Archetypes, len(f.Archetypes))
	for _, a := range f.Archetypes {
		fmt.Fprintf(p.w, "  %s\n", a)
	}
}

// PrintStats writes count tables of a stats summary.
func (p *Printer) PrintStats(s catalog.Stats, limit int) {
	l := p.labels
	fmt.Fprintf(p.w, "%s: %d\n", l.Total, s.Total)
	for _, section := range []struct {
		title  string
		counts []catalog.Count
	}{
		{l.Types, s.ByType},
		{l.Races, s.ByRace},
		{l.Archetypes, s.ByArchetype},
	} {
		fmt.Fprintf(p.w, "\n%s\n", section.title)
		for i, c := range section.counts {
			if limit > 0 && i >= limit {
				fmt.Fprintf(p.w, "  ... %d more\n", len(section.counts)-limit)
				break
			}
			fmt.Fprintf(p.w, "  %-32s %6d\n", c.Value, c.Count)
		}
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
