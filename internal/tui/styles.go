// Package tui is an interactive terminal presenter for the card catalog.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#f5576c")
	muted   = lipgloss.Color("#8a8f98")
	primary = lipgloss.Color("#7aa2f7")
)

// Styles holds the lipgloss styles of the browser.
type Styles struct {
	Title    lipgloss.Style
	Focused  lipgloss.Style
	Blurred  lipgloss.Style
	Selected lipgloss.Style
	Footer   lipgloss.Style
	Empty    lipgloss.Style
	Detail   lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Focused:  lipgloss.NewStyle().Bold(true).Foreground(primary),
		Blurred:  lipgloss.NewStyle().Foreground(muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Footer:   lipgloss.NewStyle().Foreground(muted),
		Empty:    lipgloss.NewStyle().Italic(true).Foreground(muted),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
	}
}
