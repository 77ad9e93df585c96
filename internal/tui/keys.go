package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "change value / page")),
		Right:     key.NewBinding(key.WithKeys("right")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "select")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close / clear")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Left, k.Up, k.Open, k.Back, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextFocus, k.PrevFocus},
		{k.Left, k.Up, k.Open},
		{k.Back, k.Quit},
	}
}
