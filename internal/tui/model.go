package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
	"github.com/ramonehamilton/ygo-catalog/internal/display"
	"github.com/ramonehamilton/ygo-catalog/internal/session"
)

type focus int

const (
	focusSearch focus = iota
	focusType
	focusRace
	focusArchetype
	focusList
	focusCount
)

// Facet pickers, indexed by focus-focusType.
const (
	pickType = iota
	pickRace
	pickArchetype
)

// applyMsg carries a debounced search application onto the program loop.
type applyMsg struct {
	fn func()
}

// Options configures the browser.
type Options struct {
	Language string
	PageSize int
	Debounce time.Duration
	Clock    session.Clock
}

// Model is the bubbletea model of the catalog browser.
type Model struct {
	input   *session.Input
	search  textinput.Model
	pickers [3]picker
	keys    keyMap
	help    help.Model
	styles  Styles
	labels  display.Labels
	lang    string

	focus  focus
	view   session.View
	cursor int
	detail *catalog.Card
	width  int
}

// NewModel creates a browser over ds. Debounced search text is handed to
// send, which must deliver the message back to the model's Update.
func NewModel(ds *catalog.Dataset, send func(tea.Msg), opts Options) Model {
	if opts.Debounce <= 0 {
		opts.Debounce = session.DefaultDebounce
	}
	labels := display.LabelsFor(opts.Language)

	ctrl := session.NewController(ds, session.WithPageSize(opts.PageSize))
	dispatch := func(fn func()) { send(applyMsg{fn: fn}) }
	input := session.NewInput(ctrl, session.NewDebouncer(opts.Debounce, opts.Clock), dispatch)

	search := textinput.New()
	search.Prompt = "> "
	search.Placeholder = "search name or description"
	search.CharLimit = 120
	search.Focus()

	facets := catalog.ExtractFacets(ds.Cards())

	return Model{
		input:  input,
		search: search,
		pickers: [3]picker{
			pickType:      {label: labels.Types, values: catalog.CardTypes},
			pickRace:      {label: labels.Races, values: facets.Races},
			pickArchetype: {label: labels.Archetypes, values: facets.Archetypes},
		},
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: DefaultStyles(),
		labels: labels,
		lang:   opts.Language,
		view:   ctrl.View(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case applyMsg:
		msg.fn()
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.input.Close()
		return m, tea.Quit
	}

	if m.detail != nil {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
			m.detail = nil
		case key.Matches(msg, m.keys.Quit):
			m.input.Close()
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextFocus):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.PrevFocus):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.input.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.step(-1)
	case key.Matches(msg, m.keys.Right):
		m.step(1)
	case key.Matches(msg, m.keys.Up):
		if m.focus == focusList && m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.focus == focusList && m.cursor < len(m.view.Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.focus == focusList && len(m.view.Items) > 0 {
			card := m.view.Items[m.cursor]
			m.detail = &card
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.input.ClearQuery()
			m.refresh()
		}
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.input.TypeQuery(after)
	}
	return m, cmd
}

// step moves the focused picker or, on the list, the page.
func (m *Model) step(delta int) {
	switch m.focus {
	case focusType, focusRace, focusArchetype:
		p := &m.pickers[m.focus-focusType]
		p.move(delta)
		switch m.focus {
		case focusType:
			m.input.SelectType(p.value())
		case focusRace:
			m.input.SelectRace(p.value())
		case focusArchetype:
			m.input.SelectArchetype(p.value())
		}
		m.refresh()
	case focusList:
		var moved bool
		if delta < 0 {
			moved = m.input.PrevPage()
		} else {
			moved = m.input.NextPage()
		}
		if moved {
			m.refresh()
		}
	}
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	if f == focusSearch {
		return m.search.Focus()
	}
	m.search.Blur()
	return nil
}

// refresh re-reads the view after any state change.
func (m *Model) refresh() {
	m.view = m.input.Controller().View()
	m.cursor = 0
}

// View implements tea.Model.
func (m Model) View() string {
	if m.detail != nil {
		return m.detailView()
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("YGO Catalog"))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	for i, p := range m.pickers {
		value := p.value()
		if value == "" {
			value = m.labels.All
		}
		field := fmt.Sprintf("%s: ‹%s›", p.label, value)
		if m.focus == focusType+focus(i) {
			b.WriteString(m.styles.Focused.Render(field))
		} else {
			b.WriteString(m.styles.Blurred.Render(field))
		}
		b.WriteString("   ")
	}
	b.WriteString("\n\n")

	if m.view.NoResults {
		b.WriteString(m.styles.Empty.Render(m.labels.NoResults))
		b.WriteString("\n")
	}
	for i, card := range m.view.Items {
		line := display.CardLine(card)
		if m.focus == focusList && i == m.cursor {
			b.WriteString(m.styles.Selected.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.footer()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) footer() string {
	s := fmt.Sprintf("%s: %d  %s: %d", m.labels.Total, m.view.TotalCount, m.labels.Filtered, m.view.FilteredCount)
	if m.view.ShowPagination {
		s += fmt.Sprintf("   %s %d/%d", m.labels.Page, m.view.Page, m.view.TotalPages)
	}
	return s
}

func (m Model) detailView() string {
	var b strings.Builder
	display.NewPrinter(&b, m.lang).PrintCard(*m.detail)
	return m.styles.Detail.Render(strings.TrimRight(b.String(), "\n")) + "\n" +
		m.styles.Footer.Render("esc: back")
}

// Run starts an interactive browser over ds on the terminal.
func Run(ds *catalog.Dataset, opts Options) error {
	var p *tea.Program
	m := NewModel(ds, func(msg tea.Msg) { p.Send(msg) }, opts)
	p = tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}
