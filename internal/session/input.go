package session

import "github.com/ramonehamilton/ygo-catalog/internal/catalog"

// Input is the front door a presenter drives. Text typed into the search box
// is debounced; facet selections and page navigation apply immediately.
//
// Debounced calls are handed to dispatch so they run on the same logical
// thread as every other event of the session.
type Input struct {
	ctrl      *Controller
	debouncer *Debouncer
	dispatch  func(func())

	// text is the raw content of the search box, which may not be applied yet.
	text string
}

// NewInput wires a controller to a debouncer. A nil dispatch runs calls inline.
func NewInput(ctrl *Controller, debouncer *Debouncer, dispatch func(func())) *Input {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Input{
		ctrl:      ctrl,
		debouncer: debouncer,
		dispatch:  dispatch,
		text:      ctrl.Criteria().Query,
	}
}

// Controller returns the controller the input drives.
func (in *Input) Controller() *Controller {
	return in.ctrl
}

// Text returns the raw search box content.
func (in *Input) Text() string {
	return in.text
}

// TypeQuery records new search text and applies it once typing pauses.
func (in *Input) TypeQuery(text string) {
	in.text = text
	in.debouncer.Trigger(func() {
		in.dispatch(func() { in.ctrl.SetQuery(text) })
	})
}

// ClearQuery empties the search box and applies it at once.
func (in *Input) ClearQuery() View {
	in.text = ""
	in.debouncer.Stop()
	return in.ctrl.ClearQuery()
}

// SetCriteria applies complete criteria at once, search text included.
func (in *Input) SetCriteria(c catalog.Criteria) View {
	in.text = c.Query
	in.debouncer.Stop()
	return in.ctrl.SetCriteria(c)
}

// SelectType applies a type selection together with the current search text.
func (in *Input) SelectType(cardType string) View {
	c := in.ctrl.Criteria()
	c.Type = cardType
	return in.applyWithText(c)
}

// SelectRace applies a race selection together with the current search text.
func (in *Input) SelectRace(race string) View {
	c := in.ctrl.Criteria()
	c.Race = race
	return in.applyWithText(c)
}

// SelectArchetype applies an archetype selection together with the current search text.
func (in *Input) SelectArchetype(archetype string) View {
	c := in.ctrl.Criteria()
	c.Archetype = archetype
	return in.applyWithText(c)
}

// GoToPage navigates without touching pending search text.
func (in *Input) GoToPage(page int) bool {
	return in.ctrl.GoToPage(page)
}

// NextPage navigates forward.
func (in *Input) NextPage() bool {
	return in.ctrl.NextPage()
}

// PrevPage navigates back.
func (in *Input) PrevPage() bool {
	return in.ctrl.PrevPage()
}

// Close drops any pending search text application.
func (in *Input) Close() {
	in.debouncer.Stop()
}

// applyWithText reads the search box as it is now, like any other filter
// change, which makes a pending debounced application redundant.
func (in *Input) applyWithText(c catalog.Criteria) View {
	c.Query = in.text
	in.debouncer.Stop()
	return in.ctrl.SetCriteria(c)
}
