// Package session owns the mutable browsing state over an immutable card
// catalog: the active criteria, the filtered sequence and the current page.
package session

import (
	"time"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
)

// Controller is the single owner of a browsing session's state. It is driven
// by two kinds of events: criteria changes, which refilter and reset to the
// first page, and page changes, which only move within the filtered sequence.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	cards    []catalog.Card
	pageSize int

	criteria   catalog.Criteria
	filtered   []catalog.Card
	page       int
	totalPages int

	listeners []func(View)
	onFilter  func(time.Duration)
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize overrides the default page size of 20.
func WithPageSize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithFilterHook registers fn to receive the duration of every refilter.
func WithFilterHook(fn func(time.Duration)) Option {
	return func(c *Controller) {
		c.onFilter = fn
	}
}

// NewController creates a controller over ds with no active criteria.
func NewController(ds *catalog.Dataset, opts ...Option) *Controller {
	c := &Controller{
		cards:    ds.Cards(),
		pageSize: catalog.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.refilter()
	return c
}

// OnChange registers a listener called synchronously after every state change.
func (c *Controller) OnChange(fn func(View)) {
	c.listeners = append(c.listeners, fn)
}

// Criteria returns the active criteria.
func (c *Controller) Criteria() catalog.Criteria {
	return c.criteria
}

// Page returns the current 1-indexed page.
func (c *Controller) Page() int {
	return c.page
}

// TotalPages returns the page count of the filtered sequence (at least 1).
func (c *Controller) TotalPages() int {
	return c.totalPages
}

// Filtered returns the current filtered sequence. Callers must not modify it.
func (c *Controller) Filtered() []catalog.Card {
	return c.filtered
}

// SetCriteria replaces all criteria, refilters and returns to page 1.
func (c *Controller) SetCriteria(criteria catalog.Criteria) View {
	c.criteria = criteria.Normalize()
	c.refilter()
	return c.notify()
}

// SetQuery changes the text query.
func (c *Controller) SetQuery(query string) View {
	next := c.criteria
	next.Query = query
	return c.SetCriteria(next)
}

// ClearQuery removes the text query.
func (c *Controller) ClearQuery() View {
	return c.SetQuery("")
}

// SelectType changes the type selection; "" removes the constraint.
func (c *Controller) SelectType(cardType string) View {
	next := c.criteria
	next.Type = cardType
	return c.SetCriteria(next)
}

// SelectRace changes the race selection; "" removes the constraint.
func (c *Controller) SelectRace(race string) View {
	next := c.criteria
	next.Race = race
	return c.SetCriteria(next)
}

// SelectArchetype changes the archetype selection; "" removes the constraint.
func (c *Controller) SelectArchetype(archetype string) View {
	next := c.criteria
	next.Archetype = archetype
	return c.SetCriteria(next)
}

// GoToPage moves to page. A page outside [1, TotalPages] is ignored and
// reported as false; the filtered sequence is never recomputed.
func (c *Controller) GoToPage(page int) bool {
	if !catalog.ValidPage(page, c.totalPages) {
		return false
	}
	c.page = page
	c.notify()
	return true
}

// NextPage moves forward one page if possible.
func (c *Controller) NextPage() bool {
	return c.GoToPage(c.page + 1)
}

// PrevPage moves back one page if possible.
func (c *Controller) PrevPage() bool {
	return c.GoToPage(c.page - 1)
}

// View builds the presentation model for the current state.
func (c *Controller) View() View {
	items, _ := catalog.Paginate(c.filtered, c.page, c.pageSize)
	return View{
		Items:          items,
		Page:           c.page,
		TotalPages:     c.totalPages,
		PageSize:       c.pageSize,
		TotalCount:     len(c.cards),
		FilteredCount:  len(c.filtered),
		Criteria:       c.criteria,
		HasPrev:        c.page > 1,
		HasNext:        c.page < c.totalPages,
		NoResults:      len(c.filtered) == 0,
		ShowPagination: c.totalPages > 1,
	}
}

func (c *Controller) refilter() {
	start := time.Now()
	c.filtered = catalog.Filter(c.cards, c.criteria)
	if c.onFilter != nil {
		c.onFilter(time.Since(start))
	}
	c.page = 1
	c.totalPages = catalog.TotalPages(len(c.filtered), c.pageSize)
}

func (c *Controller) notify() View {
	v := c.View()
	for _, fn := range c.listeners {
		fn(v)
	}
	return v
}
