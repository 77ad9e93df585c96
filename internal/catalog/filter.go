package catalog

import "strings"

// Criteria are the active filter constraints. An empty field means no constraint.
type Criteria struct {
	Query     string `json:"query"`
	Type      string `json:"type"`
	Race      string `json:"race"`
	Archetype string `json:"archetype"`
}

// Normalize returns the criteria with surrounding whitespace removed from the query.
func (c Criteria) Normalize() Criteria {
	c.Query = strings.TrimSpace(c.Query)
	return c
}

// IsZero reports whether no constraint is active.
func (c Criteria) IsZero() bool {
	n := c.Normalize()
	return n.Query == "" && n.Type == "" && n.Race == "" && n.Archetype == ""
}

// Matches reports whether the card satisfies every active constraint.
func (c Criteria) Matches(card Card) bool {
	return c.Normalize().matcher().match(card)
}

// Filter returns the cards satisfying criteria, in their original order.
// The result is never nil.
func Filter(cards []Card, criteria Criteria) []Card {
	m := criteria.Normalize().matcher()

	out := make([]Card, 0, len(cards))
	for _, card := range cards {
		if m.match(card) {
			out = append(out, card)
		}
	}
	return out
}

// Filter applies criteria to the whole dataset.
func (d *Dataset) Filter(criteria Criteria) []Card {
	return Filter(d.view(), criteria)
}

// matcher caches the lowered query so it is computed once per Filter call.
type matcher struct {
	query     string
	cardType  string
	race      string
	archetype string
}

func (c Criteria) matcher() matcher {
	return matcher{
		query:     strings.ToLower(c.Query),
		cardType:  c.Type,
		race:      c.Race,
		archetype: c.Archetype,
	}
}

func (m matcher) match(card Card) bool {
	if m.query != "" &&
		!strings.Contains(strings.ToLower(card.Name), m.query) &&
		(card.Desc == "" || !strings.Contains(strings.ToLower(card.Desc), m.query)) {
		return false
	}
	if m.cardType != "" && card.Type != m.cardType {
		return false
	}
	if m.race != "" && card.Race != m.race {
		return false
	}
	if m.archetype != "" && card.Archetype != m.archetype {
		return false
	}
	return true
}
