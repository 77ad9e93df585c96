package catalog

import (
	"errors"
	"time"
)

// ErrCardNotFound is returned when a card ID is not part of the dataset.
var ErrCardNotFound = errors.New("card not found")

// Dataset is the immutable, ordered card collection loaded at startup.
type Dataset struct {
	cards    []Card
	byID     map[int64]int
	source   string
	loadedAt time.Time
}

// NewDataset copies cards into a new dataset.
func NewDataset(cards []Card) *Dataset {
	return newDataset(cards, "", time.Now())
}

func newDataset(cards []Card, source string, loadedAt time.Time) *Dataset {
	owned := make([]Card, len(cards))
	copy(owned, cards)

	byID := make(map[int64]int, len(owned))
	for i, c := range owned {
		// first occurrence wins for duplicated IDs
		if _, dup := byID[c.ID]; !dup {
			byID[c.ID] = i
		}
	}

	return &Dataset{
		cards:    owned,
		byID:     byID,
		source:   source,
		loadedAt: loadedAt,
	}
}

// Len returns the number of cards.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.cards)
}

// At returns the i-th card in dataset order.
func (d *Dataset) At(i int) Card {
	return d.cards[i]
}

// Cards returns a copy of the cards in dataset order.
func (d *Dataset) Cards() []Card {
	if d == nil {
		return []Card{}
	}
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// view exposes the backing slice to package-internal readers that never mutate it.
func (d *Dataset) view() []Card {
	if d == nil {
		return nil
	}
	return d.cards
}

// ByID looks up a card by its identifier.
func (d *Dataset) ByID(id int64) (Card, bool) {
	if d == nil {
		return Card{}, false
	}
	i, ok := d.byID[id]
	if !ok {
		return Card{}, false
	}
	return d.cards[i], true
}

// Source names where the dataset was loaded from.
func (d *Dataset) Source() string {
	return d.source
}

// LoadedAt returns the time the dataset finished loading.
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}
