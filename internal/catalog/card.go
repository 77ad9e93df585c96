// Package catalog holds the card collection and the pure operations over it:
// loading, facet extraction, filtering and pagination.
package catalog

import (
	"strconv"
	"strings"
)

// Card is a single record of the card collection as published by YGOPRODeck.
// Numeric stats are pointers because they only exist for some card types.
type Card struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	FrameType  string      `json:"frameType,omitempty"`
	Desc       string      `json:"desc,omitempty"`
	Race       string      `json:"race,omitempty"`
	Archetype  string      `json:"archetype,omitempty"`
	Attribute  string      `json:"attribute,omitempty"`
	ATK        *int        `json:"atk,omitempty"`
	DEF        *int        `json:"def,omitempty"`
	Level      *int        `json:"level,omitempty"`
	LinkVal    *int        `json:"linkval,omitempty"`
	CardSets   []CardSet   `json:"card_sets,omitempty"`
	CardImages []CardImage `json:"card_images,omitempty"`
}

// CardSet is one printing of a card.
type CardSet struct {
	SetName       string `json:"set_name"`
	SetCode       string `json:"set_code"`
	SetRarity     string `json:"set_rarity"`
	SetRarityCode string `json:"set_rarity_code,omitempty"`
	SetPrice      string `json:"set_price,omitempty"`
}

// CardImage references artwork for a card. The first image of a card is its primary image.
type CardImage struct {
	ID              int64  `json:"id,omitempty"`
	ImageURL        string `json:"image_url"`
	ImageURLSmall   string `json:"image_url_small,omitempty"`
	ImageURLCropped string `json:"image_url_cropped,omitempty"`
}

// PrimaryImage returns the URL of the first image, or "" if the card has none.
func (c Card) PrimaryImage() string {
	if len(c.CardImages) == 0 {
		return ""
	}
	return c.CardImages[0].ImageURL
}

// HasStats reports whether any of the numeric stats is present.
func (c Card) HasStats() bool {
	return c.ATK != nil || c.DEF != nil || c.Level != nil || c.LinkVal != nil
}

// HasPrice reports whether the printing carries a usable price.
// YGOPRODeck publishes "0" for printings without market data.
func (s CardSet) HasPrice() bool {
	p := strings.TrimSpace(s.SetPrice)
	if p == "" {
		return false
	}
	v, err := strconv.ParseFloat(p, 64)
	return err == nil && v != 0
}

// Price returns the parsed price and whether it is usable.
func (s CardSet) Price() (float64, bool) {
	if !s.HasPrice() {
		return 0, false
	}
	v, _ := strconv.ParseFloat(strings.TrimSpace(s.SetPrice), 64)
	return v, true
}

const defaultPlaceholder = "linear-gradient(135deg, #f093fb 0%, #f5576c 100%)"

var placeholderColors = map[string]string{
	"Normal Monster":  "linear-gradient(135deg, #ffecd2 0%, #fcb69f 100%)",
	"Effect Monster":  "linear-gradient(135deg, #a8edea 0%, #fed6e3 100%)",
	"Spell Card":      "linear-gradient(135deg, #ffecd2 0%, #fcb69f 100%)",
	"Trap Card":       "linear-gradient(135deg, #ff9a9e 0%, #fecfef 100%)",
	"Fusion Monster":  "linear-gradient(135deg, #a8edea 0%, #fed6e3 100%)",
	"Synchro Monster": "linear-gradient(135deg, #ffecd2 0%, #fcb69f 100%)",
	"XYZ Monster":     "linear-gradient(135deg, #ff9a9e 0%, #fecfef 100%)",
	"Link Monster":    "linear-gradient(135deg, #a8edea 0%, #fed6e3 100%)",
}

// PlaceholderColor returns the CSS background shown behind a card while its image loads.
func PlaceholderColor(cardType string) string {
	if c, ok := placeholderColors[cardType]; ok {
		return c
	}
	return defaultPlaceholder
}
