package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

func TestFilter_NoCriteriaReturnsEverything(t *testing.T) {
	cards := sampleCards()
	got := Filter(cards, Criteria{})
	assert.Equal(t, names(cards), names(got))
}

func TestFilter_QueryIsCaseInsensitiveSubstring(t *testing.T) {
	got := Filter(sampleCards(), Criteria{Query: "blue"})
	assert.Equal(t, []string{"Blue-Eyes White Dragon", "Blue-Eyes Alternative White Dragon"}, names(got))
}

func TestFilter_QueryMatchesDescription(t *testing.T) {
	got := Filter(sampleCards(), Criteria{Query: "ULTIMATE WIZARD"})
	assert.Equal(t, []string{"Dark Magician"}, names(got))
}

func TestFilter_QueryIsTrimmed(t *testing.T) {
	got := Filter(sampleCards(), Criteria{Query: "  mirror force \t"})
	assert.Equal(t, []string{"Mirror Force"}, names(got))

	all := Filter(sampleCards(), Criteria{Query: "   "})
	assert.Len(t, all, len(sampleCards()), "whitespace-only query is no constraint")
}

func TestFilter_ExactFacetMatches(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"type", Criteria{Type: "Spell Card"}, []string{"Monster Reborn"}},
		{"type is case sensitive", Criteria{Type: "spell card"}, []string{}},
		{"race", Criteria{Race: "Dragon"}, []string{"Blue-Eyes White Dragon", "Blue-Eyes Alternative White Dragon"}},
		{"race is exact, not substring", Criteria{Race: "Drag"}, []string{}},
		{"archetype", Criteria{Archetype: "Code Talker"}, []string{"Decode Talker"}},
		{"unknown archetype", Criteria{Archetype: "Nope"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Filter(sampleCards(), tt.criteria)))
		})
	}
}

func TestFilter_ANDSemantics(t *testing.T) {
	cards := sampleCards()

	assert.Contains(t, names(Filter(cards, Criteria{Query: "blue"})), "Blue-Eyes White Dragon")
	assert.Empty(t, Filter(cards, Criteria{Query: "blue", Race: "Spellcaster"}))
	assert.Equal(t, []string{"Blue-Eyes Alternative White Dragon"},
		names(Filter(cards, Criteria{Query: "blue", Type: "Effect Monster", Race: "Dragon", Archetype: "Blue-Eyes"})))

	// a card is kept iff it satisfies every active criterion independently
	criteria := []Criteria{
		{Query: "dragon", Race: "Dragon"},
		{Type: "Normal Monster", Archetype: "Dark Magician"},
		{Query: "monster", Type: "Spell Card"},
	}
	for _, c := range criteria {
		got := Filter(cards, c)
		for _, card := range cards {
			independent := matchesAlone(card, Criteria{Query: c.Query}) &&
				matchesAlone(card, Criteria{Type: c.Type}) &&
				matchesAlone(card, Criteria{Race: c.Race}) &&
				matchesAlone(card, Criteria{Archetype: c.Archetype})
			assert.Equal(t, independent, containsID(got, card.ID), "criteria %+v card %s", c, card.Name)
		}
	}
}

func TestFilter_CardWithoutArchetypeKeptWhenUnset(t *testing.T) {
	got := Filter(sampleCards(), Criteria{Type: "Spell Card"})
	assert.Equal(t, []string{"Monster Reborn"}, names(got))
	assert.Equal(t, "", got[0].Archetype)
}

func TestFilter_OrderPreservingSubsequence(t *testing.T) {
	cards := sampleCards()
	for _, c := range []Criteria{{}, {Query: "a"}, {Race: "Dragon"}, {Query: "e", Type: "Normal Monster"}} {
		got := Filter(cards, c)
		assert.True(t, isSubsequence(got, cards), "criteria %+v", c)
	}
}

func TestFilter_Idempotent(t *testing.T) {
	cards := sampleCards()
	for _, c := range []Criteria{{}, {Query: "blue"}, {Race: "Normal"}, {Query: "dragon", Archetype: "Blue-Eyes"}} {
		once := Filter(cards, c)
		twice := Filter(once, c)
		assert.Equal(t, once, twice)
		assert.Equal(t, once, Filter(cards, c), "deterministic")
	}
}

func TestFilter_NeverNil(t *testing.T) {
	got := Filter(nil, Criteria{Query: "x"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDataset_Filter(t *testing.T) {
	ds := NewDataset(sampleCards())
	assert.Len(t, ds.Filter(Criteria{Race: "Normal"}), 2)
}

func TestCriteria_IsZero(t *testing.T) {
	assert.True(t, Criteria{}.IsZero())
	assert.True(t, Criteria{Query: "  "}.IsZero())
	assert.False(t, Criteria{Race: "Dragon"}.IsZero())
}

func TestCriteria_Matches(t *testing.T) {
	card := sampleCards()[0]
	assert.True(t, Criteria{Query: " WHITE "}.Matches(card))
	assert.False(t, Criteria{Query: "white", Race: "Fiend"}.Matches(card))
}

func matchesAlone(card Card, c Criteria) bool {
	return len(Filter([]Card{card}, c)) == 1
}

func containsID(cards []Card, id int64) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}

func isSubsequence(sub, full []Card) bool {
	i := 0
	for _, c := range full {
		if i < len(sub) && sub[i].ID == c.ID {
			i++
		}
	}
	return i == len(sub)
}
