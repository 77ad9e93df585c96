package session

import (
	"fmt"

	"github.com/ramonehamilton/ygo-catalog/internal/catalog"
)

func makeDataset(n int) *catalog.Dataset {
	cards := make([]catalog.Card, n)
	for i := range cards {
		cards[i] = catalog.Card{
			ID:   int64(i + 1),
			Name: fmt.Sprintf("Card %03d", i+1),
			Type: "Effect Monster",
			Race: "Warrior",
		}
	}
	return catalog.NewDataset(cards)
}

func blueEyesDataset() *catalog.Dataset {
	return catalog.NewDataset([]catalog.Card{
		{ID: 1, Name: "Blue-Eyes White Dragon", Type: "Normal Monster", Race: "Dragon", Archetype: "Blue-Eyes"},
		{ID: 2, Name: "Dark Magician", Type: "Normal Monster", Race: "Spellcaster", Archetype: "Dark Magician"},
		{ID: 3, Name: "Blue Medicine", Type: "Spell Card", Race: "Normal"},
		{ID: 4, Name: "Mystical Elf", Type: "Normal Monster", Race: "Spellcaster", Desc: "This elf is blue."},
	})
}
