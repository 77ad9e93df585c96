package catalog

import "fmt"

func intPtr(v int) *int { return &v }

// sampleCards is a small, hand-written collection covering the optional fields.
func sampleCards() []Card {
	return []Card{
		{
			ID: 89631139, Name: "Blue-Eyes White Dragon", Type: "Normal Monster",
			Race: "Dragon", Archetype: "Blue-Eyes", Attribute: "LIGHT",
			Desc: "This legendary dragon is a powerful engine of destruction.",
			ATK:  intPtr(3000), DEF: intPtr(2500), Level: intPtr(8),
			CardSets: []CardSet{
				{SetName: "Legend of Blue Eyes White Dragon", SetCode: "LOB-001", SetRarity: "Ultra Rare", SetRarityCode: "(UR)", SetPrice: "45.06"},
				{SetName: "Starter Deck: Kaiba", SetCode: "SDK-001", SetRarity: "Ultra Rare", SetPrice: "0"},
			},
			CardImages: []CardImage{{ID: 89631139, ImageURL: "https://images.ygoprodeck.com/images/cards/89631139.jpg"}},
		},
		{
			ID: 46986414, Name: "Dark Magician", Type: "Normal Monster",
			Race: "Spellcaster", Archetype: "Dark Magician", Attribute: "DARK",
			Desc: "The ultimate wizard in terms of attack and defense.",
			ATK:  intPtr(2500), DEF: intPtr(2100), Level: intPtr(7),
		},
		{
			ID: 83764718, Name: "Monster Reborn", Type: "Spell Card",
			Race: "Normal",
			Desc: "Target 1 monster in either GY; Special Summon it.",
		},
		{
			ID: 44095762, Name: "Mirror Force", Type: "Trap Card",
			Race: "Normal",
			Desc: "When an opponent's monster declares an attack: Destroy all your opponent's Attack Position monsters.",
		},
		{
			ID: 1861629, Name: "Decode Talker", Type: "Link Monster",
			Race: "Cyberse", Archetype: "Code Talker",
			Desc: "2+ Effect Monsters. Gains 500 ATK for each monster it points to.",
			ATK:  intPtr(2300), LinkVal: intPtr(3),
		},
		{
			ID: 38517737, Name: "Blue-Eyes Alternative White Dragon", Type: "Effect Monster",
			Race: "Dragon", Archetype: "Blue-Eyes",
			Desc: "Cannot be Normal Summoned/Set.",
			ATK:  intPtr(3000), DEF: intPtr(2500), Level: intPtr(8),
		},
	}
}

// generatedCards returns n cards with distinct IDs and names.
func generatedCards(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Card{
			ID:   int64(i + 1),
			Name: fmt.Sprintf("Card %03d", i+1),
			Type: "Effect Monster",
			Race: "Warrior",
		}
	}
	return cards
}
