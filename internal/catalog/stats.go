package catalog

import "sort"

// Count is the number of cards sharing a facet value.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Stats summarizes the distribution of a card collection.
type Stats struct {
	Total       int     `json:"total"`
	ByType      []Count `json:"by_type"`
	ByRace      []Count `json:"by_race"`
	ByArchetype []Count `json:"by_archetype"`
}

// ComputeStats counts cards per type, race and archetype.
// Empty values are not counted. Each list is sorted by count, then by value.
func ComputeStats(cards []Card) Stats {
	types := make(map[string]int)
	races := make(map[string]int)
	archetypes := make(map[string]int)

	for _, c := range cards {
		if c.Type != "" {
			types[c.Type]++
		}
		if c.Race != "" {
			races[c.Race]++
		}
		if c.Archetype != "" {
			archetypes[c.Archetype]++
		}
	}

	return Stats{
		Total:       len(cards),
		ByType:      sortedCounts(types),
		ByRace:      sortedCounts(races),
		ByArchetype: sortedCounts(archetypes),
	}
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for v, n := range m {
		out = append(out, Count{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
