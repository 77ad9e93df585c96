package catalog

// CardTypes are the type values offered by type pickers. Unlike race and
// archetype they are not derived from the dataset.
var CardTypes = []string{
	"Effect Monster",
	"Flip Effect Monster",
	"Fusion Monster",
	"Link Monster",
	"Normal Monster",
	"Pendulum Effect Monster",
	"Ritual Effect Monster",
	"Ritual Monster",
	"Skill Card",
	"Spell Card",
	"Synchro Monster",
	"Token",
	"Trap Card",
	"Tuner Monster",
	"XYZ Monster",
}

// Facets holds the distinct race and archetype values of a dataset, in order
// of first encounter. Order carries no meaning beyond populating choice lists.
type Facets struct {
	Races      []string `json:"races"`
	Archetypes []string `json:"archetypes"`

	raceSet      map[string]struct{}
	archetypeSet map[string]struct{}
}

// ExtractFacets collects race and archetype values in a single pass.
// Empty values are skipped.
func ExtractFacets(cards []Card) Facets {
	f := Facets{
		Races:        []string{},
		Archetypes:   []string{},
		raceSet:      make(map[string]struct{}),
		archetypeSet: make(map[string]struct{}),
	}

	for _, c := range cards {
		if c.Race != "" {
			if _, seen := f.raceSet[c.Race]; !seen {
				f.raceSet[c.Race] = struct{}{}
				f.Races = append(f.Races, c.Race)
			}
		}
		if c.Archetype != "" {
			if _, seen := f.archetypeSet[c.Archetype]; !seen {
				f.archetypeSet[c.Archetype] = struct{}{}
				f.Archetypes = append(f.Archetypes, c.Archetype)
			}
		}
	}

	return f
}

// HasRace reports whether race is one of the race facet values.
func (f Facets) HasRace(race string) bool {
	_, ok := f.raceSet[race]
	return ok
}

// HasArchetype reports whether archetype is one of the archetype facet values.
func (f Facets) HasArchetype(archetype string) bool {
	_, ok := f.archetypeSet[archetype]
	return ok
}
