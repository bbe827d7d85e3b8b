package voice

import "strings"

// Archetype is a coarse voice-personality category used to bias automatic
// voice selection.
type Archetype string

const (
	ArchetypeWarmEngaging  Archetype = "warm_engaging"
	ArchetypeAuthoritative Archetype = "authoritative"
	ArchetypeAnalytical    Archetype = "analytical"
	ArchetypeEnergetic     Archetype = "energetic"
	ArchetypeContemplative Archetype = "contemplative"
	ArchetypeSkeptical     Archetype = "skeptical"
	ArchetypeAny           Archetype = ""
)

// roleKeywords maps speaker-label keywords to preferred archetypes, in
// priority order per keyword. Kept as data rather than inline conditionals so
// the classification is testable and extendable.
var roleKeywords = []struct {
	keyword    string
	archetypes []Archetype
}{
	{"host", []Archetype{ArchetypeWarmEngaging}},
	{"moderator", []Archetype{ArchetypeWarmEngaging}},
	{"anchor", []Archetype{ArchetypeWarmEngaging}},
	{"expert", []Archetype{ArchetypeAuthoritative, ArchetypeAnalytical}},
	{"professor", []Archetype{ArchetypeAuthoritative, ArchetypeAnalytical}},
	{"doctor", []Archetype{ArchetypeAuthoritative, ArchetypeAnalytical}},
	{"dr.", []Archetype{ArchetypeAuthoritative, ArchetypeAnalytical}},
	{"analyst", []Archetype{ArchetypeAnalytical}},
	{"researcher", []Archetype{ArchetypeAnalytical}},
	{"scientist", []Archetype{ArchetypeAnalytical}},
	{"comedian", []Archetype{ArchetypeEnergetic}},
	{"comic", []Archetype{ArchetypeEnergetic}},
	{"narrator", []Archetype{ArchetypeContemplative}},
	{"storyteller", []Archetype{ArchetypeContemplative}},
	{"skeptic", []Archetype{ArchetypeSkeptical}},
	{"critic", []Archetype{ArchetypeSkeptical}},
	{"opponent", []Archetype{ArchetypeSkeptical}},
	{"guest", []Archetype{ArchetypeAuthoritative, ArchetypeWarmEngaging}},
}

// ClassifyRole maps a speaker label to preferred archetypes via keyword
// matching, first keyword hit wins. Labels with no hit get no preference and
// draw from the whole pool.
func ClassifyRole(speaker string) []Archetype {
	lower := strings.ToLower(speaker)
	for _, rk := range roleKeywords {
		if strings.Contains(lower, rk.keyword) {
			return rk.archetypes
		}
	}
	return nil
}
