package voice

import (
	"math/rand"

	"podcastforge-server-go/internal/platform/config"
	"podcastforge-server-go/internal/platform/errors"
	"podcastforge-server-go/internal/platform/logging"
)

// ErrNoCandidateVoices reports an empty candidate pool for a speaker without
// an explicit assignment. Raised before any synthesis cost is incurred.
var ErrNoCandidateVoices = errors.New(errors.KindVoice, "voice.Assign", "no candidate voices available")

// Map is the immutable per-script mapping from speaker label to voice ID.
// Computed once before synthesis; all of a speaker's utterances reuse its
// entry.
type Map map[string]string

// Assigner picks voices for speakers. The random source is injected and
// seeded so assignment is reproducible for identical inputs.
type Assigner struct {
	pool   []config.VoiceInfo
	seed   int64
	logger *logging.Logger
}

func NewAssigner(pool []config.VoiceInfo, seed int64, logger *logging.Logger) *Assigner {
	return &Assigner{pool: pool, seed: seed, logger: logger}
}

// Assign maps each speaker, in first-appearance order, to a voice ID.
//
// Speakers present in explicit take that value verbatim and are excluded from
// automatic assignment. The rest are classified by role keywords and drawn
// from the matching archetype category first, then the remaining global pool.
// Voices are consumed without replacement until the pool is exhausted; only
// then are they reused, spread out so adjacent speakers never share a voice
// when an alternative exists.
func (a *Assigner) Assign(speakers []string, explicit map[string]string) (Map, error) {
	assigned := make(Map, len(speakers))

	shuffled := make([]config.VoiceInfo, len(a.pool))
	copy(shuffled, a.pool)
	rng := rand.New(rand.NewSource(a.seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	used := make(map[string]int, len(shuffled))
	var order []string

	for _, speaker := range speakers {
		if id, ok := explicit[speaker]; ok {
			assigned[speaker] = id
			used[id]++
			order = append(order, speaker)
			a.logger.InfoTag(logging.TagVoice, "speaker %s uses explicit voice %s", speaker, id)
			continue
		}

		prev := ""
		if len(order) > 0 {
			prev = assigned[order[len(order)-1]]
		}
		pick := a.pick(shuffled, used, ClassifyRole(speaker), prev)
		if pick == "" {
			return nil, ErrNoCandidateVoices
		}
		assigned[speaker] = pick
		used[pick]++
		order = append(order, speaker)
		a.logger.InfoTag(logging.TagVoice, "speaker %s assigned voice %s", speaker, pick)
	}
	return assigned, nil
}

// pick chooses the least-used voice, preferring the speaker's archetype
// categories in order, avoiding the previous speaker's voice when any other
// candidate is equally fresh or the pool allows it.
func (a *Assigner) pick(pool []config.VoiceInfo, used map[string]int, preferred []Archetype, prev string) string {
	if len(pool) == 0 {
		return ""
	}

	// Category passes only consider unused voices; reuse always falls back to
	// the global spread-out pass.
	for _, arch := range preferred {
		for _, v := range pool {
			if v.Archetype == string(arch) && used[v.ID] == 0 && v.ID != prev {
				return v.ID
			}
		}
	}
	// An unused voice can never equal prev (prev is always counted in used),
	// so no separate prev-allowing pass is needed here.
	for _, v := range pool {
		if used[v.ID] == 0 && v.ID != prev {
			return v.ID
		}
	}

	// Pool exhausted: reuse the least-used voice that is not the previous
	// speaker's, unless the pool has only one entry.
	best := ""
	bestCount := -1
	for _, v := range pool {
		if v.ID == prev && len(pool) > 1 {
			continue
		}
		if bestCount == -1 || used[v.ID] < bestCount {
			best = v.ID
			bestCount = used[v.ID]
		}
	}
	return best
}
