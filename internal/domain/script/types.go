package script

// Utterance is one speaker turn extracted from a dialogue script.
//
// CleanText is what gets sent to synthesis: RawText with emotion markup and
// formatting artifacts stripped. SequenceIndex is the authoritative playback
// order, strictly increasing and gap-free from 0 over one parsed script.
type Utterance struct {
	Speaker       string     `json:"speaker"`
	RawText       string     `json:"raw_text"`
	CleanText     string     `json:"clean_text"`
	Emotion       EmotionTag `json:"emotion"`
	SequenceIndex int        `json:"sequence_index"`
}

// Speakers returns the distinct speaker labels in first-appearance order.
// Labels are compared exactly (case-sensitive); "Host" and "host" are two
// speakers. That mirrors the grouping policy of the parser and is flagged
// there rather than silently normalized.
func Speakers(utterances []Utterance) []string {
	seen := make(map[string]struct{}, len(utterances))
	var out []string
	for _, u := range utterances {
		if _, ok := seen[u.Speaker]; ok {
			continue
		}
		seen[u.Speaker] = struct{}{}
		out = append(out, u.Speaker)
	}
	return out
}
