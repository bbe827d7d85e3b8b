package script

import (
	"fmt"
	"strings"

	"podcastforge-server-go/internal/platform/logging"
)

// introCues are conservative self-introduction markers. Under-triggering is
// preferred: a missed cue adds one redundant sentence, a false positive would
// leave a speaker unintroduced.
var introCues = []string{
	"my name is",
	"i'm your host",
	"i am your host",
	"welcome to",
	"welcome back",
	"this is",
	"thanks for having me",
	"great to be here",
	"joining you",
}

var hostCues = []string{"host", "moderator", "anchor"}

// NormalizeIntroductions ensures each speaker's first utterance reads as a
// self-introduction. Missing introductions are prepended to that utterance's
// clean text rather than inserted as new utterances, so turn-taking and
// sequence indexes are untouched. Idempotent: synthesized introductions
// themselves contain cues, so a second pass changes nothing.
func NormalizeIntroductions(utterances []Utterance, logger *logging.Logger) []Utterance {
	out := make([]Utterance, len(utterances))
	copy(out, utterances)

	seen := make(map[string]struct{}, len(out))
	for i := range out {
		speaker := out[i].Speaker
		if _, ok := seen[speaker]; ok {
			continue
		}
		seen[speaker] = struct{}{}

		if hasIntroCue(out[i].CleanText) {
			continue
		}
		intro := introductionFor(speaker)
		out[i].CleanText = intro + " " + out[i].CleanText
		logger.InfoTag(logging.TagParse, "added introduction for speaker %s", speaker)
	}
	return out
}

func hasIntroCue(text string) bool {
	lower := strings.ToLower(text)
	for _, cue := range introCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

// introductionFor builds a short role-appropriate opener. Both variants carry
// an intro cue so NormalizeIntroductions recognizes its own output.
func introductionFor(speaker string) string {
	lower := strings.ToLower(speaker)
	for _, cue := range hostCues {
		if strings.Contains(lower, cue) {
			return fmt.Sprintf("Welcome to the show, I'm %s, your host today.", speaker)
		}
	}
	return fmt.Sprintf("Hi, my name is %s.", speaker)
}
