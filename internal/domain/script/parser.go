package script

import (
	"regexp"
	"strings"

	"podcastforge-server-go/internal/platform/errors"
	"podcastforge-server-go/internal/platform/logging"
)

// ErrEmptyScript reports a script from which no utterances could be extracted.
// Surfaced before any synthesis call is attempted.
var ErrEmptyScript = errors.New(errors.KindParse, "script.Parse", "no utterances found in script")

// speakerLineRe matches a dialogue block opener: speaker label, optional
// bracketed emotion tag, colon, text. Digits are allowed in labels so
// generated scripts using "Speaker 1" style names parse.
var speakerLineRe = regexp.MustCompile(`^([A-Za-z0-9\s\-'\.]+?)(?:\s*\[([^\]]+)\])?\s*:\s*(.+)$`)

// inlineBracketRe finds bracketed tags inside the dialogue text itself, e.g.
// "Well [sighing] I suppose so."
var inlineBracketRe = regexp.MustCompile(`\[([^\]]+)\]`)

var (
	emphasisRe   = regexp.MustCompile(`(\*\*|__|\*|_)`)
	headingRe    = regexp.MustCompile(`^#{1,6}\s+`)
	listMarkerRe = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s+`)
	spacesRe     = regexp.MustCompile(`\s+`)
)

// Parser extracts ordered utterances from loosely formatted dialogue text.
// Tolerant of markdown artifacts and continuation lines; a logger is optional.
type Parser struct {
	logger *logging.Logger
}

func NewParser(logger *logging.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse converts raw script text into utterances in encounter order, with
// sequence indexes gap-free from 0.
//
// Recognized blocks follow `Speaker [emotion]: text`; lines without a new
// speaker prefix continue the previous utterance. When no block matches at
// all, non-empty paragraphs are salvaged by alternating two synthetic speaker
// labels so a plain prose script still yields a dialogue.
//
// Speaker grouping is exact-match and case-sensitive: "Host" and "host" are
// two speakers. Collisions differing only in case are logged, not merged.
func (p *Parser) Parse(rawText string) ([]Utterance, error) {
	lines := strings.Split(rawText, "\n")

	var utterances []Utterance
	var current *Utterance
	discardedBeforeFirst := 0

	flush := func() {
		if current != nil {
			utterances = append(utterances, *current)
			current = nil
		}
	}

	for _, line := range lines {
		stripped := stripFormatting(line)
		if stripped == "" {
			continue
		}

		if m := speakerLineRe.FindStringSubmatch(stripped); m != nil {
			flush()
			u := buildUtterance(m[1], m[2], m[3], len(utterances))
			if u.Emotion == EmotionNone && m[2] != "" {
				p.logger.WarnTag(logging.TagParse, "unrecognized emotion tag %q for speaker %s, using baseline", m[2], u.Speaker)
			}
			current = &u
			continue
		}

		if current != nil {
			current.RawText += " " + stripped
			current.CleanText = joinContinuation(current.CleanText, stripInlineTags(stripped))
			continue
		}

		discardedBeforeFirst++
		p.logger.WarnTag(logging.TagParse, "discarding line before first speaker block: %q", truncate(stripped, 60))
	}
	flush()

	if len(utterances) == 0 {
		utterances = p.parseParagraphs(rawText)
	}
	if len(utterances) == 0 {
		return nil, ErrEmptyScript
	}

	p.warnOnCaseCollisions(utterances)
	p.logger.InfoTag(logging.TagParse, "parsed %d utterances from %d speakers (%d leading lines discarded)",
		len(utterances), len(Speakers(utterances)), discardedBeforeFirst)
	return utterances, nil
}

func buildUtterance(label, bracket, text string, index int) Utterance {
	speaker := spacesRe.ReplaceAllString(strings.TrimSpace(label), " ")
	raw := strings.TrimSpace(text)

	emotion := EmotionNone
	if bracket != "" {
		if tag, ok := ParseEmotionTag(bracket); ok {
			emotion = tag
		}
	}

	clean := raw
	// First inline bracket may still carry the emotion when the label had none.
	if m := inlineBracketRe.FindStringSubmatch(clean); m != nil && emotion == EmotionNone {
		if tag, ok := ParseEmotionTag(m[1]); ok {
			emotion = tag
		}
	}
	clean = strings.TrimSpace(spacesRe.ReplaceAllString(stripInlineTags(clean), " "))
	clean = ApplyPrefix(emotion, clean)

	return Utterance{
		Speaker:       speaker,
		RawText:       raw,
		CleanText:     clean,
		Emotion:       emotion,
		SequenceIndex: index,
	}
}

// parseParagraphs is the salvage path for scripts without any recognizable
// speaker blocks: non-empty paragraphs become alternating speaker turns.
func (p *Parser) parseParagraphs(rawText string) []Utterance {
	paragraphs := strings.Split(rawText, "\n\n")
	fallbackSpeakers := []string{"Speaker 1", "Speaker 2"}

	var utterances []Utterance
	for _, para := range paragraphs {
		// Strip line by line so rules and code fences inside the paragraph
		// vanish instead of being glued into the salvaged text.
		var kept []string
		for _, line := range strings.Split(para, "\n") {
			if stripped := stripFormatting(line); stripped != "" {
				kept = append(kept, stripped)
			}
		}
		if len(kept) == 0 {
			continue
		}
		text := strings.TrimSpace(spacesRe.ReplaceAllString(strings.Join(kept, " "), " "))
		if text == "" {
			continue
		}
		utterances = append(utterances, Utterance{
			Speaker:       fallbackSpeakers[len(utterances)%2],
			RawText:       text,
			CleanText:     text,
			Emotion:       EmotionNone,
			SequenceIndex: len(utterances),
		})
	}
	if len(utterances) > 0 {
		p.logger.WarnTag(logging.TagParse, "no speaker blocks found, salvaged %d paragraphs as alternating turns", len(utterances))
	}
	return utterances
}

func (p *Parser) warnOnCaseCollisions(utterances []Utterance) {
	byLower := make(map[string]string)
	for _, label := range Speakers(utterances) {
		lower := strings.ToLower(label)
		if prior, ok := byLower[lower]; ok && prior != label {
			p.logger.WarnTag(logging.TagParse, "speaker labels %q and %q differ only in case and are treated as distinct speakers", prior, label)
			continue
		}
		byLower[lower] = label
	}
}

// stripFormatting removes markdown artifacts from a single line. Horizontal
// rules and code fences vanish entirely.
func stripFormatting(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "```") {
		return ""
	}
	if isRule(trimmed) {
		return ""
	}
	trimmed = headingRe.ReplaceAllString(trimmed, "")
	trimmed = listMarkerRe.ReplaceAllString(trimmed, "")
	trimmed = emphasisRe.ReplaceAllString(trimmed, "")
	trimmed = strings.ReplaceAll(trimmed, "`", "")
	return strings.TrimSpace(trimmed)
}

func isRule(line string) bool {
	if len(line) < 3 {
		return false
	}
	for _, r := range line {
		if r != '-' && r != '=' && r != '*' {
			return false
		}
	}
	return true
}

func stripInlineTags(text string) string {
	return strings.TrimSpace(inlineBracketRe.ReplaceAllString(text, " "))
}

func joinContinuation(existing, more string) string {
	more = strings.TrimSpace(spacesRe.ReplaceAllString(more, " "))
	if more == "" {
		return existing
	}
	if existing == "" {
		return more
	}
	return existing + " " + more
}

// truncate shortens s to max runes, never splitting a multibyte character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
