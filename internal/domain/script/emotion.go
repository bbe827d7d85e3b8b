package script

import "strings"

// EmotionTag selects a voice-modulation preset for one utterance. It never
// changes utterance semantics beyond picking the VoiceSettings triple plus, for
// a few tags, a short vocal prefix on the clean text.
type EmotionTag string

const (
	EmotionNone          EmotionTag = "none"
	EmotionLaughing      EmotionTag = "laughing"
	EmotionChuckling     EmotionTag = "chuckling"
	EmotionSighing       EmotionTag = "sighing"
	EmotionGasping       EmotionTag = "gasping"
	EmotionCrying        EmotionTag = "crying"
	EmotionThinking      EmotionTag = "thinking"
	EmotionSurprised     EmotionTag = "surprised"
	EmotionConfused      EmotionTag = "confused"
	EmotionExcited       EmotionTag = "excited"
	EmotionNervous       EmotionTag = "nervous"
	EmotionWarm          EmotionTag = "warm"
	EmotionSerious       EmotionTag = "serious"
	EmotionCasual        EmotionTag = "casual"
	EmotionContemplative EmotionTag = "contemplative"
	EmotionAngry         EmotionTag = "angry"
	EmotionCurious       EmotionTag = "curious"
	EmotionUrgent        EmotionTag = "urgent"
	EmotionFriendly      EmotionTag = "friendly"
	EmotionEnthusiastic  EmotionTag = "enthusiastic"
)

// VoiceSettings is the three-parameter modulation triple consumed by the
// synthesis boundary. All fields are in [0,1].
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
}

var baselineSettings = VoiceSettings{Stability: 0.5, SimilarityBoost: 0.5, Style: 0.5}

// emotionSettings maps each tag to its fixed modulation preset. Nothing
// mutates this table at runtime.
var emotionSettings = map[EmotionTag]VoiceSettings{
	EmotionNone:          baselineSettings,
	EmotionLaughing:      {Stability: 0.2, SimilarityBoost: 0.8, Style: 0.9},
	EmotionChuckling:     {Stability: 0.3, SimilarityBoost: 0.7, Style: 0.7},
	EmotionSighing:       {Stability: 0.7, SimilarityBoost: 0.4, Style: 0.3},
	EmotionGasping:       {Stability: 0.3, SimilarityBoost: 0.7, Style: 0.8},
	EmotionCrying:        {Stability: 0.6, SimilarityBoost: 0.4, Style: 0.2},
	EmotionThinking:      {Stability: 0.6, SimilarityBoost: 0.4, Style: 0.4},
	EmotionSurprised:     {Stability: 0.3, SimilarityBoost: 0.7, Style: 0.8},
	EmotionConfused:      {Stability: 0.5, SimilarityBoost: 0.5, Style: 0.5},
	EmotionExcited:       {Stability: 0.3, SimilarityBoost: 0.7, Style: 0.8},
	EmotionNervous:       {Stability: 0.4, SimilarityBoost: 0.6, Style: 0.5},
	EmotionWarm:          {Stability: 0.5, SimilarityBoost: 0.6, Style: 0.6},
	EmotionSerious:       {Stability: 0.7, SimilarityBoost: 0.5, Style: 0.3},
	EmotionCasual:        {Stability: 0.5, SimilarityBoost: 0.5, Style: 0.5},
	EmotionContemplative: {Stability: 0.6, SimilarityBoost: 0.4, Style: 0.4},
	EmotionAngry:         {Stability: 0.3, SimilarityBoost: 0.8, Style: 0.8},
	EmotionCurious:       {Stability: 0.5, SimilarityBoost: 0.5, Style: 0.6},
	EmotionUrgent:        {Stability: 0.4, SimilarityBoost: 0.8, Style: 0.7},
	EmotionFriendly:      {Stability: 0.5, SimilarityBoost: 0.6, Style: 0.6},
	EmotionEnthusiastic:  {Stability: 0.4, SimilarityBoost: 0.7, Style: 0.7},
}

// emotionPrefixes holds the curated vocal sounds spoken before the utterance
// text. Deterministic per tag so re-runs produce identical audio.
var emotionPrefixes = map[EmotionTag]string{
	EmotionLaughing:  "Ha ha ha!",
	EmotionChuckling: "Heh,",
	EmotionSighing:   "*sigh*",
	EmotionThinking:  "Hmm,",
	EmotionGasping:   "*gasp*",
}

// LookupEmotion maps a tag to its VoiceSettings. Total: unknown tags fall back
// to the baseline instead of failing.
func LookupEmotion(tag EmotionTag) VoiceSettings {
	if settings, ok := emotionSettings[tag]; ok {
		return settings
	}
	return baselineSettings
}

// ParseEmotionTag matches raw bracket contents against the known tag set,
// case-insensitively. Returns false for unrecognized contents, which callers
// strip silently.
func ParseEmotionTag(raw string) (EmotionTag, bool) {
	tag := EmotionTag(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := emotionSettings[tag]; ok && tag != EmotionNone {
		return tag, true
	}
	return EmotionNone, false
}

// ApplyPrefix prepends the tag's vocal sound to text. Idempotent: text already
// carrying the prefix is returned unchanged, so running the pipeline twice
// never doubles a laugh.
func ApplyPrefix(tag EmotionTag, text string) string {
	prefix, ok := emotionPrefixes[tag]
	if !ok {
		return text
	}
	if strings.HasPrefix(text, prefix) {
		return text
	}
	if text == "" {
		return prefix
	}
	return prefix + " " + text
}

// EmotionTags lists every known tag including the baseline, in no particular
// order. Used by surfaces that document the accepted tags.
func EmotionTags() []EmotionTag {
	tags := make([]EmotionTag, 0, len(emotionSettings))
	for tag := range emotionSettings {
		tags = append(tags, tag)
	}
	return tags
}
