package script

import "testing"

func TestLookupEmotion_AllTagsInRange(t *testing.T) {
	tags := append(EmotionTags(), EmotionTag("definitely-not-a-tag"))
	for _, tag := range tags {
		settings := LookupEmotion(tag)
		for name, v := range map[string]float64{
			"stability":        settings.Stability,
			"similarity_boost": settings.SimilarityBoost,
			"style":            settings.Style,
		} {
			if v < 0 || v > 1 {
				t.Errorf("tag %s: %s = %f out of [0,1]", tag, name, v)
			}
		}
	}
}

func TestLookupEmotion_UnknownFallsBackToBaseline(t *testing.T) {
	got := LookupEmotion("sarcastic")
	if got != baselineSettings {
		t.Errorf("expected baseline for unknown tag, got %+v", got)
	}
}

func TestParseEmotionTag(t *testing.T) {
	tests := []struct {
		raw     string
		want    EmotionTag
		wantOK  bool
	}{
		{"laughing", EmotionLaughing, true},
		{"LAUGHING", EmotionLaughing, true},
		{"  Excited  ", EmotionExcited, true},
		{"sarcastic", EmotionNone, false},
		{"", EmotionNone, false},
		{"none", EmotionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseEmotionTag(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseEmotionTag(%q) = (%s, %v), want (%s, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestApplyPrefix(t *testing.T) {
	tests := []struct {
		name string
		tag  EmotionTag
		text string
		want string
	}{
		{"laughing gets a laugh", EmotionLaughing, "That's hilarious!", "Ha ha ha! That's hilarious!"},
		{"sighing gets a sigh", EmotionSighing, "Here we go again.", "*sigh* Here we go again."},
		{"thinking gets a hmm", EmotionThinking, "let me see.", "Hmm, let me see."},
		{"no prefix for serious", EmotionSerious, "This matters.", "This matters."},
		{"no prefix for none", EmotionNone, "Plain text.", "Plain text."},
		{"idempotent", EmotionLaughing, "Ha ha ha! That's hilarious!", "Ha ha ha! That's hilarious!"},
		{"empty text", EmotionGasping, "", "*gasp*"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyPrefix(tt.tag, tt.text); got != tt.want {
				t.Errorf("ApplyPrefix(%s, %q) = %q, want %q", tt.tag, tt.text, got, tt.want)
			}
		})
	}
}
