package script

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	platformerrors "podcastforge-server-go/internal/platform/errors"
)

func TestParse_BasicDialogue(t *testing.T) {
	p := NewParser(nil)
	utterances, err := p.Parse("Host [laughing]: That's hilarious!\nGuest: I know, right?")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(utterances) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(utterances))
	}

	first := utterances[0]
	if first.Speaker != "Host" || first.Emotion != EmotionLaughing {
		t.Errorf("first utterance = %+v", first)
	}
	if first.CleanText != "Ha ha ha! That's hilarious!" {
		t.Errorf("expected laugh prefix, got %q", first.CleanText)
	}

	second := utterances[1]
	if second.Speaker != "Guest" || second.Emotion != EmotionNone {
		t.Errorf("second utterance = %+v", second)
	}
	if second.CleanText != "I know, right?" {
		t.Errorf("clean text = %q", second.CleanText)
	}
}

func TestParse_SequenceIndexesGapFree(t *testing.T) {
	script := `Host: Welcome everyone.
Guest: Glad to be here.
Host: Let's dive in.
Expert: The data is clear.
Guest: Fascinating.`

	utterances, err := NewParser(nil).Parse(script)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(utterances) != 5 {
		t.Fatalf("expected 5 utterances, got %d", len(utterances))
	}
	for i, u := range utterances {
		if u.SequenceIndex != i {
			t.Errorf("utterance %d has sequence index %d", i, u.SequenceIndex)
		}
	}
}

func TestParse_MarkdownArtifactsStripped(t *testing.T) {
	script := "# Episode 12\n\n**Host**: Welcome to the show.\n---\n*Guest* [excited]: Thanks for having me!"

	utterances, err := NewParser(nil).Parse(script)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(utterances) != 2 {
		t.Fatalf("expected 2 utterances, got %d: %+v", len(utterances), utterances)
	}
	if utterances[0].Speaker != "Host" {
		t.Errorf("expected emphasis stripped from label, got %q", utterances[0].Speaker)
	}
	if utterances[1].Speaker != "Guest" || utterances[1].Emotion != EmotionExcited {
		t.Errorf("second utterance = %+v", utterances[1])
	}
}

func TestParse_ContinuationLines(t *testing.T) {
	script := `Host: This is a long thought
that continues on the next line
and even a third.
Guest: Short reply.`

	utterances, err := NewParser(nil).Parse(script)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(utterances) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(utterances))
	}
	want := "This is a long thought that continues on the next line and even a third."
	if utterances[0].CleanText != want {
		t.Errorf("clean text = %q, want %q", utterances[0].CleanText, want)
	}
}

func TestParse_UnrecognizedTagStripped(t *testing.T) {
	utterances, err := NewParser(nil).Parse("Host [sarcastically]: Oh sure, that will work.")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	u := utterances[0]
	if u.Emotion != EmotionNone {
		t.Errorf("expected baseline emotion, got %s", u.Emotion)
	}
	if u.CleanText != "Oh sure, that will work." {
		t.Errorf("clean text = %q", u.CleanText)
	}
}

func TestParse_FirstTagWins(t *testing.T) {
	utterances, err := NewParser(nil).Parse("Host: Well [sighing] I guess [excited] we're done here.")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	u := utterances[0]
	if u.Emotion != EmotionSighing {
		t.Errorf("expected first inline tag to win, got %s", u.Emotion)
	}
	if u.CleanText != "*sigh* Well I guess we're done here." {
		t.Errorf("clean text = %q", u.CleanText)
	}
}

func TestParse_NoEmotionRoundTrip(t *testing.T) {
	raw := "Just a plain statement with no markup at all."
	utterances, err := NewParser(nil).Parse("Narrator: " + raw)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	u := utterances[0]
	if u.Emotion != EmotionNone {
		t.Errorf("expected none emotion, got %s", u.Emotion)
	}
	if u.CleanText != raw {
		t.Errorf("expected clean text to equal raw text, got %q", u.CleanText)
	}
}

func TestParse_ParagraphFallback(t *testing.T) {
	script := "The ocean covers most of the planet.\n\nIt also drives the climate we all depend on."

	utterances, err := NewParser(nil).Parse(script)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(utterances) != 2 {
		t.Fatalf("expected 2 salvaged utterances, got %d", len(utterances))
	}
	if utterances[0].Speaker != "Speaker 1" || utterances[1].Speaker != "Speaker 2" {
		t.Errorf("expected alternating fallback speakers, got %q and %q",
			utterances[0].Speaker, utterances[1].Speaker)
	}
}

func TestParse_EmptyScript(t *testing.T) {
	for _, input := range []string{"", "   \n\n  ", "---\n===\n```", "---\n\n===\n\n***"} {
		_, err := NewParser(nil).Parse(input)
		if !errors.Is(err, ErrEmptyScript) {
			t.Errorf("input %q: expected ErrEmptyScript, got %v", input, err)
		}
		if !platformerrors.IsKind(err, platformerrors.KindParse) {
			t.Errorf("input %q: expected parse kind, got %v", input, err)
		}
	}
}

func TestParse_FallbackDropsMarkupLines(t *testing.T) {
	script := "---\nThe tide rolls in.\n```\n\nAnd the tide rolls out."

	utterances, err := NewParser(nil).Parse(script)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(utterances) != 2 {
		t.Fatalf("expected 2 salvaged utterances, got %d", len(utterances))
	}
	if utterances[0].CleanText != "The tide rolls in." {
		t.Errorf("markup lines leaked into salvaged text: %q", utterances[0].CleanText)
	}
}

func TestTruncate_MultibyteSafe(t *testing.T) {
	in := strings.Repeat("é", 40)
	got := truncate(in, 10)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("é", 10)+"..." {
		t.Errorf("truncate = %q", got)
	}
}

func TestParse_CaseSensitiveSpeakers(t *testing.T) {
	utterances, err := NewParser(nil).Parse("Host: Hello.\nhost: hello again.")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	speakers := Speakers(utterances)
	if len(speakers) != 2 {
		t.Fatalf("expected Host and host to stay distinct, got %v", speakers)
	}
}

func TestParse_LeadingNonBlockLinesDiscarded(t *testing.T) {
	script := "A podcast about tide pools\nHost: Welcome to the show."

	utterances, err := NewParser(nil).Parse(script)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(utterances) != 1 || utterances[0].Speaker != "Host" {
		t.Errorf("expected only the speaker block, got %+v", utterances)
	}
}
