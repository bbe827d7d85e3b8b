package script

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeIntroductions_AddsMissingIntro(t *testing.T) {
	utterances := []Utterance{
		{Speaker: "Host", CleanText: "Today we talk about tide pools.", SequenceIndex: 0},
		{Speaker: "Dr. Chen", CleanText: "They are remarkable ecosystems.", SequenceIndex: 1},
	}

	out := NormalizeIntroductions(utterances, nil)

	if !strings.Contains(out[0].CleanText, "your host") {
		t.Errorf("expected host introduction, got %q", out[0].CleanText)
	}
	if !strings.HasPrefix(out[1].CleanText, "Hi, my name is Dr. Chen.") {
		t.Errorf("expected guest introduction, got %q", out[1].CleanText)
	}
	if !strings.HasSuffix(out[0].CleanText, "Today we talk about tide pools.") {
		t.Errorf("original text must be preserved, got %q", out[0].CleanText)
	}
}

func TestNormalizeIntroductions_ExistingCueLeftAlone(t *testing.T) {
	utterances := []Utterance{
		{Speaker: "Host", CleanText: "Welcome to Deep Dive, I'm your host Alex.", SequenceIndex: 0},
		{Speaker: "Guest", CleanText: "Thanks for having me, Alex.", SequenceIndex: 1},
	}

	out := NormalizeIntroductions(utterances, nil)
	for i := range out {
		if out[i].CleanText != utterances[i].CleanText {
			t.Errorf("utterance %d changed: %q", i, out[i].CleanText)
		}
	}
}

func TestNormalizeIntroductions_Idempotent(t *testing.T) {
	utterances := []Utterance{
		{Speaker: "Host", CleanText: "Let's begin.", SequenceIndex: 0},
		{Speaker: "Guest", CleanText: "Sure thing.", SequenceIndex: 1},
		{Speaker: "Host", CleanText: "First question.", SequenceIndex: 2},
	}

	once := NormalizeIntroductions(utterances, nil)
	twice := NormalizeIntroductions(once, nil)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed output:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestNormalizeIntroductions_OnlyFirstUtterancePerSpeaker(t *testing.T) {
	utterances := []Utterance{
		{Speaker: "Host", CleanText: "Opening remarks.", SequenceIndex: 0},
		{Speaker: "Host", CleanText: "Second thought.", SequenceIndex: 1},
	}

	out := NormalizeIntroductions(utterances, nil)
	if out[1].CleanText != "Second thought." {
		t.Errorf("later utterances must not be touched, got %q", out[1].CleanText)
	}
}

func TestNormalizeIntroductions_DoesNotMutateInput(t *testing.T) {
	utterances := []Utterance{
		{Speaker: "Guest", CleanText: "No intro here.", SequenceIndex: 0},
	}
	NormalizeIntroductions(utterances, nil)
	if utterances[0].CleanText != "No intro here." {
		t.Errorf("input slice mutated: %q", utterances[0].CleanText)
	}
}
