package synth

import (
	"context"

	"github.com/wujunwei928/edge-tts-go/edge_tts"

	"podcastforge-server-go/internal/platform/config"
	"podcastforge-server-go/internal/platform/errors"
	"podcastforge-server-go/internal/platform/logging"
)

// EdgeProvider renders text via Microsoft Edge's free TTS service. Edge voices
// carry no stability or style knobs, so VoiceSettings are accepted and
// ignored; useful as a zero-cost fallback when no ElevenLabs key is present.
type EdgeProvider struct {
	defaultVoice string
	logger       *logging.Logger
}

func NewEdgeProvider(cfg config.TTSConfig, logger *logging.Logger) *EdgeProvider {
	voice := cfg.Voice
	if voice == "" {
		voice = "en-US-AriaNeural"
	}
	return &EdgeProvider{defaultVoice: voice, logger: logger}
}

func (p *EdgeProvider) ProviderType() string { return "edge" }

func (p *EdgeProvider) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	if text == "" {
		return nil, errors.New(errors.KindSynthesis, "edge.Synthesize", "text cannot be empty")
	}

	voice := opts.VoiceID
	if voice == "" {
		voice = p.defaultVoice
	}

	communicate, err := edge_tts.NewCommunicate(text, edge_tts.SetVoice(voice))
	if err != nil {
		return nil, errors.Wrap(errors.KindSynthesis, "edge.Synthesize", "create communicator", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.KindSynthesis, "edge.Synthesize", "context cancelled", err)
	}

	audio, err := communicate.Stream()
	if err != nil {
		return nil, errors.Wrap(errors.KindSynthesis, "edge.Synthesize", "synthesis failed", err)
	}
	p.logger.DebugTag(logging.TagTTS, "edge synthesized %d bytes with voice %s", len(audio), voice)
	return audio, nil
}
