package synth

import (
	"context"

	"podcastforge-server-go/internal/domain/script"
	"podcastforge-server-go/internal/platform/config"
	"podcastforge-server-go/internal/platform/errors"
	"podcastforge-server-go/internal/platform/logging"
)

// Typed synthesis failures. Rate limits are retryable; invalid voice and
// exhausted quota are not, retrying them only burns attempts.
var (
	ErrRateLimited   = errors.New(errors.KindSynthesis, "synth.Provider", "rate limited by synthesis backend")
	ErrInvalidVoice  = errors.New(errors.KindSynthesis, "synth.Provider", "voice id not recognized by synthesis backend")
	ErrQuotaExceeded = errors.New(errors.KindSynthesis, "synth.Provider", "synthesis quota exceeded")
)

// Options carries the per-utterance synthesis parameters.
type Options struct {
	VoiceID  string
	Settings script.VoiceSettings
}

// Provider renders one utterance's text to audio bytes.
type Provider interface {
	Synthesize(ctx context.Context, text string, opts Options) ([]byte, error)
	ProviderType() string
}

// NewProvider builds the configured synthesis backend.
func NewProvider(cfg config.TTSConfig, logger *logging.Logger) (Provider, error) {
	switch cfg.Type {
	case "elevenlabs":
		return NewElevenLabsProvider(cfg, logger)
	case "edge":
		return NewEdgeProvider(cfg, logger), nil
	default:
		return nil, errors.New(errors.KindConfig, "synth.NewProvider", "unknown TTS provider type: "+cfg.Type)
	}
}
