package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"podcastforge-server-go/internal/platform/config"
	"podcastforge-server-go/internal/platform/errors"
	"podcastforge-server-go/internal/platform/logging"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io/v1"

// ElevenLabsProvider renders text via the ElevenLabs text-to-speech REST API.
type ElevenLabsProvider struct {
	apiKey     string
	modelID    string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

func NewElevenLabsProvider(cfg config.TTSConfig, logger *logging.Logger) (*ElevenLabsProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.KindConfig, "synth.NewElevenLabsProvider", "elevenlabs api key not configured")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = elevenLabsBaseURL
	}
	modelID := cfg.ModelID
	if modelID == "" {
		modelID = "eleven_turbo_v2_5"
	}
	return &ElevenLabsProvider{
		apiKey:     cfg.APIKey,
		modelID:    modelID,
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}, nil
}

func (p *ElevenLabsProvider) ProviderType() string { return "elevenlabs" }

type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
}

// Synthesize POSTs one utterance to /text-to-speech/{voice_id} and returns
// MP3 bytes. Backend failures map to the typed errors so the orchestrator can
// tell retryable from permanent.
func (p *ElevenLabsProvider) Synthesize(ctx context.Context, text string, opts Options) ([]byte, error) {
	if opts.VoiceID == "" {
		return nil, ErrInvalidVoice
	}

	payload := elevenLabsRequest{
		Text:    text,
		ModelID: p.modelID,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       opts.Settings.Stability,
			SimilarityBoost: opts.Settings.SimilarityBoost,
			Style:           opts.Settings.Style,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(errors.KindSynthesis, "elevenlabs.Synthesize", "marshal request", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", p.baseURL, opts.VoiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.KindSynthesis, "elevenlabs.Synthesize", "build request", err)
	}
	req.Header.Set("xi-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.KindSynthesis, "elevenlabs.Synthesize", "http request", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusUnauthorized, http.StatusPaymentRequired:
		return nil, ErrQuotaExceeded
	case http.StatusBadRequest, http.StatusNotFound:
		p.logger.WarnTag(logging.TagTTS, "elevenlabs rejected voice %s with status %d", opts.VoiceID, resp.StatusCode)
		return nil, ErrInvalidVoice
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.New(errors.KindSynthesis, "elevenlabs.Synthesize",
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, msg))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.KindSynthesis, "elevenlabs.Synthesize", "read audio body", err)
	}
	if len(audio) == 0 {
		return nil, errors.New(errors.KindSynthesis, "elevenlabs.Synthesize", "empty audio response")
	}
	return audio, nil
}
