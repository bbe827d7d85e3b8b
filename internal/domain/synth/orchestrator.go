package synth

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/hajimehoshi/go-mp3"
	"golang.org/x/sync/errgroup"

	"podcastforge-server-go/internal/domain/script"
	"podcastforge-server-go/internal/domain/synth/cache"
	"podcastforge-server-go/internal/domain/voice"
	"podcastforge-server-go/internal/platform/config"
	"podcastforge-server-go/internal/platform/errors"
	"podcastforge-server-go/internal/platform/logging"
)

// Segment is one utterance rendered to audio, carrying its sequence index so
// completion order never matters downstream.
type Segment struct {
	UtteranceRef    int               `json:"utterance_ref"`
	Speaker         string            `json:"speaker"`
	VoiceID         string            `json:"voice_id"`
	Emotion         script.EmotionTag `json:"emotion"`
	Audio           []byte            `json:"-"`
	DurationSeconds float64           `json:"duration_seconds"`
}

// Failure identifies one utterance whose synthesis exhausted its retries,
// with enough context to retry it alone.
type Failure struct {
	SequenceIndex int    `json:"sequence_index"`
	Speaker       string `json:"speaker"`
	TextPreview   string `json:"text_preview"`
	Err           string `json:"error"`
}

// ErrSynthesisFailed aggregates per-utterance failures after retries.
var ErrSynthesisFailed = errors.New(errors.KindSynthesis, "synth.Orchestrate", "one or more utterances failed to synthesize")

// Report is the outcome of one orchestration pass. Segments is complete and
// ordered by sequence index only when Failures is empty.
type Report struct {
	Segments []Segment
	Failures []Failure
}

func (r *Report) Failed() bool { return len(r.Failures) > 0 }

// Orchestrator fans utterances out to the synthesis provider with bounded
// concurrency, retries transient failures, and reassembles results in
// sequence order. Utterances are independent, so sibling synthesis continues
// when one fails; the incomplete set is reported instead of assembled.
type Orchestrator struct {
	provider Provider
	cache    cache.Cache
	cfg      config.SynthesisConfig
	logger   *logging.Logger
}

func NewOrchestrator(provider Provider, segCache cache.Cache, cfg config.SynthesisConfig, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		cache:    segCache,
		cfg:      cfg,
		logger:   logger,
	}
}

// Orchestrate renders every utterance with its assigned voice and
// emotion-derived settings. The returned report's Segments are sorted by
// sequence index regardless of completion order.
func (o *Orchestrator) Orchestrate(ctx context.Context, utterances []script.Utterance, voices voice.Map) (*Report, error) {
	segments := make([]*Segment, len(utterances))
	failures := make([]*Failure, len(utterances))

	g, gctx := errgroup.WithContext(ctx)
	limit := o.cfg.MaxConcurrent
	if limit <= 0 {
		limit = 4
	}
	g.SetLimit(limit)

	start := time.Now()
	for i := range utterances {
		g.Go(func() error {
			u := utterances[i]
			seg, err := o.renderOne(gctx, u, voices)
			if err != nil {
				failures[i] = &Failure{
					SequenceIndex: u.SequenceIndex,
					Speaker:       u.Speaker,
					TextPreview:   preview(u.CleanText),
					Err:           err.Error(),
				}
				// Siblings keep running; external-API money already spent on
				// them is not wasted by one bad utterance.
				return nil
			}
			segments[i] = seg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(errors.KindSynthesis, "synth.Orchestrate", "synthesis group", err)
	}

	report := &Report{}
	for _, f := range failures {
		if f != nil {
			report.Failures = append(report.Failures, *f)
		}
	}
	for _, s := range segments {
		if s != nil {
			report.Segments = append(report.Segments, *s)
		}
	}
	sort.Slice(report.Segments, func(a, b int) bool {
		return report.Segments[a].UtteranceRef < report.Segments[b].UtteranceRef
	})

	if report.Failed() {
		o.logger.ErrorTag(logging.TagTTS, "synthesis finished with %d/%d failures in %v",
			len(report.Failures), len(utterances), time.Since(start))
		return report, ErrSynthesisFailed
	}
	o.logger.InfoTag(logging.TagTTS, "synthesized %d segments in %v", len(report.Segments), time.Since(start))
	return report, nil
}

func (o *Orchestrator) renderOne(ctx context.Context, u script.Utterance, voices voice.Map) (*Segment, error) {
	voiceID, ok := voices[u.Speaker]
	if !ok {
		return nil, errors.New(errors.KindSynthesis, "synth.renderOne", "no voice assigned for speaker "+u.Speaker)
	}
	settings := script.LookupEmotion(u.Emotion)
	opts := Options{VoiceID: voiceID, Settings: settings}

	key := cache.Key(o.provider.ProviderType(), voiceID, settings, u.CleanText)
	if o.cache != nil {
		if audio, hit, err := o.cache.Get(ctx, key); err == nil && hit {
			o.logger.DebugTag(logging.TagTTS, "cache hit for utterance %d", u.SequenceIndex)
			return o.buildSegment(u, voiceID, audio), nil
		}
	}

	audio, err := o.synthesizeWithRetry(ctx, u, opts)
	if err != nil {
		return nil, err
	}
	if o.cache != nil {
		if err := o.cache.Set(ctx, key, audio); err != nil {
			o.logger.WarnTag(logging.TagTTS, "cache write failed for utterance %d: %v", u.SequenceIndex, err)
		}
	}
	return o.buildSegment(u, voiceID, audio), nil
}

func (o *Orchestrator) synthesizeWithRetry(ctx context.Context, u script.Utterance, opts Options) ([]byte, error) {
	var lastErr error
	attempts := o.cfg.MaxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		reqCtx := ctx
		var cancel context.CancelFunc
		if o.cfg.RequestTimeout > 0 {
			reqCtx, cancel = context.WithTimeout(ctx, o.cfg.RequestTimeout)
		}
		audio, err := o.provider.Synthesize(reqCtx, u.CleanText, opts)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return audio, nil
		}
		lastErr = err

		if !retryable(err) || attempt == attempts {
			break
		}
		backoff := time.Duration(attempt) * o.cfg.RetryBackoff
		if o.cfg.MaxBackoff > 0 && backoff > o.cfg.MaxBackoff {
			backoff = o.cfg.MaxBackoff
		}
		o.logger.WarnTag(logging.TagTTS, "utterance %d attempt %d/%d failed, retrying in %v: %v",
			u.SequenceIndex, attempt, attempts, backoff, err)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// retryable excludes failures a retry cannot fix.
func retryable(err error) bool {
	return !stderrors.Is(err, ErrInvalidVoice) && !stderrors.Is(err, ErrQuotaExceeded)
}

func (o *Orchestrator) buildSegment(u script.Utterance, voiceID string, audio []byte) *Segment {
	return &Segment{
		UtteranceRef:    u.SequenceIndex,
		Speaker:         u.Speaker,
		VoiceID:         voiceID,
		Emotion:         u.Emotion,
		Audio:           audio,
		DurationSeconds: measureMP3Duration(audio),
	}
}

// measureMP3Duration decodes the MP3 header stream to compute playback
// length. Returns 0 for undecodable audio; assembly measures the final
// artifact independently.
func measureMP3Duration(audio []byte) float64 {
	decoder, err := mp3.NewDecoder(bytes.NewReader(audio))
	if err != nil {
		return 0
	}
	n, err := io.Copy(io.Discard, decoder)
	if err != nil {
		return 0
	}
	// 16-bit stereo samples at the decoder's output rate.
	bytesPerSecond := float64(decoder.SampleRate() * 4)
	if bytesPerSecond == 0 {
		return 0
	}
	return float64(n) / bytesPerSecond
}

// preview shortens text for failure reports, counting runes so multibyte
// characters are never split.
func preview(text string) string {
	const max = 48
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return fmt.Sprintf("%s...", string(runes[:max]))
}
