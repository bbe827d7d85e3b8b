// Package cache stores rendered audio segments keyed by their synthesis
// inputs, so retried or repeated runs skip paid synthesis calls for
// unchanged utterances.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"podcastforge-server-go/internal/domain/script"
	"podcastforge-server-go/internal/platform/config"
)

// Driver identifiers supported by the segment cache.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Cache is the segment cache contract. Get returns (nil, false, nil) on miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, audio []byte) error
	Close(ctx context.Context) error
}

// New creates a segment cache based on the configured driver.
func New(cfg config.CacheConfig) (Cache, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverMemory
	}
	switch driver {
	case DriverMemory:
		return NewMemory(cfg), nil
	case DriverRedis:
		return NewRedis(cfg)
	default:
		return nil, fmt.Errorf("unsupported cache driver: %s", driver)
	}
}

// Key derives a stable cache key from everything that influences the audio:
// provider, voice, modulation triple and the exact text.
func Key(providerType, voiceID string, settings script.VoiceSettings, text string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%.3f|%.3f|%.3f|%s",
		providerType, voiceID, settings.Stability, settings.SimilarityBoost, settings.Style, text))
	return hex.EncodeToString(sum[:])
}

func effectiveTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 30 * time.Minute
	}
	return ttl
}
