package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"

	"podcastforge-server-go/internal/domain/script"
	"podcastforge-server-go/internal/platform/config"
)

func TestKey_SensitiveToAllInputs(t *testing.T) {
	base := Key("elevenlabs", "nova", script.VoiceSettings{Stability: 0.5, SimilarityBoost: 0.5, Style: 0.5}, "hello")
	variants := []string{
		Key("edge", "nova", script.VoiceSettings{Stability: 0.5, SimilarityBoost: 0.5, Style: 0.5}, "hello"),
		Key("elevenlabs", "adam", script.VoiceSettings{Stability: 0.5, SimilarityBoost: 0.5, Style: 0.5}, "hello"),
		Key("elevenlabs", "nova", script.VoiceSettings{Stability: 0.2, SimilarityBoost: 0.5, Style: 0.5}, "hello"),
		Key("elevenlabs", "nova", script.VoiceSettings{Stability: 0.5, SimilarityBoost: 0.5, Style: 0.5}, "goodbye"),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d produced the same key as base", i)
		}
	}

	again := Key("elevenlabs", "nova", script.VoiceSettings{Stability: 0.5, SimilarityBoost: 0.5, Style: 0.5}, "hello")
	if again != base {
		t.Error("identical inputs produced different keys")
	}
}

func TestMemoryCacheLifecycle(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(config.CacheConfig{TTL: time.Minute, MaxEntries: 2})

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", hit, err)
	}

	audio := []byte("mp3-bytes")
	if err := c.Set(ctx, "k1", audio); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := c.Get(ctx, "k1")
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(got, audio) {
		t.Errorf("cached audio mismatch")
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(config.CacheConfig{TTL: time.Minute, MaxEntries: 2})

	_ = c.Set(ctx, "a", []byte("1"))
	_ = c.Set(ctx, "b", []byte("2"))
	_ = c.Set(ctx, "c", []byte("3"))

	hits := 0
	for _, key := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, key); hit {
			hits++
		}
	}
	if hits > 2 {
		t.Errorf("expected eviction to cap entries at 2, got %d hits", hits)
	}
}

func TestRedisCacheLifecycle(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	c, err := NewRedis(config.CacheConfig{
		TTL:   time.Minute,
		Redis: config.RedisCacheConfig{Addr: mr.Addr()},
	})
	if err != nil {
		t.Fatalf("NewRedis error: %v", err)
	}
	t.Cleanup(func() { _ = c.Close(ctx) })

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", hit, err)
	}

	audio := []byte("segment-audio")
	if err := c.Set(ctx, "seg", audio); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, hit, err := c.Get(ctx, "seg")
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(got, audio) {
		t.Errorf("cached audio mismatch")
	}

	mr.FastForward(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "seg"); hit {
		t.Error("expected ttl expiry after fast-forward")
	}
}

func TestFactory(t *testing.T) {
	if _, err := New(config.CacheConfig{Driver: "bogus"}); err == nil {
		t.Error("expected error for unknown driver")
	}
	c, err := New(config.CacheConfig{})
	if err != nil {
		t.Fatalf("default driver should be memory: %v", err)
	}
	if c == nil {
		t.Fatal("nil cache from factory")
	}
}
