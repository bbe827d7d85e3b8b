package cache

import (
	"context"
	"sync"
	"time"

	"podcastforge-server-go/internal/platform/config"
)

type memoryEntry struct {
	audio    []byte
	storedAt time.Time
}

type memoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
}

// NewMemory builds an in-process cache with TTL expiry and a crude
// oldest-entry eviction once maxEntries is reached.
func NewMemory(cfg config.CacheConfig) Cache {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 500
	}
	return &memoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        effectiveTTL(cfg.TTL),
		maxEntries: maxEntries,
	}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Since(entry.storedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.audio, true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, audio []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		var oldestKey string
		var oldestTime time.Time
		for k, v := range c.entries {
			if oldestKey == "" || v.storedAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = v.storedAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = memoryEntry{audio: audio, storedAt: time.Now()}
	return nil
}

func (c *memoryCache) Close(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
	return nil
}
