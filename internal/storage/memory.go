package storage

import (
	"context"
	"sync"
	"time"

	"github.com/bobmcallan/finsight/internal/interfaces"
)

// MemoryCache is an in-process MarketCache with the same read-time expiry
// semantics as BadgerCache. Safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
	ttl     time.Duration
}

// NewMemoryCache creates an empty in-memory cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]CacheEntry),
		ttl:     ttl,
	}
}

func (c *MemoryCache) Get(_ context.Context, fp interfaces.Fingerprint) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[fp.String()]
	c.mu.RUnlock()

	if !ok || entry.expired() {
		return nil, false
	}
	return entry.Payload, true
}

func (c *MemoryCache) Put(_ context.Context, fp interfaces.Fingerprint, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fp.String()] = CacheEntry{
		Fingerprint: fp.String(),
		Payload:     payload,
		FetchedAt:   time.Now(),
		TTL:         c.ttl,
	}
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]CacheEntry)
	return nil
}

func (c *MemoryCache) Close() error { return nil }

// NoopCache is the disabled-cache mode: Get always misses and Put discards.
// Used for force-fresh operation where every fetch must hit the gateway.
type NoopCache struct{}

// NewNoopCache creates a NoopCache
func NewNoopCache() *NoopCache { return &NoopCache{} }

func (NoopCache) Get(context.Context, interfaces.Fingerprint) ([]byte, bool)  { return nil, false }
func (NoopCache) Put(context.Context, interfaces.Fingerprint, []byte) error   { return nil }
func (NoopCache) Clear(context.Context) error                                 { return nil }
func (NoopCache) Close() error                                                { return nil }
