// Package storage provides the market data cache backing stores
package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
)

// CacheEntry is one cached market data payload. TTL is carried per entry
// so each record expires independently of the store-wide default.
type CacheEntry struct {
	Fingerprint string `badgerhold:"key"`
	Payload     []byte
	FetchedAt   time.Time
	TTL         time.Duration
}

// expired reports whether the entry is strictly older than its TTL
func (e *CacheEntry) expired() bool {
	return !common.IsFresh(e.FetchedAt, e.TTL)
}

// BadgerCache is a BadgerHold-backed MarketCache with lazy, read-time
// expiry. Expired entries are not deleted eagerly; the next Put for the
// same fingerprint overwrites them.
type BadgerCache struct {
	store  *badgerhold.Store
	ttl    time.Duration
	logger *common.Logger
}

// NewBadgerCache opens (or creates) a cache store at the given directory.
func NewBadgerCache(logger *common.Logger, path string, ttl time.Duration) (*BadgerCache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // Disable default badger logger

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}

	logger.Debug().Str("path", path).Dur("ttl", ttl).Msg("Cache store opened")

	return &BadgerCache{store: store, ttl: ttl, logger: logger}, nil
}

// Get returns the payload for the fingerprint when present and fresh.
// Storage errors and expired entries report a miss.
func (c *BadgerCache) Get(_ context.Context, fp interfaces.Fingerprint) ([]byte, bool) {
	var entry CacheEntry
	err := c.store.Get(fp.String(), &entry)
	if err != nil {
		if err != badgerhold.ErrNotFound {
			c.logger.Warn().Str("fingerprint", fp.String()).Err(err).Msg("Cache read failed, treating as miss")
		}
		return nil, false
	}

	if entry.expired() {
		return nil, false
	}
	return entry.Payload, true
}

// Put stores the payload under the fingerprint, stamping the fetch time
// and the store's TTL. Concurrent writes to the same fingerprint are
// last-write-wins.
func (c *BadgerCache) Put(_ context.Context, fp interfaces.Fingerprint, payload []byte) error {
	entry := CacheEntry{
		Fingerprint: fp.String(),
		Payload:     payload,
		FetchedAt:   time.Now(),
		TTL:         c.ttl,
	}
	if err := c.store.Upsert(entry.Fingerprint, &entry); err != nil {
		return fmt.Errorf("failed to cache %s: %w", entry.Fingerprint, err)
	}
	return nil
}

// Clear removes every cached entry.
func (c *BadgerCache) Clear(_ context.Context) error {
	if err := c.store.DeleteMatching(&CacheEntry{}, nil); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Close closes the backing store.
func (c *BadgerCache) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
