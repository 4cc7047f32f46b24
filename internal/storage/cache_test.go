package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Hour)

	fp := interfaces.Fingerprint{Symbol: "AAPL", Kind: interfaces.KindQuote}

	_, ok := cache.Get(ctx, fp)
	assert.False(t, ok)

	require.NoError(t, cache.Put(ctx, fp, []byte(`{"price":185.5}`)))

	payload, ok := cache.Get(ctx, fp)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"price":185.5}`), payload)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Millisecond)

	fp := interfaces.Fingerprint{Symbol: "AAPL", Kind: interfaces.KindHistory, Period: 200}
	require.NoError(t, cache.Put(ctx, fp, []byte("payload")))

	time.Sleep(10 * time.Millisecond)

	_, ok := cache.Get(ctx, fp)
	assert.False(t, ok)
}

func TestMemoryCacheDistinctFingerprints(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Hour)

	quote := interfaces.Fingerprint{Symbol: "AAPL", Kind: interfaces.KindQuote}
	history := interfaces.Fingerprint{Symbol: "AAPL", Kind: interfaces.KindHistory, Period: 200}

	require.NoError(t, cache.Put(ctx, quote, []byte("quote")))
	require.NoError(t, cache.Put(ctx, history, []byte("history")))

	payload, ok := cache.Get(ctx, quote)
	require.True(t, ok)
	assert.Equal(t, []byte("quote"), payload)

	payload, ok = cache.Get(ctx, history)
	require.True(t, ok)
	assert.Equal(t, []byte("history"), payload)
}

func TestMemoryCacheClear(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(time.Hour)

	fp := interfaces.Fingerprint{Symbol: "AAPL", Kind: interfaces.KindQuote}
	require.NoError(t, cache.Put(ctx, fp, []byte("payload")))
	require.NoError(t, cache.Clear(ctx))

	_, ok := cache.Get(ctx, fp)
	assert.False(t, ok)
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	cache := NewNoopCache()

	fp := interfaces.Fingerprint{Symbol: "AAPL", Kind: interfaces.KindQuote}
	require.NoError(t, cache.Put(ctx, fp, []byte("payload")))

	_, ok := cache.Get(ctx, fp)
	assert.False(t, ok)
}

func TestCacheEntryExpired(t *testing.T) {
	fresh := CacheEntry{FetchedAt: time.Now(), TTL: time.Hour}
	assert.False(t, fresh.expired())

	stale := CacheEntry{FetchedAt: time.Now().Add(-2 * time.Hour), TTL: time.Hour}
	assert.True(t, stale.expired())
}

func TestBadgerCachePersistsAcrossReads(t *testing.T) {
	ctx := context.Background()
	logger := common.NewSilentLogger()

	cache, err := NewBadgerCache(logger, t.TempDir(), time.Hour)
	require.NoError(t, err)
	defer cache.Close()

	fp := interfaces.Fingerprint{Symbol: "nvda", Kind: interfaces.KindHistory, Period: 200}
	require.NoError(t, cache.Put(ctx, fp, []byte("series")))

	// Fingerprint normalization makes case irrelevant
	payload, ok := cache.Get(ctx, interfaces.Fingerprint{Symbol: "NVDA", Kind: interfaces.KindHistory, Period: 200})
	require.True(t, ok)
	assert.Equal(t, []byte("series"), payload)

	require.NoError(t, cache.Clear(ctx))
	_, ok = cache.Get(ctx, fp)
	assert.False(t, ok)
}
