// Package interfaces defines service contracts for Finsight
package interfaces

import (
	"context"
	"fmt"

	"github.com/bobmcallan/finsight/internal/models"
)

// DataKind identifies the shape of a cached payload
type DataKind string

const (
	KindQuote   DataKind = "quote"
	KindHistory DataKind = "history"
)

// Fingerprint identifies one cacheable request. The string form cannot
// alias two distinct (symbol, kind, period) tuples because kind is a
// closed enum and period is numeric.
type Fingerprint struct {
	Symbol string
	Kind   DataKind
	Period int // lookback days; 0 for quotes
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("%s:%s:%d", f.Kind, models.NormalizeSymbol(f.Symbol), f.Period)
}

// MarketCache stores fetched market data between runs. Get fails closed:
// any read error or expired entry reports a miss, never an error — the
// cache is an optimization, not a correctness dependency.
type MarketCache interface {
	// Get returns the cached payload and true on a fresh hit
	Get(ctx context.Context, fp Fingerprint) ([]byte, bool)

	// Put stores a payload under the fingerprint, stamping fetch time and TTL
	Put(ctx context.Context, fp Fingerprint, payload []byte) error

	// Clear removes all entries
	Clear(ctx context.Context) error

	// Close releases the backing store
	Close() error
}

// RunRecorder persists a summary of each assembled analysis run
type RunRecorder interface {
	// RecordRun stores one assembled analysis
	RecordRun(ctx context.Context, analysis *models.Analysis) error

	// RecentRuns returns the most recent run summaries, newest first
	RecentRuns(ctx context.Context, limit int) ([]*models.RunSummary, error)

	// Close releases the backing store
	Close() error
}
