// Package interfaces defines service contracts for Finsight
package interfaces

import (
	"context"

	"github.com/bobmcallan/finsight/internal/models"
)

// MarketDataClient provides quotes and price history for symbols.
// Implementations accept the caller's context deadline; expiry is treated
// by call sites like any other gateway failure.
type MarketDataClient interface {
	// GetQuote retrieves the current price snapshot for a symbol
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)

	// GetHistory retrieves up to days of daily closes, oldest first
	GetHistory(ctx context.Context, symbol string, days int) (*models.PriceSeries, error)
}

// InsightClient summarizes a set of analyzed holdings into qualitative
// commentary. Vendor-agnostic: the orchestrator depends only on this shape.
type InsightClient interface {
	// Summarize generates portfolio commentary and a sentiment label
	Summarize(ctx context.Context, req *models.InsightRequest) (*models.Insight, error)

	// Name identifies the provider (e.g. "gemini", "openai")
	Name() string
}
