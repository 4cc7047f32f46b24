// Package interfaces defines service contracts for Finsight
package interfaces

import (
	"context"

	"github.com/bobmcallan/finsight/internal/models"
)

// AnalyzerService runs the full portfolio analysis pipeline
type AnalyzerService interface {
	// Analyze validates the portfolio, fetches market data through the
	// cache, computes indicators and scores, optionally attaches insight
	// commentary, and assembles the final report.
	Analyze(ctx context.Context, portfolio *models.Portfolio, options AnalyzeOptions) (*models.Analysis, error)
}

// AnalyzeOptions configures one analysis run
type AnalyzeOptions struct {
	IncludeInsights bool // invoke the insight provider after scoring
	ForceRefresh    bool // bypass cache reads (writes still happen)
}
