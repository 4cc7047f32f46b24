package models

import "time"

// RunSummary is the compact per-run record kept in the run history store
type RunSummary struct {
	RunID           string    `json:"run_id"`
	PortfolioName   string    `json:"portfolio_name"`
	RunAt           time.Time `json:"run_at"`
	HoldingCount    int       `json:"holding_count"`
	DegradedCount   int       `json:"degraded_count"`
	TotalValue      float64   `json:"total_value"`
	Diversification float64   `json:"diversification"`
	Risk            float64   `json:"risk"`
	Sentiment       string    `json:"sentiment"`
}
