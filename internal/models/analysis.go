// Package models defines data structures for Finsight
package models

import "time"

// RunState tracks the orchestrator's progress through one analysis run
type RunState string

const (
	RunStateInitialized         RunState = "initialized"
	RunStateFetchingMarketData  RunState = "fetching_market_data"
	RunStateComputingIndicators RunState = "computing_indicators"
	RunStateComputingScores     RunState = "computing_scores"
	RunStateFetchingInsights    RunState = "fetching_insights"
	RunStateAssembled           RunState = "assembled"
	RunStateCancelled           RunState = "cancelled"
)

// Sentiment is the portfolio-level qualitative signal
type Sentiment string

const (
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
	SentimentBullish Sentiment = "bullish"
)

// RiskLevel classifies per-holding risk
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// IndicatorSet holds technical indicators derived from a price series.
// Nil pointers and absent map entries mean the series was too short for
// that window — never zero, so scoring can't mistake unknown for riskless.
type IndicatorSet struct {
	MovingAverages map[int]float64 `json:"moving_averages,omitempty"` // window → mean of last window closes
	Momentum       *float64        `json:"momentum_pct,omitempty"`    // % change over the configured lookback
	Volatility     *float64        `json:"volatility_pct,omitempty"`  // annualized stddev of daily returns, %
	RSI            *float64        `json:"rsi,omitempty"`             // [0,100]

	// Fixed-lookback price changes
	PriceChange1D  *float64 `json:"price_change_1d,omitempty"`
	PriceChange7D  *float64 `json:"price_change_7d,omitempty"`
	PriceChange30D *float64 `json:"price_change_30d,omitempty"`
}

// HoldingAnalysis combines one input holding with everything derived for it.
// Degraded entries keep their input position in the result but carry no
// metrics; a failed gateway never removes a holding from the report.
type HoldingAnalysis struct {
	Holding    Holding       `json:"holding"`
	Quote      *Quote        `json:"quote,omitempty"`
	Indicators *IndicatorSet `json:"indicators,omitempty"`

	Valuation   *float64 `json:"valuation,omitempty"`     // shares × current price
	GainLoss    *float64 `json:"gain_loss,omitempty"`     // valuation − shares × cost basis
	GainLossPct *float64 `json:"gain_loss_pct,omitempty"` // gain/loss relative to cost
	WeightPct   float64  `json:"weight_pct,omitempty"`    // share of total portfolio valuation

	High52Week float64 `json:"high_52_week,omitempty"`
	Low52Week  float64 `json:"low_52_week,omitempty"`

	RiskLevel   RiskLevel `json:"risk_level,omitempty"`
	RiskFactors []string  `json:"risk_factors,omitempty"`

	Degraded       bool   `json:"degraded,omitempty"`
	DegradedReason string `json:"degraded_reason,omitempty"`
}

// PortfolioScores holds the portfolio-level aggregate scores, each clamped
// to [0,100] regardless of input size.
type PortfolioScores struct {
	Diversification float64   `json:"diversification"`
	Risk            float64   `json:"risk"`
	Sentiment       Sentiment `json:"sentiment"`
	SentimentSource string    `json:"sentiment_source"` // "insights" or "momentum"
}

// Insight is the qualitative commentary returned by an insight provider
type Insight struct {
	Commentary      string    `json:"commentary"`
	Sentiment       Sentiment `json:"sentiment,omitempty"`
	Strengths       []string  `json:"strengths,omitempty"`
	Weaknesses      []string  `json:"weaknesses,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
	MarketOutlook   string    `json:"market_outlook,omitempty"`
	Provider        string    `json:"provider,omitempty"`
}

// InsightRequest is the provider-agnostic input to an insight summarization
type InsightRequest struct {
	PortfolioName string
	TotalValue    float64
	GainLoss      *float64
	Holdings      []HoldingAnalysis
	NewsCount     int
}

// Analysis is the root result aggregate for one run. Holdings preserve the
// input order 1:1. Immutable once assembled.
type Analysis struct {
	RunID         string            `json:"run_id"`
	PortfolioName string            `json:"portfolio_name"`
	RunAt         time.Time         `json:"run_at"`
	State         RunState          `json:"state"`
	Holdings      []HoldingAnalysis `json:"holdings"`
	TotalValue    float64           `json:"total_value"`
	TotalGainLoss *float64          `json:"total_gain_loss,omitempty"`
	GainLossPct   *float64          `json:"total_gain_loss_pct,omitempty"`
	Allocation    map[string]float64 `json:"allocation,omitempty"` // symbol → weight %
	Scores        PortfolioScores   `json:"scores"`
	Insight       *Insight          `json:"insight,omitempty"`
	DegradedCount int               `json:"degraded_count,omitempty"`
}
