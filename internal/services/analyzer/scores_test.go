package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/finsight/internal/models"
)

func holdingWith(symbol string, valuation, weight float64) models.HoldingAnalysis {
	return models.HoldingAnalysis{
		Holding:   models.Holding{Symbol: symbol, Shares: 1},
		Valuation: &valuation,
		WeightPct: weight,
	}
}

func withVolatility(h models.HoldingAnalysis, vol float64) models.HoldingAnalysis {
	h.Indicators = &models.IndicatorSet{Volatility: &vol}
	return h
}

func withMomentum(h models.HoldingAnalysis, momentum float64) models.HoldingAnalysis {
	if h.Indicators == nil {
		h.Indicators = &models.IndicatorSet{}
	}
	h.Indicators.Momentum = &momentum
	return h
}

func TestDiversificationScoreOrdering(t *testing.T) {
	single := []models.HoldingAnalysis{holdingWith("AAPL", 1000, 100)}

	fiveEqual := make([]models.HoldingAnalysis, 5)
	for i, s := range []string{"A", "B", "C", "D", "E"} {
		fiveEqual[i] = holdingWith(s, 1000, 20)
	}

	low := diversificationScore(single)
	high := diversificationScore(fiveEqual)

	assert.InDelta(t, 5.0, low, 1e-9)
	assert.InDelta(t, 65.0, high, 1e-9)
	assert.Less(t, low, high)
}

func TestDiversificationScoreBounds(t *testing.T) {
	assert.Zero(t, diversificationScore(nil))

	many := make([]models.HoldingAnalysis, 20)
	for i := range many {
		many[i] = holdingWith("S", 100, 5)
	}
	score := diversificationScore(many)
	assert.LessOrEqual(t, score, 100.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestDiversificationScoreIgnoresDegraded(t *testing.T) {
	holdings := []models.HoldingAnalysis{
		holdingWith("AAPL", 1000, 100),
		{Holding: models.Holding{Symbol: "BROKE", Shares: 1}, Degraded: true},
	}

	assert.InDelta(t, 5.0, diversificationScore(holdings), 1e-9)
}

func TestRiskScoreWeightsByValuation(t *testing.T) {
	calm := withVolatility(holdingWith("CALM", 9000, 90), 10)
	wild := withVolatility(holdingWith("WILD", 1000, 10), 80)

	// 0.9×10 + 0.1×80 = 17 → ×1.25 = 21.25
	score := riskScore([]models.HoldingAnalysis{calm, wild})
	assert.InDelta(t, 21.25, score, 1e-9)
}

func TestRiskScoreExcludesMissingVolatility(t *testing.T) {
	known := withVolatility(holdingWith("KNOWN", 1000, 50), 40)
	unknown := holdingWith("UNKNOWN", 1000, 50) // no indicators

	// Unknown volatility must not dilute the average toward calm
	score := riskScore([]models.HoldingAnalysis{known, unknown})
	assert.InDelta(t, 50.0, score, 1e-9)

	assert.Zero(t, riskScore([]models.HoldingAnalysis{unknown}))
}

func TestRiskScoreClamped(t *testing.T) {
	extreme := withVolatility(holdingWith("WILD", 1000, 100), 300)
	assert.Equal(t, 100.0, riskScore([]models.HoldingAnalysis{extreme}))
}

func TestSentimentFromMomentum(t *testing.T) {
	pos := func(s string) models.HoldingAnalysis { return withMomentum(holdingWith(s, 100, 25), 5) }
	neg := func(s string) models.HoldingAnalysis { return withMomentum(holdingWith(s, 100, 25), -5) }

	bullish := []models.HoldingAnalysis{pos("A"), pos("B"), pos("C"), neg("D")}
	assert.Equal(t, models.SentimentBullish, sentimentFromMomentum(bullish))

	bearish := []models.HoldingAnalysis{neg("A"), neg("B"), neg("C"), pos("D")}
	assert.Equal(t, models.SentimentBearish, sentimentFromMomentum(bearish))

	mixed := []models.HoldingAnalysis{pos("A"), pos("B"), neg("C"), neg("D")}
	assert.Equal(t, models.SentimentNeutral, sentimentFromMomentum(mixed))

	assert.Equal(t, models.SentimentNeutral, sentimentFromMomentum(nil))
}

func TestAssessRiskMissingIndicators(t *testing.T) {
	level, factors := assessRisk(nil, nil)
	assert.Equal(t, models.RiskMedium, level)
	require.Len(t, factors, 1)
}

func TestAssessRiskLevels(t *testing.T) {
	lowVol := 15.0
	calm := &models.IndicatorSet{Volatility: &lowVol}
	level, factors := assessRisk(calm, &models.Quote{Price: 100})
	assert.Equal(t, models.RiskLow, level)
	assert.Empty(t, factors)

	highVol := 55.0
	overbought := 75.0
	decline := -15.0
	wild := &models.IndicatorSet{Volatility: &highVol, RSI: &overbought, PriceChange30D: &decline}
	level, factors = assessRisk(wild, &models.Quote{Price: 100})
	assert.Equal(t, models.RiskVeryHigh, level)
	assert.GreaterOrEqual(t, len(factors), 3)
}

func TestAssessRiskBelowMovingAverage(t *testing.T) {
	ind := &models.IndicatorSet{MovingAverages: map[int]float64{50: 120, 200: 110}}
	level, factors := assessRisk(ind, &models.Quote{Price: 100})

	assert.Equal(t, models.RiskMedium, level)
	require.Len(t, factors, 1)
	assert.Contains(t, factors[0], "200-day")
}
