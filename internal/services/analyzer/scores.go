package analyzer

import (
	"fmt"
	"math"

	"github.com/bobmcallan/finsight/internal/models"
)

// clampScore bounds a score to [0,100]
func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// diversificationScore rates how spread the portfolio is. Half the score
// comes from the holding count (saturating at ten positions), half from
// how small the largest position weight is. One holding scores near zero;
// ten equally weighted holdings score 95.
func diversificationScore(holdings []models.HoldingAnalysis) float64 {
	n := 0
	largest := 0.0
	for _, h := range holdings {
		if h.Valuation == nil {
			continue
		}
		n++
		if h.WeightPct > largest {
			largest = h.WeightPct
		}
	}
	if n == 0 {
		return 0
	}

	countComponent := math.Min(float64(n), 10) / 10 * 50
	concentrationComponent := (1 - largest/100) * 50
	return clampScore(countComponent + concentrationComponent)
}

// riskScore rates overall portfolio volatility on [0,100], higher meaning
// riskier. It is the valuation-weighted annualized volatility scaled so a
// 40% vol portfolio lands at 50. Holdings without a volatility reading are
// excluded from both numerator and denominator rather than treated as calm.
func riskScore(holdings []models.HoldingAnalysis) float64 {
	weightedVol := 0.0
	totalWeight := 0.0
	for _, h := range holdings {
		if h.Valuation == nil || h.Indicators == nil || h.Indicators.Volatility == nil {
			continue
		}
		weightedVol += *h.Indicators.Volatility * *h.Valuation
		totalWeight += *h.Valuation
	}
	if totalWeight == 0 {
		return 0
	}

	avgVol := weightedVol / totalWeight
	return clampScore(avgVol * 1.25)
}

// sentimentFromMomentum is the fallback sentiment when no insight provider
// ran: bullish when over 60% of holdings with momentum are rising, bearish
// when over 60% are falling, neutral otherwise.
func sentimentFromMomentum(holdings []models.HoldingAnalysis) models.Sentiment {
	positive, negative, total := 0, 0, 0
	for _, h := range holdings {
		if h.Indicators == nil || h.Indicators.Momentum == nil {
			continue
		}
		total++
		switch m := *h.Indicators.Momentum; {
		case m > 0:
			positive++
		case m < 0:
			negative++
		}
	}
	if total == 0 {
		return models.SentimentNeutral
	}

	if float64(positive)/float64(total) > 0.6 {
		return models.SentimentBullish
	}
	if float64(negative)/float64(total) > 0.6 {
		return models.SentimentBearish
	}
	return models.SentimentNeutral
}

// assessRisk classifies a single holding from its indicators. Factors
// accumulate: two or more push the level up a band.
func assessRisk(ind *models.IndicatorSet, quote *models.Quote) (models.RiskLevel, []string) {
	if ind == nil {
		return models.RiskMedium, []string{"insufficient history for risk assessment"}
	}

	var factors []string

	if ind.Volatility != nil {
		switch v := *ind.Volatility; {
		case v > 50:
			factors = append(factors, fmt.Sprintf("very high volatility (%.0f%% annualized)", v))
		case v > 30:
			factors = append(factors, fmt.Sprintf("elevated volatility (%.0f%% annualized)", v))
		}
	}

	if ind.RSI != nil {
		switch r := *ind.RSI; {
		case r > 70:
			factors = append(factors, fmt.Sprintf("overbought (RSI %.0f)", r))
		case r < 30:
			factors = append(factors, fmt.Sprintf("oversold (RSI %.0f)", r))
		}
	}

	if quote != nil && len(ind.MovingAverages) > 0 {
		longest := 0
		for window := range ind.MovingAverages {
			if window > longest {
				longest = window
			}
		}
		if ma := ind.MovingAverages[longest]; quote.Price < ma {
			factors = append(factors, fmt.Sprintf("trading below %d-day average", longest))
		}
	}

	if ind.PriceChange30D != nil && *ind.PriceChange30D < -10 {
		factors = append(factors, fmt.Sprintf("down %.1f%% over 30 days", -*ind.PriceChange30D))
	}

	level := models.RiskLow
	veryVolatile := ind.Volatility != nil && *ind.Volatility > 50
	switch {
	case veryVolatile && len(factors) >= 2:
		level = models.RiskVeryHigh
	case veryVolatile || len(factors) >= 2:
		level = models.RiskHigh
	case len(factors) == 1:
		level = models.RiskMedium
	}

	return level, factors
}
