// Package insight builds provider-agnostic prompts for portfolio
// commentary and parses the JSON responses. Both vendor adapters share
// this package so swapping providers never changes the request shape.
package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bobmcallan/finsight/internal/models"
)

// SystemPrompt frames the model as a portfolio analyst returning JSON only
const SystemPrompt = "You are a senior portfolio manager providing analysis for a retail investor. Respond only with valid JSON."

// BuildSummarizePrompt renders the portfolio state into the summarize prompt
func BuildSummarizePrompt(req *models.InsightRequest) string {
	var sb strings.Builder

	sb.WriteString("Portfolio: ")
	sb.WriteString(req.PortfolioName)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Total Value: $%.2f\n", req.TotalValue)
	if req.GainLoss != nil {
		fmt.Fprintf(&sb, "Total Gain/Loss: $%.2f\n", *req.GainLoss)
	}
	fmt.Fprintf(&sb, "Holdings: %d\n", len(req.Holdings))
	if req.NewsCount > 0 {
		fmt.Fprintf(&sb, "Consider up to %d recent news items per holding when assessing sentiment.\n", req.NewsCount)
	}

	sb.WriteString("\nIndividual holdings:\n")
	for _, h := range req.Holdings {
		fmt.Fprintf(&sb, "\n%s:\n", h.Holding.Symbol)
		if h.Degraded {
			sb.WriteString("  - market data unavailable\n")
			continue
		}
		if h.Quote != nil {
			fmt.Fprintf(&sb, "  - price: %.2f\n", h.Quote.Price)
		}
		fmt.Fprintf(&sb, "  - weight: %.1f%%\n", h.WeightPct)
		if h.GainLossPct != nil {
			fmt.Fprintf(&sb, "  - gain/loss: %.1f%%\n", *h.GainLossPct)
		}
		if ind := h.Indicators; ind != nil {
			if ind.PriceChange30D != nil {
				fmt.Fprintf(&sb, "  - 30-day change: %.1f%%\n", *ind.PriceChange30D)
			}
			if ind.Volatility != nil {
				fmt.Fprintf(&sb, "  - volatility: %.1f%%\n", *ind.Volatility)
			}
			if ind.RSI != nil {
				fmt.Fprintf(&sb, "  - RSI: %.1f\n", *ind.RSI)
			}
		}
		if h.RiskLevel != "" {
			fmt.Fprintf(&sb, "  - risk: %s\n", h.RiskLevel)
		}
		if len(h.RiskFactors) > 0 {
			fmt.Fprintf(&sb, "  - risk factors: %s\n", strings.Join(h.RiskFactors, ", "))
		}
	}

	sb.WriteString(`
Provide a portfolio analysis in this exact JSON format:
{
    "commentary": "2-3 sentence overall portfolio assessment",
    "overall_sentiment": "bullish",
    "strengths": ["strength 1", "strength 2"],
    "weaknesses": ["weakness 1", "weakness 2"],
    "recommendations": ["recommendation 1", "recommendation 2"],
    "market_outlook": "1-2 sentence market outlook relevant to this portfolio"
}

Valid overall_sentiment values: bearish, neutral, bullish. Be specific and actionable.`)

	return sb.String()
}

// response mirrors the JSON shape the prompt asks for
type response struct {
	Commentary      string   `json:"commentary"`
	Sentiment       string   `json:"overall_sentiment"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	MarketOutlook   string   `json:"market_outlook"`
}

// ParseResponse decodes a provider response into an Insight. Markdown code
// fences around the JSON are stripped; unknown sentiment values map to
// neutral so a sloppy model never derails the run.
func ParseResponse(raw string) (*models.Insight, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var resp response
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse insight response: %w", err)
	}
	if resp.Commentary == "" {
		return nil, fmt.Errorf("insight response missing commentary")
	}

	return &models.Insight{
		Commentary:      resp.Commentary,
		Sentiment:       NormalizeSentiment(resp.Sentiment),
		Strengths:       resp.Strengths,
		Weaknesses:      resp.Weaknesses,
		Recommendations: resp.Recommendations,
		MarketOutlook:   resp.MarketOutlook,
	}, nil
}

// NormalizeSentiment maps free-form sentiment strings onto the three
// supported labels. Strong variants collapse to their base label.
func NormalizeSentiment(s string) models.Sentiment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bullish", "very_bullish", "very bullish":
		return models.SentimentBullish
	case "bearish", "very_bearish", "very bearish":
		return models.SentimentBearish
	default:
		return models.SentimentNeutral
	}
}
