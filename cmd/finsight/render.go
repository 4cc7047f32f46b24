package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bobmcallan/finsight/internal/models"
)

// renderAnalysis writes the human-readable report
func renderAnalysis(w io.Writer, analysis *models.Analysis) {
	fmt.Fprintf(w, "\nPortfolio: %s\n", analysis.PortfolioName)
	fmt.Fprintf(w, "Run: %s (%s)\n", analysis.RunID, analysis.RunAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Total Value: $%.2f\n", analysis.TotalValue)
	if analysis.TotalGainLoss != nil {
		fmt.Fprintf(w, "Gain/Loss: %s", signedMoney(*analysis.TotalGainLoss))
		if analysis.GainLossPct != nil {
			fmt.Fprintf(w, " (%+.1f%%)", *analysis.GainLossPct)
		}
		fmt.Fprintln(w)
	}
	if analysis.DegradedCount > 0 {
		fmt.Fprintf(w, "Degraded holdings: %d\n", analysis.DegradedCount)
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tSHARES\tPRICE\tVALUE\tWEIGHT\tGAIN/LOSS\t30D\tVOL\tRSI\tRISK")
	for _, h := range analysis.Holdings {
		if h.Degraded {
			fmt.Fprintf(tw, "%s\t%.4g\t-\t-\t-\t-\t-\t-\t-\tunavailable (%s)\n",
				h.Holding.Symbol, h.Holding.Shares, h.DegradedReason)
			continue
		}
		fmt.Fprintf(tw, "%s\t%.4g\t%.2f\t%.2f\t%.1f%%\t%s\t%s\t%s\t%s\t%s\n",
			h.Holding.Symbol,
			h.Holding.Shares,
			h.Quote.Price,
			deref(h.Valuation),
			h.WeightPct,
			gainLossCell(h),
			pctCell(indicator(h, func(i *models.IndicatorSet) *float64 { return i.PriceChange30D })),
			pctCell(indicator(h, func(i *models.IndicatorSet) *float64 { return i.Volatility })),
			plainCell(indicator(h, func(i *models.IndicatorSet) *float64 { return i.RSI })),
			h.RiskLevel,
		)
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Scores: diversification %.0f/100, risk %.0f/100, sentiment %s (%s)\n",
		analysis.Scores.Diversification, analysis.Scores.Risk,
		analysis.Scores.Sentiment, analysis.Scores.SentimentSource)

	if analysis.Insight != nil {
		renderInsight(w, analysis.Insight)
	}
}

func renderInsight(w io.Writer, insight *models.Insight) {
	fmt.Fprintf(w, "\nInsights (%s):\n", insight.Provider)
	fmt.Fprintf(w, "  %s\n", insight.Commentary)
	renderList(w, "Strengths", insight.Strengths)
	renderList(w, "Weaknesses", insight.Weaknesses)
	renderList(w, "Recommendations", insight.Recommendations)
	if insight.MarketOutlook != "" {
		fmt.Fprintf(w, "\n  Outlook: %s\n", insight.MarketOutlook)
	}
}

func renderList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n  %s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "    - %s\n", item)
	}
}

// renderHistory writes the recent-runs table
func renderHistory(w io.Writer, runs []*models.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN AT\tPORTFOLIO\tHOLDINGS\tVALUE\tDIV\tRISK\tSENTIMENT\tRUN ID")
	for _, r := range runs {
		holdings := fmt.Sprintf("%d", r.HoldingCount)
		if r.DegradedCount > 0 {
			holdings = fmt.Sprintf("%d (%d degraded)", r.HoldingCount, r.DegradedCount)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t$%.2f\t%.0f\t%.0f\t%s\t%s\n",
			r.RunAt.Format("2006-01-02 15:04"),
			r.PortfolioName,
			holdings,
			r.TotalValue,
			r.Diversification,
			r.Risk,
			r.Sentiment,
			shortID(r.RunID),
		)
	}
	tw.Flush()
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func signedMoney(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("+$%.2f", v)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func indicator(h models.HoldingAnalysis, pick func(*models.IndicatorSet) *float64) *float64 {
	if h.Indicators == nil {
		return nil
	}
	return pick(h.Indicators)
}

func gainLossCell(h models.HoldingAnalysis) string {
	if h.GainLossPct == nil {
		return "-"
	}
	return fmt.Sprintf("%+.1f%%", *h.GainLossPct)
}

func pctCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func plainCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f", *v)
}
