// Package analyzer orchestrates the portfolio analysis pipeline
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/models"
	"github.com/bobmcallan/finsight/internal/signals"
)

// Service runs the analysis pipeline: validate, fetch market data through
// the cache, compute indicators, score, optionally attach insights, record.
type Service struct {
	market   interfaces.MarketDataClient
	insight  interfaces.InsightClient // nil when insights are off
	cache    interfaces.MarketCache
	recorder interfaces.RunRecorder
	computer *signals.Computer
	logger   *common.Logger
	cfg      *common.Config
}

// NewService creates a new analyzer service. The insight client may be nil.
func NewService(
	market interfaces.MarketDataClient,
	insightClient interfaces.InsightClient,
	cache interfaces.MarketCache,
	recorder interfaces.RunRecorder,
	computer *signals.Computer,
	cfg *common.Config,
	logger *common.Logger,
) *Service {
	return &Service{
		market:   market,
		insight:  insightClient,
		cache:    cache,
		recorder: recorder,
		computer: computer,
		logger:   logger,
		cfg:      cfg,
	}
}

// marketData is one holding's fetched inputs
type marketData struct {
	quote  *models.Quote
	series *models.PriceSeries
	err    error
}

// Analyze runs the full pipeline for one portfolio. Holdings come back in
// input order; per-holding gateway failures degrade that entry rather than
// failing the run. Only invalid input or cancellation abort.
func (s *Service) Analyze(ctx context.Context, portfolio *models.Portfolio, options interfaces.AnalyzeOptions) (*models.Analysis, error) {
	if err := portfolio.Validate(); err != nil {
		return nil, err
	}

	analysis := &models.Analysis{
		RunID:         uuid.New().String(),
		PortfolioName: portfolio.Name,
		RunAt:         time.Now(),
		State:         models.RunStateInitialized,
		Holdings:      make([]models.HoldingAnalysis, len(portfolio.Holdings)),
	}

	s.logger.Info().
		Str("run_id", analysis.RunID).
		Str("portfolio", portfolio.Name).
		Int("holdings", len(portfolio.Holdings)).
		Msg("Starting portfolio analysis")

	analysis.State = models.RunStateFetchingMarketData
	data := s.fetchAll(ctx, portfolio.Holdings, options.ForceRefresh)

	if err := ctx.Err(); err != nil {
		analysis.State = models.RunStateCancelled
		return analysis, err
	}

	analysis.State = models.RunStateComputingIndicators
	for i, holding := range portfolio.Holdings {
		analysis.Holdings[i] = s.analyzeHolding(holding, data[i])
		if analysis.Holdings[i].Degraded {
			analysis.DegradedCount++
		}
	}

	analysis.State = models.RunStateComputingScores
	s.scorePortfolio(analysis)

	if options.IncludeInsights && s.insight != nil {
		analysis.State = models.RunStateFetchingInsights
		s.attachInsights(ctx, analysis)
	}

	if err := ctx.Err(); err != nil {
		analysis.State = models.RunStateCancelled
		return analysis, err
	}

	analysis.State = models.RunStateAssembled

	if s.recorder != nil {
		if err := s.recorder.RecordRun(ctx, analysis); err != nil {
			s.logger.Warn().Err(err).Str("run_id", analysis.RunID).Msg("Failed to record run")
		}
	}

	s.logger.Info().
		Str("run_id", analysis.RunID).
		Float64("total_value", analysis.TotalValue).
		Int("degraded", analysis.DegradedCount).
		Msg("Portfolio analysis complete")

	return analysis, nil
}

// fetchAll retrieves quote and history for every holding concurrently.
// Results land at the holding's input index so downstream order is stable
// regardless of completion order. Per-holding errors are carried in the
// result, not returned.
func (s *Service) fetchAll(ctx context.Context, holdings []models.Holding, forceRefresh bool) []marketData {
	results := make([]marketData, len(holdings))

	g, gctx := errgroup.WithContext(ctx)
	limit := s.cfg.Analysis.MaxConcurrent
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, holding := range holdings {
		g.Go(func() error {
			quote, series, err := s.fetchHolding(gctx, holding.Symbol, forceRefresh)
			results[i] = marketData{quote: quote, series: series, err: err}
			return nil
		})
	}

	// workers never return errors; Wait only fences completion
	_ = g.Wait()
	return results
}

// fetchHolding fetches one symbol's quote and history, cache first
func (s *Service) fetchHolding(ctx context.Context, symbol string, forceRefresh bool) (*models.Quote, *models.PriceSeries, error) {
	quote, err := s.fetchQuote(ctx, symbol, forceRefresh)
	if err != nil {
		return nil, nil, err
	}

	series, err := s.fetchHistory(ctx, symbol, forceRefresh)
	if err != nil {
		// quote alone still supports valuation; history powers indicators
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("History fetch failed")
		return quote, nil, nil
	}

	return quote, series, nil
}

func (s *Service) fetchQuote(ctx context.Context, symbol string, forceRefresh bool) (*models.Quote, error) {
	fp := interfaces.Fingerprint{Symbol: symbol, Kind: interfaces.KindQuote}

	if !forceRefresh {
		if payload, ok := s.cache.Get(ctx, fp); ok {
			var quote models.Quote
			if err := json.Unmarshal(payload, &quote); err == nil {
				s.logger.Debug().Str("symbol", symbol).Msg("Quote cache hit")
				return &quote, nil
			}
			s.logger.Warn().Str("symbol", symbol).Msg("Discarding unreadable cached quote")
		}
	}

	quote, err := s.market.GetQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("quote fetch for %s: %w", symbol, err)
	}

	if payload, err := json.Marshal(quote); err == nil {
		if err := s.cache.Put(ctx, fp, payload); err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache quote")
		}
	}

	return quote, nil
}

func (s *Service) fetchHistory(ctx context.Context, symbol string, forceRefresh bool) (*models.PriceSeries, error) {
	days := s.cfg.Analysis.LookbackDays
	fp := interfaces.Fingerprint{Symbol: symbol, Kind: interfaces.KindHistory, Period: days}

	if !forceRefresh {
		if payload, ok := s.cache.Get(ctx, fp); ok {
			var series models.PriceSeries
			if err := json.Unmarshal(payload, &series); err == nil {
				s.logger.Debug().Str("symbol", symbol).Msg("History cache hit")
				return &series, nil
			}
			s.logger.Warn().Str("symbol", symbol).Msg("Discarding unreadable cached history")
		}
	}

	series, err := s.market.GetHistory(ctx, symbol, days)
	if err != nil {
		return nil, fmt.Errorf("history fetch for %s: %w", symbol, err)
	}

	if payload, err := json.Marshal(series); err == nil {
		if err := s.cache.Put(ctx, fp, payload); err != nil {
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache history")
		}
	}

	return series, nil
}

// analyzeHolding derives valuation, indicators and risk for one holding.
// A missing quote degrades the entry; a missing series only limits it.
func (s *Service) analyzeHolding(holding models.Holding, data marketData) models.HoldingAnalysis {
	ha := models.HoldingAnalysis{Holding: holding}

	if data.err != nil || data.quote == nil {
		ha.Degraded = true
		if data.err != nil {
			ha.DegradedReason = data.err.Error()
		} else {
			ha.DegradedReason = "no market data"
		}
		s.logger.Warn().Str("symbol", holding.Symbol).Str("reason", ha.DegradedReason).Msg("Holding degraded")
		return ha
	}

	ha.Quote = data.quote

	valuation := holding.Shares * data.quote.Price
	ha.Valuation = &valuation

	if holding.CostBasis != nil {
		cost := holding.Shares * *holding.CostBasis
		gainLoss := valuation - cost
		ha.GainLoss = &gainLoss
		if cost > 0 {
			pct := gainLoss / cost * 100
			ha.GainLossPct = &pct
		}
	}

	if data.series != nil && len(data.series.Points) > 0 {
		ha.Indicators = s.computer.Compute(data.series)
		ha.High52Week = data.series.High()
		ha.Low52Week = data.series.Low()
	}

	ha.RiskLevel, ha.RiskFactors = assessRisk(ha.Indicators, ha.Quote)

	return ha
}

// scorePortfolio fills in totals, weights, allocation and the aggregate
// scores. Degraded holdings count toward nothing but stay in the report.
func (s *Service) scorePortfolio(analysis *models.Analysis) {
	total := 0.0
	for _, h := range analysis.Holdings {
		if h.Valuation != nil {
			total += *h.Valuation
		}
	}
	analysis.TotalValue = total

	if total > 0 {
		analysis.Allocation = make(map[string]float64, len(analysis.Holdings))
		for i := range analysis.Holdings {
			h := &analysis.Holdings[i]
			if h.Valuation == nil {
				continue
			}
			h.WeightPct = *h.Valuation / total * 100
			analysis.Allocation[h.Holding.Symbol] = h.WeightPct
		}
	}

	haveGainLoss := false
	totalGainLoss := 0.0
	totalCost := 0.0
	for _, h := range analysis.Holdings {
		if h.GainLoss == nil || h.Holding.CostBasis == nil {
			continue
		}
		haveGainLoss = true
		totalGainLoss += *h.GainLoss
		totalCost += h.Holding.Shares * *h.Holding.CostBasis
	}
	if haveGainLoss {
		analysis.TotalGainLoss = &totalGainLoss
		if totalCost > 0 {
			pct := totalGainLoss / totalCost * 100
			analysis.GainLossPct = &pct
		}
	}

	analysis.Scores = models.PortfolioScores{
		Diversification: diversificationScore(analysis.Holdings),
		Risk:            riskScore(analysis.Holdings),
		Sentiment:       sentimentFromMomentum(analysis.Holdings),
		SentimentSource: "momentum",
	}
}

// attachInsights calls the insight provider best-effort: a failure logs a
// warning and leaves the momentum-derived sentiment in place.
func (s *Service) attachInsights(ctx context.Context, analysis *models.Analysis) {
	insightCtx, cancel := context.WithTimeout(ctx, s.cfg.Clients.Insights.GetTimeout())
	defer cancel()

	req := &models.InsightRequest{
		PortfolioName: analysis.PortfolioName,
		TotalValue:    analysis.TotalValue,
		GainLoss:      analysis.TotalGainLoss,
		Holdings:      analysis.Holdings,
		NewsCount:     s.cfg.Clients.Insights.NewsCount,
	}

	result, err := s.insight.Summarize(insightCtx, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("provider", s.insight.Name()).Msg("Insight generation failed, continuing without commentary")
		return
	}

	analysis.Insight = result
	if result.Sentiment != "" {
		analysis.Scores.Sentiment = result.Sentiment
		analysis.Scores.SentimentSource = "insights"
	}
}
