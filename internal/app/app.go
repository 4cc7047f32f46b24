// Package app wires configuration, clients, storage and services together
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/finsight/internal/clients/eodhd"
	"github.com/bobmcallan/finsight/internal/clients/gemini"
	"github.com/bobmcallan/finsight/internal/clients/openai"
	"github.com/bobmcallan/finsight/internal/common"
	"github.com/bobmcallan/finsight/internal/interfaces"
	"github.com/bobmcallan/finsight/internal/recorder"
	"github.com/bobmcallan/finsight/internal/services/analyzer"
	"github.com/bobmcallan/finsight/internal/signals"
	"github.com/bobmcallan/finsight/internal/storage"
)

// App holds the assembled application
type App struct {
	Config   *common.Config
	Logger   *common.Logger
	Cache    interfaces.MarketCache
	Recorder interfaces.RunRecorder
	Market   interfaces.MarketDataClient
	Insight  interfaces.InsightClient // nil when the provider is off
	Analyzer interfaces.AnalyzerService
}

// NewApp builds the application from configuration files plus environment
// overrides. A missing insight API key downgrades insights to off rather
// than failing startup; a missing EODHD key fails, nothing works without it.
func NewApp(ctx context.Context, configPaths ...string) (*App, error) {
	cfg, err := common.LoadConfig(configPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := common.NewLogger(cfg.Logging.Level)

	if cfg.Clients.EODHD.APIKey == "" {
		return nil, fmt.Errorf("EODHD API key not configured (set EODHD_API_KEY)")
	}

	var cache interfaces.MarketCache
	if cfg.Cache.Enabled {
		badger, err := storage.NewBadgerCache(logger, cfg.Storage.Cache.Path, cfg.Cache.GetTTL())
		if err != nil {
			return nil, fmt.Errorf("failed to open market cache: %w", err)
		}
		cache = badger
	} else {
		logger.Info().Msg("Market data cache disabled, every run fetches fresh")
		cache = storage.NewNoopCache()
	}

	var runRecorder interfaces.RunRecorder
	if cfg.Storage.Runs.Path != "" {
		sqlite, err := recorder.NewSQLiteRecorder(cfg.Storage.Runs.Path, logger)
		if err != nil {
			cache.Close()
			return nil, fmt.Errorf("failed to open run history: %w", err)
		}
		runRecorder = sqlite
	} else {
		runRecorder = recorder.NoopRecorder{}
	}

	marketOpts := []eodhd.ClientOption{
		eodhd.WithTimeout(cfg.Clients.EODHD.GetTimeout()),
		eodhd.WithLogger(logger),
	}
	if cfg.Clients.EODHD.BaseURL != "" {
		marketOpts = append(marketOpts, eodhd.WithBaseURL(cfg.Clients.EODHD.BaseURL))
	}
	if cfg.Clients.EODHD.RateLimit > 0 {
		marketOpts = append(marketOpts, eodhd.WithRateLimit(cfg.Clients.EODHD.RateLimit))
	}
	market := eodhd.NewClient(cfg.Clients.EODHD.APIKey, marketOpts...)

	insightClient, err := buildInsightClient(ctx, cfg, logger)
	if err != nil {
		cache.Close()
		runRecorder.Close()
		return nil, err
	}

	computer := signals.NewComputer(signals.Config{
		MAWindows:          cfg.Analysis.MAWindows,
		MomentumLookback:   cfg.Analysis.MomentumLookback,
		VolatilityLookback: cfg.Analysis.VolatilityLookback,
		RSIPeriod:          cfg.Analysis.RSIPeriod,
	})

	service := analyzer.NewService(market, insightClient, cache, runRecorder, computer, cfg, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Cache:    cache,
		Recorder: runRecorder,
		Market:   market,
		Insight:  insightClient,
		Analyzer: service,
	}, nil
}

// buildInsightClient constructs the configured provider, or nil for "off"
// or a missing key.
func buildInsightClient(ctx context.Context, cfg *common.Config, logger *common.Logger) (interfaces.InsightClient, error) {
	switch strings.ToLower(cfg.Clients.Insights.Provider) {
	case "", "off", "none":
		return nil, nil

	case "gemini":
		if cfg.Clients.Insights.Gemini.APIKey == "" {
			logger.Warn().Msg("Gemini API key not configured, insights disabled")
			return nil, nil
		}
		client, err := gemini.NewClient(ctx, cfg.Clients.Insights.Gemini.APIKey,
			gemini.WithModel(cfg.Clients.Insights.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil

	case "openai":
		if cfg.Clients.Insights.OpenAI.APIKey == "" {
			logger.Warn().Msg("OpenAI API key not configured, insights disabled")
			return nil, nil
		}
		return openai.NewClient(cfg.Clients.Insights.OpenAI.APIKey,
			openai.WithModel(cfg.Clients.Insights.OpenAI.Model),
			openai.WithLogger(logger),
		), nil

	default:
		return nil, fmt.Errorf("unknown insight provider %q (want gemini, openai or off)", cfg.Clients.Insights.Provider)
	}
}

// Close releases the storage layers
func (a *App) Close() error {
	var firstErr error
	if err := a.Recorder.Close(); err != nil {
		firstErr = err
	}
	if err := a.Cache.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
