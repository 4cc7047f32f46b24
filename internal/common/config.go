// Package common provides shared utilities for Finsight
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Finsight
type Config struct {
	Environment string         `toml:"environment"`
	Cache       CacheConfig    `toml:"cache"`
	Analysis    AnalysisConfig `toml:"analysis"`
	Clients     ClientsConfig  `toml:"clients"`
	Storage     StorageConfig  `toml:"storage"`
	Logging     LoggingConfig  `toml:"logging"`
}

// CacheConfig controls the market data cache.
// When Enabled is false every lookup misses and writes are discarded,
// forcing fresh gateway calls on every run.
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	TTL     string `toml:"ttl"` // duration string, default "1h"
}

// GetTTL parses and returns the cache TTL duration
func (c *CacheConfig) GetTTL() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return FreshnessQuote
	}
	return d
}

// AnalysisConfig holds indicator windows and pipeline tuning.
// All windows are constraints on minimum series length, never assumptions
// about how much history was actually fetched.
type AnalysisConfig struct {
	LookbackDays       int   `toml:"lookback_days"`       // historical window fetched per symbol
	MAWindows          []int `toml:"ma_windows"`          // moving average windows
	MomentumLookback   int   `toml:"momentum_lookback"`   // periods for momentum %
	VolatilityLookback int   `toml:"volatility_lookback"` // periods for return stddev
	RSIPeriod          int   `toml:"rsi_period"`
	MaxConcurrent      int   `toml:"max_concurrent"` // parallel market data fetches
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	EODHD    EODHDConfig    `toml:"eodhd"`
	Insights InsightsConfig `toml:"insights"`
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// InsightsConfig selects and configures the AI insight provider.
// Provider is "gemini", "openai" or "off".
type InsightsConfig struct {
	Provider  string       `toml:"provider"`
	NewsCount int          `toml:"news_count"` // news items the provider may consider per symbol
	Timeout   string       `toml:"timeout"`
	Gemini    GeminiConfig `toml:"gemini"`
	OpenAI    OpenAIConfig `toml:"openai"`
}

// GetTimeout parses and returns the insight call timeout
func (c *InsightsConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// StorageConfig holds paths for the cache store and the run history database
type StorageConfig struct {
	Cache AreaConfig `toml:"cache"` // BadgerHold market data cache
	Runs  AreaConfig `toml:"runs"`  // SQLite run history ("" disables recording)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Cache: CacheConfig{
			Enabled: true,
			TTL:     "1h",
		},
		Analysis: AnalysisConfig{
			LookbackDays:       200,
			MAWindows:          []int{20, 50, 200},
			MomentumLookback:   30,
			VolatilityLookback: 30,
			RSIPeriod:          14,
			MaxConcurrent:      4,
		},
		Clients: ClientsConfig{
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "30s",
			},
			Insights: InsightsConfig{
				Provider:  "gemini",
				NewsCount: 5,
				Timeout:   "60s",
				Gemini: GeminiConfig{
					Model: "gemini-2.0-flash",
				},
				OpenAI: OpenAIConfig{
					Model: "gpt-4o-mini",
				},
			},
		},
		Storage: StorageConfig{
			Cache: AreaConfig{Path: "data/cache"},
			Runs:  AreaConfig{Path: "data/runs.db"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINSIGHT_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("FINSIGHT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("FINSIGHT_DATA_PATH"); path != "" {
		config.Storage.Cache.Path = filepath.Join(path, "cache")
		config.Storage.Runs.Path = filepath.Join(path, "runs.db")
	}

	if v := os.Getenv("FINSIGHT_CACHE"); v != "" {
		config.Cache.Enabled = v != "off" && v != "false" && v != "0"
	}
	if v := os.Getenv("FINSIGHT_CACHE_TTL"); v != "" {
		config.Cache.TTL = v
	}

	if v := os.Getenv("FINSIGHT_LOOKBACK_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			config.Analysis.LookbackDays = days
		}
	}

	if v := os.Getenv("FINSIGHT_INSIGHT_PROVIDER"); v != "" {
		config.Clients.Insights.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("FINSIGHT_NEWS_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			config.Clients.Insights.NewsCount = n
		}
	}

	// API keys: plain provider names first, FINSIGHT_-prefixed as fallback
	for _, name := range []string{"EODHD_API_KEY", "FINSIGHT_EODHD_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.EODHD.APIKey = v
			break
		}
	}
	for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "FINSIGHT_GEMINI_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.Insights.Gemini.APIKey = v
			break
		}
	}
	for _, name := range []string{"OPENAI_API_KEY", "FINSIGHT_OPENAI_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.Insights.OpenAI.APIKey = v
			break
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
