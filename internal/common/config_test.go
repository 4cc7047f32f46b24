package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.GetTTL())
	assert.Equal(t, 200, cfg.Analysis.LookbackDays)
	assert.Equal(t, []int{20, 50, 200}, cfg.Analysis.MAWindows)
	assert.Equal(t, 14, cfg.Analysis.RSIPeriod)
	assert.Equal(t, "gemini", cfg.Clients.Insights.Provider)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finsight.toml")
	content := `
environment = "production"

[cache]
enabled = false
ttl = "30m"

[analysis]
lookback_days = 90

[clients.insights]
provider = "openai"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Cache.GetTTL())
	assert.Equal(t, 90, cfg.Analysis.LookbackDays)
	assert.Equal(t, "openai", cfg.Clients.Insights.Provider)

	// Untouched sections keep their defaults
	assert.Equal(t, 14, cfg.Analysis.RSIPeriod)
}

func TestLoadConfigSkipsMissingFiles(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Analysis.LookbackDays)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("FINSIGHT_ENV", "production")
	t.Setenv("FINSIGHT_CACHE", "off")
	t.Setenv("FINSIGHT_CACHE_TTL", "15m")
	t.Setenv("FINSIGHT_LOOKBACK_DAYS", "120")
	t.Setenv("FINSIGHT_INSIGHT_PROVIDER", "OpenAI")
	t.Setenv("EODHD_API_KEY", "demo-key")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Cache.GetTTL())
	assert.Equal(t, 120, cfg.Analysis.LookbackDays)
	assert.Equal(t, "openai", cfg.Clients.Insights.Provider)
	assert.Equal(t, "demo-key", cfg.Clients.EODHD.APIKey)
	assert.Equal(t, "sk-test", cfg.Clients.Insights.OpenAI.APIKey)
}

func TestCacheTTLFallback(t *testing.T) {
	c := CacheConfig{TTL: "not-a-duration"}
	assert.Equal(t, FreshnessQuote, c.GetTTL())
}

func TestIsFresh(t *testing.T) {
	assert.True(t, IsFresh(time.Now(), time.Hour))
	assert.False(t, IsFresh(time.Now().Add(-2*time.Hour), time.Hour))
}
