package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPortfolioCSV(t *testing.T) {
	path := writeTemp(t, "growth.csv", `symbol,shares,cost_basis
AAPL,50,145.00
NVDA,20,450.00
VTI,100,
`)

	portfolio, err := LoadPortfolio(path)
	require.NoError(t, err)

	assert.Equal(t, "growth", portfolio.Name)
	require.Len(t, portfolio.Holdings, 3)

	assert.Equal(t, "AAPL", portfolio.Holdings[0].Symbol)
	assert.Equal(t, 50.0, portfolio.Holdings[0].Shares)
	require.NotNil(t, portfolio.Holdings[0].CostBasis)
	assert.Equal(t, 145.0, *portfolio.Holdings[0].CostBasis)

	// Empty cost basis stays unknown, not zero
	assert.Nil(t, portfolio.Holdings[2].CostBasis)
}

func TestLoadPortfolioCSVWithoutCostColumn(t *testing.T) {
	path := writeTemp(t, "simple.csv", "symbol,shares\nAAPL,10\n")

	portfolio, err := LoadPortfolio(path)
	require.NoError(t, err)
	require.Len(t, portfolio.Holdings, 1)
	assert.Nil(t, portfolio.Holdings[0].CostBasis)
}

func TestLoadPortfolioCSVMalformed(t *testing.T) {
	_, err := LoadPortfolio(writeTemp(t, "bad.csv", "symbol,shares\nAAPL,lots\n"))
	assert.Error(t, err)

	_, err = LoadPortfolio(writeTemp(t, "noheader.csv", "ticker,count\nAAPL,10\n"))
	assert.Error(t, err)
}

func TestLoadPortfolioYAML(t *testing.T) {
	path := writeTemp(t, "retirement.yaml", `name: Retirement
holdings:
  - symbol: VTI
    shares: 100
    cost_basis: 210.5
  - symbol: BND
    shares: 200
`)

	portfolio, err := LoadPortfolio(path)
	require.NoError(t, err)

	assert.Equal(t, "Retirement", portfolio.Name)
	require.Len(t, portfolio.Holdings, 2)
	require.NotNil(t, portfolio.Holdings[0].CostBasis)
	assert.Equal(t, 210.5, *portfolio.Holdings[0].CostBasis)
	assert.Nil(t, portfolio.Holdings[1].CostBasis)
}

func TestLoadPortfolioYAMLNameDefaultsToStem(t *testing.T) {
	path := writeTemp(t, "my-stocks.yml", "holdings:\n  - symbol: AAPL\n    shares: 1\n")

	portfolio, err := LoadPortfolio(path)
	require.NoError(t, err)
	assert.Equal(t, "my-stocks", portfolio.Name)
}

func TestLoadPortfolioUnsupportedFormat(t *testing.T) {
	_, err := LoadPortfolio(writeTemp(t, "holdings.txt", "AAPL 10"))
	assert.Error(t, err)
}

func TestLoadPortfolioMissingFile(t *testing.T) {
	_, err := LoadPortfolio(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
