package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldingValidate(t *testing.T) {
	cost := 145.0
	valid := Holding{Symbol: "AAPL", Shares: 50, CostBasis: &cost}
	assert.NoError(t, valid.Validate())

	noCost := Holding{Symbol: "MSFT", Shares: 10}
	assert.NoError(t, noCost.Validate())
}

func TestHoldingValidateRejectsBadInput(t *testing.T) {
	negCost := -1.0

	cases := []struct {
		name    string
		holding Holding
	}{
		{"empty symbol", Holding{Symbol: "  ", Shares: 1}},
		{"zero shares", Holding{Symbol: "AAPL", Shares: 0}},
		{"negative shares", Holding{Symbol: "AAPL", Shares: -5}},
		{"negative cost basis", Holding{Symbol: "AAPL", Shares: 1, CostBasis: &negCost}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.holding.Validate(), ErrInvalidHolding)
		})
	}
}

func TestPortfolioValidateNormalizesSymbols(t *testing.T) {
	p := &Portfolio{
		Name: "test",
		Holdings: []Holding{
			{Symbol: " aapl ", Shares: 10},
			{Symbol: "msft", Shares: 5},
		},
	}

	require.NoError(t, p.Validate())
	assert.Equal(t, "AAPL", p.Holdings[0].Symbol)
	assert.Equal(t, "MSFT", p.Holdings[1].Symbol)
}

func TestPortfolioValidateEmpty(t *testing.T) {
	p := &Portfolio{Name: "empty"}
	assert.ErrorIs(t, p.Validate(), ErrInvalidHolding)
}

func TestPriceSeriesHighLow(t *testing.T) {
	series := &PriceSeries{
		Symbol: "AAPL",
		Points: []PricePoint{
			{Close: 150},
			{Close: 210},
			{Close: 140},
			{Close: 180},
		},
	}

	assert.Equal(t, 210.0, series.High())
	assert.Equal(t, 140.0, series.Low())

	empty := &PriceSeries{Symbol: "AAPL"}
	assert.Equal(t, 0.0, empty.High())
	assert.Equal(t, 0.0, empty.Low())
}
