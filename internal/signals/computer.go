package signals

import (
	"github.com/bobmcallan/finsight/internal/models"
)

// Config holds the indicator windows for one analysis run. Windows come
// from runtime configuration and act as minimum-length constraints on the
// series, not as assumptions about how much history exists.
type Config struct {
	MAWindows          []int
	MomentumLookback   int
	VolatilityLookback int
	RSIPeriod          int
}

// Computer assembles an IndicatorSet from a price series
type Computer struct {
	cfg Config
}

// NewComputer creates a Computer with the given windows
func NewComputer(cfg Config) *Computer {
	return &Computer{cfg: cfg}
}

// Compute derives all configured indicators from the series. Indicators
// whose window exceeds the series length are left absent.
func (c *Computer) Compute(series *models.PriceSeries) *models.IndicatorSet {
	closes := series.Closes()
	set := &models.IndicatorSet{}

	for _, window := range c.cfg.MAWindows {
		if ma, err := SMA(closes, window); err == nil {
			if set.MovingAverages == nil {
				set.MovingAverages = make(map[int]float64, len(c.cfg.MAWindows))
			}
			set.MovingAverages[window] = ma
		}
	}

	if v, err := Momentum(closes, c.cfg.MomentumLookback); err == nil {
		set.Momentum = &v
	}
	if v, err := Volatility(closes, c.cfg.VolatilityLookback); err == nil {
		set.Volatility = &v
	}
	if v, err := RSI(closes, c.cfg.RSIPeriod); err == nil {
		set.RSI = &v
	}

	if v, err := Momentum(closes, 1); err == nil {
		set.PriceChange1D = &v
	}
	if v, err := Momentum(closes, 7); err == nil {
		set.PriceChange7D = &v
	}
	if v, err := Momentum(closes, 30); err == nil {
		set.PriceChange30D = &v
	}

	return set
}
