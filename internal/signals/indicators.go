// Package signals provides technical indicator calculations.
//
// All functions are pure: they operate on a slice of closes in
// chronologically ascending order (oldest first) and perform no I/O.
// A series shorter than an indicator's window yields ErrInsufficientData
// rather than a partial or sentinel value.
package signals

import (
	"errors"
	"math"
)

// ErrInsufficientData signals that the series is too short for the
// requested window. Callers degrade the metric to absent, never to zero.
var ErrInsufficientData = errors.New("insufficient data")

// tradingDaysPerYear is the conventional annualization factor for daily returns
const tradingDaysPerYear = 252

// SMA returns the mean of the last window closes.
func SMA(closes []float64, window int) (float64, error) {
	if window <= 0 || len(closes) < window {
		return 0, ErrInsufficientData
	}

	sum := 0.0
	for _, c := range closes[len(closes)-window:] {
		sum += c
	}
	return sum / float64(window), nil
}

// EMA returns the exponential moving average over the given window,
// seeded with the SMA of the first window closes.
func EMA(closes []float64, window int) (float64, error) {
	if window <= 0 || len(closes) < window {
		return 0, ErrInsufficientData
	}

	seed, err := SMA(closes[:window], window)
	if err != nil {
		return 0, err
	}

	multiplier := 2.0 / float64(window+1)
	ema := seed
	for _, c := range closes[window:] {
		ema = (c-ema)*multiplier + ema
	}
	return ema, nil
}

// Momentum returns the percentage change between the close lookback periods
// ago and the most recent close.
func Momentum(closes []float64, lookback int) (float64, error) {
	if lookback <= 0 || len(closes) < lookback+1 {
		return 0, ErrInsufficientData
	}

	base := closes[len(closes)-1-lookback]
	if base == 0 {
		return 0, ErrInsufficientData
	}
	return (closes[len(closes)-1] - base) / base * 100, nil
}

// Volatility returns the annualized standard deviation, in percent, of
// period-over-period returns across the trailing lookback window. Needs
// lookback+2 closes so the return sample has at least two points.
func Volatility(closes []float64, lookback int) (float64, error) {
	if lookback < 1 || len(closes) < lookback+2 {
		return 0, ErrInsufficientData
	}

	// Trailing lookback+1 returns from the last lookback+2 closes
	tail := closes[len(closes)-lookback-2:]
	returns := make([]float64, 0, len(tail)-1)
	for i := 1; i < len(tail); i++ {
		if tail[i-1] == 0 {
			return 0, ErrInsufficientData
		}
		returns = append(returns, (tail[i]-tail[i-1])/tail[i-1])
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear) * 100, nil
}

// RSI returns the relative strength index over the trailing period.
// Output is bounded to [0,100]: 100 when the window has no losses,
// 0 when it has no gains.
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 || len(closes) < period+1 {
		return 0, ErrInsufficientData
	}

	var gains, losses float64
	tail := closes[len(closes)-period-1:]
	for i := 1; i < len(tail); i++ {
		change := tail[i] - tail[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	if losses == 0 {
		return 100, nil
	}
	if gains == 0 {
		return 0, nil
	}

	rs := (gains / float64(period)) / (losses / float64(period))
	return 100 - (100 / (1 + rs)), nil
}
