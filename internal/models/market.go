// Package models defines data structures for Finsight
package models

import "time"

// Quote holds a current price snapshot for a symbol
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	PreviousClose float64   `json:"previous_close,omitempty"`
	ChangePct     float64   `json:"change_pct,omitempty"`
	Name          string    `json:"name,omitempty"`
	AsOf          time.Time `json:"as_of"`
}

// PricePoint is a single close observation
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries holds daily closes for one symbol in chronologically
// ascending order with no duplicate dates.
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Closes returns the close prices in series order (oldest first).
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Points))
	for i, p := range s.Points {
		closes[i] = p.Close
	}
	return closes
}

// High returns the highest close in the series, or 0 for an empty series.
func (s *PriceSeries) High() float64 {
	high := 0.0
	for _, p := range s.Points {
		if p.Close > high {
			high = p.Close
		}
	}
	return high
}

// Low returns the lowest close in the series, or 0 for an empty series.
func (s *PriceSeries) Low() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	low := s.Points[0].Close
	for _, p := range s.Points[1:] {
		if p.Close < low {
			low = p.Close
		}
	}
	return low
}
