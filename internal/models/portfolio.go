// Package models defines data structures for Finsight
package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidHolding marks malformed portfolio input. Validation failures
// abort the whole run before any fetching starts.
var ErrInvalidHolding = errors.New("invalid holding")

// Holding represents one portfolio line item: a ticker, a share count and
// an optional average purchase price. Nil CostBasis means gain/loss is not
// computable for the position.
type Holding struct {
	Symbol    string   `json:"symbol"`
	Shares    float64  `json:"shares"`
	CostBasis *float64 `json:"cost_basis,omitempty"`
}

// NormalizeSymbol upper-cases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Validate checks the holding against input constraints.
func (h Holding) Validate() error {
	if strings.TrimSpace(h.Symbol) == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidHolding)
	}
	if h.Shares <= 0 {
		return fmt.Errorf("%w: %s shares must be positive, got %g", ErrInvalidHolding, h.Symbol, h.Shares)
	}
	if h.CostBasis != nil && *h.CostBasis < 0 {
		return fmt.Errorf("%w: %s cost basis must not be negative, got %g", ErrInvalidHolding, h.Symbol, *h.CostBasis)
	}
	return nil
}

// Portfolio represents a set of holdings submitted for one analysis run
type Portfolio struct {
	Name     string    `json:"name"`
	Holdings []Holding `json:"holdings"`
}

// Validate normalizes symbols and checks every holding, failing fast on the
// first malformed entry.
func (p *Portfolio) Validate() error {
	if len(p.Holdings) == 0 {
		return fmt.Errorf("%w: portfolio has no holdings", ErrInvalidHolding)
	}
	for i := range p.Holdings {
		p.Holdings[i].Symbol = NormalizeSymbol(p.Holdings[i].Symbol)
		if err := p.Holdings[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
