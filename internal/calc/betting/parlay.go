package betting

import (
	"fmt"

	"github.com/Dan9191/calc-hub/internal/calc/odds"
)

// Leg is one selection of a parlay
type Leg struct {
	Odds   string      `json:"odds"`
	Format odds.Format `json:"format"`
}

// ParlayResult summarizes a parlay ticket
type ParlayResult struct {
	LegDecimals        []float64 `json:"legDecimals"`
	TotalOdds          float64   `json:"totalOdds"`
	AmericanOdds       string    `json:"americanOdds"`
	ImpliedProbability float64   `json:"impliedProbability"` // percent
	Payout             float64   `json:"payout"`
	Profit             float64   `json:"profit"`
}

// Parlay multiplies the decimal odds of every leg.
// Order does not matter; an empty ticket is invalid.
func Parlay(legs []Leg, stake float64) (*ParlayResult, error) {
	if len(legs) == 0 {
		return nil, fmt.Errorf("%w: parlay needs at least one leg", ErrInvalidInput)
	}
	if !(stake >= 0) {
		return nil, fmt.Errorf("%w: stake must not be negative", ErrInvalidInput)
	}

	total := 1.0
	decimals := make([]float64, 0, len(legs))
	for i, leg := range legs {
		format := leg.Format
		if format == "" {
			format = odds.Decimal
		}
		d, err := odds.ToDecimal(leg.Odds, format)
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i+1, err)
		}
		decimals = append(decimals, d)
		total *= d
	}

	american, err := odds.FromDecimal(total, odds.American)
	if err != nil {
		return nil, err
	}

	res := &ParlayResult{
		LegDecimals:        decimals,
		TotalOdds:          total,
		AmericanOdds:       american,
		ImpliedProbability: 100 / total,
		Payout:             round(stake * total),
		Profit:             round(stake * (total - 1)),
	}
	if !finite(res.Payout, res.Profit) {
		return nil, errOutOfRange
	}
	return res, nil
}
