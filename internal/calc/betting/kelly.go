package betting

import (
	"errors"
	"fmt"
	"math"

	"github.com/Dan9191/calc-hub/internal/calc/odds"
)

// ErrInvalidInput is returned when a betting calculation receives unusable inputs
var ErrInvalidInput = errors.New("invalid betting input")

// KellyInput holds the parameters of a single Kelly stake calculation
type KellyInput struct {
	Bankroll       float64 `json:"bankroll"`
	WinProbability float64 `json:"winProbability"` // percent, 0-100
	DecimalOdds    float64 `json:"decimalOdds"`
	Fraction       float64 `json:"fraction"` // 1 = full Kelly, 0.5 = half Kelly
}

// KellyResult is the recommended stake for a KellyInput
type KellyResult struct {
	FullKelly        float64 `json:"fullKelly"`     // fraction of bankroll, unscaled
	AdjustedKelly    float64 `json:"adjustedKelly"` // fraction of bankroll after Fraction
	RecommendedStake float64 `json:"recommendedStake"`
	Edge             float64 `json:"edge"` // percent
	ExpectedProfit   float64 `json:"expectedProfit"`
	HasEdge          bool    `json:"hasEdge"`
}

// Kelly computes the Kelly criterion stake
// Kelly formula: f* = (b * p - q) / b
// where: b = decimal odds - 1, p = win probability, q = 1 - p
//
// Negative values are floored at 0: a bet without edge gets no stake.
func Kelly(in KellyInput) (*KellyResult, error) {
	if in.Fraction == 0 {
		in.Fraction = 1
	}
	if in.Fraction < 0 || in.Fraction > 1 {
		return nil, fmt.Errorf("%w: fraction must be between 0 and 1", ErrInvalidInput)
	}
	if in.WinProbability <= 0 || in.WinProbability >= 100 {
		return nil, fmt.Errorf("%w: win probability must be between 0 and 100", ErrInvalidInput)
	}
	if in.DecimalOdds <= 1 || math.IsNaN(in.DecimalOdds) || math.IsInf(in.DecimalOdds, 0) {
		return nil, odds.ErrInvalidOdds
	}
	if !(in.Bankroll >= 0) {
		return nil, fmt.Errorf("%w: bankroll must not be negative", ErrInvalidInput)
	}

	p := in.WinProbability / 100
	q := 1 - p
	b := in.DecimalOdds - 1

	full := math.Max(0, (b*p-q)/b)
	adjusted := full * in.Fraction
	stake := round(in.Bankroll * adjusted)
	edge := p*in.DecimalOdds - 1

	res := &KellyResult{
		FullKelly:        full,
		AdjustedKelly:    adjusted,
		RecommendedStake: stake,
		Edge:             edge * 100,
		ExpectedProfit:   round(stake * edge),
		HasEdge:          full > 0,
	}
	if !finite(res.FullKelly, res.RecommendedStake, res.Edge, res.ExpectedProfit) {
		return nil, errOutOfRange
	}
	return res, nil
}

var errOutOfRange = fmt.Errorf("%w: result is out of range", ErrInvalidInput)

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// round rounds a float to 2 decimal places
func round(val float64) float64 {
	return math.Round(val*100) / 100
}
