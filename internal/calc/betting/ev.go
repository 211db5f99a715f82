package betting

import (
	"fmt"

	"github.com/Dan9191/calc-hub/internal/calc/odds"
)

// EVResult is the expected value of a single bet
type EVResult struct {
	ExpectedValue      float64 `json:"expectedValue"`
	ROI                float64 `json:"roi"` // percent of stake
	ImpliedProbability float64 `json:"impliedProbability"`
	PotentialProfit    float64 `json:"potentialProfit"`
	Positive           bool    `json:"positive"`
}

// ExpectedValue computes EV = p * profit - q * stake for a bet at decimalOdds.
// winPct is the bettor's own estimate in percent.
func ExpectedValue(winPct, decimalOdds, stake float64) (*EVResult, error) {
	if !(winPct >= 0 && winPct <= 100) {
		return nil, fmt.Errorf("%w: win probability must be between 0 and 100", ErrInvalidInput)
	}
	if !(stake > 0) {
		return nil, fmt.Errorf("%w: stake must be positive", ErrInvalidInput)
	}
	implied, err := odds.DecimalToImplied(decimalOdds)
	if err != nil {
		return nil, err
	}

	p := winPct / 100
	profit := stake * (decimalOdds - 1)
	ev := p*profit - (1-p)*stake

	res := &EVResult{
		ExpectedValue:      round(ev),
		ROI:                ev / stake * 100,
		ImpliedProbability: implied,
		PotentialProfit:    round(profit),
		Positive:           ev > 0,
	}
	if !finite(res.ExpectedValue, res.ROI, res.PotentialProfit) {
		return nil, errOutOfRange
	}
	return res, nil
}
