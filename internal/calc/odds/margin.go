package odds

// Overround returns the bookmaker margin of a market in percent.
// A fair market sums to 100% implied probability, so the margin is the excess.
func Overround(decimals ...float64) (float64, error) {
	total, err := impliedSum(decimals)
	if err != nil {
		return 0, err
	}
	return (total - 1) * 100, nil
}

// NoVig removes the margin proportionally and returns fair probabilities in percent
//
// Method: multiplicative removal
// fair_i = implied_i / Σ implied
func NoVig(decimals ...float64) ([]float64, error) {
	total, err := impliedSum(decimals)
	if err != nil {
		return nil, err
	}
	fair := make([]float64, len(decimals))
	for i, d := range decimals {
		fair[i] = (1 / d) / total * 100
	}
	return fair, nil
}

func impliedSum(decimals []float64) (float64, error) {
	if len(decimals) < 2 {
		return 0, ErrInvalidOdds
	}
	var total float64
	for _, d := range decimals {
		if _, err := checkDecimal(d); err != nil {
			return 0, err
		}
		total += 1 / d
	}
	return total, nil
}
