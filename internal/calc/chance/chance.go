package chance

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrInvalidInput is returned for impossible game parameters
var ErrInvalidInput = errors.New("invalid chance input")

const (
	maxFlips = 100000
	maxDice  = 100
	maxSides = 1000
	maxPool  = 1000
)

// CoinResult describes the heads count of n flips
type CoinResult struct {
	Flips         int     `json:"flips"`
	AtLeast       int     `json:"atLeast"`
	Probability   float64 `json:"probability"` // percent
	Exactly       float64 `json:"exactly"`     // percent
	ExpectedHeads float64 `json:"expectedHeads"`
	StdDev        float64 `json:"stdDev"`
}

// CoinFlips returns the probability of at least k heads in n flips of a coin
// with heads probability p (0.5 for a fair coin).
func CoinFlips(n, k int, p float64) (*CoinResult, error) {
	if n <= 0 || n > maxFlips {
		return nil, fmt.Errorf("%w: flips must be between 1 and %d", ErrInvalidInput, maxFlips)
	}
	if k < 0 || k > n {
		return nil, fmt.Errorf("%w: heads must be between 0 and flips", ErrInvalidInput)
	}
	if p == 0 {
		p = 0.5
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: heads probability must be between 0 and 1", ErrInvalidInput)
	}

	dist := distuv.Binomial{N: float64(n), P: p}
	atLeast := 1.0
	if k > 0 {
		atLeast = 1 - dist.CDF(float64(k-1))
	}
	return &CoinResult{
		Flips:         n,
		AtLeast:       k,
		Probability:   clampPct(atLeast * 100),
		Exactly:       clampPct(dist.Prob(float64(k)) * 100),
		ExpectedHeads: dist.Mean(),
		StdDev:        dist.StdDev(),
	}, nil
}

// DiceResult describes the chance of a dice total
type DiceResult struct {
	Dice     int     `json:"dice"`
	Sides    int     `json:"sides"`
	Target   int     `json:"target"`
	Exactly  float64 `json:"exactly"` // percent
	AtLeast  float64 `json:"atLeast"`
	AtMost   float64 `json:"atMost"`
	Expected float64 `json:"expected"`
}

// DiceSum returns the exact probability of rolling target with the given dice
func DiceSum(dice, sides, target int) (*DiceResult, error) {
	if dice <= 0 || dice > maxDice {
		return nil, fmt.Errorf("%w: dice must be between 1 and %d", ErrInvalidInput, maxDice)
	}
	if sides < 2 || sides > maxSides {
		return nil, fmt.Errorf("%w: sides must be between 2 and %d", ErrInvalidInput, maxSides)
	}

	dist := sumDistribution(dice, sides)
	res := &DiceResult{
		Dice:     dice,
		Sides:    sides,
		Target:   target,
		Expected: float64(dice) * float64(sides+1) / 2,
	}
	for total, p := range dist {
		if total == target {
			res.Exactly += p
		}
		if total >= target {
			res.AtLeast += p
		}
		if total <= target {
			res.AtMost += p
		}
	}
	res.Exactly = clampPct(res.Exactly * 100)
	res.AtLeast = clampPct(res.AtLeast * 100)
	res.AtMost = clampPct(res.AtMost * 100)
	return res, nil
}

// sumDistribution returns P(total) indexed by total for n dice with s sides.
// Each die convolves the previous distribution with a running window of the
// last s totals, so the cost is O(n * total) regardless of s.
func sumDistribution(n, s int) []float64 {
	dist := []float64{1}
	face := 1 / float64(s)
	for d := 0; d < n; d++ {
		next := make([]float64, len(dist)+s)
		var window float64
		for total := 1; total < len(next); total++ {
			if total-1 < len(dist) {
				window += dist[total-1]
			}
			if drop := total - 1 - s; drop >= 0 && drop < len(dist) {
				window -= dist[drop]
			}
			next[total] = math.Max(0, window*face)
		}
		dist = next
	}
	return dist
}

// LotteryResult is the 1-in-N chance of a jackpot
type LotteryResult struct {
	Combinations float64 `json:"combinations"`
	Probability  float64 `json:"probability"` // percent
	OneIn        string  `json:"oneIn"`
}

// Lottery returns the jackpot odds of choosing picks numbers from pool, times
// bonusPicks from bonusPool when a bonus draw exists.
func Lottery(pool, picks, bonusPool, bonusPicks int) (*LotteryResult, error) {
	if pool <= 0 || pool > maxPool || picks <= 0 || picks > pool {
		return nil, fmt.Errorf("%w: picks must be between 1 and the pool size", ErrInvalidInput)
	}
	combos := choose(pool, picks)
	if bonusPool > 0 || bonusPicks > 0 {
		if bonusPool <= 0 || bonusPool > maxPool || bonusPicks <= 0 || bonusPicks > bonusPool {
			return nil, fmt.Errorf("%w: bonus picks must be between 1 and the bonus pool size", ErrInvalidInput)
		}
		combos *= choose(bonusPool, bonusPicks)
	}
	if math.IsInf(combos, 0) || math.IsNaN(combos) {
		return nil, fmt.Errorf("%w: too many combinations", ErrInvalidInput)
	}
	return &LotteryResult{
		Combinations: combos,
		Probability:  100 / combos,
		OneIn:        fmt.Sprintf("1 in %.0f", combos),
	}, nil
}

func choose(n, k int) float64 {
	// exact while the coefficient fits comfortably in an int
	if n <= 60 {
		return float64(combin.Binomial(n, k))
	}
	return math.Round(math.Exp(combin.LogGeneralizedBinomial(float64(n), float64(k))))
}

func clampPct(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
