package chance

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestCoinFlips(t *testing.T) {
	tests := []struct {
		name     string
		n, k     int
		p        float64
		atLeast  float64
		exactly  float64
		expected float64
	}{
		{"At least one head in two", 2, 1, 0.5, 75, 50, 1},
		{"Ten heads in ten", 10, 10, 0.5, 0.09765625, 0.09765625, 5},
		{"Zero heads is certain", 5, 0, 0, 100, 3.125, 2.5},
		{"Biased coin", 3, 2, 0.8, 89.6, 38.4, 2.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CoinFlips(tt.n, tt.k, tt.p)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(res.Probability-tt.atLeast) > 1e-6 {
				t.Errorf("Probability = %v, want %v", res.Probability, tt.atLeast)
			}
			if math.Abs(res.Exactly-tt.exactly) > 1e-6 {
				t.Errorf("Exactly = %v, want %v", res.Exactly, tt.exactly)
			}
			if math.Abs(res.ExpectedHeads-tt.expected) > 1e-9 {
				t.Errorf("ExpectedHeads = %v, want %v", res.ExpectedHeads, tt.expected)
			}
		})
	}

	if _, err := CoinFlips(3, 4, 0.5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("k > n error = %v", err)
	}
}

func TestDiceSum(t *testing.T) {
	res, err := DiceSum(2, 6, 7)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Exactly-100.0/6) > 1e-9 {
		t.Errorf("P(7) = %v, want 16.67", res.Exactly)
	}
	if math.Abs(res.AtLeast-100*21.0/36) > 1e-9 {
		t.Errorf("P(>=7) = %v, want 58.33", res.AtLeast)
	}
	if res.Expected != 7 {
		t.Errorf("Expected = %v, want 7", res.Expected)
	}

	res, err = DiceSum(3, 6, 2)
	if err != nil {
		t.Fatal(err)
	}
	if res.Exactly != 0 || math.Abs(res.AtLeast-100) > 1e-9 {
		t.Errorf("impossible total: %+v", res)
	}

	if _, err := DiceSum(0, 6, 3); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero dice error = %v", err)
	}
}

func TestDiceSumMatchesEnumeration(t *testing.T) {
	// three d4: count totals by brute force
	counts := map[int]int{}
	for a := 1; a <= 4; a++ {
		for b := 1; b <= 4; b++ {
			for c := 1; c <= 4; c++ {
				counts[a+b+c]++
			}
		}
	}
	for target := 3; target <= 12; target++ {
		res, err := DiceSum(3, 4, target)
		if err != nil {
			t.Fatal(err)
		}
		want := 100 * float64(counts[target]) / 64
		if math.Abs(res.Exactly-want) > 1e-9 {
			t.Errorf("P(%d) = %v, want %v", target, res.Exactly, want)
		}
	}
}

func TestDiceSumLargestTable(t *testing.T) {
	start := time.Now()
	res, err := DiceSum(maxDice, maxSides, maxDice*(maxSides+1)/2)
	if err != nil {
		t.Fatal(err)
	}
	if took := time.Since(start); took > 2*time.Second {
		t.Errorf("DiceSum(%d, %d) took %v", maxDice, maxSides, took)
	}
	if math.Abs(res.AtLeast+res.AtMost-res.Exactly-100) > 1e-6 {
		t.Errorf("distribution does not sum to 100: %+v", res)
	}
}

func TestLottery(t *testing.T) {
	res, err := Lottery(49, 6, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Combinations != 13983816 {
		t.Errorf("6/49 = %v, want 13983816", res.Combinations)
	}

	res, err = Lottery(69, 5, 26, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Combinations != 292201338 {
		t.Errorf("5/69 + 1/26 = %v, want 292201338", res.Combinations)
	}
	if res.OneIn != "1 in 292201338" {
		t.Errorf("OneIn = %q", res.OneIn)
	}

	if _, err := Lottery(10, 11, 0, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("too many picks error = %v", err)
	}
	if _, err := Lottery(1000, 500, 1000, 500); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("overflowing combinations error = %v", err)
	}
}

func TestRoulette(t *testing.T) {
	tests := []struct {
		wheel Wheel
		bet   Bet
		edge  float64
	}{
		{European, "straight", 2.7027},
		{European, "red", 2.7027},
		{American, "dozen", 5.2632},
		{American, "topline", 7.8947},
	}
	for _, tt := range tests {
		res, err := Roulette(tt.wheel, tt.bet)
		if err != nil {
			t.Fatalf("Roulette(%s, %s): %v", tt.wheel, tt.bet, err)
		}
		if math.Abs(res.HouseEdge-tt.edge) > 0.001 {
			t.Errorf("Roulette(%s, %s) edge = %.4f, want %.4f", tt.wheel, tt.bet, res.HouseEdge, tt.edge)
		}
	}

	if _, err := Roulette(European, "topline"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("topline on european wheel error = %v", err)
	}
	if _, err := Roulette("triple-zero", "red"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown wheel error = %v", err)
	}
}
