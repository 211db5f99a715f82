package chance

import "fmt"

// Wheel is a roulette layout
type Wheel string

const (
	European Wheel = "european"
	American Wheel = "american"
)

// Pockets returns the number of pockets on the wheel
func (w Wheel) Pockets() (int, error) {
	switch w {
	case European, "":
		return 37, nil
	case American:
		return 38, nil
	}
	return 0, fmt.Errorf("%w: unknown wheel %q", ErrInvalidInput, w)
}

// Bet is an inside or outside roulette bet
type Bet string

type betSpec struct {
	numbers int
	payout  float64 // x:1
}

var bets = map[Bet]betSpec{
	"straight": {1, 35},
	"split":    {2, 17},
	"street":   {3, 11},
	"corner":   {4, 8},
	"topline":  {5, 6},
	"sixline":  {6, 5},
	"dozen":    {12, 2},
	"column":   {12, 2},
	"red":      {18, 1},
	"black":    {18, 1},
	"odd":      {18, 1},
	"even":     {18, 1},
	"low":      {18, 1},
	"high":     {18, 1},
}

// RouletteResult describes one bet on one wheel
type RouletteResult struct {
	Wheel       Wheel   `json:"wheel"`
	Bet         Bet     `json:"bet"`
	Numbers     int     `json:"numbers"`
	Payout      string  `json:"payout"`
	Probability float64 `json:"probability"` // percent
	HouseEdge   float64 `json:"houseEdge"`   // percent
	EVPerUnit   float64 `json:"evPerUnit"`
}

// Roulette computes win probability and house edge of a bet
func Roulette(w Wheel, b Bet) (*RouletteResult, error) {
	pockets, err := w.Pockets()
	if err != nil {
		return nil, err
	}
	spec, ok := bets[b]
	if !ok {
		return nil, fmt.Errorf("%w: unknown bet %q", ErrInvalidInput, b)
	}
	// the five-number top line only exists on the double-zero wheel
	if b == "topline" && w != American {
		return nil, fmt.Errorf("%w: top line bet needs an american wheel", ErrInvalidInput)
	}
	if w == "" {
		w = European
	}

	p := float64(spec.numbers) / float64(pockets)
	ev := p*spec.payout - (1 - p)
	return &RouletteResult{
		Wheel:       w,
		Bet:         b,
		Numbers:     spec.numbers,
		Payout:      fmt.Sprintf("%.0f:1", spec.payout),
		Probability: p * 100,
		HouseEdge:   -ev * 100,
		EVPerUnit:   ev,
	}, nil
}
