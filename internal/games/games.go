package games

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/Dan9191/calc-hub/internal/calc/chance"
)

// ErrInvalidGame is returned for impossible draw parameters
var ErrInvalidGame = errors.New("invalid game parameters")

const (
	maxDice  = 20
	maxSides = 1000
	maxNames = 500
)

// Source supplies random integers in [0, n)
type Source interface {
	IntN(n int) int
}

// lockedSource makes a *rand.Rand safe for concurrent handlers
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// NewSource returns a concurrency-safe source seeded with seed
func NewSource(seed uint64) Source {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// globalSource uses the runtime-seeded top-level generator
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Table draws games from a Source
type Table struct {
	src Source
}

// NewTable creates a table; a nil source uses the runtime generator
func NewTable(src Source) *Table {
	if src == nil {
		src = globalSource{}
	}
	return &Table{src: src}
}

// CoinFlip is the result of flipping coins
type CoinFlip struct {
	Results []string `json:"results"`
	Heads   int      `json:"heads"`
	Tails   int      `json:"tails"`
}

// FlipCoins flips n fair coins
func (t *Table) FlipCoins(n int) (*CoinFlip, error) {
	if n <= 0 || n > 1000 {
		return nil, fmt.Errorf("%w: flips must be between 1 and 1000", ErrInvalidGame)
	}
	out := &CoinFlip{Results: make([]string, n)}
	for i := range out.Results {
		if t.src.IntN(2) == 0 {
			out.Results[i] = "heads"
			out.Heads++
		} else {
			out.Results[i] = "tails"
			out.Tails++
		}
	}
	return out, nil
}

// DiceRoll is the result of rolling dice
type DiceRoll struct {
	Sides int   `json:"sides"`
	Rolls []int `json:"rolls"`
	Total int   `json:"total"`
}

// RollDice rolls n dice with the given number of sides
func (t *Table) RollDice(n, sides int) (*DiceRoll, error) {
	if n <= 0 || n > maxDice {
		return nil, fmt.Errorf("%w: dice must be between 1 and %d", ErrInvalidGame, maxDice)
	}
	if sides < 2 || sides > maxSides {
		return nil, fmt.Errorf("%w: sides must be between 2 and %d", ErrInvalidGame, maxSides)
	}
	out := &DiceRoll{Sides: sides, Rolls: make([]int, n)}
	for i := range out.Rolls {
		out.Rolls[i] = t.src.IntN(sides) + 1
		out.Total += out.Rolls[i]
	}
	return out, nil
}

// Spin is a roulette result
type Spin struct {
	Wheel  chance.Wheel `json:"wheel"`
	Pocket string       `json:"pocket"`
	Color  string       `json:"color"`
}

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// SpinRoulette spins a European or American wheel
func (t *Table) SpinRoulette(w chance.Wheel) (*Spin, error) {
	pockets, err := w.Pockets()
	if err != nil {
		return nil, err
	}
	if w == "" {
		w = chance.European
	}
	n := t.src.IntN(pockets)
	spin := &Spin{Wheel: w}
	switch {
	case n == 37:
		spin.Pocket, spin.Color = "00", "green"
	case n == 0:
		spin.Pocket, spin.Color = "0", "green"
	case redNumbers[n]:
		spin.Pocket, spin.Color = fmt.Sprint(n), "red"
	default:
		spin.Pocket, spin.Color = fmt.Sprint(n), "black"
	}
	return spin, nil
}

// Pick is a name-picker wheel result
type Pick struct {
	Winner string `json:"winner"`
	Index  int    `json:"index"`
}

// PickName picks one of the non-blank names. Index refers to the caller's slice.
func (t *Table) PickName(names []string) (*Pick, error) {
	var candidates []int
	for i, n := range names {
		if strings.TrimSpace(n) != "" {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 || len(candidates) > maxNames {
		return nil, fmt.Errorf("%w: between 1 and %d names are required", ErrInvalidGame, maxNames)
	}
	i := candidates[t.src.IntN(len(candidates))]
	return &Pick{Winner: strings.TrimSpace(names[i]), Index: i}, nil
}
