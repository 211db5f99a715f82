package billsplit

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrInvalidBill is returned when a bill cannot be split
var ErrInvalidBill = errors.New("invalid bill")

// Strategy selects how the bill is divided
type Strategy string

const (
	Equal      Strategy = "equal"
	Custom     Strategy = "custom"
	Percentage Strategy = "percentage"
)

// Person is a participant in the bill
type Person struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage,omitempty"`
}

// Item is a billable line item. An item with no valid assignees is shared by everyone.
type Item struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	AssignedTo []string `json:"assignedTo,omitempty"`
}

// Request is a bill to split
type Request struct {
	Strategy   Strategy `json:"strategy"`
	People     []Person `json:"people"`
	Items      []Item   `json:"items,omitempty"`
	Subtotal   float64  `json:"subtotal,omitempty"` // equal/percentage; defaults to Σ item prices
	TaxPercent float64  `json:"taxPercent,omitempty"`
	TipPercent float64  `json:"tipPercent,omitempty"`
}

// ItemShare is one person's part of one item
type ItemShare struct {
	ItemID string  `json:"itemId"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// PersonShare is what one person owes
type PersonShare struct {
	PersonID   string      `json:"personId"`
	Name       string      `json:"name"`
	Subtotal   float64     `json:"subtotal"`
	Tax        float64     `json:"tax"`
	Tip        float64     `json:"tip"`
	AmountOwed float64     `json:"amountOwed"`
	Items      []ItemShare `json:"items,omitempty"`
}

// Result is the split bill. Σ People[i].AmountOwed == Total to the cent.
type Result struct {
	Strategy Strategy      `json:"strategy"`
	Subtotal float64       `json:"subtotal"`
	Tax      float64       `json:"tax"`
	Tip      float64       `json:"tip"`
	Total    float64       `json:"total"`
	People   []PersonShare `json:"people"`
}

var hundred = decimal.NewFromInt(100)

// Split divides the bill according to its strategy
func Split(req Request) (*Result, error) {
	people, err := normalizePeople(req.People)
	if err != nil {
		return nil, err
	}
	if req.TaxPercent < 0 || req.TipPercent < 0 {
		return nil, fmt.Errorf("%w: tax and tip must not be negative", ErrInvalidBill)
	}

	itemTotal := decimal.Zero
	for _, it := range req.Items {
		if it.Price < 0 {
			return nil, fmt.Errorf("%w: item %q has a negative price", ErrInvalidBill, it.Name)
		}
		itemTotal = itemTotal.Add(decimal.NewFromFloat(it.Price))
	}

	var (
		subtotal decimal.Decimal
		weights  []decimal.Decimal
		shares   [][]ItemShare
	)
	switch req.Strategy {
	case Equal, "":
		req.Strategy = Equal
		subtotal = pickSubtotal(req.Subtotal, itemTotal)
		weights = uniform(len(people))
	case Percentage:
		subtotal = pickSubtotal(req.Subtotal, itemTotal)
		weights, err = percentWeights(people)
		if err != nil {
			return nil, err
		}
	case Custom:
		subtotal = itemTotal
		weights, shares = itemWeights(people, req.Items)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidBill, req.Strategy)
	}
	if subtotal.IsNegative() {
		return nil, fmt.Errorf("%w: subtotal must not be negative", ErrInvalidBill)
	}

	tax := subtotal.Mul(decimal.NewFromFloat(req.TaxPercent)).Div(hundred)
	tip := subtotal.Mul(decimal.NewFromFloat(req.TipPercent)).Div(hundred)

	subParts := Allocate(subtotal, weights)
	taxParts := Allocate(tax, weights)
	tipParts := Allocate(tip, weights)

	res := &Result{
		Strategy: req.Strategy,
		Subtotal: toFloat(subtotal.Round(2)),
		Tax:      toFloat(tax.Round(2)),
		Tip:      toFloat(tip.Round(2)),
		People:   make([]PersonShare, len(people)),
	}
	total := decimal.Zero
	for i, p := range people {
		owed := subParts[i].Add(taxParts[i]).Add(tipParts[i])
		total = total.Add(owed)
		res.People[i] = PersonShare{
			PersonID:   p.ID,
			Name:       p.Name,
			Subtotal:   toFloat(subParts[i]),
			Tax:        toFloat(taxParts[i]),
			Tip:        toFloat(tipParts[i]),
			AmountOwed: toFloat(owed),
		}
		if shares != nil {
			res.People[i].Items = shares[i]
		}
	}
	res.Total = toFloat(total)
	if math.IsInf(res.Total, 0) {
		return nil, fmt.Errorf("%w: total is out of range", ErrInvalidBill)
	}
	return res, nil
}

// Allocate splits amount (rounded to cents) in proportion to weights using the
// largest remainder method, so the parts always add back up to the rounded amount.
// All-zero weights split evenly.
func Allocate(amount decimal.Decimal, weights []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(weights))
	if len(weights) == 0 {
		return out
	}

	sum := decimal.Zero
	for _, w := range weights {
		sum = sum.Add(w)
	}
	if sum.IsZero() {
		weights = uniform(len(weights))
		sum = decimal.NewFromInt(int64(len(weights)))
	}

	cents := amount.Round(2).Shift(2)
	type part struct {
		idx  int
		frac decimal.Decimal
	}
	parts := make([]part, len(weights))
	assigned := decimal.Zero
	for i, w := range weights {
		raw := cents.Mul(w).Div(sum)
		floor := raw.Floor()
		out[i] = floor
		assigned = assigned.Add(floor)
		parts[i] = part{idx: i, frac: raw.Sub(floor)}
	}

	sort.SliceStable(parts, func(a, b int) bool {
		return parts[a].frac.GreaterThan(parts[b].frac)
	})
	left := cents.Sub(assigned).IntPart()
	for i := 0; left > 0; i = (i + 1) % len(parts) {
		out[parts[i].idx] = out[parts[i].idx].Add(decimal.NewFromInt(1))
		left--
	}

	for i := range out {
		out[i] = out[i].Shift(-2)
	}
	return out
}

func normalizePeople(people []Person) ([]Person, error) {
	if len(people) == 0 {
		return nil, fmt.Errorf("%w: at least one person is required", ErrInvalidBill)
	}
	out := make([]Person, len(people))
	seen := make(map[string]bool, len(people))
	for i, p := range people {
		if p.ID == "" {
			p.ID = fmt.Sprintf("p%d", i+1)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate person id %q", ErrInvalidBill, p.ID)
		}
		seen[p.ID] = true
		if p.Name == "" {
			p.Name = p.ID
		}
		out[i] = p
	}
	return out, nil
}

func pickSubtotal(given float64, items decimal.Decimal) decimal.Decimal {
	if given != 0 {
		return decimal.NewFromFloat(given)
	}
	return items
}

func uniform(n int) []decimal.Decimal {
	w := make([]decimal.Decimal, n)
	for i := range w {
		w[i] = decimal.NewFromInt(1)
	}
	return w
}

// percentWeights uses each person's percentage; Allocate normalizes them so they need not sum to 100
func percentWeights(people []Person) ([]decimal.Decimal, error) {
	w := make([]decimal.Decimal, len(people))
	for i, p := range people {
		if p.Percentage < 0 {
			return nil, fmt.Errorf("%w: percentage for %q is negative", ErrInvalidBill, p.Name)
		}
		w[i] = decimal.NewFromFloat(p.Percentage)
	}
	return w, nil
}

// itemWeights sums each person's share of the items they are assigned to
func itemWeights(people []Person, items []Item) ([]decimal.Decimal, [][]ItemShare) {
	index := make(map[string]int, len(people))
	for i, p := range people {
		index[p.ID] = i
	}
	weights := make([]decimal.Decimal, len(people))
	shares := make([][]ItemShare, len(people))

	for _, it := range items {
		var owners []int
		for _, id := range it.AssignedTo {
			if i, ok := index[id]; ok {
				owners = append(owners, i)
			}
		}
		if len(owners) == 0 {
			for i := range people {
				owners = append(owners, i)
			}
		}
		share := decimal.NewFromFloat(it.Price).Div(decimal.NewFromInt(int64(len(owners))))
		for _, i := range owners {
			weights[i] = weights[i].Add(share)
			shares[i] = append(shares[i], ItemShare{ItemID: it.ID, Name: it.Name, Amount: toFloat(share.Round(2))})
		}
	}
	return weights, shares
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
