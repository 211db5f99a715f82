package billsplit

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func sumOwed(res *Result) float64 {
	var s float64
	for _, p := range res.People {
		s += p.AmountOwed
	}
	return s
}

func TestEqualSplit(t *testing.T) {
	res, err := Split(Request{
		Strategy: Equal,
		People:   []Person{{Name: "Ann"}, {Name: "Bob"}, {Name: "Cy"}},
		Subtotal: 100,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{33.34, 33.33, 33.33}
	for i, p := range res.People {
		if p.AmountOwed != want[i] {
			t.Errorf("person %d owes %v, want %v", i, p.AmountOwed, want[i])
		}
	}
	if res.Total != 100 {
		t.Errorf("Total = %v, want 100", res.Total)
	}
}

func TestPercentageSplit(t *testing.T) {
	res, err := Split(Request{
		Strategy: Percentage,
		People: []Person{
			{ID: "a", Name: "Ann", Percentage: 30},
			{ID: "b", Name: "Bob", Percentage: 30},
		},
		Subtotal:   80,
		TipPercent: 25,
	})
	if err != nil {
		t.Fatal(err)
	}
	// percentages normalized to 50/50 of 100
	for _, p := range res.People {
		if p.AmountOwed != 50 {
			t.Errorf("%s owes %v, want 50", p.Name, p.AmountOwed)
		}
		if p.Tip != 10 {
			t.Errorf("%s tip %v, want 10", p.Name, p.Tip)
		}
	}
}

func TestPercentageAllZeroIsEqual(t *testing.T) {
	res, err := Split(Request{
		Strategy: Percentage,
		People:   []Person{{Name: "Ann"}, {Name: "Bob"}},
		Subtotal: 10,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.People[0].AmountOwed != 5 || res.People[1].AmountOwed != 5 {
		t.Errorf("got %+v, want 5/5", res.People)
	}
}

func TestCustomSplit(t *testing.T) {
	res, err := Split(Request{
		Strategy: Custom,
		People:   []Person{{ID: "a", Name: "Ann"}, {ID: "b", Name: "Bob"}, {ID: "c", Name: "Cy"}},
		Items: []Item{
			{ID: "1", Name: "Steak", Price: 30, AssignedTo: []string{"a"}},
			{ID: "2", Name: "Wine", Price: 24, AssignedTo: []string{"a", "b"}},
			{ID: "3", Name: "Bread", Price: 6},
			{ID: "4", Name: "Soup", Price: 9, AssignedTo: []string{"ghost"}},
		},
		TaxPercent: 10,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Ann: 30 + 12 + 2 + 3 = 47; Bob: 12 + 2 + 3 = 17; Cy: 2 + 3 = 5
	wantSub := map[string]float64{"a": 47, "b": 17, "c": 5}
	for _, p := range res.People {
		if p.Subtotal != wantSub[p.PersonID] {
			t.Errorf("%s subtotal %v, want %v", p.Name, p.Subtotal, wantSub[p.PersonID])
		}
		if math.Abs(p.AmountOwed-wantSub[p.PersonID]*1.1) > 0.011 {
			t.Errorf("%s owes %v, want ~%v", p.Name, p.AmountOwed, wantSub[p.PersonID]*1.1)
		}
	}
	if len(res.People[0].Items) != 4 || len(res.People[2].Items) != 2 {
		t.Errorf("item breakdown wrong: %+v", res.People)
	}
	if math.Abs(res.Total-75.9) > 1e-9 {
		t.Errorf("Total = %v, want 75.9", res.Total)
	}
}

func TestConservation(t *testing.T) {
	people := []Person{
		{ID: "a", Percentage: 17}, {ID: "b", Percentage: 23.5}, {ID: "c", Percentage: 41},
		{ID: "d", Percentage: 3}, {ID: "e", Percentage: 9.25}, {ID: "f", Percentage: 1},
		{ID: "g", Percentage: 0.333},
	}
	items := []Item{
		{ID: "1", Price: 12.99, AssignedTo: []string{"a", "c", "g"}},
		{ID: "2", Price: 7.01},
		{ID: "3", Price: 101.37, AssignedTo: []string{"b"}},
		{ID: "4", Price: 0.03, AssignedTo: []string{"d", "e"}},
	}

	for _, total := range []float64{0.01, 1, 9.99, 100, 123.45, 1000.01, 98765.43} {
		for _, s := range []Strategy{Equal, Percentage, Custom} {
			for n := 1; n <= len(people); n++ {
				req := Request{Strategy: s, People: people[:n], Subtotal: total, TaxPercent: 8.875, TipPercent: 18}
				if s == Custom {
					req.Items = items
				}
				res, err := Split(req)
				if err != nil {
					t.Fatalf("%s n=%d total=%v: %v", s, n, total, err)
				}
				if math.Abs(sumOwed(res)-res.Total) > 1e-6 {
					t.Fatalf("%s n=%d total=%v: Σ owed %v != total %v", s, n, total, sumOwed(res), res.Total)
				}
				expected := res.Subtotal * (1 + 0.08875 + 0.18)
				if math.Abs(res.Total-expected) > 0.02 {
					t.Fatalf("%s n=%d: total %v drifted from %v", s, n, res.Total, expected)
				}
				for _, p := range res.People {
					if p.AmountOwed < 0 {
						t.Fatalf("%s: negative amount owed %v", s, p.AmountOwed)
					}
				}
			}
		}
	}
}

func TestAllocate(t *testing.T) {
	w := []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(1)}
	parts := Allocate(decimal.NewFromFloat(0.02), w)
	sum := decimal.Zero
	for _, p := range parts {
		sum = sum.Add(p)
	}
	if !sum.Equal(decimal.NewFromFloat(0.02)) {
		t.Errorf("Allocate sum = %s, want 0.02", sum)
	}
	if !parts[2].IsZero() {
		t.Errorf("last part = %s, want 0", parts[2])
	}
}

func TestSplitInvalid(t *testing.T) {
	cases := []Request{
		{Strategy: Equal, Subtotal: 10},
		{Strategy: "roulette", People: []Person{{Name: "Ann"}}, Subtotal: 10},
		{Strategy: Percentage, People: []Person{{Name: "Ann", Percentage: -5}}, Subtotal: 10},
		{Strategy: Custom, People: []Person{{Name: "Ann"}}, Items: []Item{{Price: -1}}},
		{Strategy: Equal, People: []Person{{ID: "x"}, {ID: "x"}}, Subtotal: 10},
		{Strategy: Equal, People: []Person{{Name: "Ann"}}, Subtotal: 10, TipPercent: -3},
		{Strategy: Equal, People: []Person{{Name: "Ann"}}, Subtotal: math.MaxFloat64, TipPercent: 100},
	}
	for _, req := range cases {
		if _, err := Split(req); !errors.Is(err, ErrInvalidBill) {
			t.Errorf("Split(%+v) error = %v, want ErrInvalidBill", req, err)
		}
	}
}
