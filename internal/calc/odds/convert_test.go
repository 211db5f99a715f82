package odds

import (
	"errors"
	"math"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		from, to Format
		expected string
	}{
		{"Even money to American", "2.00", Decimal, American, "+100"},
		{"Favorite American to decimal", "-200", American, Decimal, "1.50"},
		{"Underdog American to decimal", "+150", American, Decimal, "2.50"},
		{"Decimal to fractional", "2.50", Decimal, Fractional, "3/2"},
		{"Fractional to decimal", "5/2", Fractional, Decimal, "3.50"},
		{"Fractional to American", "1/2", Fractional, American, "-200"},
		{"Decimal to implied", "4.00", Decimal, Implied, "25.00%"},
		{"Implied to decimal", "50%", Implied, Decimal, "2.00"},
		{"Implied without suffix", "20", Implied, Decimal, "5.00"},
		{"Odds-on fractional", "1.25", Decimal, Fractional, "1/4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.value, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Convert(%q, %s, %s) error: %v", tt.value, tt.from, tt.to, err)
			}
			if got != tt.expected {
				t.Errorf("Convert(%q, %s, %s) = %q, want %q", tt.value, tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestConvertInvalid(t *testing.T) {
	cases := []struct {
		value string
		from  Format
	}{
		{"1.00", Decimal},
		{"0.5", Decimal},
		{"abc", Decimal},
		{"NaN", Decimal},
		{"3", Fractional},
		{"3/0", Fractional},
		{"x/2", Fractional},
		{"-1/2", Fractional},
		{"50", American},
		{"0", American},
		{"0", Implied},
		{"100", Implied},
	}

	for _, tc := range cases {
		_, err := Convert(tc.value, tc.from, Decimal)
		if !errors.Is(err, ErrInvalidOdds) {
			t.Errorf("Convert(%q, %s) error = %v, want ErrInvalidOdds", tc.value, tc.from, err)
		}
	}
}

func TestConvertHugeDecimal(t *testing.T) {
	for _, to := range []Format{American, Fractional} {
		got, err := Convert("1e20", Decimal, to)
		if !errors.Is(err, ErrInvalidOdds) {
			t.Errorf("Convert(1e20, decimal, %s) = %q, %v; want ErrInvalidOdds", to, got, err)
		}
	}
	got, err := Convert("1e20", Decimal, Implied)
	if err != nil {
		t.Fatalf("Convert(1e20, decimal, implied): %v", err)
	}
	if got != "0.00%" {
		t.Errorf("implied = %q, want 0.00%%", got)
	}
}

func TestDecimalAmericanRoundTrip(t *testing.T) {
	for d := 1.01; d < 20; d += 0.07 {
		a, err := DecimalToAmerican(d)
		if err != nil {
			t.Fatalf("DecimalToAmerican(%v): %v", d, err)
		}
		back, err := AmericanToDecimal(float64(a))
		if err != nil {
			t.Fatalf("AmericanToDecimal(%d): %v", a, err)
		}
		// American odds are integers, so short prices lose a little precision
		if math.Abs(back-d) > 0.01 {
			t.Errorf("round trip %.4f -> %+d -> %.4f", d, a, back)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" American "); err != nil || f != American {
		t.Errorf("ParseFormat(American) = %q, %v", f, err)
	}
	if _, err := ParseFormat("moneyline"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestOverround(t *testing.T) {
	// -110 / -110 market
	m, err := Overround(1.9091, 1.9091)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(m-4.76) > 0.01 {
		t.Errorf("Overround = %.4f, want ~4.76", m)
	}

	fair, err := NoVig(1.9091, 1.9091)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range fair {
		if math.Abs(p-50) > 0.001 {
			t.Errorf("NoVig = %v, want 50/50", fair)
		}
	}

	if _, err := Overround(2.0); !errors.Is(err, ErrInvalidOdds) {
		t.Errorf("single outcome market should be invalid, got %v", err)
	}
}
