package odds

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format is an odds notation
type Format string

const (
	Decimal    Format = "decimal"
	Fractional Format = "fractional"
	American   Format = "american"
	Implied    Format = "implied"
)

// fractionPrecision is the denominator used before GCD reduction
const fractionPrecision = 1000

// ErrInvalidOdds is returned for any odds value that cannot represent a bet
var ErrInvalidOdds = errors.New("invalid odds")

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Decimal, Fractional, American, Implied:
		return f, nil
	}
	return "", fmt.Errorf("unknown odds format %q", s)
}

// Convert converts value from one format to another, always through decimal odds
func Convert(value string, from, to Format) (string, error) {
	d, err := ToDecimal(value, from)
	if err != nil {
		return "", err
	}
	return FromDecimal(d, to)
}

// ToDecimal parses value in the given format and returns decimal odds
func ToDecimal(value string, f Format) (float64, error) {
	value = strings.TrimSpace(value)
	switch f {
	case Decimal:
		d, err := parseFloat(value)
		if err != nil {
			return 0, err
		}
		return checkDecimal(d)
	case American:
		a, err := parseFloat(value)
		if err != nil {
			return 0, err
		}
		return AmericanToDecimal(a)
	case Fractional:
		return FractionalToDecimal(value)
	case Implied:
		p, err := parseFloat(strings.TrimSuffix(value, "%"))
		if err != nil {
			return 0, err
		}
		return ImpliedToDecimal(p)
	}
	return 0, fmt.Errorf("unknown odds format %q", f)
}

// FromDecimal renders decimal odds in the given format
func FromDecimal(d float64, f Format) (string, error) {
	if _, err := checkDecimal(d); err != nil {
		return "", err
	}
	switch f {
	case Decimal:
		return strconv.FormatFloat(d, 'f', 2, 64), nil
	case American:
		a, err := DecimalToAmerican(d)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%+d", a), nil
	case Fractional:
		return DecimalToFractional(d)
	case Implied:
		p, _ := DecimalToImplied(d)
		return strconv.FormatFloat(p, 'f', 2, 64) + "%", nil
	}
	return "", fmt.Errorf("unknown odds format %q", f)
}

// DecimalToAmerican converts decimal odds to American odds
// Example: 2.00 → +100, 1.50 → -200
func DecimalToAmerican(d float64) (int, error) {
	if _, err := checkDecimal(d); err != nil {
		return 0, err
	}
	if d >= 2 {
		return toInt(math.Round((d - 1) * 100))
	}
	a, err := toInt(math.Round(100 / (d - 1)))
	return -a, err
}

// AmericanToDecimal converts American odds to decimal odds.
// Values strictly between -100 and +100 have no meaning in American notation.
func AmericanToDecimal(a float64) (float64, error) {
	if math.IsNaN(a) || math.IsInf(a, 0) || math.Abs(a) < 100 {
		return 0, ErrInvalidOdds
	}
	if a > 0 {
		return 1 + a/100, nil
	}
	return 1 + 100/math.Abs(a), nil
}

// FractionalToDecimal parses "n/d" and returns 1 + n/d
func FractionalToDecimal(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, ErrInvalidOdds
	}
	n, err := parseFloat(strings.TrimSpace(num))
	if err != nil {
		return 0, err
	}
	m, err := parseFloat(strings.TrimSpace(den))
	if err != nil {
		return 0, err
	}
	if m <= 0 || n <= 0 {
		return 0, ErrInvalidOdds
	}
	return 1 + n/m, nil
}

// DecimalToFractional renders decimal odds as a reduced "n/d" fraction
func DecimalToFractional(d float64) (string, error) {
	if _, err := checkDecimal(d); err != nil {
		return "", err
	}
	n, err := toInt(math.Round((d - 1) * fractionPrecision))
	if err != nil || n == 0 {
		return "", ErrInvalidOdds
	}
	num, den := int64(n), int64(fractionPrecision)
	g := gcd(num, den)
	return fmt.Sprintf("%d/%d", num/g, den/g), nil
}

// DecimalToImplied returns the implied probability in percent
func DecimalToImplied(d float64) (float64, error) {
	if _, err := checkDecimal(d); err != nil {
		return 0, err
	}
	return 100 / d, nil
}

// ImpliedToDecimal converts an implied probability in percent to decimal odds
func ImpliedToDecimal(pct float64) (float64, error) {
	if math.IsNaN(pct) || pct <= 0 || pct >= 100 {
		return 0, ErrInvalidOdds
	}
	return 100 / pct, nil
}

func checkDecimal(d float64) (float64, error) {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 1 {
		return 0, ErrInvalidOdds
	}
	return d, nil
}

// toInt rejects values whose integer form would overflow
func toInt(v float64) (int, error) {
	if math.IsNaN(v) || v >= math.MaxInt || v <= math.MinInt {
		return 0, ErrInvalidOdds
	}
	return int(v), nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidOdds
	}
	return v, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
