package bodyfat

import (
	"errors"
	"fmt"
	"math"

	"github.com/Dan9191/calc-hub/internal/calc/units"
)

// ErrInvalidMeasurements is returned when a formula cannot be applied to the measurements
var ErrInvalidMeasurements = errors.New("invalid body measurements")

// Method selects the estimation formula
type Method string

const (
	Navy           Method = "navy"
	JacksonPollock Method = "jackson_pollock"
	Skinfold3      Method = "skinfold3"
)

// Gender selects gender-specific coefficients and category thresholds
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Category is the qualitative body fat band
type Category string

const (
	Essential Category = "Essential Fat"
	Athletes  Category = "Athletes"
	Fitness   Category = "Fitness"
	Average   Category = "Average"
	Obese     Category = "Obese"
)

const (
	minPercentage = 2
	maxPercentage = 60
)

// Inputs holds the body fat form. Circumferences and height are in the unit
// of System; skinfolds are always millimetres.
type Inputs struct {
	Method Method       `json:"method"`
	Gender Gender       `json:"gender"`
	System units.System `json:"unit"`
	Age    int          `json:"age"`
	Weight float64      `json:"weight"`
	Height float64      `json:"height"`

	Waist float64 `json:"waist"`
	Neck  float64 `json:"neck"`
	Hip   float64 `json:"hip"`

	Chest       float64 `json:"chest"`
	Abdomen     float64 `json:"abdomen"`
	Thigh       float64 `json:"thigh"`
	Triceps     float64 `json:"triceps"`
	Suprailiac  float64 `json:"suprailiac"`
	Subscapular float64 `json:"subscapular"`
}

// Result is the body fat estimate
type Result struct {
	BodyFatPercentage float64  `json:"bodyFatPercentage"`
	Category          Category `json:"category"`
	FatMass           float64  `json:"fatMass"`  // kg
	LeanMass          float64  `json:"leanMass"` // kg
	Method            Method   `json:"method"`
}

// Calculate normalizes the measurements to kg/cm and applies the selected formula.
// The percentage is clamped into [2, 60].
func Calculate(in Inputs) (*Result, error) {
	if in.Gender != Male && in.Gender != Female {
		return nil, fmt.Errorf("%w: unknown gender %q", ErrInvalidMeasurements, in.Gender)
	}
	m, err := normalize(in)
	if err != nil {
		return nil, err
	}

	var raw float64
	switch in.Method {
	case Navy, "":
		raw, err = navy(m)
	case JacksonPollock:
		raw, err = jacksonPollock(m)
	case Skinfold3:
		raw, err = skinfold3(m)
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidMeasurements, in.Method)
	}
	if err != nil {
		return nil, err
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return nil, ErrInvalidMeasurements
	}

	pct := Clamp(raw)
	method := in.Method
	if method == "" {
		method = Navy
	}
	res := &Result{
		BodyFatPercentage: pct,
		Category:          Classify(pct, in.Gender),
		Method:            method,
	}
	if m.Weight > 0 {
		res.FatMass = m.Weight * pct / 100
		res.LeanMass = m.Weight - res.FatMass
	}
	return res, nil
}

// Clamp bounds a raw formula result to the plausible range
func Clamp(pct float64) float64 {
	return math.Min(maxPercentage, math.Max(minPercentage, pct))
}

// Classify maps a percentage to its category using gender thresholds
func Classify(pct float64, g Gender) Category {
	// upper bounds of Essential, Athletes, Fitness, Average
	limits := [4]float64{6, 14, 18, 25}
	if g == Female {
		limits = [4]float64{14, 21, 25, 32}
	}
	switch {
	case pct < limits[0]:
		return Essential
	case pct < limits[1]:
		return Athletes
	case pct < limits[2]:
		return Fitness
	case pct < limits[3]:
		return Average
	}
	return Obese
}

func normalize(in Inputs) (Inputs, error) {
	out := in
	wu := units.WeightUnitFor(in.System)
	lu := units.LengthUnitFor(in.System)

	var err error
	if out.Weight, err = units.ToKilograms(in.Weight, wu); err != nil {
		return out, err
	}
	for _, p := range []*float64{&out.Height, &out.Waist, &out.Neck, &out.Hip} {
		if *p, err = units.ToCentimeters(*p, lu); err != nil {
			return out, err
		}
	}
	return out, nil
}

// navy applies the U.S. Navy circumference method (metric form)
func navy(m Inputs) (float64, error) {
	if m.Height <= 0 || m.Waist <= 0 || m.Neck <= 0 {
		return 0, fmt.Errorf("%w: navy method needs height, waist and neck", ErrInvalidMeasurements)
	}
	if m.Gender == Male {
		if m.Waist <= m.Neck {
			return 0, fmt.Errorf("%w: waist must exceed neck", ErrInvalidMeasurements)
		}
		return 495/(1.0324-0.19077*math.Log10(m.Waist-m.Neck)+0.15456*math.Log10(m.Height)) - 450, nil
	}
	if m.Hip <= 0 || m.Waist+m.Hip <= m.Neck {
		return 0, fmt.Errorf("%w: navy method needs hip for women", ErrInvalidMeasurements)
	}
	return 495/(1.29579-0.35004*math.Log10(m.Waist+m.Hip-m.Neck)+0.22100*math.Log10(m.Height)) - 450, nil
}

// jacksonPollock applies the Jackson-Pollock 3-site skinfold equation
// men: chest, abdomen, thigh; women: triceps, suprailiac, thigh
func jacksonPollock(m Inputs) (float64, error) {
	if m.Gender == Male {
		s, err := sites(m.Chest, m.Abdomen, m.Thigh)
		if err != nil {
			return 0, err
		}
		return siri(1.10938 - 0.0008267*s + 0.0000016*s*s - 0.0002574*float64(m.Age)), nil
	}
	s, err := sites(m.Triceps, m.Suprailiac, m.Thigh)
	if err != nil {
		return 0, err
	}
	return siri(1.0994921 - 0.0009929*s + 0.0000023*s*s - 0.0001392*float64(m.Age)), nil
}

// skinfold3 applies the alternate 3-site skinfold equation
// men: chest, triceps, subscapular; women: triceps, suprailiac, abdomen
func skinfold3(m Inputs) (float64, error) {
	if m.Gender == Male {
		s, err := sites(m.Chest, m.Triceps, m.Subscapular)
		if err != nil {
			return 0, err
		}
		return siri(1.1125025 - 0.0013125*s + 0.0000055*s*s - 0.000244*float64(m.Age)), nil
	}
	s, err := sites(m.Triceps, m.Suprailiac, m.Abdomen)
	if err != nil {
		return 0, err
	}
	return siri(1.089733 - 0.0009245*s + 0.0000025*s*s - 0.0000979*float64(m.Age)), nil
}

func sites(a, b, c float64) (float64, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return 0, fmt.Errorf("%w: all three skinfold sites are required", ErrInvalidMeasurements)
	}
	return a + b + c, nil
}

// siri converts body density to percent fat
func siri(density float64) float64 {
	return 495/density - 450
}
