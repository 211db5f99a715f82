package units

import "fmt"

// System is a measurement system tag
type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

// WeightUnit is a unit of body weight
type WeightUnit string

const (
	Kilogram WeightUnit = "kg"
	Pound    WeightUnit = "lb"
)

// LengthUnit is a unit of body length or circumference
type LengthUnit string

const (
	Centimeter LengthUnit = "cm"
	Inch       LengthUnit = "in"
)

// DurationUnit is a unit of exercise duration
type DurationUnit string

const (
	Minute DurationUnit = "min"
	Hour   DurationUnit = "hour"
)

const (
	kgPerPound = 0.45359237
	cmPerInch  = 2.54
)

// ToKilograms converts a weight to kilograms
func ToKilograms(v float64, u WeightUnit) (float64, error) {
	switch u {
	case Kilogram, "":
		return v, nil
	case Pound, "lbs":
		return v * kgPerPound, nil
	}
	return 0, fmt.Errorf("unknown weight unit %q", u)
}

// ToCentimeters converts a length to centimeters
func ToCentimeters(v float64, u LengthUnit) (float64, error) {
	switch u {
	case Centimeter, "":
		return v, nil
	case Inch:
		return v * cmPerInch, nil
	}
	return 0, fmt.Errorf("unknown length unit %q", u)
}

// ToHours converts a duration to hours
func ToHours(v float64, u DurationUnit) (float64, error) {
	switch u {
	case Minute, "":
		return v / 60, nil
	case Hour, "hours", "h":
		return v, nil
	}
	return 0, fmt.Errorf("unknown duration unit %q", u)
}

// WeightUnitFor returns the weight unit used by a measurement system
func WeightUnitFor(s System) WeightUnit {
	if s == Imperial {
		return Pound
	}
	return Kilogram
}

// LengthUnitFor returns the length unit used by a measurement system
func LengthUnitFor(s System) LengthUnit {
	if s == Imperial {
		return Inch
	}
	return Centimeter
}
