package calories

import (
	"errors"
	"fmt"
	"math"

	"github.com/Dan9191/calc-hub/internal/calc/units"
)

// ErrInvalidInputs is returned for non-positive weight or duration
var ErrInvalidInputs = errors.New("invalid calorie inputs")

// Activity is a MET table row
type Activity string

const (
	Walking       Activity = "walking"
	Running       Activity = "running"
	Cycling       Activity = "cycling"
	Swimming      Activity = "swimming"
	Hiking        Activity = "hiking"
	Yoga          Activity = "yoga"
	Weightlifting Activity = "weightlifting"
	Dancing       Activity = "dancing"
	Basketball    Activity = "basketball"
	Soccer        Activity = "soccer"
	Tennis        Activity = "tennis"
	Rowing        Activity = "rowing"
	JumpingRope   Activity = "jumping_rope"
	Elliptical    Activity = "elliptical"
)

// Intensity is a MET table column
type Intensity int

const (
	Light Intensity = iota
	Moderate
	Vigorous
)

var intensityNames = map[string]Intensity{
	"light":    Light,
	"moderate": Moderate,
	"vigorous": Vigorous,
}

// ParseIntensity maps a name to an Intensity, defaulting to Moderate
func ParseIntensity(s string) Intensity {
	if i, ok := intensityNames[s]; ok {
		return i
	}
	return Moderate
}

func (i Intensity) String() string {
	switch i {
	case Light:
		return "light"
	case Vigorous:
		return "vigorous"
	}
	return "moderate"
}

// metTable holds MET values for light, moderate and vigorous effort
var metTable = map[Activity][3]float64{
	Walking:       {2.5, 3.5, 5.0},
	Running:       {8.0, 9.8, 11.5},
	Cycling:       {4.0, 6.8, 10.0},
	Swimming:      {6.0, 8.0, 10.0},
	Hiking:        {5.3, 6.0, 7.8},
	Yoga:          {2.0, 2.5, 4.0},
	Weightlifting: {3.0, 5.0, 6.0},
	Dancing:       {3.0, 5.0, 7.3},
	Basketball:    {4.5, 6.5, 8.0},
	Soccer:        {5.0, 7.0, 10.0},
	Tennis:        {5.0, 7.3, 8.0},
	Rowing:        {4.8, 7.0, 8.5},
	JumpingRope:   {8.8, 11.8, 12.3},
	Elliptical:    {4.6, 5.0, 5.7},
}

// Activities lists the known activities
func Activities() []Activity {
	out := make([]Activity, 0, len(metTable))
	for a := range metTable {
		out = append(out, a)
	}
	return out
}

// MET looks up the metabolic equivalent, falling back to walking at moderate effort
func MET(a Activity, i Intensity) float64 {
	row, ok := metTable[a]
	if !ok {
		return metTable[Walking][Moderate]
	}
	if i < Light || i > Vigorous {
		i = Moderate
	}
	return row[i]
}

// Inputs holds the calories form
type Inputs struct {
	Weight       float64            `json:"weight"`
	WeightUnit   units.WeightUnit   `json:"weightUnit"`
	Duration     float64            `json:"duration"`
	DurationUnit units.DurationUnit `json:"durationUnit"`
	Activity     Activity           `json:"activity"`
	Intensity    string             `json:"intensity"`
}

// Result is the calories estimate
type Result struct {
	Calories      float64 `json:"calories"`
	MET           float64 `json:"met"`
	CaloriesPerHr float64 `json:"caloriesPerHour"`
	Activity      string  `json:"activity"`
	Intensity     string  `json:"intensity"`
}

// Calculate returns MET * kg * hours
func Calculate(in Inputs) (*Result, error) {
	kg, err := units.ToKilograms(in.Weight, in.WeightUnit)
	if err != nil {
		return nil, err
	}
	hours, err := units.ToHours(in.Duration, in.DurationUnit)
	if err != nil {
		return nil, err
	}
	if kg <= 0 || hours <= 0 {
		return nil, fmt.Errorf("%w: weight and duration must be positive", ErrInvalidInputs)
	}

	activity := in.Activity
	if _, ok := metTable[activity]; !ok {
		activity = Walking
	}
	intensity := ParseIntensity(in.Intensity)
	if activity != in.Activity {
		intensity = Moderate
	}
	met := MET(activity, intensity)

	total := met * kg * hours
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return nil, fmt.Errorf("%w: weight or duration out of range", ErrInvalidInputs)
	}
	return &Result{
		Calories:      total,
		MET:           met,
		CaloriesPerHr: met * kg,
		Activity:      string(activity),
		Intensity:     intensity.String(),
	}, nil
}
