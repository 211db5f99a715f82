package mortgage

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInputs is returned when mortgage inputs cannot describe a loan
var ErrInvalidInputs = errors.New("invalid mortgage inputs")

const (
	MaxTermYears = 100
	MaxRatePct   = 100
)

// Inputs holds the mortgage calculator form
type Inputs struct {
	PropertyPrice float64 `json:"propertyPrice"`
	InterestRate  float64 `json:"interestRate"` // annual, percent
	LoanTermYears int     `json:"loanTermYears"`
	DownPayment   float64 `json:"downPayment"`
}

// AmortizationRow is one month of the amortization schedule
type AmortizationRow struct {
	Month               int     `json:"month"`
	Year                int     `json:"year"`
	Payment             float64 `json:"payment"`
	Principal           float64 `json:"principal"`
	Interest            float64 `json:"interest"`
	RemainingBalance    float64 `json:"remainingBalance"`
	CumulativePrincipal float64 `json:"cumulativePrincipal"`
	CumulativeInterest  float64 `json:"cumulativeInterest"`
}

// YearSummary rolls the schedule up by loan year
type YearSummary struct {
	Year             int     `json:"year"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// Result is the full mortgage calculation
type Result struct {
	LoanAmount     float64           `json:"loanAmount"`
	MonthlyPayment float64           `json:"monthlyPayment"`
	TotalPayment   float64           `json:"totalPayment"`
	TotalInterest  float64           `json:"totalInterest"`
	NumPayments    int               `json:"numPayments"`
	Schedule       []AmortizationRow `json:"schedule,omitempty"`
	Years          []YearSummary     `json:"years,omitempty"`
}

// Validate checks the loan invariants
func (in Inputs) Validate() error {
	switch {
	case !(in.PropertyPrice > 0) || math.IsInf(in.PropertyPrice, 0):
		return fmt.Errorf("%w: property price must be positive", ErrInvalidInputs)
	case !(in.DownPayment >= 0):
		return fmt.Errorf("%w: down payment must not be negative", ErrInvalidInputs)
	case in.DownPayment > in.PropertyPrice:
		return fmt.Errorf("%w: down payment exceeds property price", ErrInvalidInputs)
	case in.LoanTermYears <= 0 || in.LoanTermYears > MaxTermYears:
		return fmt.Errorf("%w: loan term must be between 1 and %d years", ErrInvalidInputs, MaxTermYears)
	case !(in.InterestRate >= 0) || in.InterestRate > MaxRatePct:
		return fmt.Errorf("%w: interest rate must be between 0 and %d%%", ErrInvalidInputs, MaxRatePct)
	}
	return nil
}

// MonthlyPayment returns the fixed monthly payment, or 0 if the inputs are invalid.
// M = P * r(1+r)^n / ((1+r)^n - 1), degenerating to P/n for an interest-free loan.
func MonthlyPayment(propertyPrice, annualRatePct float64, years int, downPayment float64) float64 {
	in := Inputs{PropertyPrice: propertyPrice, InterestRate: annualRatePct, LoanTermYears: years, DownPayment: downPayment}
	if in.Validate() != nil {
		return 0
	}
	return payment(propertyPrice-downPayment, annualRatePct/100/12, years*12)
}

func payment(principal, r float64, n int) float64 {
	if r == 0 {
		return principal / float64(n)
	}
	f := math.Pow(1+r, float64(n))
	return principal * r * f / (f - 1)
}

// Calculate validates the inputs and builds the summary and, when schedule is true,
// the month-by-month amortization table.
func Calculate(in Inputs, schedule bool) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	principal := in.PropertyPrice - in.DownPayment
	r := in.InterestRate / 100 / 12
	n := in.LoanTermYears * 12
	monthly := payment(principal, r, n)
	if math.IsNaN(monthly) || math.IsInf(monthly, 0) {
		return nil, fmt.Errorf("%w: payment is out of range", ErrInvalidInputs)
	}

	rows := Schedule(principal, r, n, monthly)
	res := &Result{
		LoanAmount:     principal,
		MonthlyPayment: monthly,
		NumPayments:    len(rows),
	}
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		res.TotalInterest = last.CumulativeInterest
		res.TotalPayment = last.CumulativePrincipal + last.CumulativeInterest
	}
	if schedule {
		res.Schedule = rows
		res.Years = Yearly(rows)
	}
	return res, nil
}

// Schedule generates the amortization rows for a loan with monthly rate r over n months.
// The final row takes whatever principal is left so the balance ends at exactly 0.
func Schedule(principal, r float64, n int, monthly float64) []AmortizationRow {
	if principal <= 0 || n <= 0 {
		return nil
	}

	rows := make([]AmortizationRow, 0, n)
	balance := principal
	var cumPrincipal, cumInterest float64

	for month := 1; month <= n && balance > 0; month++ {
		interest := balance * r
		paid := math.Max(0, monthly-interest)
		if month == n || paid >= balance {
			paid = balance
		}
		balance = math.Max(0, balance-paid)
		cumPrincipal += paid
		cumInterest += interest

		rows = append(rows, AmortizationRow{
			Month:               month,
			Year:                (month-1)/12 + 1,
			Payment:             paid + interest,
			Principal:           paid,
			Interest:            interest,
			RemainingBalance:    balance,
			CumulativePrincipal: cumPrincipal,
			CumulativeInterest:  cumInterest,
		})
	}
	return rows
}

// Yearly groups schedule rows by loan year
func Yearly(rows []AmortizationRow) []YearSummary {
	var years []YearSummary
	for _, row := range rows {
		if len(years) == 0 || years[len(years)-1].Year != row.Year {
			years = append(years, YearSummary{Year: row.Year})
		}
		y := &years[len(years)-1]
		y.Principal += row.Principal
		y.Interest += row.Interest
		y.RemainingBalance = row.RemainingBalance
	}
	return years
}
