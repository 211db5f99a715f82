package mortgage

import (
	"errors"
	"math"
	"testing"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		rate     float64
		years    int
		down     float64
		expected float64
		delta    float64
	}{
		{"6% 30 years", 300000, 6, 30, 60000, 1438.92, 0.01},
		{"Interest free", 120000, 0, 10, 0, 1000, 1e-9},
		{"4.5% 15 years", 250000, 4.5, 15, 50000, 1529.99, 0.01},
		{"Down payment too large", 100000, 5, 30, 150000, 0, 0},
		{"Zero term", 100000, 5, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(tt.price, tt.rate, tt.years, tt.down)
			if math.Abs(got-tt.expected) > tt.delta {
				t.Errorf("MonthlyPayment = %.4f, want %.4f", got, tt.expected)
			}
		})
	}
}

func TestMonthlyPaymentTotalInterest(t *testing.T) {
	m := MonthlyPayment(300000, 6, 30, 60000)
	interest := m*360 - 240000
	// A 6%/30yr loan pays back roughly 1.16x its principal in interest
	if interest < 275000 || interest > 285000 {
		t.Errorf("total interest = %.2f, expected ~278011", interest)
	}
}

func TestScheduleConservation(t *testing.T) {
	inputs := []Inputs{
		{PropertyPrice: 300000, InterestRate: 6, LoanTermYears: 30, DownPayment: 60000},
		{PropertyPrice: 80000, InterestRate: 0, LoanTermYears: 7, DownPayment: 1000},
		{PropertyPrice: 555555.55, InterestRate: 13.37, LoanTermYears: 50, DownPayment: 0},
	}

	for _, in := range inputs {
		res, err := Calculate(in, true)
		if err != nil {
			t.Fatalf("Calculate(%+v): %v", in, err)
		}
		if len(res.Schedule) != in.LoanTermYears*12 {
			t.Errorf("schedule has %d rows, want %d", len(res.Schedule), in.LoanTermYears*12)
		}

		var sum float64
		prev := res.LoanAmount
		for i, row := range res.Schedule {
			if row.Month != i+1 {
				t.Fatalf("row %d has month %d", i, row.Month)
			}
			if row.RemainingBalance > prev+1e-9 {
				t.Fatalf("balance increased at month %d: %v > %v", row.Month, row.RemainingBalance, prev)
			}
			if row.RemainingBalance < 0 {
				t.Fatalf("negative balance at month %d", row.Month)
			}
			prev = row.RemainingBalance
			sum += row.Principal
		}

		if math.Abs(sum-res.LoanAmount) > 1e-6 {
			t.Errorf("Σprincipal = %.6f, want %.6f", sum, res.LoanAmount)
		}
		if last := res.Schedule[len(res.Schedule)-1]; last.RemainingBalance != 0 {
			t.Errorf("last balance = %v, want 0", last.RemainingBalance)
		}
		if len(res.Years) != in.LoanTermYears {
			t.Errorf("years = %d, want %d", len(res.Years), in.LoanTermYears)
		}
	}
}

func TestCalculateWithoutSchedule(t *testing.T) {
	res, err := Calculate(Inputs{PropertyPrice: 300000, InterestRate: 6, LoanTermYears: 30, DownPayment: 60000}, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Schedule != nil || res.Years != nil {
		t.Error("schedule should be omitted")
	}
	if res.NumPayments != 360 {
		t.Errorf("NumPayments = %d, want 360", res.NumPayments)
	}
	if math.Abs(res.TotalPayment-res.LoanAmount-res.TotalInterest) > 1e-6 {
		t.Errorf("total payment %v != loan %v + interest %v", res.TotalPayment, res.LoanAmount, res.TotalInterest)
	}
}

func TestCalculateInvalid(t *testing.T) {
	cases := []Inputs{
		{PropertyPrice: 0, InterestRate: 5, LoanTermYears: 30},
		{PropertyPrice: 100, InterestRate: 5, LoanTermYears: 30, DownPayment: 101},
		{PropertyPrice: 100, InterestRate: 5, LoanTermYears: 0},
		{PropertyPrice: 100, InterestRate: -1, LoanTermYears: 30},
		{PropertyPrice: 300000, InterestRate: 100000, LoanTermYears: 30},
		{PropertyPrice: 100000, InterestRate: 5, LoanTermYears: 1000000},
		{PropertyPrice: math.NaN(), InterestRate: 5, LoanTermYears: 30},
		{PropertyPrice: 100, InterestRate: math.NaN(), LoanTermYears: 30},
	}
	for _, in := range cases {
		if _, err := Calculate(in, true); !errors.Is(err, ErrInvalidInputs) {
			t.Errorf("Calculate(%+v) error = %v, want ErrInvalidInputs", in, err)
		}
	}
}

func TestFullDownPayment(t *testing.T) {
	res, err := Calculate(Inputs{PropertyPrice: 100000, InterestRate: 5, LoanTermYears: 10, DownPayment: 100000}, true)
	if err != nil {
		t.Fatal(err)
	}
	if res.MonthlyPayment != 0 || len(res.Schedule) != 0 {
		t.Errorf("fully paid property should have no schedule, got %+v", res)
	}
}

func TestExtremeLoanStaysFinite(t *testing.T) {
	res, err := Calculate(Inputs{PropertyPrice: 1e12, InterestRate: MaxRatePct, LoanTermYears: MaxTermYears}, true)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(res.MonthlyPayment) || math.IsInf(res.MonthlyPayment, 0) {
		t.Fatalf("MonthlyPayment = %v", res.MonthlyPayment)
	}
	if res.NumPayments != MaxTermYears*12 {
		t.Errorf("NumPayments = %d, want %d", res.NumPayments, MaxTermYears*12)
	}
	if last := res.Schedule[len(res.Schedule)-1]; last.RemainingBalance != 0 {
		t.Errorf("final balance = %v, want 0", last.RemainingBalance)
	}
}
