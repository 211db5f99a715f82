package handler

import (
	"fmt"
	"net/http"

	"github.com/Dan9191/calc-hub/internal/calc/betting"
	"github.com/Dan9191/calc-hub/internal/calc/billsplit"
	"github.com/Dan9191/calc-hub/internal/calc/bodyfat"
	"github.com/Dan9191/calc-hub/internal/calc/calories"
	"github.com/Dan9191/calc-hub/internal/calc/mining"
	"github.com/Dan9191/calc-hub/internal/calc/mortgage"
	"github.com/Dan9191/calc-hub/internal/calc/odds"
	"github.com/Dan9191/calc-hub/internal/format"
)

type convertRequest struct {
	Value oddsValue `json:"value"`
	From  string    `json:"from"`
	To    string    `json:"to"`
}

type convertResponse struct {
	Value              string  `json:"value"`
	Format             string  `json:"format"`
	Decimal            float64 `json:"decimal"`
	ImpliedProbability float64 `json:"impliedProbability"`
}

// ConvertOdds converts odds between notations
func (h *Handler) ConvertOdds(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	from, err := calc(odds.ParseFormat(req.From))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	to, err := calc(odds.ParseFormat(req.To))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	d, err := calc(odds.ToDecimal(string(req.Value), from))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := calc(odds.FromDecimal(d, to))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	implied, _ := odds.DecimalToImplied(d)

	respondJSON(w, http.StatusOK, convertResponse{
		Value:              out,
		Format:             string(to),
		Decimal:            d,
		ImpliedProbability: implied,
	})
}

type marginRequest struct {
	Odds   []oddsValue `json:"odds"`
	Format string      `json:"format"`
}

type marginResponse struct {
	Decimals          []float64 `json:"decimals"`
	Overround         float64   `json:"overround"` // percent
	FairProbabilities []float64 `json:"fairProbabilities"`
	FairOdds          []float64 `json:"fairOdds"`
}

// Margin returns the bookmaker margin and no-vig prices of a market
func (h *Handler) Margin(w http.ResponseWriter, r *http.Request) {
	var req marginRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = string(odds.Decimal)
	}
	f, err := calc(odds.ParseFormat(req.Format))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	decimals := make([]float64, len(req.Odds))
	for i, v := range req.Odds {
		if decimals[i], err = calc(odds.ToDecimal(string(v), f)); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	over, err := calc(odds.Overround(decimals...))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	fair, _ := odds.NoVig(decimals...)
	fairOdds := make([]float64, len(fair))
	for i, p := range fair {
		fairOdds[i] = 100 / p
	}

	respondJSON(w, http.StatusOK, marginResponse{
		Decimals:          decimals,
		Overround:         over,
		FairProbabilities: fair,
		FairOdds:          fairOdds,
	})
}

// Kelly returns the Kelly criterion stake
func (h *Handler) Kelly(w http.ResponseWriter, r *http.Request) {
	var req betting.KellyInput
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(betting.Kelly(req))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type parlayRequest struct {
	Legs  []betting.Leg `json:"legs"`
	Stake float64       `json:"stake"`
}

// Parlay prices a multi-leg ticket
func (h *Handler) Parlay(w http.ResponseWriter, r *http.Request) {
	var req parlayRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(betting.Parlay(req.Legs, req.Stake))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type evRequest struct {
	WinProbability float64   `json:"winProbability"`
	Odds           oddsValue `json:"odds"`
	Format         string    `json:"format"`
	Stake          float64   `json:"stake"`
}

// ExpectedValue returns the EV of a single bet
func (h *Handler) ExpectedValue(w http.ResponseWriter, r *http.Request) {
	var req evRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = string(odds.Decimal)
	}
	f, err := calc(odds.ParseFormat(req.Format))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	d, err := calc(odds.ToDecimal(string(req.Odds), f))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(betting.ExpectedValue(req.WinProbability, d, req.Stake))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type mortgageRequest struct {
	mortgage.Inputs
	IncludeSchedule bool   `json:"includeSchedule"`
	Currency        string `json:"currency"`
}

type mortgageResponse struct {
	*mortgage.Result
	Display map[string]string `json:"display"`
}

// Mortgage returns the payment and optional amortization schedule
func (h *Handler) Mortgage(w http.ResponseWriter, r *http.Request) {
	var req mortgageRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(mortgage.Calculate(req.Inputs, req.IncludeSchedule))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	p := format.ForAcceptLanguage(r.Header.Get("Accept-Language"))
	sym := currencySymbol(req.Currency)
	respondJSON(w, http.StatusOK, mortgageResponse{
		Result: res,
		Display: map[string]string{
			"loanAmount":     p.Money(sym, res.LoanAmount),
			"monthlyPayment": p.Money(sym, res.MonthlyPayment),
			"totalPayment":   p.Money(sym, res.TotalPayment),
			"totalInterest":  p.Money(sym, res.TotalInterest),
		},
	})
}

type miningResponse struct {
	*mining.Result
	Display map[string]string `json:"display"`
}

// Mining projects mining profitability
func (h *Handler) Mining(w http.ResponseWriter, r *http.Request) {
	var req mining.Inputs
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(mining.Calculate(req))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	p := format.ForAcceptLanguage(r.Header.Get("Accept-Language"))
	display := map[string]string{
		"dailyProfit":   p.Money("$", res.Daily.Profit),
		"monthlyProfit": p.Money("$", res.Monthly.Profit),
		"yearlyProfit":  p.Money("$", res.Yearly.Profit),
	}
	if res.BreakEvenDays != nil {
		display["breakEven"] = fmt.Sprintf("%s days", p.Number(*res.BreakEvenDays, 0))
	}
	respondJSON(w, http.StatusOK, miningResponse{Result: res, Display: display})
}

// BodyFat estimates body fat percentage
func (h *Handler) BodyFat(w http.ResponseWriter, r *http.Request) {
	var req bodyfat.Inputs
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(bodyfat.Calculate(req))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// Calories estimates calories burned
func (h *Handler) Calories(w http.ResponseWriter, r *http.Request) {
	var req calories.Inputs
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(calories.Calculate(req))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// BillSplit divides a bill among people
func (h *Handler) BillSplit(w http.ResponseWriter, r *http.Request) {
	var req billsplit.Request
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(billsplit.Split(req))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func currencySymbol(code string) string {
	switch code {
	case "", "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "RUB":
		return "₽"
	}
	return code + " "
}
