package handler

import (
	"net/http"

	"github.com/Dan9191/calc-hub/internal/calc/chance"
)

type coinChanceRequest struct {
	Flips       int     `json:"flips"`
	AtLeast     int     `json:"atLeast"`
	Probability float64 `json:"probability"` // heads probability, 0 means a fair coin
}

// CoinChance returns the odds of at least k heads in n flips
func (h *Handler) CoinChance(w http.ResponseWriter, r *http.Request) {
	var req coinChanceRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Probability == 0 {
		req.Probability = 0.5
	}
	res, err := calc(chance.CoinFlips(req.Flips, req.AtLeast, req.Probability))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type diceChanceRequest struct {
	Dice   int `json:"dice"`
	Sides  int `json:"sides"`
	Target int `json:"target"`
}

// DiceChance returns the distribution of a dice total
func (h *Handler) DiceChance(w http.ResponseWriter, r *http.Request) {
	var req diceChanceRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Sides == 0 {
		req.Sides = 6
	}
	res, err := calc(chance.DiceSum(req.Dice, req.Sides, req.Target))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type lotteryRequest struct {
	Pool       int `json:"pool"`
	Picks      int `json:"picks"`
	BonusPool  int `json:"bonusPool"`
	BonusPicks int `json:"bonusPicks"`
}

// LotteryChance returns jackpot odds
func (h *Handler) LotteryChance(w http.ResponseWriter, r *http.Request) {
	var req lotteryRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(chance.Lottery(req.Pool, req.Picks, req.BonusPool, req.BonusPicks))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type rouletteRequest struct {
	Wheel chance.Wheel `json:"wheel"`
	Bet   chance.Bet   `json:"bet"`
}

// RouletteChance returns probability and house edge of a bet
func (h *Handler) RouletteChance(w http.ResponseWriter, r *http.Request) {
	var req rouletteRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(chance.Roulette(req.Wheel, req.Bet))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

type drawRequest struct {
	Count int          `json:"count"`
	Sides int          `json:"sides"`
	Wheel chance.Wheel `json:"wheel"`
	Names []string     `json:"names"`
}

// FlipCoin flips one or more coins
func (h *Handler) FlipCoin(w http.ResponseWriter, r *http.Request) {
	var req drawRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}
	res, err := calc(h.table.FlipCoins(req.Count))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// RollDice rolls count dice with the given sides
func (h *Handler) RollDice(w http.ResponseWriter, r *http.Request) {
	var req drawRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}
	if req.Sides == 0 {
		req.Sides = 6
	}
	res, err := calc(h.table.RollDice(req.Count, req.Sides))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// SpinRoulette spins the wheel
func (h *Handler) SpinRoulette(w http.ResponseWriter, r *http.Request) {
	var req drawRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(h.table.SpinRoulette(req.Wheel))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// PickName spins the name-picker wheel
func (h *Handler) PickName(w http.ResponseWriter, r *http.Request) {
	var req drawRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := calc(h.table.PickName(req.Names))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
