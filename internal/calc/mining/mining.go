package mining

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidInputs is returned when profitability cannot be computed
var ErrInvalidInputs = errors.New("invalid mining inputs")

// HashUnit is a hash rate unit
type HashUnit string

const (
	Hs  HashUnit = "H/s"
	KHs HashUnit = "KH/s"
	MHs HashUnit = "MH/s"
	GHs HashUnit = "GH/s"
	THs HashUnit = "TH/s"
	PHs HashUnit = "PH/s"
	EHs HashUnit = "EH/s"
)

var hashFactors = map[HashUnit]float64{
	Hs:  1,
	KHs: 1e3,
	MHs: 1e6,
	GHs: 1e9,
	THs: 1e12,
	PHs: 1e15,
	EHs: 1e18,
}

const (
	secondsPerDay = 86400
	daysPerMonth  = 30
	daysPerYear   = 365
)

// ParseHashUnit accepts unit names case-insensitively, with or without "/s"
func ParseHashUnit(s string) (HashUnit, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.TrimSuffix(norm, "/S")
	for u := range hashFactors {
		if strings.TrimSuffix(strings.ToUpper(string(u)), "/S") == norm {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: unknown hash unit %q", ErrInvalidInputs, s)
}

// ToHashes converts a rate to hashes per second
func ToHashes(rate float64, u HashUnit) (float64, error) {
	f, ok := hashFactors[u]
	if !ok {
		return 0, fmt.Errorf("%w: unknown hash unit %q", ErrInvalidInputs, u)
	}
	return rate * f, nil
}

// Inputs holds the mining calculator form
type Inputs struct {
	Hashrate            float64  `json:"hashrate"`
	HashrateUnit        HashUnit `json:"hashrateUnit"`
	NetworkHashrate     float64  `json:"networkHashrate"`
	NetworkHashrateUnit HashUnit `json:"networkHashrateUnit"`
	BlockReward         float64  `json:"blockReward"` // coins per block
	BlockTime           float64  `json:"blockTime"`   // seconds
	CoinPrice           float64  `json:"coinPrice"`   // 0: block reward is already in fiat
	ElectricityCost     float64  `json:"electricityCost"`
	PowerConsumption    float64  `json:"powerConsumption"` // watts
	HardwareCost        float64  `json:"hardwareCost"`     // 0: no break-even
}

// Period is revenue, cost and profit over one horizon
type Period struct {
	Coins   float64 `json:"coins"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// Result is the profitability projection
type Result struct {
	MiningShare   float64  `json:"miningShare"`
	BlocksPerDay  float64  `json:"blocksPerDay"`
	Daily         Period   `json:"daily"`
	Monthly       Period   `json:"monthly"`
	Yearly        Period   `json:"yearly"`
	BreakEvenDays *float64 `json:"breakEvenDays,omitempty"`
	Profitable    bool     `json:"profitable"`
}

// Calculate projects mining profitability.
// Break-even is only reported when the caller supplies a hardware cost and the
// rig makes a daily profit.
func Calculate(in Inputs) (*Result, error) {
	miner, err := ToHashes(in.Hashrate, in.HashrateUnit)
	if err != nil {
		return nil, err
	}
	network, err := ToHashes(in.NetworkHashrate, in.NetworkHashrateUnit)
	if err != nil {
		return nil, err
	}
	if !finite(miner, network, in.BlockReward, in.BlockTime, in.CoinPrice, in.ElectricityCost, in.PowerConsumption, in.HardwareCost) {
		return nil, fmt.Errorf("%w: inputs must be finite numbers", ErrInvalidInputs)
	}
	switch {
	case miner < 0:
		return nil, fmt.Errorf("%w: hashrate must not be negative", ErrInvalidInputs)
	case network <= 0:
		return nil, fmt.Errorf("%w: network hashrate must be positive", ErrInvalidInputs)
	case in.BlockTime <= 0:
		return nil, fmt.Errorf("%w: block time must be positive", ErrInvalidInputs)
	case in.BlockReward < 0 || in.CoinPrice < 0 || in.ElectricityCost < 0 || in.PowerConsumption < 0 || in.HardwareCost < 0:
		return nil, fmt.Errorf("%w: rewards, prices and costs must not be negative", ErrInvalidInputs)
	}

	share := miner / network
	blocksPerDay := secondsPerDay / in.BlockTime
	coins := share * blocksPerDay * in.BlockReward

	price := in.CoinPrice
	if price == 0 {
		price = 1
	}
	daily := Period{
		Coins:   coins,
		Revenue: coins * price,
		Cost:    in.PowerConsumption / 1000 * 24 * in.ElectricityCost,
	}
	daily.Profit = daily.Revenue - daily.Cost

	res := &Result{
		MiningShare:  share,
		BlocksPerDay: blocksPerDay,
		Daily:        daily,
		Monthly:      daily.scale(daysPerMonth),
		Yearly:       daily.scale(daysPerYear),
		Profitable:   daily.Profit > 0,
	}
	if in.HardwareCost > 0 && daily.Profit > 0 {
		days := in.HardwareCost / daily.Profit
		res.BreakEvenDays = &days
	}
	if !res.finite() {
		return nil, fmt.Errorf("%w: result is out of range", ErrInvalidInputs)
	}
	return res, nil
}

func (r *Result) finite() bool {
	vals := []float64{r.MiningShare, r.BlocksPerDay}
	for _, p := range []Period{r.Daily, r.Monthly, r.Yearly} {
		vals = append(vals, p.Coins, p.Revenue, p.Cost, p.Profit)
	}
	if r.BreakEvenDays != nil {
		vals = append(vals, *r.BreakEvenDays)
	}
	return finite(vals...)
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Period) scale(days float64) Period {
	return Period{
		Coins:   p.Coins * days,
		Revenue: p.Revenue * days,
		Cost:    p.Cost * days,
		Profit:  p.Profit * days,
	}
}
