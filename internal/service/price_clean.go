package service

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"folio/internal/portfolio"
)

// PricingMode selects how the current-price stub behaves within a run.
type PricingMode string

const (
	// PricingConsistent prices each symbol once per run.
	PricingConsistent PricingMode = "consistent"
	// PricingVolatile asks the stub on every lookup, so unknown symbols drift.
	PricingVolatile PricingMode = "volatile"
)

func ParsePricingMode(s string) (PricingMode, error) {
	switch PricingMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PricingConsistent:
		return PricingConsistent, nil
	case PricingVolatile:
		return PricingVolatile, nil
	}
	return "", fmt.Errorf("unknown pricing mode %q", s)
}

var mockPrices = map[string]float64{
	"AAPL":  175.50,
	"TSLA":  230.20,
	"GOOGL": 142.80,
	"MSFT":  378.90,
	"AMZN":  144.30,
	"NVDA":  495.20,
	"META":  501.80,
	"NFLX":  425.60,
	"TQQQ":  65.40,
	"SPY":   458.20,
}

// StubPriceOracle returns fixed prices for well-known symbols and a
// pseudo-random price in [50, 150) for everything else.
type StubPriceOracle struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewStubPriceOracle(rnd *rand.Rand) *StubPriceOracle {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &StubPriceOracle{rnd: rnd}
}

func (p *StubPriceOracle) Price(symbol string) float64 {
	if v, ok := mockPrices[symbol]; ok {
		return v
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return 50 + p.rnd.Float64()*100
}

// RunPriceCache memoizes an oracle per symbol for the lifetime of one run.
type RunPriceCache struct {
	next   portfolio.PriceOracle
	prices map[string]float64
}

func NewRunPriceCache(next portfolio.PriceOracle) *RunPriceCache {
	return &RunPriceCache{next: next, prices: map[string]float64{}}
}

func (c *RunPriceCache) Price(symbol string) float64 {
	if v, ok := c.prices[symbol]; ok {
		return v
	}
	v := c.next.Price(symbol)
	c.prices[symbol] = v
	return v
}

// oracleForRun returns the oracle a single pipeline run should use.
func oracleForRun(mode PricingMode, base portfolio.PriceOracle) portfolio.PriceOracle {
	if mode == PricingVolatile {
		return base
	}
	return NewRunPriceCache(base)
}
