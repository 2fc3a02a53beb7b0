package service

import (
	"math/rand"
	"testing"

	"folio/internal/portfolio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubPriceOracle_KnownSymbols(t *testing.T) {
	p := NewStubPriceOracle(rand.New(rand.NewSource(1)))
	assert.Equal(t, 175.50, p.Price("AAPL"))
	assert.Equal(t, 458.20, p.Price("SPY"))
}

func TestStubPriceOracle_UnknownSymbolsInRange(t *testing.T) {
	p := NewStubPriceOracle(rand.New(rand.NewSource(7)))
	for i := 0; i < 500; i++ {
		v := p.Price("ZZZ")
		assert.GreaterOrEqual(t, v, 50.0)
		assert.Less(t, v, 150.0)
	}
}

func TestRunPriceCache_Memoizes(t *testing.T) {
	calls := 0
	next := portfolio.PriceFunc(func(string) float64 {
		calls++
		return float64(calls)
	})
	c := NewRunPriceCache(next)
	assert.Equal(t, 1.0, c.Price("X"))
	assert.Equal(t, 1.0, c.Price("X"))
	assert.Equal(t, 2.0, c.Price("Y"))
	assert.Equal(t, 2, calls)
}

func TestOracleForRun_ConsistentAgreesAcrossHoldingsAndHistory(t *testing.T) {
	base := NewStubPriceOracle(rand.New(rand.NewSource(3)))
	rows := []portfolio.RawRow{
		{"symbol": "ZZZ", "shares": "2", "price": "10", "date": "2024-01-01"},
		{"symbol": "AAPL", "shares": "1", "price": "100", "date": "2024-01-02"},
	}
	res, err := portfolio.Analyze(rows, oracleForRun(PricingConsistent, base))
	require.NoError(t, err)
	require.Len(t, res.Holdings, 2)

	zzz := res.Holdings[0].CurrentPrice
	assert.Equal(t, 2*zzz, res.PortfolioHistory[0].Value)
	assert.Equal(t, res.Summary.TotalValue, res.PortfolioHistory[1].Value)
}

func countingPrices(calls map[string]int) portfolio.PriceFunc {
	return func(symbol string) float64 {
		calls[symbol]++
		return 100
	}
}

var driftRows = []portfolio.RawRow{
	{"symbol": "AAPL", "shares": "1", "price": "90", "date": "2024-01-01"},
	{"symbol": "MSFT", "shares": "2", "price": "80", "date": "2024-01-02"},
	{"symbol": "AAPL", "shares": "1", "price": "95", "date": "2024-01-03"},
}

func TestOracleForRun_VolatileSkipsRunCache(t *testing.T) {
	calls := map[string]int{}
	_, err := portfolio.Analyze(driftRows, oracleForRun(PricingVolatile, countingPrices(calls)))
	require.NoError(t, err)

	// one lookup per holding plus one per live symbol at each history point:
	// AAPL is live at 3 points, MSFT at 2.
	assert.Equal(t, map[string]int{"AAPL": 1 + 3, "MSFT": 1 + 2}, calls)
}

func TestOracleForRun_ConsistentPricesOncePerSymbol(t *testing.T) {
	calls := map[string]int{}
	_, err := portfolio.Analyze(driftRows, oracleForRun(PricingConsistent, countingPrices(calls)))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"AAPL": 1, "MSFT": 1}, calls)
}

func TestParsePricingMode(t *testing.T) {
	m, err := ParsePricingMode("")
	require.NoError(t, err)
	assert.Equal(t, PricingConsistent, m)

	m, err = ParsePricingMode("Volatile")
	require.NoError(t, err)
	assert.Equal(t, PricingVolatile, m)

	_, err = ParsePricingMode("live")
	assert.Error(t, err)
}
