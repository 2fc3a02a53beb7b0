package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent_NonFiniteEncodesAsNull(t *testing.T) {
	h := Holding{Symbol: "FREE", SharesHeld: 1, CurrentPrice: 10, MarketValue: 10, UnrealizedGainLoss: 10, UnrealizedGainLossPercent: Percent(math.Inf(1))}
	b, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"unrealizedGainLossPercent":null`)

	var back Holding
	require.NoError(t, json.Unmarshal(b, &back))
	assert.False(t, back.UnrealizedGainLossPercent.IsFinite())
	assert.Equal(t, "N/A", back.UnrealizedGainLossPercent.SignedString())
}

func TestPercent_Strings(t *testing.T) {
	assert.Equal(t, "+12.50%", Percent(12.5).SignedString())
	assert.Equal(t, "-3.00%", Percent(-3).SignedString())
	assert.Equal(t, "N/A", Percent(math.NaN()).SignedString())
}

func TestParsedResult_RoundTrip(t *testing.T) {
	top := Holding{Symbol: "AAPL", SharesHeld: 15, AvgCostBasis: 100, CurrentPrice: 175.5, MarketValue: 2632.5, UnrealizedGainLoss: 1132.5, UnrealizedGainLossPercent: 75.5}
	in := ParsedResult{
		Trades:           []Trade{{Symbol: "AAPL", Shares: 15, Price: 100, Date: "2024-01-01"}},
		Holdings:         []Holding{top},
		Summary:          PortfolioSummary{TotalValue: 2632.5, TotalGainLoss: 1132.5, TotalGainLossPercent: 75.5, TopPerformer: &top, WorstPerformer: &top, UniqueSymbols: 1},
		PortfolioHistory: []PortfolioHistoryPoint{{Date: "2024-01-01", Value: 2632.5}},
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out ParsedResult
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}

func TestPortfolioSummary_EmptyPerformersAreNull(t *testing.T) {
	b, err := json.Marshal(PortfolioSummary{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalValue":0,"totalGainLoss":0,"totalGainLossPercent":0,"topPerformer":null,"worstPerformer":null,"uniqueSymbols":0}`, string(b))
}
