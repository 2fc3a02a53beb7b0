package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Trade is one validated buy (positive shares) or sell (negative shares).
type Trade struct {
	Symbol string  `json:"symbol"`
	Shares float64 `json:"shares"`
	Price  float64 `json:"price"`
	Date   string  `json:"date"`
}

type Holding struct {
	Symbol                    string  `json:"symbol"`
	SharesHeld                float64 `json:"sharesHeld"`
	AvgCostBasis              float64 `json:"avgCostBasis"`
	CurrentPrice              float64 `json:"currentPrice"`
	MarketValue               float64 `json:"marketValue"`
	UnrealizedGainLoss        float64 `json:"unrealizedGainLoss"`
	UnrealizedGainLossPercent Percent `json:"unrealizedGainLossPercent"`
}

type PortfolioSummary struct {
	TotalValue           float64  `json:"totalValue"`
	TotalGainLoss        float64  `json:"totalGainLoss"`
	TotalGainLossPercent Percent  `json:"totalGainLossPercent"`
	TopPerformer         *Holding `json:"topPerformer"`
	WorstPerformer       *Holding `json:"worstPerformer"`
	UniqueSymbols        int      `json:"uniqueSymbols"`
}

type PortfolioHistoryPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ParsedResult is the bundle handed to presentation and persisted as the cached state.
type ParsedResult struct {
	Trades           []Trade                 `json:"trades"`
	Holdings         []Holding               `json:"holdings"`
	Summary          PortfolioSummary        `json:"summary"`
	PortfolioHistory []PortfolioHistoryPoint `json:"portfolioHistory"`
}

// Percent is a percentage that may legitimately be non-finite (zero cost basis).
// Non-finite values encode as JSON null and decode back to NaN.
type Percent float64

func (p Percent) IsFinite() bool {
	f := float64(p)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SignedString renders the percent with an explicit sign, e.g. "+12.50%".
func (p Percent) SignedString() string {
	if !p.IsFinite() {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", float64(p))
}

func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

func (p *Percent) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*p = Percent(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*p = Percent(f)
	return nil
}
