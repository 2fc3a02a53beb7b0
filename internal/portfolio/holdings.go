package portfolio

import "folio/internal/models"

// PriceOracle supplies the current price of a symbol.
type PriceOracle interface {
	Price(symbol string) float64
}

// PriceFunc adapts a plain function to PriceOracle.
type PriceFunc func(symbol string) float64

func (f PriceFunc) Price(symbol string) float64 { return f(symbol) }

type position struct {
	shares    float64
	totalCost float64
}

// positions accumulates trades per symbol and remembers first-seen order.
type positions struct {
	order []string
	bySym map[string]*position
}

func newPositions() *positions {
	return &positions{bySym: map[string]*position{}}
}

func (p *positions) apply(t models.Trade) {
	pos, ok := p.bySym[t.Symbol]
	if !ok {
		pos = &position{}
		p.bySym[t.Symbol] = pos
		p.order = append(p.order, t.Symbol)
	}
	pos.shares += t.Shares
	pos.totalCost += t.Shares * t.Price
}

// CalculateHoldings reduces trades into one holding per symbol with a
// positive net share count, in order of each symbol's first trade.
func CalculateHoldings(trades []models.Trade, oracle PriceOracle) []models.Holding {
	book := newPositions()
	for _, t := range trades {
		book.apply(t)
	}

	holdings := []models.Holding{}
	for _, sym := range book.order {
		pos := book.bySym[sym]
		if pos.shares <= 0 {
			continue
		}
		avgCost := pos.totalCost / pos.shares
		price := oracle.Price(sym)
		marketValue := pos.shares * price
		gainLoss := marketValue - pos.shares*avgCost
		holdings = append(holdings, models.Holding{
			Symbol:                    sym,
			SharesHeld:                pos.shares,
			AvgCostBasis:              avgCost,
			CurrentPrice:              price,
			MarketValue:               marketValue,
			UnrealizedGainLoss:        gainLoss,
			UnrealizedGainLossPercent: models.Percent(gainLoss / (pos.shares * avgCost) * 100),
		})
	}
	return holdings
}
