package portfolio

import (
	"sort"
	"strings"
	"time"

	"folio/internal/models"
)

var tradeDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
}

// ParseTradeDate parses the date formats accepted in trade files.
func ParseTradeDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range tradeDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type datedTrade struct {
	trade models.Trade
	at    time.Time
	ok    bool
}

// BuildHistory replays trades chronologically and emits the portfolio value
// after each one. Trades with unparseable dates are replayed last.
func BuildHistory(trades []models.Trade, oracle PriceOracle) []models.PortfolioHistoryPoint {
	sorted := make([]datedTrade, len(trades))
	for i, t := range trades {
		at, ok := ParseTradeDate(t.Date)
		sorted[i] = datedTrade{trade: t, at: at, ok: ok}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.ok && a.at.Before(b.at)
	})

	book := newPositions()
	history := make([]models.PortfolioHistoryPoint, 0, len(sorted))
	for _, dt := range sorted {
		book.apply(dt.trade)

		var total float64
		for _, sym := range book.order {
			if pos := book.bySym[sym]; pos.shares > 0 {
				total += pos.shares * oracle.Price(sym)
			}
		}
		history = append(history, models.PortfolioHistoryPoint{Date: dt.trade.Date, Value: total})
	}
	return history
}
