// Package view holds presentation helpers shared by the HTTP handlers and the CLI.
package view

import (
	"math"

	"folio/internal/models"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const currency = "USD"

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// FormatCurrency renders an amount as US dollars, e.g. "-$1,234.56".
func FormatCurrency(amount float64) string {
	// cents must fit in int64
	if !finite(amount) || math.Abs(amount) > math.MaxInt64/100 {
		return "N/A"
	}
	cents := decimal.NewFromFloat(amount).Round(2).Shift(2).IntPart()
	if cents < 0 {
		return "-" + money.New(-cents, currency).Display()
	}
	return money.New(cents, currency).Display()
}

// FormatPercent renders a signed percentage, e.g. "+12.34%".
func FormatPercent(p float64) string {
	return models.Percent(p).SignedString()
}

func FormatShares(shares float64) string {
	if !finite(shares) {
		return "N/A"
	}
	return decimal.NewFromFloat(shares).StringFixed(2)
}
