package portfolio

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"folio/internal/models"

	"github.com/shopspring/decimal"
)

// RawRow is one parsed input record keyed by column name.
// Values are strings (CSV) or numbers (JSON); absent keys are allowed.
type RawRow map[string]any

var requiredFields = []string{"symbol", "shares", "price", "date"}

// ValidationError carries one diagnostic per rejected row.
type ValidationError struct {
	Diagnostics []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Diagnostics, "\n")
}

// Validate turns raw rows into trades. Every row is checked; if any row is
// rejected no trades are returned.
func Validate(rows []RawRow) ([]models.Trade, error) {
	trades := make([]models.Trade, 0, len(rows))
	var diags []string
	for i, row := range rows {
		if missingRequired(row) {
			diags = append(diags, fmt.Sprintf("Row %d: Missing required fields (symbol, shares, price, date)", i+1))
			continue
		}
		shares, okShares := ParseNumber(row["shares"])
		price, okPrice := ParseNumber(row["price"])
		if !okShares || !okPrice {
			diags = append(diags, fmt.Sprintf("Row %d: Invalid number format for shares or price", i+1))
			continue
		}
		trades = append(trades, models.Trade{
			Symbol: strings.ToUpper(strings.TrimSpace(fieldString(row["symbol"]))),
			Shares: shares,
			Price:  price,
			Date:   fieldString(row["date"]),
		})
	}
	if len(diags) > 0 {
		return nil, &ValidationError{Diagnostics: diags}
	}
	return trades, nil
}

func missingRequired(row RawRow) bool {
	for _, f := range requiredFields {
		v, ok := row[f]
		if !ok || v == nil {
			return true
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			return true
		}
	}
	return false
}

// ParseNumber converts a raw field into a finite float64. It never panics and
// rejects anything that is not entirely a decimal literal.
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return 0, false
		}
		f = d.InexactFloat64()
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		f = d.InexactFloat64()
	default:
		return 0, false
	}
	// literals beyond float64 range come back from decimal as +-Inf
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func fieldString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
