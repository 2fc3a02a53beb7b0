package view

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"folio/internal/models"
)

// SortField names a sortable holdings column.
type SortField string

const (
	SortSymbol                    SortField = "symbol"
	SortSharesHeld                SortField = "sharesHeld"
	SortAvgCostBasis              SortField = "avgCostBasis"
	SortCurrentPrice              SortField = "currentPrice"
	SortMarketValue               SortField = "marketValue"
	SortUnrealizedGainLoss        SortField = "unrealizedGainLoss"
	SortUnrealizedGainLossPercent SortField = "unrealizedGainLossPercent"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

const DefaultPageSize = 10

// compareFunc returns <0, 0 or >0. NaN sorts below every number.
type compareFunc func(a, b models.Holding) int

func cmpFloat(a, b float64) int {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return -1
	case math.IsNaN(b):
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

var comparators = map[SortField]compareFunc{
	SortSymbol: func(a, b models.Holding) int {
		return strings.Compare(strings.ToLower(a.Symbol), strings.ToLower(b.Symbol))
	},
	SortSharesHeld:         func(a, b models.Holding) int { return cmpFloat(a.SharesHeld, b.SharesHeld) },
	SortAvgCostBasis:       func(a, b models.Holding) int { return cmpFloat(a.AvgCostBasis, b.AvgCostBasis) },
	SortCurrentPrice:       func(a, b models.Holding) int { return cmpFloat(a.CurrentPrice, b.CurrentPrice) },
	SortMarketValue:        func(a, b models.Holding) int { return cmpFloat(a.MarketValue, b.MarketValue) },
	SortUnrealizedGainLoss: func(a, b models.Holding) int { return cmpFloat(a.UnrealizedGainLoss, b.UnrealizedGainLoss) },
	SortUnrealizedGainLossPercent: func(a, b models.Holding) int {
		return cmpFloat(float64(a.UnrealizedGainLossPercent), float64(b.UnrealizedGainLossPercent))
	},
}

func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortMarketValue, nil
	}
	f := SortField(s)
	if _, ok := comparators[f]; !ok {
		return "", fmt.Errorf("unknown sort field %q", s)
	}
	return f, nil
}

func ParseSortDirection(s string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(s)) {
	case "", Desc:
		return Desc, nil
	case Asc:
		return Asc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// TableQuery describes one view of the holdings table. Zero values mean
// no filter, marketValue descending, first page of ten.
type TableQuery struct {
	Search    string
	Field     SortField
	Direction SortDirection
	Page      int
	PageSize  int
}

type TablePage struct {
	Items      []models.Holding `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Total      int              `json:"total"`
}

// QueryHoldings filters by symbol substring, sorts and paginates. The input
// slice is not modified.
func QueryHoldings(holdings []models.Holding, q TableQuery) TablePage {
	if q.Field == "" {
		q.Field = SortMarketValue
	}
	if q.Direction == "" {
		q.Direction = Desc
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}

	needle := strings.ToLower(q.Search)
	filtered := make([]models.Holding, 0, len(holdings))
	for _, h := range holdings {
		if strings.Contains(strings.ToLower(h.Symbol), needle) {
			filtered = append(filtered, h)
		}
	}

	cmp, ok := comparators[q.Field]
	if !ok {
		cmp = comparators[SortMarketValue]
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if q.Direction == Asc {
			return cmp(filtered[i], filtered[j]) < 0
		}
		return cmp(filtered[i], filtered[j]) > 0
	})

	totalPages := (len(filtered) + q.PageSize - 1) / q.PageSize
	page := q.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * q.PageSize
	end := start + q.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return TablePage{Items: filtered[start:end], Page: page, TotalPages: totalPages, Total: len(filtered)}
}
