package view

import (
	"bytes"
	"math"
	"testing"

	"folio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.56", FormatCurrency(1234.56))
	assert.Equal(t, "$0.00", FormatCurrency(0))
	assert.Equal(t, "-$12.35", FormatCurrency(-12.345))
	assert.Equal(t, "$1,000,000.00", FormatCurrency(1e6))
	assert.Equal(t, "N/A", FormatCurrency(math.NaN()))
	assert.Equal(t, "N/A", FormatCurrency(1e17))
	assert.Equal(t, "N/A", FormatCurrency(-1e17))
	assert.Equal(t, "$90,000,000,000,000,000.00", FormatCurrency(9e16))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "+5.00%", FormatPercent(5))
	assert.Equal(t, "-0.50%", FormatPercent(-0.5))
	assert.Equal(t, "+0.00%", FormatPercent(0))
	assert.Equal(t, "N/A", FormatPercent(math.Inf(1)))
}

func TestFormatShares(t *testing.T) {
	assert.Equal(t, "15.00", FormatShares(15))
	assert.Equal(t, "0.33", FormatShares(1.0/3))
}

func sampleHoldings() []models.Holding {
	return []models.Holding{
		{Symbol: "AAPL", SharesHeld: 10, MarketValue: 1755, UnrealizedGainLossPercent: 75.5},
		{Symbol: "TSLA", SharesHeld: 2, MarketValue: 460.4, UnrealizedGainLossPercent: -8},
		{Symbol: "GIFT", SharesHeld: 1, MarketValue: 90, UnrealizedGainLossPercent: models.Percent(math.NaN())},
		{Symbol: "MSFT", SharesHeld: 5, MarketValue: 1894.5, UnrealizedGainLossPercent: 12},
	}
}

func symbols(hs []models.Holding) []string {
	out := []string{}
	for _, h := range hs {
		out = append(out, h.Symbol)
	}
	return out
}

func TestQueryHoldings_DefaultsToMarketValueDesc(t *testing.T) {
	in := sampleHoldings()
	page := QueryHoldings(in, TableQuery{})
	assert.Equal(t, []string{"MSFT", "AAPL", "TSLA", "GIFT"}, symbols(page.Items))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, "AAPL", in[0].Symbol, "input is left untouched")
}

func TestQueryHoldings_SearchAndSort(t *testing.T) {
	page := QueryHoldings(sampleHoldings(), TableQuery{Search: "s", Field: SortSymbol, Direction: Asc})
	assert.Equal(t, []string{"MSFT", "TSLA"}, symbols(page.Items))

	page = QueryHoldings(sampleHoldings(), TableQuery{Field: SortUnrealizedGainLossPercent, Direction: Asc})
	assert.Equal(t, []string{"GIFT", "TSLA", "MSFT", "AAPL"}, symbols(page.Items))
}

func TestQueryHoldings_Pagination(t *testing.T) {
	var hs []models.Holding
	for i := 0; i < 23; i++ {
		hs = append(hs, models.Holding{Symbol: string(rune('A' + i)), MarketValue: float64(i)})
	}
	page := QueryHoldings(hs, TableQuery{Field: SortSymbol, Direction: Asc, Page: 3})
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, []string{"U", "V", "W"}, symbols(page.Items))

	page = QueryHoldings(hs, TableQuery{Page: 99})
	assert.Equal(t, 3, page.Page)

	page = QueryHoldings(nil, TableQuery{Page: 2})
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Items)
}

func TestParseSortFieldAndDirection(t *testing.T) {
	f, err := ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, SortMarketValue, f)

	f, err = ParseSortField("avgCostBasis")
	require.NoError(t, err)
	assert.Equal(t, SortAvgCostBasis, f)

	_, err = ParseSortField("Symbol; DROP")
	assert.Error(t, err)

	d, err := ParseSortDirection("ASC")
	require.NoError(t, err)
	assert.Equal(t, Asc, d)
	_, err = ParseSortDirection("sideways")
	assert.Error(t, err)
}

var pngMagic = []byte("\x89PNG")

func TestRenderHistoryChart(t *testing.T) {
	_, err := RenderHistoryChart([]models.PortfolioHistoryPoint{{Date: "2024-01-01", Value: 1}})
	assert.Error(t, err)

	png, err := RenderHistoryChart([]models.PortfolioHistoryPoint{
		{Date: "2024-01-01", Value: 1000},
		{Date: "2024-01-01", Value: 1500},
		{Date: "2024-02-01", Value: 1200},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderHistoryChart_FlatSeries(t *testing.T) {
	png, err := RenderHistoryChart([]models.PortfolioHistoryPoint{
		{Date: "2024-01-01", Value: 500},
		{Date: "2024-01-02", Value: 500},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderAllocationChart(t *testing.T) {
	_, err := RenderAllocationChart(nil)
	assert.Error(t, err)

	png, err := RenderAllocationChart(sampleHoldings())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}
