package view

import (
	"fmt"
	"strings"

	"folio/internal/models"
)

func SummaryMarkdown(s models.PortfolioSummary) string {
	var b strings.Builder
	b.WriteString("# Portfolio Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total Portfolio Value | %s |\n", FormatCurrency(s.TotalValue))
	fmt.Fprintf(&b, "| Total Gain/Loss | %s (%s) |\n", FormatCurrency(s.TotalGainLoss), FormatPercent(float64(s.TotalGainLossPercent)))
	fmt.Fprintf(&b, "| Best Performer | %s |\n", performer(s.TopPerformer))
	fmt.Fprintf(&b, "| Worst Performer | %s |\n", performer(s.WorstPerformer))
	fmt.Fprintf(&b, "| Symbols | %d |\n", s.UniqueSymbols)
	return b.String()
}

func performer(h *models.Holding) string {
	if h == nil {
		return "-"
	}
	return h.Symbol + " " + FormatPercent(float64(h.UnrealizedGainLossPercent))
}

func HoldingsMarkdown(p TablePage) string {
	var b strings.Builder
	b.WriteString("## Holdings\n\n")
	if p.Total == 0 {
		b.WriteString("No holdings.\n")
		return b.String()
	}
	b.WriteString("| Symbol | Shares | Avg Cost | Price | Market Value | Gain/Loss | % |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|\n")
	for _, h := range p.Items {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			h.Symbol,
			FormatShares(h.SharesHeld),
			FormatCurrency(h.AvgCostBasis),
			FormatCurrency(h.CurrentPrice),
			FormatCurrency(h.MarketValue),
			FormatCurrency(h.UnrealizedGainLoss),
			FormatPercent(float64(h.UnrealizedGainLossPercent)))
	}
	if p.TotalPages > 1 {
		fmt.Fprintf(&b, "\nPage %d of %d (%d holdings)\n", p.Page, p.TotalPages, p.Total)
	}
	return b.String()
}

// ReportMarkdown renders the summary and the first page of holdings.
func ReportMarkdown(res *models.ParsedResult) string {
	return SummaryMarkdown(res.Summary) + "\n" + HoldingsMarkdown(QueryHoldings(res.Holdings, TableQuery{}))
}
