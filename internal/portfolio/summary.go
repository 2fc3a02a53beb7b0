package portfolio

import "folio/internal/models"

// CalculateSummary derives portfolio-wide totals. Ties between performers
// keep the earliest holding.
func CalculateSummary(holdings []models.Holding) models.PortfolioSummary {
	var totalValue, totalGainLoss float64
	for _, h := range holdings {
		totalValue += h.MarketValue
		totalGainLoss += h.UnrealizedGainLoss
	}
	totalCost := totalValue - totalGainLoss

	var pct float64
	if totalCost > 0 {
		pct = totalGainLoss / totalCost * 100
	}

	summary := models.PortfolioSummary{
		TotalValue:           totalValue,
		TotalGainLoss:        totalGainLoss,
		TotalGainLossPercent: models.Percent(pct),
		UniqueSymbols:        len(holdings),
	}
	if len(holdings) == 0 {
		return summary
	}

	top, worst := 0, 0
	for i := 1; i < len(holdings); i++ {
		if holdings[i].UnrealizedGainLossPercent > holdings[top].UnrealizedGainLossPercent {
			top = i
		}
		if holdings[i].UnrealizedGainLossPercent < holdings[worst].UnrealizedGainLossPercent {
			worst = i
		}
	}
	topHolding, worstHolding := holdings[top], holdings[worst]
	summary.TopPerformer = &topHolding
	summary.WorstPerformer = &worstHolding
	return summary
}
