package portfolio

import "folio/internal/models"

// Analyze runs the whole pipeline over one upload. Callers wanting a single
// consistent price per symbol pass a memoizing oracle.
func Analyze(rows []RawRow, oracle PriceOracle) (*models.ParsedResult, error) {
	trades, err := Validate(rows)
	if err != nil {
		return nil, err
	}
	holdings := CalculateHoldings(trades, oracle)
	return &models.ParsedResult{
		Trades:           trades,
		Holdings:         holdings,
		Summary:          CalculateSummary(holdings),
		PortfolioHistory: BuildHistory(trades, oracle),
	}, nil
}
