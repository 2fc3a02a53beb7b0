package view

import (
	"bytes"
	"fmt"

	"folio/internal/models"
	"folio/internal/portfolio"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const maxDateTicks = 8

// RenderHistoryChart renders the portfolio value series as a PNG line chart.
// Points are plotted in series order; duplicate dates stay separate.
func RenderHistoryChart(points []models.PortfolioHistoryPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	xValues := make([]float64, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = float64(i)
		yValues[i] = p.Value
	}

	series := chart.ContinuousSeries{
		Name: "Portfolio Value",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  "Portfolio Value",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{Ticks: dateTicks(points)},
		YAxis: chart.YAxis{
			Range: valueRange(yValues),
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0fK", f/1000)
				}
				return ""
			},
		},
		Series: []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

func dateTicks(points []models.PortfolioHistoryPoint) []chart.Tick {
	step := (len(points) + maxDateTicks - 1) / maxDateTicks
	if step < 1 {
		step = 1
	}
	var ticks []chart.Tick
	for i := 0; i < len(points); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: shortDate(points[i].Date)})
	}
	return ticks
}

func shortDate(raw string) string {
	if t, ok := portfolio.ParseTradeDate(raw); ok {
		return t.Format("Jan 2")
	}
	return raw
}

// valueRange widens a flat series; go-chart refuses a zero-height range.
func valueRange(ys []float64) chart.Range {
	lo, hi := ys[0], ys[0]
	for _, y := range ys[1:] {
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	if lo == hi {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// RenderAllocationChart renders each holding's share of market value as a PNG pie.
func RenderAllocationChart(holdings []models.Holding) ([]byte, error) {
	var total float64
	for _, h := range holdings {
		total += h.MarketValue
	}
	if len(holdings) == 0 || total <= 0 {
		return nil, fmt.Errorf("no market value to chart")
	}

	values := make([]chart.Value, 0, len(holdings))
	for _, h := range holdings {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", h.Symbol, h.MarketValue/total*100),
			Value: h.MarketValue,
		})
	}

	pie := chart.PieChart{
		Title:  "Allocation",
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
