package report

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"

	"doralyzer/internal/domain/scoring"
	"doralyzer/internal/i18n"
)

// RenderChart draws the per-category scores as a bar chart PNG. The value
// axis is fixed to [0,100] so charts of different submissions compare
// visually.
func RenderChart(scores []scoring.CategoryScore, loc i18n.Locale) ([]byte, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("no category scores to chart")
	}

	bars := make([]chart.Value, 0, len(scores))
	for _, cs := range scores {
		bars = append(bars, chart.Value{
			Value: cs.Score,
			Label: cs.Category.Name.In(loc),
		})
	}

	graph := chart.BarChart{
		Width:    1000,
		Height:   500,
		BarWidth: 80,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
