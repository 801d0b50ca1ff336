package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/danielTongu/stockdash/internal/models"
)

// Trend colors: green when the windowed series closed at or above its first
// point, red otherwise.
const (
	trendUpColor   = "16a34a" // green-600
	trendDownColor = "dc2626" // red-600
)

// RenderChart builds a snapshot and renders its windowed series as a PNG
// line chart colored by trend direction. Returns raw PNG bytes.
func (s *Service) RenderChart(ctx context.Context, query string, timeframe models.Timeframe) ([]byte, error) {
	snap, err := s.GetSnapshot(ctx, query, timeframe)
	if err != nil {
		return nil, err
	}
	return renderSeriesChart(snap)
}

func renderSeriesChart(snap *models.StockSnapshot) ([]byte, error) {
	if len(snap.Series) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(snap.Series))
	}

	xValues := make([]time.Time, len(snap.Series))
	yValues := make([]float64, len(snap.Series))
	for i, p := range snap.Series {
		xValues[i] = p.Date
		yValues[i] = p.Close
	}

	color := trendUpColor
	if snap.PercentChange < 0 {
		color = trendDownColor
	}

	priceSeries := chart.TimeSeries{
		Name: snap.Symbol,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex(color),
			StrokeWidth: 2.0,
		},
		XValues: xValues,
		YValues: yValues,
	}

	dateFormat := axisDateFormat(snap.ChartTimeUnit)

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s %s", snap.Symbol, snap.Timeframe),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format(dateFormat)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			priceSeries,
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// axisDateFormat picks a tick label format per the policy's time unit.
func axisDateFormat(unit string) string {
	switch unit {
	case "hour":
		return "15:04"
	case "day":
		return "02 Jan"
	case "month":
		return "Jan 06"
	case "year":
		return "2006"
	default:
		return "02 Jan 06"
	}
}
