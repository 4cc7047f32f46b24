package analyzer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/finsight/internal/models"
)

// RenderPriceChart renders a PNG line chart of a symbol's close prices
// with an optional moving average overlay (window 0 disables it).
// Returns raw PNG bytes.
func RenderPriceChart(series *models.PriceSeries, maWindow int) ([]byte, error) {
	if len(series.Points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(series.Points))
	}

	xValues := make([]time.Time, len(series.Points))
	closeY := make([]float64, len(series.Points))
	for i, p := range series.Points {
		xValues[i] = p.Date
		closeY[i] = p.Close
	}

	priceSeries := chart.TimeSeries{
		Name: series.Symbol,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: closeY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s Close", series.Symbol),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
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
		Series: []chart.Series{priceSeries},
	}

	if maWindow > 0 && maWindow < len(closeY) {
		maX, maY := rollingMean(xValues, closeY, maWindow)
		graph.Series = append(graph.Series, chart.TimeSeries{
			Name: fmt.Sprintf("MA%d", maWindow),
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: maX,
			YValues: maY,
		})
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// rollingMean computes the trailing mean over window points, aligned to
// the last date of each window.
func rollingMean(x []time.Time, y []float64, window int) ([]time.Time, []float64) {
	outX := make([]time.Time, 0, len(y)-window+1)
	outY := make([]float64, 0, len(y)-window+1)
	sum := 0.0
	for i, v := range y {
		sum += v
		if i >= window {
			sum -= y[i-window]
		}
		if i >= window-1 {
			outX = append(outX, x[i])
			outY = append(outY, sum/float64(window))
		}
	}
	return outX, outY
}
