package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/finsight/internal/models"
)

func seriesDates(series *models.PriceSeries) []time.Time {
	dates := make([]time.Time, len(series.Points))
	for i, p := range series.Points {
		dates[i] = p.Date
	}
	return dates
}

func TestRenderPriceChart(t *testing.T) {
	series := makeSeries("AAPL", ascendingCloses(60, 150))

	png, err := RenderPriceChart(series, 20)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG signature
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestRenderPriceChartTooFewPoints(t *testing.T) {
	series := makeSeries("AAPL", []float64{100})
	_, err := RenderPriceChart(series, 0)
	assert.Error(t, err)
}

func TestRollingMean(t *testing.T) {
	series := makeSeries("AAPL", []float64{1, 2, 3, 4, 5})

	xs, ys := rollingMean(seriesDates(series), series.Closes(), 3)
	require.Len(t, ys, 3)
	assert.InDelta(t, 2.0, ys[0], 1e-9)
	assert.InDelta(t, 4.0, ys[2], 1e-9)
	assert.Len(t, xs, 3)
}
