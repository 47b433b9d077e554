package sarima

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxcast/rxcast/timeseries"
)

func TestForecastRequiresFit(t *testing.T) {
	model := New(1, 0, 0, 0, 0, 0, 0)
	_, err := model.Forecast(5)
	var fe *ForecastError
	require.ErrorAs(t, err, &fe)
}

func TestForecastInvalidHorizon(t *testing.T) {
	series := simulateAR1(200, 0.5, 0, 31)
	model := New(1, 0, 0, 0, 0, 0, 0)
	require.NoError(t, model.Fit(series))

	var fe *ForecastError
	_, err := model.Forecast(0)
	require.ErrorAs(t, err, &fe)
	_, err = model.Forecast(-3)
	require.ErrorAs(t, err, &fe)
}

func TestForecastHorizonAndOrdering(t *testing.T) {
	series := simulateAR1(300, 0.7, 100, 32)
	model := New(1, 0, 0, 0, 0, 0, 0)
	require.NoError(t, model.Fit(series))

	fc, err := model.Forecast(8)
	require.NoError(t, err)

	require.Equal(t, 8, fc.Horizon())
	require.Len(t, fc.Timestamps, 8)
	for i := 0; i < 8; i++ {
		assert.Less(t, fc.Lower95[i], fc.Lower80[i], "step %d", i)
		assert.Less(t, fc.Lower80[i], fc.Mean[i], "step %d", i)
		assert.Less(t, fc.Mean[i], fc.Upper80[i], "step %d", i)
		assert.Less(t, fc.Upper80[i], fc.Upper95[i], "step %d", i)
	}
}

func TestForecastWidthNeverShrinks(t *testing.T) {
	series := simulateAR1(300, 0.8, 0, 33)
	model := New(1, 0, 0, 0, 0, 0, 0)
	require.NoError(t, model.Fit(series))

	fc, err := model.Forecast(24)
	require.NoError(t, err)

	for i := 1; i < 24; i++ {
		prev := fc.Upper95[i-1] - fc.Lower95[i-1]
		cur := fc.Upper95[i] - fc.Lower95[i]
		assert.GreaterOrEqual(t, cur, prev, "step %d", i)
	}
}

func TestForecastMeanRevertsToIntercept(t *testing.T) {
	series := simulateAR1(400, 0.6, 50, 34)
	model := New(1, 0, 0, 0, 0, 0, 0)
	require.NoError(t, model.Fit(series))

	fc, err := model.Forecast(60)
	require.NoError(t, err)

	assert.InDelta(t, model.Intercept, fc.Mean[59], 0.1,
		"long-horizon AR forecast converges to the estimated mean")
}

func TestForecastRandomWalkIsFlat(t *testing.T) {
	// ARIMA(0,1,0) without drift forecasts the last level at every horizon.
	n := 50
	values := make([]float64, n)
	for i := range values {
		values[i] = 10 + 2*float64(i)
	}
	series := timeseries.New(values)

	model := New(0, 1, 0, 0, 0, 0, 0)
	require.NoError(t, model.Fit(series))

	fc, err := model.Forecast(5)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		assert.InDelta(t, values[n-1], fc.Mean[i], 1e-9, "step %d", i)
	}
}

func TestForecastSeasonalShape(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping seasonal forecast in short mode")
	}

	series := simulateSeasonal(120, 35)
	model := New(0, 1, 1, 0, 1, 1, 12)
	require.NoError(t, model.Fit(series))

	fc, err := model.Forecast(12)
	require.NoError(t, err)
	require.Equal(t, 12, fc.Horizon())

	// Forecast continues the seasonal pattern: compare against the
	// deterministic part of the generator one year ahead.
	for i := 0; i < 12; i++ {
		k := 120 + i
		want := 3000 + 12*float64(k) + 400*math.Sin(2*math.Pi*float64(k)/12)
		assert.InDelta(t, want, fc.Mean[i], 250, "month %d", i)
	}
}

func TestForecastBlockedByMissingTail(t *testing.T) {
	series := simulateAR1(100, 0.5, 0, 36)
	blanked, err := series.WithMissingBlock(99, 1)
	require.NoError(t, err)

	model := New(0, 1, 0, 0, 0, 0, 0)
	require.NoError(t, model.Fit(blanked))

	_, err = model.Forecast(3)
	var fe *ForecastError
	require.ErrorAs(t, err, &fe, "integration needs the last observed level")
}
