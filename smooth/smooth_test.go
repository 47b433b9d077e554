package smooth

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxcast/rxcast/timeseries"
)

func seasonalSeries(n int, noise float64, seed int64) *timeseries.Series {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = 200 + 1.5*float64(i) +
			25*math.Sin(2*math.Pi*float64(i)/12) +
			noise*rng.NormFloat64()
	}
	return timeseries.New(values)
}

func TestSeasonalNaiveValidation(t *testing.T) {
	var invalid *timeseries.InvalidInputError

	sn := NewSeasonalNaive(0)
	require.ErrorAs(t, sn.Fit(seasonalSeries(48, 1, 1)), &invalid)

	sn = NewSeasonalNaive(12)
	require.ErrorAs(t, sn.Fit(timeseries.New(make([]float64, 12))), &invalid)

	_, err := NewSeasonalNaive(12).Forecast(4)
	require.ErrorAs(t, err, &invalid, "forecast before fit")
}

func TestSeasonalNaiveRepeatsLastSeason(t *testing.T) {
	s := seasonalSeries(48, 0, 2)

	sn := NewSeasonalNaive(12)
	require.NoError(t, sn.Fit(s))

	fc, err := sn.Forecast(12)
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		assert.Equal(t, s.Values[36+i], fc.Mean[i], "month %d", i)
	}
}

func TestSeasonalNaiveWrapsSeasons(t *testing.T) {
	s := seasonalSeries(48, 1, 3)
	sn := NewSeasonalNaive(12)
	require.NoError(t, sn.Fit(s))

	fc, err := sn.Forecast(24)
	require.NoError(t, err)

	// Year two repeats year one of the forecast, with wider intervals.
	assert.Equal(t, fc.Mean[0], fc.Mean[12])
	width1 := fc.Upper95[0] - fc.Lower95[0]
	width2 := fc.Upper95[12] - fc.Lower95[12]
	assert.Greater(t, width2, width1)
}

func TestSeasonalNaiveSkipsMissing(t *testing.T) {
	s := seasonalSeries(48, 1, 4)
	blanked, err := s.WithMissingBlock(40, 2)
	require.NoError(t, err)

	sn := NewSeasonalNaive(12)
	require.NoError(t, sn.Fit(blanked))

	fc, err := sn.Forecast(12)
	require.NoError(t, err)

	// Blanked months fall back to the previous year's value.
	assert.Equal(t, s.Values[28], fc.Mean[4])
	assert.Equal(t, s.Values[29], fc.Mean[5])
	assert.Equal(t, s.Values[42], fc.Mean[6])
}

func TestHoltWintersValidation(t *testing.T) {
	var invalid *timeseries.InvalidInputError

	hw := NewHoltWinters(12)
	require.ErrorAs(t, hw.Fit(timeseries.New(make([]float64, 20))), &invalid)

	withGap, err := seasonalSeries(48, 1, 5).WithMissingBlock(10, 2)
	require.NoError(t, err)
	require.ErrorAs(t, NewHoltWinters(12).Fit(withGap), &invalid)

	_, err = NewHoltWinters(12).Forecast(4)
	require.ErrorAs(t, err, &invalid)
}

func TestHoltWintersTracksSeasonalSignal(t *testing.T) {
	s := seasonalSeries(96, 2, 6)

	hw := NewHoltWinters(12)
	require.NoError(t, hw.Fit(s))

	assert.Greater(t, hw.Alpha, 0.0)
	assert.LessOrEqual(t, hw.Alpha, 1.0)
	assert.Equal(t, 1.0, hw.Phi, "undamped trend keeps phi at 1")

	fc, err := hw.Forecast(12)
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		k := 96 + i
		want := 200 + 1.5*float64(k) + 25*math.Sin(2*math.Pi*float64(k)/12)
		assert.InDelta(t, want, fc.Mean[i], 20, "month %d", i)
	}
}

func TestHoltWintersDamped(t *testing.T) {
	s := seasonalSeries(96, 2, 7)

	hw := NewHoltWinters(12)
	hw.Damped = true
	require.NoError(t, hw.Fit(s))

	assert.Less(t, hw.Phi, 1.0)

	fc, err := hw.Forecast(24)
	require.NoError(t, err)
	require.Equal(t, 24, fc.Horizon())
	for i := 1; i < 24; i++ {
		w0 := fc.Upper95[i-1] - fc.Lower95[i-1]
		w1 := fc.Upper95[i] - fc.Lower95[i]
		assert.Greater(t, w1, w0)
	}
}
