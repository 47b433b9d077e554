package timeseries

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seasonalSeries(n, m int) *Series {
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = 50 + 0.3*float64(i) + 10*math.Sin(2*math.Pi*float64(i)/float64(m))
	}
	return New(values)
}

func TestDifferenceValidation(t *testing.T) {
	s := New([]float64{1, 2, 3})

	var invalid *InvalidInputError

	_, err := Difference(s, -1, 0, 12)
	require.ErrorAs(t, err, &invalid)

	_, err = Difference(s, 0, 1, 0)
	require.ErrorAs(t, err, &invalid)

	_, err = Difference(s, 2, 0, 12)
	require.ErrorAs(t, err, &invalid, "series shorter than the differencing span")
}

func TestDifferenceLength(t *testing.T) {
	s := seasonalSeries(60, 12)

	d, err := Difference(s, 1, 1, 12)
	require.NoError(t, err)
	assert.Equal(t, 60-1-12, d.Len())
}

func TestIntegrateRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		d, D, m int
	}{
		{"d1", 1, 0, 0},
		{"d2", 2, 0, 0},
		{"D1", 0, 1, 12},
		{"d1D1", 1, 1, 12},
	}

	s := seasonalSeries(72, 12)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diffed, err := Difference(s, tc.d, tc.D, tc.m)
			require.NoError(t, err)

			// Differencing the series extended by one point and integrating
			// the final differenced value must reproduce that point.
			ext := seasonalSeries(73, 12)
			extDiffed, err := Difference(ext, tc.d, tc.D, tc.m)
			require.NoError(t, err)
			last := extDiffed.Values[extDiffed.Len()-1]

			restored, err := Integrate([]float64{last}, s, tc.d, tc.D, tc.m)
			require.NoError(t, err)
			require.Len(t, restored, 1)
			assert.InDelta(t, ext.Values[72], restored[0], 1e-9)

			_ = diffed
		})
	}
}

func TestIntegrateMultiStep(t *testing.T) {
	s := seasonalSeries(84, 12)
	train := s.Slice(0, 72)

	diffed, err := Difference(s, 1, 1, 12)
	require.NoError(t, err)

	// The last 12 differenced values correspond to observations 72..83.
	future := diffed.Values[diffed.Len()-12:]
	restored, err := Integrate(future, train, 1, 1, 12)
	require.NoError(t, err)

	require.Len(t, restored, 12)
	for i := 0; i < 12; i++ {
		assert.InDelta(t, s.Values[72+i], restored[i], 1e-9)
	}
}

func TestDifferenceMissingPropagation(t *testing.T) {
	s := seasonalSeries(60, 12)
	blanked, err := s.WithMissingBlock(20, 5)
	require.NoError(t, err)

	d, err := Difference(blanked, 1, 0, 12)
	require.NoError(t, err)

	// A run of k missing values produces k+1 missing differences.
	missing := 0
	for i := 0; i < d.Len(); i++ {
		if math.IsNaN(d.Values[i]) {
			missing++
		}
	}
	assert.Equal(t, 6, missing)
}
