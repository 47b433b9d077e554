package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonthly(t *testing.T) {
	start := time.Date(2005, 3, 15, 0, 0, 0, 0, time.UTC)
	s := NewMonthly(start, []float64{1, 2, 3})

	require.Equal(t, 3, s.Len())
	assert.Equal(t, time.Date(2005, 3, 1, 0, 0, 0, 0, time.UTC), s.Timestamps[0])
	assert.Equal(t, time.Date(2005, 5, 1, 0, 0, 0, 0, time.UTC), s.Timestamps[2])
}

func TestNewWithTimestampsLengthMismatch(t *testing.T) {
	_, err := NewWithTimestamps([]time.Time{time.Now()}, []float64{1, 2})
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestMomentsSkipMissing(t *testing.T) {
	s := New([]float64{2, Missing, 4, Missing, 6})

	assert.Equal(t, 3, s.ObservedCount())
	assert.InDelta(t, 4.0, s.Mean(), 1e-12)
	assert.InDelta(t, 4.0, s.Variance(), 1e-12)
	assert.Equal(t, 2.0, s.Min())
	assert.Equal(t, 6.0, s.Max())
}

func TestDiffPropagatesMissing(t *testing.T) {
	s := New([]float64{1, 2, Missing, 7, 11})
	d := s.Diff()

	require.Equal(t, 4, d.Len())
	assert.InDelta(t, 1.0, d.Values[0], 1e-12)
	assert.True(t, math.IsNaN(d.Values[1]), "difference touching a gap must be missing")
	assert.True(t, math.IsNaN(d.Values[2]))
	assert.InDelta(t, 4.0, d.Values[3], 1e-12)
}

func TestSeasonalDiff(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = float64(i)
	}
	s := New(values)
	d := s.SeasonalDiff(12)

	require.Equal(t, 12, d.Len())
	for i := 0; i < 12; i++ {
		assert.InDelta(t, 12.0, d.Values[i], 1e-12)
	}
}

func TestWithMissingBlock(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = float64(i)
	}
	s := New(values)

	blanked, err := s.WithMissingBlock(10, 24)
	require.NoError(t, err)

	assert.Equal(t, 50, blanked.Len(), "timeline length must not change")
	assert.Equal(t, 26, blanked.ObservedCount())
	assert.False(t, blanked.IsMissing(9))
	assert.True(t, blanked.IsMissing(10))
	assert.True(t, blanked.IsMissing(33))
	assert.False(t, blanked.IsMissing(34))

	// The original series is untouched.
	assert.Equal(t, 50, s.ObservedCount())
}

func TestWithMissingBlockOutOfRange(t *testing.T) {
	s := New([]float64{1, 2, 3})
	_, err := s.WithMissingBlock(2, 5)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestSplitAt(t *testing.T) {
	start := time.Date(2004, 1, 1, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 24)
	for i := range values {
		values[i] = float64(i)
	}
	s := NewMonthly(start, values)

	before, after := s.SplitAt(time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, 12, before.Len())
	require.Equal(t, 12, after.Len())
	assert.Equal(t, 11.0, before.Values[11])
	assert.Equal(t, 12.0, after.Values[0])
}

func TestFutureTimestampsMonthly(t *testing.T) {
	s := NewMonthly(time.Date(2011, 11, 1, 0, 0, 0, 0, time.UTC), []float64{1, 2, 3})
	future := s.FutureTimestamps(3)

	require.Len(t, future, 3)
	assert.Equal(t, time.Date(2012, 2, 1, 0, 0, 0, 0, time.UTC), future[0])
	assert.Equal(t, time.Date(2012, 4, 1, 0, 0, 0, 0, time.UTC), future[2])
}
