package timeseries

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Missing marks an unobserved position in a series. Missing values take part
// in the timeline but never in moments or likelihoods.
var Missing = math.NaN()

// Series represents a regularly spaced time series with timestamps and values.
// Unobserved positions hold NaN; they are skipped by the statistical helpers
// and marginalized by model fitting, never treated as zero.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values without meaningful timestamps.
func New(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range timestamps {
		timestamps[i] = base.AddDate(0, i, 0)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewMonthly creates a monthly series starting at the given month.
func NewMonthly(start time.Time, values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := range timestamps {
		timestamps[i] = first.AddDate(0, i, 0)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, &InvalidInputError{Op: "NewWithTimestamps", Reason: "timestamps and values must have the same length"}
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// FutureTimestamps returns h timestamps continuing the series cadence. A
// calendar-month cadence is detected and stepped by whole months; anything
// else is stepped by the last observed spacing.
func (s *Series) FutureTimestamps(h int) []time.Time {
	out := make([]time.Time, h)
	n := len(s.Timestamps)
	if n == 0 || h == 0 {
		return out
	}
	last := s.Timestamps[n-1]
	if n == 1 {
		for i := range out {
			out[i] = last.AddDate(0, i+1, 0)
		}
		return out
	}
	prev := s.Timestamps[n-2]
	if prev.AddDate(0, 1, 0).Equal(last) {
		for i := range out {
			out[i] = last.AddDate(0, i+1, 0)
		}
		return out
	}
	step := last.Sub(prev)
	for i := range out {
		out[i] = last.Add(time.Duration(i+1) * step)
	}
	return out
}

// Len returns the length of the series including missing positions.
func (s *Series) Len() int {
	return len(s.Values)
}

// IsMissing reports whether position i is unobserved.
func (s *Series) IsMissing(i int) bool {
	return i < 0 || i >= len(s.Values) || math.IsNaN(s.Values[i])
}

// ObservedCount returns the number of observed (non-missing) positions.
func (s *Series) ObservedCount() int {
	count := 0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			count++
		}
	}
	return count
}

// Observed returns the observed values in order, dropping missing positions.
// The timeline index of each value is lost; use this only for moments.
func (s *Series) Observed() []float64 {
	obs := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			obs = append(obs, v)
		}
	}
	return obs
}

// Mean calculates the arithmetic mean over observed values.
func (s *Series) Mean() float64 {
	obs := s.Observed()
	if len(obs) == 0 {
		return math.NaN()
	}
	return stat.Mean(obs, nil)
}

// Variance calculates the sample variance over observed values.
func (s *Series) Variance() float64 {
	obs := s.Observed()
	if len(obs) < 2 {
		return 0
	}
	return stat.Variance(obs, nil)
}

// Std calculates the standard deviation over observed values.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum observed value.
func (s *Series) Min() float64 {
	min := math.Inf(1)
	for _, v := range s.Values {
		if !math.IsNaN(v) && v < min {
			min = v
		}
	}
	if math.IsInf(min, 1) {
		return math.NaN()
	}
	return min
}

// Max returns the maximum observed value.
func (s *Series) Max() float64 {
	max := math.Inf(-1)
	for _, v := range s.Values {
		if !math.IsNaN(v) && v > max {
			max = v
		}
	}
	if math.IsInf(max, -1) {
		return math.NaN()
	}
	return max
}

// Diff calculates the first difference of the series (d=1).
// Differences that touch a missing observation are themselves missing.
func (s *Series) Diff() *Series {
	return s.lagDiff(1, "_diff")
}

// SeasonalDiff calculates the seasonal difference with period m.
func (s *Series) SeasonalDiff(m int) *Series {
	if m <= 0 {
		return &Series{Values: []float64{}}
	}
	return s.lagDiff(m, "_sdiff")
}

func (s *Series) lagDiff(lag int, suffix string) *Series {
	if len(s.Values) <= lag {
		return &Series{Values: []float64{}}
	}

	result := make([]float64, len(s.Values)-lag)
	for i := lag; i < len(s.Values); i++ {
		// NaN-x and x-NaN both propagate
		result[i-lag] = s.Values[i] - s.Values[i-lag]
	}

	timestamps := make([]time.Time, len(result))
	if len(s.Timestamps) > lag {
		copy(timestamps, s.Timestamps[lag:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + suffix,
	}
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	timestamps := make([]time.Time, len(values))
	if len(s.Timestamps) >= end {
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// WithMissingBlock returns a copy with positions [start, start+length) marked
// missing. The timeline is untouched; only the values are blanked.
func (s *Series) WithMissingBlock(start, length int) (*Series, error) {
	if start < 0 || length < 0 || start+length > len(s.Values) {
		return nil, &InvalidInputError{Op: "WithMissingBlock", Reason: "block must lie within the series"}
	}
	out := s.Copy()
	for i := start; i < start+length; i++ {
		out.Values[i] = Missing
	}
	return out, nil
}

// SplitAt splits the series before the given timestamp. Everything strictly
// earlier than the cutoff lands in the first segment.
func (s *Series) SplitAt(cutoff time.Time) (before, after *Series) {
	idx := len(s.Values)
	for i, ts := range s.Timestamps {
		if !ts.Before(cutoff) {
			idx = i
			break
		}
	}
	return s.Slice(0, idx), s.Slice(idx, s.Len())
}
