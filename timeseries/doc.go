// Package timeseries provides time series data structures and utilities.
//
// The Series type represents a regularly spaced (typically monthly) series.
// Unobserved positions are first-class: they hold timeseries.Missing (NaN),
// keep their place in the timeline, and are skipped by summary statistics.
//
// # Creating a Series
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
//	// With a monthly calendar
//	start := time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC)
//	series := timeseries.NewMonthly(start, values)
//
// # Missing observations
//
//	blanked, err := series.WithMissingBlock(60, 24) // blank two years
//	n := blanked.ObservedCount()                    // timeline length unchanged
//
// # Differencing
//
// Difference applies ordinary then seasonal differencing and validates the
// orders; Integrate is its inverse for values that continue the series:
//
//	diffed, err := timeseries.Difference(series, 1, 1, 12)
//	restored, err := timeseries.Integrate(forecasts, series, 1, 1, 12)
//
// # Loading from CSV
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumn = "count"
//	series, err := timeseries.LoadCSV("prescriptions.csv", opts)
//
// Empty, "NA", "NaN" and "null" fields load as missing observations rather
// than being dropped.
package timeseries
