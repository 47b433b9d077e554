package stats

import "github.com/rxcast/rxcast/timeseries"

// NDiffs determines the number of first differences required for
// stationarity using the KPSS test. Returns a value in [0, maxD].
// The order search consults this only when the caller has not fixed d.
func NDiffs(series *timeseries.Series, maxD int) int {
	if maxD <= 0 {
		maxD = 2
	}

	current := series
	for d := 0; d < maxD; d++ {
		result := KPSS(current, 0)
		if result != nil && result.IsStationary {
			return d
		}
		current = current.Diff()
		if current.Len() < 10 {
			return d
		}
	}

	return maxD
}

// NSDiffs determines the number of seasonal differences required, using the
// seasonal strength of a classical decomposition. One seasonal difference is
// suggested while the strength is at least 0.64.
func NSDiffs(series *timeseries.Series, period, maxD int) int {
	if maxD <= 0 {
		maxD = 1
	}
	if period <= 1 || series.Len() < 2*period {
		return 0
	}

	current := series
	for d := 0; d < maxD; d++ {
		if SeasonalStrength(current, period) < 0.64 {
			return d
		}
		current = current.SeasonalDiff(period)
		if current.Len() < 2*period {
			return d
		}
	}

	return maxD
}
