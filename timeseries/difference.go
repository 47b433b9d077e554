package timeseries

// Difference applies ordinary differencing d times followed by seasonal
// differencing D times with period m. The result has length
// len(series) - d - D*m. Differences that involve a missing observation are
// missing themselves; the timeline is never compacted.
func Difference(s *Series, d, D, m int) (*Series, error) {
	if d < 0 || D < 0 {
		return nil, &InvalidInputError{Op: "Difference", Reason: "differencing orders must be non-negative"}
	}
	if D > 0 && m <= 0 {
		return nil, &InvalidInputError{Op: "Difference", Reason: "seasonal period must be positive"}
	}
	if s.Len() <= d+D*m {
		return nil, &InvalidInputError{Op: "Difference", Reason: "series shorter than total differencing span"}
	}

	out := s
	for i := 0; i < d; i++ {
		out = out.Diff()
	}
	for i := 0; i < D; i++ {
		out = out.SeasonalDiff(m)
	}
	return out, nil
}

// Integrate undoes (d, D, m) differencing for a block of values that continue
// a differenced series, returning them on the scale of the original series.
// The original must be the series that Difference was applied to; its tail
// supplies the integration constants. A missing tail value propagates into
// the integrated output.
func Integrate(values []float64, original *Series, d, D, m int) ([]float64, error) {
	if d < 0 || D < 0 {
		return nil, &InvalidInputError{Op: "Integrate", Reason: "differencing orders must be non-negative"}
	}
	if D > 0 && m <= 0 {
		return nil, &InvalidInputError{Op: "Integrate", Reason: "seasonal period must be positive"}
	}
	if original.Len() <= d+D*m {
		return nil, &InvalidInputError{Op: "Integrate", Reason: "original shorter than total differencing span"}
	}

	result := make([]float64, len(values))
	copy(result, values)

	// The intermediate series at each differencing level, in application
	// order: ordinary first, then seasonal.
	ordLevels := make([]*Series, d+1)
	ordLevels[0] = original
	for i := 1; i <= d; i++ {
		ordLevels[i] = ordLevels[i-1].Diff()
	}
	seaLevels := make([]*Series, D+1)
	seaLevels[0] = ordLevels[d]
	for j := 1; j <= D; j++ {
		seaLevels[j] = seaLevels[j-1].SeasonalDiff(m)
	}

	// Undo seasonal differencing, innermost level first.
	// z_t = y_t - y_{t-m}  =>  y_t = z_t + y_{t-m}
	for j := D; j >= 1; j-- {
		base := seaLevels[j-1].Values
		n := len(base)
		for t := range result {
			if t < m {
				result[t] += base[n-m+t]
			} else {
				result[t] += result[t-m]
			}
		}
	}

	// Undo ordinary differencing by cumulative summation from the last value
	// of the next-lower level.
	for i := d; i >= 1; i-- {
		base := ordLevels[i-1].Values
		last := base[len(base)-1]
		for t := range result {
			if t == 0 {
				result[t] += last
			} else {
				result[t] += result[t-1]
			}
		}
	}

	return result, nil
}
