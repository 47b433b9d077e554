// Package smooth provides baseline forecasters: the seasonal naive method
// and additive Holt-Winters exponential smoothing. Both serve as reference
// points for judging SARIMA forecasts.
package smooth

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rxcast/rxcast/forecast"
	"github.com/rxcast/rxcast/timeseries"
)

// SeasonalNaive forecasts each future point as the last observation from the
// same season. Intervals grow stepwise each time the forecast wraps a full
// season.
type SeasonalNaive struct {
	Period int

	fitted bool
	data   *timeseries.Series
	sigma2 float64
}

// NewSeasonalNaive creates a seasonal naive forecaster with the given period.
func NewSeasonalNaive(period int) *SeasonalNaive {
	return &SeasonalNaive{Period: period}
}

// Fit records the series and estimates the in-sample error variance from
// lag-m differences.
func (sn *SeasonalNaive) Fit(series *timeseries.Series) error {
	if sn.Period <= 0 {
		return &timeseries.InvalidInputError{Op: "SeasonalNaive.Fit", Reason: "period must be positive"}
	}
	if series == nil || series.Len() < sn.Period+1 {
		return &timeseries.InvalidInputError{Op: "SeasonalNaive.Fit", Reason: "series shorter than one season plus one"}
	}

	ssq := 0.0
	n := 0
	for t := sn.Period; t < series.Len(); t++ {
		if series.IsMissing(t) || series.IsMissing(t-sn.Period) {
			continue
		}
		d := series.Values[t] - series.Values[t-sn.Period]
		ssq += d * d
		n++
	}
	if n == 0 {
		return &timeseries.InvalidInputError{Op: "SeasonalNaive.Fit", Reason: "no complete seasonal pairs"}
	}

	sn.data = series
	sn.sigma2 = ssq / float64(n)
	sn.fitted = true
	return nil
}

// Forecast produces h seasonal naive forecasts with Gaussian intervals.
func (sn *SeasonalNaive) Forecast(h int) (*forecast.Forecast, error) {
	if !sn.fitted {
		return nil, &timeseries.InvalidInputError{Op: "SeasonalNaive.Forecast", Reason: "model is not fitted"}
	}
	if h <= 0 {
		return nil, &timeseries.InvalidInputError{Op: "SeasonalNaive.Forecast", Reason: "horizon must be positive"}
	}

	n := sn.data.Len()
	mean := make([]float64, h)
	se := make([]float64, h)
	for i := 0; i < h; i++ {
		// Last observed value from the same season, scanning back whole
		// seasons past any missing positions.
		idx := n - sn.Period + (i % sn.Period)
		for idx >= 0 && sn.data.IsMissing(idx) {
			idx -= sn.Period
		}
		if idx < 0 {
			return nil, &timeseries.InvalidInputError{Op: "SeasonalNaive.Forecast", Reason: "a season has no observed value"}
		}
		mean[i] = sn.data.Values[idx]

		k := float64(i/sn.Period + 1)
		se[i] = math.Sqrt(sn.sigma2 * k)
	}

	return buildForecast(sn.data, mean, se), nil
}

// HoltWinters is an additive level/trend/seasonal exponential smoother with
// an optional damped trend. Smoothing weights are grid searched over the
// unit cube by one-step squared error.
type HoltWinters struct {
	Period int
	Damped bool

	// Selected smoothing weights.
	Alpha float64
	Beta  float64
	Gamma float64
	Phi   float64 // trend damping, 1 when Damped is false

	fitted   bool
	data     *timeseries.Series
	level    float64
	trend    float64
	seasonal []float64
	sigma2   float64
}

// NewHoltWinters creates an additive Holt-Winters forecaster.
func NewHoltWinters(period int) *HoltWinters {
	return &HoltWinters{Period: period}
}

// Fit grid searches the smoothing weights and runs the smoother at the
// winning combination. The series must contain at least two full seasons
// and no missing values.
func (hw *HoltWinters) Fit(series *timeseries.Series) error {
	if hw.Period <= 0 {
		return &timeseries.InvalidInputError{Op: "HoltWinters.Fit", Reason: "period must be positive"}
	}
	if series == nil || series.Len() < 2*hw.Period {
		return &timeseries.InvalidInputError{Op: "HoltWinters.Fit", Reason: "series shorter than two seasons"}
	}
	for t := 0; t < series.Len(); t++ {
		if series.IsMissing(t) {
			return &timeseries.InvalidInputError{Op: "HoltWinters.Fit", Reason: "series contains missing values"}
		}
	}

	grid := []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.7, 0.9}
	phiGrid := []float64{1}
	if hw.Damped {
		phiGrid = []float64{0.8, 0.9, 0.95, 0.98}
	}

	bestSSE := math.Inf(1)
	for _, alpha := range grid {
		for _, beta := range grid {
			for _, gamma := range grid {
				for _, phi := range phiGrid {
					sse, ok := hw.run(series, alpha, beta, gamma, phi, false)
					if ok && sse < bestSSE {
						bestSSE = sse
						hw.Alpha, hw.Beta, hw.Gamma, hw.Phi = alpha, beta, gamma, phi
					}
				}
			}
		}
	}
	if math.IsInf(bestSSE, 1) {
		return &timeseries.InvalidInputError{Op: "HoltWinters.Fit", Reason: "no smoothing weights produced a finite fit"}
	}

	hw.run(series, hw.Alpha, hw.Beta, hw.Gamma, hw.Phi, true)
	hw.data = series
	hw.fitted = true
	return nil
}

// run executes one smoothing pass. When keep is set the final state is
// stored for forecasting.
func (hw *HoltWinters) run(series *timeseries.Series, alpha, beta, gamma, phi float64, keep bool) (float64, bool) {
	m := hw.Period
	y := series.Values
	n := len(y)

	// Initial level and trend from the first two seasons, initial seasonal
	// offsets against the first-season mean.
	var s1, s2 float64
	for i := 0; i < m; i++ {
		s1 += y[i]
		s2 += y[m+i]
	}
	s1 /= float64(m)
	s2 /= float64(m)

	level := s1
	trend := (s2 - s1) / float64(m)
	seasonal := make([]float64, m)
	for i := 0; i < m; i++ {
		seasonal[i] = y[i] - s1
	}

	sse := 0.0
	count := 0
	for t := 0; t < n; t++ {
		si := t % m
		pred := level + phi*trend + seasonal[si]
		e := y[t] - pred
		if t >= m {
			sse += e * e
			count++
		}

		newLevel := alpha*(y[t]-seasonal[si]) + (1-alpha)*(level+phi*trend)
		newTrend := beta*(newLevel-level) + (1-beta)*phi*trend
		seasonal[si] = gamma*(y[t]-newLevel) + (1-gamma)*seasonal[si]
		level = newLevel
		trend = newTrend
	}

	if math.IsNaN(sse) || math.IsInf(sse, 0) || count == 0 {
		return 0, false
	}

	if keep {
		hw.level = level
		hw.trend = trend
		hw.seasonal = seasonal
		hw.sigma2 = sse / float64(count)
	}
	return sse, true
}

// Forecast produces h forecasts from the smoothed state with Gaussian
// intervals widening as the square root of the horizon.
func (hw *HoltWinters) Forecast(h int) (*forecast.Forecast, error) {
	if !hw.fitted {
		return nil, &timeseries.InvalidInputError{Op: "HoltWinters.Forecast", Reason: "model is not fitted"}
	}
	if h <= 0 {
		return nil, &timeseries.InvalidInputError{Op: "HoltWinters.Forecast", Reason: "horizon must be positive"}
	}

	m := hw.Period
	n := hw.data.Len()
	mean := make([]float64, h)
	se := make([]float64, h)

	damp := hw.Phi
	dampSum := 0.0
	for i := 0; i < h; i++ {
		dampSum += math.Pow(damp, float64(i+1))
		si := (n + i) % m
		mean[i] = hw.level + dampSum*hw.trend + hw.seasonal[si]
		se[i] = math.Sqrt(hw.sigma2 * float64(i+1))
	}

	return buildForecast(hw.data, mean, se), nil
}

func buildForecast(data *timeseries.Series, mean, se []float64) *forecast.Forecast {
	h := len(mean)
	z80 := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.90)
	z95 := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)

	f := &forecast.Forecast{
		Timestamps: data.FutureTimestamps(h),
		Mean:       mean,
		Lower80:    make([]float64, h),
		Upper80:    make([]float64, h),
		Lower95:    make([]float64, h),
		Upper95:    make([]float64, h),
	}
	for i := 0; i < h; i++ {
		f.Lower80[i] = mean[i] - z80*se[i]
		f.Upper80[i] = mean[i] + z80*se[i]
		f.Lower95[i] = mean[i] - z95*se[i]
		f.Upper95[i] = mean[i] + z95*se[i]
	}
	return f
}
