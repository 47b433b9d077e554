package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/rxcast/rxcast/timeseries"
)

// Decomposition holds the components of a classical additive decomposition.
type Decomposition struct {
	Trend    []float64
	Seasonal []float64
	Residual []float64
	Period   int
}

// Decompose performs a classical additive decomposition with a centered
// moving-average trend. Positions where the trend window is incomplete hold
// NaN. Missing observations propagate into all three components.
func Decompose(series *timeseries.Series, period int) *Decomposition {
	n := series.Len()
	if period <= 1 || n < 2*period {
		return nil
	}
	y := series.Values

	// Centered moving average of width period (2x(m) average for even m)
	trend := make([]float64, n)
	for i := range trend {
		trend[i] = math.NaN()
	}
	half := period / 2
	for t := half; t < n-half; t++ {
		sum := 0.0
		ok := true
		if period%2 == 0 {
			for j := -half; j <= half; j++ {
				w := 1.0
				if j == -half || j == half {
					w = 0.5
				}
				v := y[t+j]
				if math.IsNaN(v) {
					ok = false
					break
				}
				sum += w * v
			}
		} else {
			for j := -half; j <= half; j++ {
				v := y[t+j]
				if math.IsNaN(v) {
					ok = false
					break
				}
				sum += v
			}
		}
		if ok {
			trend[t] = sum / float64(period)
		}
	}

	// Seasonal means of the detrended series, re-centered to sum to zero
	seasonalMeans := make([]float64, period)
	for s := 0; s < period; s++ {
		var vals []float64
		for t := s; t < n; t += period {
			d := y[t] - trend[t]
			if !math.IsNaN(d) {
				vals = append(vals, d)
			}
		}
		if len(vals) > 0 {
			seasonalMeans[s] = stat.Mean(vals, nil)
		}
	}
	avg := stat.Mean(seasonalMeans, nil)
	for s := range seasonalMeans {
		seasonalMeans[s] -= avg
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for t := 0; t < n; t++ {
		seasonal[t] = seasonalMeans[t%period]
		residual[t] = y[t] - trend[t] - seasonal[t]
	}

	return &Decomposition{
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
		Period:   period,
	}
}

// SeasonalStrength measures the strength of seasonality as
// max(0, 1 - Var(R)/Var(S+R)) over the decomposed series. Values near 1
// indicate strong seasonality; below about 0.64 one seasonal difference is
// usually unnecessary.
func SeasonalStrength(series *timeseries.Series, period int) float64 {
	decomp := Decompose(series, period)
	if decomp == nil {
		return 0
	}

	varR := nanVariance(decomp.Residual)

	sr := make([]float64, len(decomp.Seasonal))
	for i := range sr {
		sr[i] = decomp.Seasonal[i] + decomp.Residual[i]
	}
	varSR := nanVariance(sr)
	if varSR == 0 {
		return 0
	}

	strength := 1 - varR/varSR
	if strength < 0 {
		strength = 0
	}
	return strength
}

func nanVariance(data []float64) float64 {
	valid := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) < 2 {
		return 0
	}
	return stat.Variance(valid, nil)
}
