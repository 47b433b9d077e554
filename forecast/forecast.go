// Package forecast defines the result type shared by all forecasting models:
// point forecasts with paired 80% and 95% prediction intervals, plus
// accuracy metrics for comparing forecasts against held-out observations.
package forecast

import (
	"math"
	"time"
)

// Forecast holds h future point forecasts with 80% and 95% prediction
// intervals. It is produced once from a fitted model and read-only
// thereafter.
type Forecast struct {
	Timestamps []time.Time
	Mean       []float64
	Lower80    []float64
	Upper80    []float64
	Lower95    []float64
	Upper95    []float64
}

// Horizon returns the number of forecast steps.
func (f *Forecast) Horizon() int {
	return len(f.Mean)
}

// Accuracy holds forecast error metrics against observed values.
type Accuracy struct {
	RMSE float64
	MAE  float64
	MAPE float64
	N    int // number of compared pairs
}

// Measure compares forecasts against actual observations. Pairs with a
// missing actual are skipped. Comparison stops at the shorter of the two
// sequences.
func Measure(actual, predicted []float64) Accuracy {
	n := len(actual)
	if len(predicted) < n {
		n = len(predicted)
	}

	var rmse, mae, mape float64
	count := 0
	apeCount := 0
	for i := 0; i < n; i++ {
		if math.IsNaN(actual[i]) {
			continue
		}
		d := actual[i] - predicted[i]
		rmse += d * d
		mae += math.Abs(d)
		if actual[i] != 0 {
			mape += math.Abs(d) / math.Abs(actual[i]) * 100
			apeCount++
		}
		count++
	}
	if count == 0 {
		return Accuracy{}
	}

	out := Accuracy{
		RMSE: math.Sqrt(rmse / float64(count)),
		MAE:  mae / float64(count),
		N:    count,
	}
	if apeCount > 0 {
		out.MAPE = mape / float64(apeCount)
	}
	return out
}
