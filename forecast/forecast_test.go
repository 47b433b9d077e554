package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasure(t *testing.T) {
	actual := []float64{10, 20, 30}
	predicted := []float64{12, 18, 33}

	acc := Measure(actual, predicted)

	assert.Equal(t, 3, acc.N)
	assert.InDelta(t, math.Sqrt((4.0+4.0+9.0)/3), acc.RMSE, 1e-12)
	assert.InDelta(t, (2.0+2.0+3.0)/3, acc.MAE, 1e-12)
	assert.InDelta(t, (2.0/10+2.0/20+3.0/30)/3*100, acc.MAPE, 1e-12)
}

func TestMeasureSkipsMissingActuals(t *testing.T) {
	actual := []float64{10, math.NaN(), 30}
	predicted := []float64{12, 99, 33}

	acc := Measure(actual, predicted)

	assert.Equal(t, 2, acc.N)
	assert.InDelta(t, (2.0+3.0)/2, acc.MAE, 1e-12)
}

func TestMeasureUnequalLengths(t *testing.T) {
	acc := Measure([]float64{10, 20, 30, 40}, []float64{11, 19})
	assert.Equal(t, 2, acc.N)
}

func TestHorizon(t *testing.T) {
	f := &Forecast{Mean: []float64{1, 2, 3}}
	assert.Equal(t, 3, f.Horizon())
}
