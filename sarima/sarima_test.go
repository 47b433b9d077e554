package sarima

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxcast/rxcast/timeseries"
)

func simulateAR1(n int, phi, mean float64, seed int64) *timeseries.Series {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	prev := 0.0
	for i := 0; i < n; i++ {
		prev = phi*prev + rng.NormFloat64()
		values[i] = mean + prev
	}
	return timeseries.New(values)
}

func simulateSeasonal(n int, seed int64) *timeseries.Series {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = 3000 + 12*float64(i) +
			400*math.Sin(2*math.Pi*float64(i)/12) +
			30*rng.NormFloat64()
	}
	return timeseries.New(values)
}

func TestNewOrder(t *testing.T) {
	model := New(2, 1, 1, 1, 1, 2, 12)

	assert.Equal(t, Order{P: 2, D: 1, Q: 1, SP: 1, SD: 1, SQ: 2, M: 12}, model.Order)
	assert.False(t, model.Fitted())
}

func TestOrderString(t *testing.T) {
	assert.Equal(t, "(1,1,2)(0,1,1)[12]", Order{P: 1, D: 1, Q: 2, SD: 1, SQ: 1, M: 12}.String())
	assert.Equal(t, "(2,0,1)", Order{P: 2, Q: 1}.String())
}

func TestOrderNumParams(t *testing.T) {
	o := Order{P: 1, Q: 1, SP: 1, SQ: 1}
	assert.Equal(t, 5, o.NumParams(false), "coefficients plus variance")
	assert.Equal(t, 6, o.NumParams(true))
}

func TestFitValidation(t *testing.T) {
	var invalid *timeseries.InvalidInputError

	err := New(-1, 0, 0, 0, 0, 0, 0).Fit(timeseries.New([]float64{1, 2, 3}))
	require.ErrorAs(t, err, &invalid)

	err = New(0, 0, 0, 1, 0, 0, 0).Fit(timeseries.New([]float64{1, 2, 3}))
	require.ErrorAs(t, err, &invalid, "seasonal order without a period")

	err = New(1, 0, 0, 0, 0, 0, 0).Fit(nil)
	require.ErrorAs(t, err, &invalid)
}

func TestFitTooShort(t *testing.T) {
	err := New(2, 1, 2, 0, 0, 0, 0).Fit(timeseries.New([]float64{1, 2, 3, 4, 5}))
	var nc *NonConvergenceError
	require.ErrorAs(t, err, &nc)
}

func TestFitAR1RecoversCoefficient(t *testing.T) {
	series := simulateAR1(400, 0.7, 50, 21)

	model := New(1, 0, 0, 0, 0, 0, 0)
	require.NoError(t, model.Fit(series))

	require.True(t, model.Fitted())
	require.Len(t, model.ARCoeffs, 1)
	assert.InDelta(t, 0.7, model.ARCoeffs[0], 0.15)
	assert.InDelta(t, 50.0, model.Intercept, 2.0)
	assert.InDelta(t, 1.0, model.Sigma2, 0.3)
	assert.Equal(t, 400, model.NEff)
	assert.False(t, math.IsInf(model.AICc, 1))
	assert.Less(t, model.AIC, model.AICc)
}

func TestFitMA1RecoversCoefficient(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	n := 400
	theta := 0.6
	values := make([]float64, n)
	prev := rng.NormFloat64()
	for i := 0; i < n; i++ {
		e := rng.NormFloat64()
		values[i] = e + theta*prev
		prev = e
	}

	model := New(0, 0, 1, 0, 0, 0, 0)
	require.NoError(t, model.FitWithConfig(timeseries.New(values), &Config{ExactLikelihood: true}))

	require.Len(t, model.MACoeffs, 1)
	assert.InDelta(t, theta, model.MACoeffs[0], 0.2)
}

func TestFitCSSApproximation(t *testing.T) {
	series := simulateAR1(400, 0.7, 0, 23)

	exact := New(1, 0, 0, 0, 0, 0, 0)
	require.NoError(t, exact.FitWithConfig(series, &Config{ExactLikelihood: true}))

	css := New(1, 0, 0, 0, 0, 0, 0)
	require.NoError(t, css.FitWithConfig(series, &Config{ExactLikelihood: false}))

	assert.InDelta(t, exact.ARCoeffs[0], css.ARCoeffs[0], 0.05,
		"CSS and exact estimates agree on a long series")
}

func TestFitDifferencedDropsMean(t *testing.T) {
	series := simulateSeasonal(120, 24)

	model := New(1, 1, 0, 0, 1, 0, 12)
	require.NoError(t, model.FitWithConfig(series, &Config{ExactLikelihood: true, IncludeMean: true}))

	assert.Zero(t, model.Intercept, "mean is not estimated once differencing is applied")
	assert.Equal(t, 120-1-12, model.NEff)
}

func TestFitWithMissingBlock(t *testing.T) {
	series := simulateAR1(300, 0.7, 0, 25)
	blanked, err := series.WithMissingBlock(120, 24)
	require.NoError(t, err)

	model := New(1, 0, 0, 0, 0, 0, 0)
	require.NoError(t, model.Fit(blanked))

	assert.Equal(t, 300-24, model.NEff, "missing positions drop out of the likelihood only")
	assert.InDelta(t, 0.7, model.ARCoeffs[0], 0.15)

	resid := model.Residuals()
	require.Len(t, resid, 300, "timeline is never compacted")
	assert.True(t, math.IsNaN(resid[130]))
	assert.False(t, math.IsNaN(resid[200]))
}

func TestResidualsBeforeFit(t *testing.T) {
	model := New(1, 0, 0, 0, 0, 0, 0)
	assert.Nil(t, model.Residuals())
	assert.Nil(t, model.FittedValues())
	assert.Nil(t, model.Summary())
}

func TestSummary(t *testing.T) {
	series := simulateAR1(300, 0.6, 0, 26)
	model := New(1, 0, 0, 0, 0, 0, 0)
	require.NoError(t, model.Fit(series))

	s := model.Summary()
	require.NotNil(t, s)
	assert.Equal(t, model.Order, s.Order)
	assert.Equal(t, 300, s.NObs)
	assert.Equal(t, model.NEff, s.NEff)
	require.NotNil(t, s.LjungBox)
	assert.Greater(t, s.LjungBox.PValue, 0.01,
		"residuals of the right model should look like white noise")
}

func TestFitSeasonalMonthly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping seasonal fit in short mode")
	}

	series := simulateSeasonal(98, 27)
	model := New(1, 1, 1, 0, 1, 1, 12)
	require.NoError(t, model.Fit(series))

	assert.False(t, math.IsInf(model.AICc, 1))
	assert.Equal(t, 98-1-12, model.NEff)
	t.Logf("fitted %s logLik=%.2f aicc=%.2f sigma2=%.2f",
		model.Order, model.LogLik, model.AICc, model.Sigma2)
}
