package sarima

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rxcast/rxcast/forecast"
	"github.com/rxcast/rxcast/timeseries"
)

// Forecast produces h point forecasts on the original scale together with
// 80% and 95% prediction intervals. Point forecasts are propagated through
// the filtered state and undifferenced against the training series; interval
// widths come from the psi-weight variance of the full model, so they never
// shrink as the horizon grows.
func (m *Model) Forecast(h int) (*forecast.Forecast, error) {
	if !m.fitted {
		return nil, &ForecastError{Reason: "model is not fitted"}
	}
	if h <= 0 {
		return nil, &ForecastError{Reason: "horizon must be positive"}
	}

	phi := expandAR(m.ARCoeffs, m.SARCoeffs, m.Order.M)
	theta := expandMA(m.MACoeffs, m.SMACoeffs, m.Order.M)
	ss := newStateSpace(phi, theta)

	// The filter leaves the state predicted one step ahead of the sample,
	// so the first forecast reads it directly.
	a := mat.VecDenseCopyOf(m.finalState)
	ta := mat.NewVecDense(ss.r, nil)
	diffMean := make([]float64, h)
	for i := 0; i < h; i++ {
		diffMean[i] = a.AtVec(0) + m.Intercept
		ta.MulVec(ss.t, a)
		a.CopyVec(ta)
	}

	mean, err := timeseries.Integrate(diffMean, m.data, m.Order.D, m.Order.SD, m.Order.M)
	if err != nil {
		return nil, &ForecastError{Reason: err.Error()}
	}
	for _, v := range mean {
		if math.IsNaN(v) {
			return nil, &ForecastError{Reason: "missing values at the end of the series block integration"}
		}
	}

	se := m.forecastStdErrs(phi, theta, h)

	z80 := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.90)
	z95 := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)

	f := &forecast.Forecast{
		Timestamps: m.data.FutureTimestamps(h),
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
	return f, nil
}

// forecastStdErrs computes per-step forecast standard errors on the original
// scale. The differencing operator is folded into the AR polynomial so that
// the psi weights describe the undifferenced process; the h-step variance is
// then sigma2 times the cumulative sum of squared weights.
func (m *Model) forecastStdErrs(phi, theta []float64, h int) []float64 {
	full := polyMul(arPoly(phi), differencingPoly(m.Order.D, m.Order.SD, m.Order.M))
	phiStar := make([]float64, len(full)-1)
	for i := 1; i < len(full); i++ {
		phiStar[i-1] = -full[i]
	}

	psi := psiWeights(phiStar, theta, h)
	se := make([]float64, h)
	cum := 0.0
	for i := 0; i < h; i++ {
		cum += psi[i] * psi[i]
		se[i] = math.Sqrt(m.Sigma2 * cum)
	}
	return se
}
