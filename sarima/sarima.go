// Package sarima implements seasonal ARIMA models fitted by exact maximum
// likelihood through a Kalman-filter state-space representation.
package sarima

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/rxcast/rxcast/stats"
	"github.com/rxcast/rxcast/timeseries"
)

// Order represents SARIMA model order (p, d, q) x (P, D, Q, m).
type Order struct {
	P int // Non-seasonal AR order
	D int // Non-seasonal differencing order
	Q int // Non-seasonal MA order
	// Seasonal components
	SP int // Seasonal AR order
	SD int // Seasonal differencing order
	SQ int // Seasonal MA order
	M  int // Seasonal period (e.g., 12 for monthly data with yearly seasonality)
}

// String formats the order as (p,d,q)(P,D,Q)[m].
func (o Order) String() string {
	if o.SP == 0 && o.SD == 0 && o.SQ == 0 {
		return fmt.Sprintf("(%d,%d,%d)", o.P, o.D, o.Q)
	}
	return fmt.Sprintf("(%d,%d,%d)(%d,%d,%d)[%d]", o.P, o.D, o.Q, o.SP, o.SD, o.SQ, o.M)
}

// NumParams returns the number of estimated parameters: the coefficients,
// the mean when one is estimated, and the innovation variance.
func (o Order) NumParams(includeMean bool) int {
	n := o.P + o.Q + o.SP + o.SQ + 1
	if includeMean {
		n++
	}
	return n
}

func (o Order) validate() error {
	if o.P < 0 || o.D < 0 || o.Q < 0 || o.SP < 0 || o.SD < 0 || o.SQ < 0 {
		return &timeseries.InvalidInputError{Op: "sarima.Fit", Reason: "orders must be non-negative"}
	}
	if (o.SP > 0 || o.SD > 0 || o.SQ > 0) && o.M <= 0 {
		return &timeseries.InvalidInputError{Op: "sarima.Fit", Reason: "seasonal period must be positive when seasonal orders are set"}
	}
	return nil
}

// Config holds fitting options.
type Config struct {
	// ExactLikelihood selects the Kalman-filter likelihood (default). When
	// false the conditional-sum-of-squares approximation is used instead.
	ExactLikelihood bool
	// IncludeMean estimates a mean term. It is forced off whenever any
	// differencing is applied; the differenced mean is taken to be zero.
	IncludeMean bool
	// MaxIterations bounds the optimizer; 0 means a default scaled to the
	// number of parameters.
	MaxIterations int
}

// DefaultConfig returns the default fitting configuration.
func DefaultConfig() *Config {
	return &Config{
		ExactLikelihood: true,
		IncludeMean:     true,
	}
}

// Model represents a fitted SARIMA model. It is immutable once Fit returns.
type Model struct {
	Order     Order
	ARCoeffs  []float64 // Non-seasonal AR coefficients
	MACoeffs  []float64 // Non-seasonal MA coefficients
	SARCoeffs []float64 // Seasonal AR coefficients
	SMACoeffs []float64 // Seasonal MA coefficients
	Intercept float64
	Sigma2    float64 // Innovation variance
	AIC       float64
	AICc      float64
	BIC       float64
	LogLik    float64
	NEff      int // Observations contributing to the likelihood

	fitted      bool
	exact       bool
	includeMean bool
	data        *timeseries.Series
	diffData    *timeseries.Series
	residuals   []float64
	fittedVals  []float64
	finalState  *mat.VecDense
	finalCov    *mat.Dense
}

// New creates a new SARIMA model with the specified order.
func New(p, d, q, sp, sd, sq, m int) *Model {
	return &Model{
		Order: Order{
			P: p, D: d, Q: q,
			SP: sp, SD: sd, SQ: sq, M: m,
		},
	}
}

// Fit fits the model to the given series by maximum likelihood. Missing
// observations inside the series are accommodated by the filter: they keep
// their place in the timeline and are excluded from the likelihood only.
// Returns NonConvergenceError when the optimizer fails; the order search
// treats that as a skippable candidate.
func (m *Model) Fit(series *timeseries.Series) error {
	return m.FitWithConfig(series, DefaultConfig())
}

// FitWithConfig fits the model with explicit options.
func (m *Model) FitWithConfig(series *timeseries.Series, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := m.Order.validate(); err != nil {
		return err
	}
	if series == nil || series.Len() == 0 {
		return &timeseries.InvalidInputError{Op: "sarima.Fit", Reason: "empty series"}
	}

	diffData, err := timeseries.Difference(series, m.Order.D, m.Order.SD, m.Order.M)
	if err != nil {
		return err
	}

	m.includeMean = cfg.IncludeMean && m.Order.D == 0 && m.Order.SD == 0
	m.exact = cfg.ExactLikelihood

	space := paramSpace{
		p: m.Order.P, q: m.Order.Q,
		sp: m.Order.SP, sq: m.Order.SQ,
		includeMean: m.includeMean,
	}

	minObs := space.size() + 10
	if diffData.ObservedCount() < minObs {
		return &NonConvergenceError{Order: m.Order, Reason: fmt.Sprintf("only %d observed points after differencing, need %d", diffData.ObservedCount(), minObs)}
	}

	y := diffData.Values
	var objective func([]float64) float64
	if m.exact {
		objective = exactObjective(space, y, m.Order.M)
	} else {
		objective = cssObjective(space, y, m.Order.M)
	}

	x0 := make([]float64, space.size())
	if m.includeMean {
		x0[space.size()-1] = diffData.Mean()
	}

	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = 500 + 200*space.size()
	}

	xOpt, ok := minimize(objective, x0, maxIter)
	if !ok {
		return &NonConvergenceError{Order: m.Order, Reason: "optimizer did not converge"}
	}

	c := space.decode(xOpt)

	// Final exact filter pass at the optimum, also for CSS fits, so that
	// residuals, variance and the forecasting state are consistent.
	ss := newStateSpace(expandAR(c.ar, c.sar, m.Order.M), expandMA(c.ma, c.sma, m.Order.M))
	res, fok := ss.filter(y, c.mean)
	if !fok {
		return &NonConvergenceError{Order: m.Order, Reason: "degenerate filter at optimum"}
	}

	m.ARCoeffs = c.ar
	m.MACoeffs = c.ma
	m.SARCoeffs = c.sar
	m.SMACoeffs = c.sma
	m.Intercept = c.mean
	m.Sigma2 = res.sigma2
	m.LogLik = res.logLik
	m.NEff = res.nEff
	m.data = series
	m.diffData = diffData
	m.residuals = res.resid
	m.fittedVals = res.fitted
	m.finalState = res.state
	m.finalCov = res.cov

	ic := stats.CalculateIC(m.LogLik, m.NEff, m.Order.NumParams(m.includeMean))
	m.AIC = ic.AIC
	m.AICc = ic.AICc
	m.BIC = ic.BIC

	m.fitted = true
	return nil
}

// Fitted reports whether the model has been fitted.
func (m *Model) Fitted() bool {
	return m.fitted
}

// Residuals returns the one-step innovations on the differenced scale.
// Positions that were missing in the differenced series hold NaN.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.residuals))
	copy(result, m.residuals)
	return result
}

// FittedValues returns the one-step predictions on the differenced scale.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	result := make([]float64, len(m.fittedVals))
	copy(result, m.fittedVals)
	return result
}

// Summary represents a fitted model summary.
type Summary struct {
	Order     Order
	ARCoeffs  []float64
	MACoeffs  []float64
	SARCoeffs []float64
	SMACoeffs []float64
	Intercept float64
	Sigma2    float64
	AIC       float64
	AICc      float64
	BIC       float64
	LogLik    float64
	NObs      int // Timeline length of the input series
	NEff      int // Observations contributing to the likelihood
	LjungBox  *stats.LjungBoxResult
}

// Summary returns a summary of the fitted model.
func (m *Model) Summary() *Summary {
	if !m.fitted {
		return nil
	}

	residSeries := timeseries.New(m.residuals)
	fitdf := m.Order.P + m.Order.Q + m.Order.SP + m.Order.SQ
	lb := stats.LjungBox(residSeries, 10, fitdf)

	return &Summary{
		Order:     m.Order,
		ARCoeffs:  m.ARCoeffs,
		MACoeffs:  m.MACoeffs,
		SARCoeffs: m.SARCoeffs,
		SMACoeffs: m.SMACoeffs,
		Intercept: m.Intercept,
		Sigma2:    m.Sigma2,
		AIC:       m.AIC,
		AICc:      m.AICc,
		BIC:       m.BIC,
		LogLik:    m.LogLik,
		NObs:      m.data.Len(),
		NEff:      m.NEff,
		LjungBox:  lb,
	}
}
