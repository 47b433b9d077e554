package sarima

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// params is the unconstrained optimizer vector: one entry per AR, MA,
// seasonal AR and seasonal MA coefficient, plus the mean when estimated.
// tanh maps each entry into (-1, 1) as a partial autocorrelation, and the
// Durbin-Levinson recursion maps those to coefficients, so every point the
// optimizer visits is stationary and invertible.
type paramSpace struct {
	p, q, sp, sq int
	includeMean  bool
}

func (s paramSpace) size() int {
	n := s.p + s.q + s.sp + s.sq
	if s.includeMean {
		n++
	}
	return n
}

type coefficients struct {
	ar, ma, sar, sma []float64
	mean             float64
}

func (s paramSpace) decode(x []float64) coefficients {
	take := func(offset, n int, negate bool) []float64 {
		pacs := make([]float64, n)
		for i := 0; i < n; i++ {
			pacs[i] = math.Tanh(x[offset+i])
		}
		coeffs := pacsToCoeffs(pacs)
		if negate {
			for i := range coeffs {
				coeffs[i] = -coeffs[i]
			}
		}
		return coeffs
	}

	off := 0
	c := coefficients{}
	c.ar = take(off, s.p, false)
	off += s.p
	c.ma = take(off, s.q, true)
	off += s.q
	c.sar = take(off, s.sp, false)
	off += s.sp
	c.sma = take(off, s.sq, true)
	off += s.sq
	if s.includeMean {
		c.mean = x[off]
	}
	return c
}

// exactObjective is the negative concentrated Gaussian log-likelihood
// computed by the Kalman filter.
func exactObjective(space paramSpace, y []float64, m int) func([]float64) float64 {
	return func(x []float64) float64 {
		c := space.decode(x)
		ss := newStateSpace(expandAR(c.ar, c.sar, m), expandMA(c.ma, c.sma, m))
		res, ok := ss.filter(y, c.mean)
		if !ok {
			return math.Inf(1)
		}
		return -res.logLik
	}
}

// cssObjective is the conditional-sum-of-squares approximation: residuals by
// direct recursion, likelihood from the residual variance. Missing
// observations contribute neither a residual nor a lag deviation.
func cssObjective(space paramSpace, y []float64, m int) func([]float64) float64 {
	return func(x []float64) float64 {
		c := space.decode(x)
		phi := expandAR(c.ar, c.sar, m)
		theta := expandMA(c.ma, c.sma, m)

		n := len(y)
		start := len(phi)
		if len(theta) > start {
			start = len(theta)
		}
		if start >= n {
			return math.Inf(1)
		}

		resid := make([]float64, n)
		ssq := 0.0
		nEff := 0
		for t := 0; t < n; t++ {
			if math.IsNaN(y[t]) {
				resid[t] = 0
				continue
			}
			pred := c.mean
			for i := 1; i <= len(phi) && t-i >= 0; i++ {
				if !math.IsNaN(y[t-i]) {
					pred += phi[i-1] * (y[t-i] - c.mean)
				}
			}
			for i := 1; i <= len(theta) && t-i >= 0; i++ {
				pred += theta[i-1] * resid[t-i]
			}
			resid[t] = y[t] - pred
			if t >= start {
				ssq += resid[t] * resid[t]
				nEff++
			}
		}
		if nEff == 0 || ssq <= 0 {
			return math.Inf(1)
		}
		sigma2 := ssq / float64(nEff)
		return 0.5 * float64(nEff) * (math.Log(2*math.Pi*sigma2) + 1)
	}
}

// minimize runs Nelder-Mead from x0 with a bounded iteration budget.
func minimize(fn func([]float64) float64, x0 []float64, maxIter int) ([]float64, bool) {
	if len(x0) == 0 {
		// Nothing to optimize; the model is fully determined.
		return x0, !math.IsInf(fn(x0), 1)
	}

	problem := optimize.Problem{Func: fn}
	settings := &optimize.Settings{
		MajorIterations: maxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-9,
			Iterations: 50,
		},
	}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return nil, false
	}
	switch result.Status {
	case optimize.IterationLimit, optimize.FunctionEvaluationLimit, optimize.Failure:
		return nil, false
	}
	if math.IsInf(result.F, 0) || math.IsNaN(result.F) {
		return nil, false
	}
	return result.X, true
}
