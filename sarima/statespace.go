package sarima

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// stateSpace is the Harvey representation of an ARMA process: state
// dimension r = max(p, q+1), transition matrix with the AR coefficients in
// the first column, innovation loading (1, theta_1, ..., theta_{r-1}), and
// observation vector (1, 0, ..., 0). The innovation variance is concentrated
// to 1 during filtering and estimated from the normalized innovations.
type stateSpace struct {
	phi   []float64
	theta []float64
	r     int
	t     *mat.Dense
	rrt   *mat.Dense
}

func newStateSpace(phi, theta []float64) *stateSpace {
	r := len(phi)
	if len(theta)+1 > r {
		r = len(theta) + 1
	}
	if r < 1 {
		r = 1
	}

	t := mat.NewDense(r, r, nil)
	for i := 0; i < r; i++ {
		if i < len(phi) {
			t.Set(i, 0, phi[i])
		}
		if i < r-1 {
			t.Set(i, i+1, 1)
		}
	}

	rv := mat.NewVecDense(r, nil)
	rv.SetVec(0, 1)
	for i := 0; i < len(theta); i++ {
		rv.SetVec(i+1, theta[i])
	}
	rrt := mat.NewDense(r, r, nil)
	rrt.Outer(1, rv, rv)

	return &stateSpace{phi: phi, theta: theta, r: r, t: t, rrt: rrt}
}

// initialCovariance solves the discrete Lyapunov equation P = T P T' + RR'
// for the stationary state covariance by linearizing over vec(P).
func (ss *stateSpace) initialCovariance() (*mat.Dense, error) {
	r := ss.r
	n := r * r

	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			row := i*r + j
			b.SetVec(row, ss.rrt.At(i, j))
			for k := 0; k < r; k++ {
				for l := 0; l < r; l++ {
					col := k*r + l
					v := -ss.t.At(i, k) * ss.t.At(j, l)
					if i == k && j == l {
						v++
					}
					a.Set(row, col, v)
				}
			}
		}
	}

	vecP := mat.NewVecDense(n, nil)
	if err := vecP.SolveVec(a, b); err != nil {
		return nil, err
	}

	p := mat.NewDense(r, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			p.Set(i, j, vecP.AtVec(i*r+j))
		}
	}
	// Symmetrize against solve round-off
	for i := 0; i < r; i++ {
		for j := i + 1; j < r; j++ {
			v := (p.At(i, j) + p.At(j, i)) / 2
			p.Set(i, j, v)
			p.Set(j, i, v)
		}
	}
	return p, nil
}

// filterResult carries the output of one Kalman pass.
type filterResult struct {
	logLik float64
	sigma2 float64
	nEff   int
	resid  []float64 // innovations on the differenced scale, NaN at gaps
	fitted []float64 // one-step predictions on the differenced scale
	state  *mat.VecDense
	cov    *mat.Dense
}

// filter runs the Kalman filter over y, skipping the measurement update at
// missing positions so that gaps contribute a prediction step but no
// likelihood term. Returns false when the filter degenerates (non-positive
// innovation variance).
func (ss *stateSpace) filter(y []float64, mean float64) (*filterResult, bool) {
	r := ss.r
	n := len(y)

	p, err := ss.initialCovariance()
	if err != nil {
		return nil, false
	}

	a := mat.NewVecDense(r, nil)
	ta := mat.NewVecDense(r, nil)
	tp := mat.NewDense(r, r, nil)
	tpt := mat.NewDense(r, r, nil)
	k := mat.NewVecDense(r, nil)
	kk := mat.NewDense(r, r, nil)
	p0 := mat.NewVecDense(r, nil)

	resid := make([]float64, n)
	fitted := make([]float64, n)

	ssq := 0.0
	sumLogF := 0.0
	nEff := 0

	for t := 0; t < n; t++ {
		pred := a.AtVec(0) + mean
		f := p.At(0, 0)
		fitted[t] = pred

		observed := !math.IsNaN(y[t])
		if observed {
			if f <= 0 {
				return nil, false
			}
			v := y[t] - pred
			resid[t] = v
			ssq += v * v / f
			sumLogF += math.Log(f)
			nEff++

			// K = T P Z' / F
			for i := 0; i < r; i++ {
				p0.SetVec(i, p.At(i, 0))
			}
			k.MulVec(ss.t, p0)
			k.ScaleVec(1/f, k)

			// a <- T a + K v
			ta.MulVec(ss.t, a)
			ta.AddScaledVec(ta, v, k)
			a.CopyVec(ta)

			// P <- T P T' + RR' - K K' F
			tp.Mul(ss.t, p)
			tpt.Mul(tp, ss.t.T())
			kk.Outer(f, k, k)
			p.Add(tpt, ss.rrt)
			p.Sub(p, kk)
		} else {
			resid[t] = math.NaN()

			ta.MulVec(ss.t, a)
			a.CopyVec(ta)

			tp.Mul(ss.t, p)
			tpt.Mul(tp, ss.t.T())
			p.Add(tpt, ss.rrt)
		}
	}

	if nEff == 0 {
		return nil, false
	}

	sigma2 := ssq / float64(nEff)
	if sigma2 <= 0 || math.IsNaN(sigma2) || math.IsInf(sigma2, 0) {
		return nil, false
	}
	logLik := -0.5*float64(nEff)*(math.Log(2*math.Pi)+1+math.Log(sigma2)) - 0.5*sumLogF

	return &filterResult{
		logLik: logLik,
		sigma2: sigma2,
		nEff:   nEff,
		resid:  resid,
		fitted: fitted,
		state:  a,
		cov:    p,
	}, true
}

// psiWeights computes the first h MA-infinity weights of the ARMA process
// whose AR coefficients are phi (of 1 - sum phi_k B^k) and MA coefficients
// theta (of 1 + sum theta_k B^k). psi_0 = 1.
func psiWeights(phi, theta []float64, h int) []float64 {
	psi := make([]float64, h)
	if h == 0 {
		return psi
	}
	psi[0] = 1
	for j := 1; j < h; j++ {
		v := 0.0
		if j-1 < len(theta) {
			v = theta[j-1]
		}
		for i := 1; i <= j && i <= len(phi); i++ {
			v += phi[i-1] * psi[j-i]
		}
		psi[j] = v
	}
	return psi
}
