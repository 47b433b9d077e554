package sarima

// Lag polynomials are represented as coefficient slices starting at B^0,
// so []float64{1, -0.5} is 1 - 0.5B.

// polyMul multiplies two lag polynomials.
func polyMul(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// arPoly builds 1 - phi_1 B - ... - phi_p B^p.
func arPoly(coeffs []float64) []float64 {
	out := make([]float64, len(coeffs)+1)
	out[0] = 1
	for i, c := range coeffs {
		out[i+1] = -c
	}
	return out
}

// maPoly builds 1 + theta_1 B + ... + theta_q B^q.
func maPoly(coeffs []float64) []float64 {
	out := make([]float64, len(coeffs)+1)
	out[0] = 1
	copy(out[1:], coeffs)
	return out
}

// seasonalPoly spreads seasonal coefficients over lags m, 2m, ...; sign
// follows the supplied base builder.
func seasonalPoly(coeffs []float64, m int, negate bool) []float64 {
	out := make([]float64, len(coeffs)*m+1)
	out[0] = 1
	for i, c := range coeffs {
		if negate {
			out[(i+1)*m] = -c
		} else {
			out[(i+1)*m] = c
		}
	}
	return out
}

// expandAR multiplies the non-seasonal and seasonal AR polynomials and
// returns the combined coefficients a_k of 1 - sum a_k B^k.
func expandAR(ar, sar []float64, m int) []float64 {
	full := polyMul(arPoly(ar), seasonalPoly(sar, m, true))
	out := make([]float64, len(full)-1)
	for i := 1; i < len(full); i++ {
		out[i-1] = -full[i]
	}
	return out
}

// expandMA multiplies the non-seasonal and seasonal MA polynomials and
// returns the combined coefficients b_k of 1 + sum b_k B^k.
func expandMA(ma, sma []float64, m int) []float64 {
	full := polyMul(maPoly(ma), seasonalPoly(sma, m, false))
	out := make([]float64, len(full)-1)
	copy(out, full[1:])
	return out
}

// differencingPoly builds (1-B)^d * (1-B^m)^D.
func differencingPoly(d, D, m int) []float64 {
	out := []float64{1}
	for i := 0; i < d; i++ {
		out = polyMul(out, []float64{1, -1})
	}
	for i := 0; i < D; i++ {
		sd := make([]float64, m+1)
		sd[0] = 1
		sd[m] = -1
		out = polyMul(out, sd)
	}
	return out
}

// pacsToCoeffs maps partial autocorrelations in (-1, 1) to the coefficients
// of a stationary AR polynomial via the Durbin-Levinson recursion. The same
// map (with a sign flip) yields invertible MA coefficients.
func pacsToCoeffs(pacs []float64) []float64 {
	p := len(pacs)
	a := make([]float64, p)
	tmp := make([]float64, p)
	for k := 0; k < p; k++ {
		a[k] = pacs[k]
		for j := 0; j < k; j++ {
			tmp[j] = a[j] - pacs[k]*a[k-1-j]
		}
		copy(a[:k], tmp[:k])
	}
	return a
}
