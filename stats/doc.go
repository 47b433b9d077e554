// Package stats provides the statistical helpers behind model selection:
// autocorrelation functions, unit-root tests, classical decomposition,
// residual diagnostics, and information criteria.
//
// # Autocorrelation
//
//	acf := stats.ACF(series, 24)
//	pacf := stats.PACF(series, 24)
//
// # Differencing order suggestions
//
// The selection procedure normally runs with fixed differencing orders; when
// asked to choose them it uses the KPSS test and seasonal strength:
//
//	d := stats.NDiffs(series, 2)
//	D := stats.NSDiffs(series, 12, 1)
//
// # Model comparison
//
//	ic := stats.CalculateIC(logLik, nObs, nParams)
//	// ic.AICc is +Inf when the small-sample correction is undefined
//
// # Residual diagnostics
//
//	lb := stats.LjungBox(residuals, 10, fitdf)
package stats
