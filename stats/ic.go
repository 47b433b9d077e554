package stats

import "math"

// InformationCriteria holds the model comparison scores for one fit.
type InformationCriteria struct {
	AIC    float64
	AICc   float64
	BIC    float64
	LogLik float64
}

// CalculateIC calculates AIC, AICc and BIC. logLik is the maximized
// log-likelihood, nObs the number of effective observations (missing
// positions excluded), nParams the number of estimated parameters including
// the innovation variance.
//
// AICc uses the small-sample form -2*logLik + 2*k*n/(n-k-1); it degrades to
// +Inf when the correction denominator is non-positive so that such fits can
// never win a comparison.
func CalculateIC(logLik float64, nObs, nParams int) *InformationCriteria {
	k := float64(nParams)
	n := float64(nObs)

	aic := -2*logLik + 2*k
	bic := -2*logLik + k*math.Log(n)

	var aicc float64
	if n-k-1 > 0 {
		aicc = -2*logLik + 2*k*n/(n-k-1)
	} else {
		aicc = math.Inf(1)
	}

	return &InformationCriteria{
		AIC:    aic,
		AICc:   aicc,
		BIC:    bic,
		LogLik: logLik,
	}
}
