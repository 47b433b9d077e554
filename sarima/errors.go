package sarima

import "fmt"

// NonConvergenceError reports a candidate fit whose optimizer did not reach
// a usable optimum within its iteration budget, or converged to a degenerate
// parameter set. The order search recovers from it by excluding the
// candidate; it is not fatal on its own.
type NonConvergenceError struct {
	Order  Order
	Reason string
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("sarima: fit %s did not converge: %s", e.Order, e.Reason)
}

// ForecastError reports a failure to construct forecasts or prediction
// intervals from a fitted model. It is fatal and surfaced to the caller.
type ForecastError struct {
	Reason string
}

func (e *ForecastError) Error() string {
	return "sarima: forecast: " + e.Reason
}
