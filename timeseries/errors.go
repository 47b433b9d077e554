package timeseries

import "fmt"

// InvalidInputError reports a malformed series or differencing request.
type InvalidInputError struct {
	Op     string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("timeseries: %s: %s", e.Op, e.Reason)
}
