// Package rxcast provides seasonal ARIMA modeling and forecasting for
// monthly count series.
//
// The library fits seasonal ARIMA models by exact maximum likelihood through
// a Kalman-filter state space, selects orders automatically by information
// criterion, and produces forecasts with 80% and 95% prediction intervals.
// Missing observations are first-class throughout: they keep their place in
// the timeline and are marginalized by the filter rather than dropped or
// interpolated.
//
// # Quick Start
//
// Fit a single SARIMA model:
//
//	series := timeseries.NewMonthly(start, values)
//	model := sarima.New(1, 1, 1, 0, 1, 1, 12) // SARIMA(1,1,1)(0,1,1)[12]
//	model.Fit(series)
//	fc, _ := model.Forecast(8)
//
// Or select the order automatically:
//
//	result, _ := autoarima.Search(series, autoarima.DefaultConfig())
//	fc, _ := result.Forecast(8)
//
// # Packages
//
//   - timeseries: series with explicit missing values, differencing, CSV I/O
//   - stats: ACF/PACF, unit-root tests, decomposition, information criteria
//   - sarima: state-space SARIMA estimation and forecasting
//   - autoarima: automatic order selection over a bounded candidate grid
//   - smooth: seasonal naive and Holt-Winters baselines
//   - forecast: shared forecast and accuracy types
//
// The cmd/rxcast command ties these together: it loads a monthly CSV, splits
// it at a cutoff date, compares the models on the held-out segment, and
// repeats the comparison with a block of training observations blanked.
//
// # References
//
//   - Hyndman, R.J., & Athanasopoulos, G. (2021). Forecasting: Principles and Practice
//   - Harvey, A.C. (1990). Forecasting, Structural Time Series Models and the Kalman Filter
package rxcast
