// Package autoarima implements automatic seasonal ARIMA order selection by
// information criterion over a bounded grid of candidate orders.
package autoarima

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rxcast/rxcast/forecast"
	"github.com/rxcast/rxcast/sarima"
	"github.com/rxcast/rxcast/stats"
	"github.com/rxcast/rxcast/timeseries"
)

// Search modes.
const (
	SearchExhaustive = "exhaustive"
	SearchStepwise   = "stepwise"
)

// Config holds configuration for the order search.
type Config struct {
	SeasonalPeriod  int    // Seasonal period (default: 12)
	D               int    // Non-seasonal differencing; -1 selects via KPSS
	SD              int    // Seasonal differencing; -1 selects via seasonal strength
	MaxP            int    // Maximum AR order (default: 5)
	MaxQ            int    // Maximum MA order (default: 5)
	MaxSP           int    // Maximum seasonal AR order (default: 2)
	MaxSQ           int    // Maximum seasonal MA order (default: 2)
	SearchMode      string // "exhaustive" (default) or "stepwise"
	Criterion       string // "aicc" (default), "aic" or "bic"
	ExactLikelihood bool   // Kalman-filter likelihood (default) vs CSS
	IncludeMean     bool   // Estimate a mean for undifferenced candidates
	Parallelism     int    // Worker pool size; 0 means GOMAXPROCS

	Logger zerolog.Logger
}

// DefaultConfig returns the default search configuration: a full grid over
// p, q <= 5 and P, Q <= 2 with first-order ordinary and seasonal differencing,
// selected by AICc.
func DefaultConfig() *Config {
	return &Config{
		SeasonalPeriod:  12,
		D:               1,
		SD:              1,
		MaxP:            5,
		MaxQ:            5,
		MaxSP:           2,
		MaxSQ:           2,
		SearchMode:      SearchExhaustive,
		Criterion:       "aicc",
		ExactLikelihood: true,
		IncludeMean:     true,
		Logger:          zerolog.Nop(),
	}
}

// Result represents the outcome of an order search.
type Result struct {
	Model     *sarima.Model
	Order     sarima.Order
	Criterion float64 // Value of the selection criterion for the winner

	ModelsEvaluated int // Candidates fitted, converged or not
	ModelsConverged int
}

// Forecast delegates to the selected model.
func (r *Result) Forecast(h int) (*forecast.Forecast, error) {
	return r.Model.Forecast(h)
}

// candidate is one point of the search grid.
type candidate struct {
	index        int
	p, q, sp, sq int
}

// fitOutcome pairs a candidate with its fitted model, nil when the fit
// failed to converge.
type fitOutcome struct {
	candidate
	model     *sarima.Model
	criterion float64
}

// Search selects the SARIMA order minimizing the configured criterion.
// Candidates whose fit fails are skipped; if every candidate fails the
// search returns NoViableModelError.
func Search(series *timeseries.Series, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if series == nil || series.Len() == 0 {
		return nil, &timeseries.InvalidInputError{Op: "autoarima.Search", Reason: "empty series"}
	}
	if cfg.SeasonalPeriod <= 0 {
		return nil, &timeseries.InvalidInputError{Op: "autoarima.Search", Reason: "seasonal period must be positive"}
	}

	d := cfg.D
	if d < 0 {
		d = stats.NDiffs(series, 2)
	}
	sd := cfg.SD
	if sd < 0 {
		sd = stats.NSDiffs(series, cfg.SeasonalPeriod, 1)
	}

	logger := cfg.Logger.With().Str("component", "autoarima").Logger()
	logger.Debug().
		Int("d", d).Int("sd", sd).
		Str("mode", cfg.SearchMode).Str("criterion", cfg.Criterion).
		Msg("starting order search")

	var outcomes []fitOutcome
	if cfg.SearchMode == SearchStepwise {
		outcomes = stepwiseSearch(series, d, sd, cfg, logger)
	} else {
		outcomes = exhaustiveSearch(series, d, sd, cfg, logger)
	}

	best := selectBest(outcomes)
	converged := 0
	for _, o := range outcomes {
		if o.model != nil {
			converged++
		}
	}
	if best == nil {
		return nil, &NoViableModelError{Evaluated: len(outcomes)}
	}

	logger.Info().
		Stringer("order", best.model.Order).
		Float64("criterion", best.criterion).
		Int("evaluated", len(outcomes)).
		Int("converged", converged).
		Msg("order search complete")

	return &Result{
		Model:           best.model,
		Order:           best.model.Order,
		Criterion:       best.criterion,
		ModelsEvaluated: len(outcomes),
		ModelsConverged: converged,
	}, nil
}

// exhaustiveSearch fits every (p, q, P, Q) combination on a worker pool and
// collects outcomes by enumeration index so selection is deterministic.
func exhaustiveSearch(series *timeseries.Series, d, sd int, cfg *Config, logger zerolog.Logger) []fitOutcome {
	var cands []candidate
	idx := 0
	for p := 0; p <= cfg.MaxP; p++ {
		for q := 0; q <= cfg.MaxQ; q++ {
			for sp := 0; sp <= cfg.MaxSP; sp++ {
				for sq := 0; sq <= cfg.MaxSQ; sq++ {
					cands = append(cands, candidate{index: idx, p: p, q: q, sp: sp, sq: sq})
					idx++
				}
			}
		}
	}

	workers := cfg.Parallelism
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(cands) {
		workers = len(cands)
	}

	outcomes := make([]fitOutcome, len(cands))
	jobs := make(chan candidate)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				outcomes[c.index] = fitCandidate(series, c, d, sd, cfg, logger)
			}
		}()
	}
	for _, c := range cands {
		jobs <- c
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

// stepwiseSearch seeds a handful of common orders and walks to better
// neighbors until no move improves the criterion. Runs serially; the walk
// is inherently sequential.
func stepwiseSearch(series *timeseries.Series, d, sd int, cfg *Config, logger zerolog.Logger) []fitOutcome {
	seeds := []candidate{
		{p: 0, q: 0, sp: 0, sq: 0},
		{p: 1, q: 1, sp: 0, sq: 0},
		{p: 0, q: 1, sp: 0, sq: 1},
		{p: 1, q: 1, sp: 1, sq: 1},
		{p: 2, q: 2, sp: 1, sq: 1},
	}

	var outcomes []fitOutcome
	seen := make(map[[4]int]bool)
	idx := 0

	eval := func(c candidate) *fitOutcome {
		key := [4]int{c.p, c.q, c.sp, c.sq}
		if seen[key] {
			return nil
		}
		if c.p < 0 || c.p > cfg.MaxP || c.q < 0 || c.q > cfg.MaxQ ||
			c.sp < 0 || c.sp > cfg.MaxSP || c.sq < 0 || c.sq > cfg.MaxSQ {
			return nil
		}
		seen[key] = true
		c.index = idx
		idx++
		o := fitCandidate(series, c, d, sd, cfg, logger)
		outcomes = append(outcomes, o)
		return &o
	}

	var best *fitOutcome
	for _, s := range seeds {
		o := eval(s)
		if o != nil && o.model != nil && (best == nil || o.criterion < best.criterion) {
			best = o
		}
	}
	if best == nil {
		return outcomes
	}

	for {
		b := best.candidate
		neighbors := []candidate{
			{p: b.p + 1, q: b.q, sp: b.sp, sq: b.sq},
			{p: b.p - 1, q: b.q, sp: b.sp, sq: b.sq},
			{p: b.p, q: b.q + 1, sp: b.sp, sq: b.sq},
			{p: b.p, q: b.q - 1, sp: b.sp, sq: b.sq},
			{p: b.p, q: b.q, sp: b.sp + 1, sq: b.sq},
			{p: b.p, q: b.q, sp: b.sp - 1, sq: b.sq},
			{p: b.p, q: b.q, sp: b.sp, sq: b.sq + 1},
			{p: b.p, q: b.q, sp: b.sp, sq: b.sq - 1},
			{p: b.p + 1, q: b.q + 1, sp: b.sp, sq: b.sq},
			{p: b.p - 1, q: b.q - 1, sp: b.sp, sq: b.sq},
		}

		improved := false
		for _, n := range neighbors {
			o := eval(n)
			if o != nil && o.model != nil && o.criterion < best.criterion {
				best = o
				improved = true
			}
		}
		if !improved {
			return outcomes
		}
	}
}

// fitCandidate fits a single candidate order. Failures become a nil-model
// outcome instead of an error; the search excludes them.
func fitCandidate(series *timeseries.Series, c candidate, d, sd int, cfg *Config, logger zerolog.Logger) fitOutcome {
	model := sarima.New(c.p, d, c.q, c.sp, sd, c.sq, cfg.SeasonalPeriod)
	err := model.FitWithConfig(series, &sarima.Config{
		ExactLikelihood: cfg.ExactLikelihood,
		IncludeMean:     cfg.IncludeMean,
	})
	if err != nil {
		logger.Debug().Stringer("order", model.Order).Err(err).Msg("candidate skipped")
		return fitOutcome{candidate: c}
	}

	crit := criterionValue(model, cfg.Criterion)
	if math.IsNaN(crit) || math.IsInf(crit, 0) {
		logger.Debug().Stringer("order", model.Order).Msg("candidate has unusable criterion")
		return fitOutcome{candidate: c}
	}

	logger.Debug().Stringer("order", model.Order).Float64("criterion", crit).Msg("candidate fitted")
	return fitOutcome{candidate: c, model: model, criterion: crit}
}

func criterionValue(m *sarima.Model, criterion string) float64 {
	switch criterion {
	case "aic":
		return m.AIC
	case "bic":
		return m.BIC
	default:
		return m.AICc
	}
}

// selectBest picks the converged outcome with the smallest criterion. Ties
// prefer fewer estimated parameters, then the earlier enumeration index.
func selectBest(outcomes []fitOutcome) *fitOutcome {
	var best *fitOutcome
	for i := range outcomes {
		o := &outcomes[i]
		if o.model == nil {
			continue
		}
		if best == nil {
			best = o
			continue
		}
		switch {
		case o.criterion < best.criterion:
			best = o
		case o.criterion == best.criterion:
			on := o.p + o.q + o.sp + o.sq
			bn := best.p + best.q + best.sp + best.sq
			if on < bn || (on == bn && o.index < best.index) {
				best = o
			}
		}
	}
	return best
}

// NoViableModelError reports that every candidate order failed to produce a
// usable fit.
type NoViableModelError struct {
	Evaluated int
}

func (e *NoViableModelError) Error() string {
	return fmt.Sprintf("autoarima: no candidate model converged (%d evaluated)", e.Evaluated)
}
