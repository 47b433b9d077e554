package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rxcast/rxcast/autoarima"
	"github.com/rxcast/rxcast/forecast"
	"github.com/rxcast/rxcast/smooth"
	"github.com/rxcast/rxcast/timeseries"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Fit and compare forecasting models on a CSV series",
	Long: `Analyze loads a monthly series from CSV, splits it at a cutoff date,
fits a seasonal naive baseline, Holt-Winters smoothing and an automatically
selected seasonal ARIMA on the earlier segment, and scores each model's
forecast against the later segment. The ARIMA search is then repeated with a
block of observations blanked out to gauge robustness to missing data.`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("input", "", "input CSV file (required)")
	f.String("date-column", "", "date column name (default: auto-detect)")
	f.String("value-column", "", "value column name (default: last column)")
	f.String("date-format", "2006-01-02", "date layout in Go reference time format")
	f.String("cutoff", "", "train/test cutoff date (required, same layout as --date-format)")
	f.Int("period", 12, "seasonal period")
	f.Int("horizon", 0, "forecast horizon (default: length of the post-cutoff segment)")
	f.String("search", "exhaustive", "order search mode: exhaustive or stepwise")
	f.String("criterion", "aicc", "selection criterion: aicc, aic or bic")
	f.Int("max-p", 5, "maximum AR order")
	f.Int("max-q", 5, "maximum MA order")
	f.Int("max-sp", 2, "maximum seasonal AR order")
	f.Int("max-sq", 2, "maximum seasonal MA order")
	f.Int("workers", 0, "fit workers (default: number of CPUs)")
	f.Int("blank-start", -1, "start index of the blanked block (default: centered in the training segment)")
	f.Int("blank-length", 24, "length of the blanked block; 0 disables the rerun")

	_ = viper.BindPFlags(f)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := viper.GetString("input")
	if input == "" {
		return fmt.Errorf("--input is required")
	}
	cutoffStr := viper.GetString("cutoff")
	if cutoffStr == "" {
		return fmt.Errorf("--cutoff is required")
	}
	dateFormat := viper.GetString("date-format")
	cutoff, err := time.Parse(dateFormat, cutoffStr)
	if err != nil {
		return fmt.Errorf("invalid cutoff date: %w", err)
	}

	series, err := timeseries.LoadCSV(input, &timeseries.CSVOptions{
		DateColumn:  viper.GetString("date-column"),
		ValueColumn: viper.GetString("value-column"),
		DateFormat:  dateFormat,
		HasHeader:   true,
	})
	if err != nil {
		return fmt.Errorf("loading %s: %w", input, err)
	}
	logger.Info().Str("input", input).Int("n", series.Len()).
		Int("observed", series.ObservedCount()).Msg("series loaded")

	train, test := series.SplitAt(cutoff)
	if train.Len() == 0 || test.Len() == 0 {
		return fmt.Errorf("cutoff %s leaves an empty segment (train %d, test %d)",
			cutoffStr, train.Len(), test.Len())
	}

	horizon := viper.GetInt("horizon")
	if horizon <= 0 || horizon > test.Len() {
		horizon = test.Len()
	}
	period := viper.GetInt("period")

	type row struct {
		name     string
		detail   string
		accuracy forecast.Accuracy
	}
	var rows []row
	actual := test.Values[:horizon]

	sn := smooth.NewSeasonalNaive(period)
	if err := sn.Fit(train); err != nil {
		logger.Warn().Err(err).Msg("seasonal naive fit failed")
	} else if fc, err := sn.Forecast(horizon); err != nil {
		logger.Warn().Err(err).Msg("seasonal naive forecast failed")
	} else {
		rows = append(rows, row{"seasonal naive", fmt.Sprintf("m=%d", period), forecast.Measure(actual, fc.Mean)})
	}

	hw := smooth.NewHoltWinters(period)
	if err := hw.Fit(train); err != nil {
		logger.Warn().Err(err).Msg("holt-winters fit failed")
	} else if fc, err := hw.Forecast(horizon); err != nil {
		logger.Warn().Err(err).Msg("holt-winters forecast failed")
	} else {
		detail := fmt.Sprintf("alpha=%.2f beta=%.2f gamma=%.2f", hw.Alpha, hw.Beta, hw.Gamma)
		rows = append(rows, row{"holt-winters", detail, forecast.Measure(actual, fc.Mean)})
	}

	searchCfg := searchConfig(period)
	result, err := autoarima.Search(train, searchCfg)
	if err != nil {
		return fmt.Errorf("order search: %w", err)
	}
	fc, err := result.Forecast(horizon)
	if err != nil {
		return fmt.Errorf("sarima forecast: %w", err)
	}
	detail := fmt.Sprintf("%s %s=%.1f", result.Order, searchCfg.Criterion, result.Criterion)
	rows = append(rows, row{"sarima", detail, forecast.Measure(actual, fc.Mean)})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "model\tdetail\tRMSE\tMAE\tMAPE%%\tn\n")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%d\n",
			r.name, r.detail, r.accuracy.RMSE, r.accuracy.MAE, r.accuracy.MAPE, r.accuracy.N)
	}
	w.Flush()

	printForecast(fc)

	blankLen := viper.GetInt("blank-length")
	if blankLen > 0 {
		if err := analyzeBlanked(train, test, horizon, blankLen, searchCfg); err != nil {
			return err
		}
	}
	return nil
}

func searchConfig(period int) *autoarima.Config {
	cfg := autoarima.DefaultConfig()
	cfg.SeasonalPeriod = period
	cfg.SearchMode = viper.GetString("search")
	cfg.Criterion = viper.GetString("criterion")
	cfg.MaxP = viper.GetInt("max-p")
	cfg.MaxQ = viper.GetInt("max-q")
	cfg.MaxSP = viper.GetInt("max-sp")
	cfg.MaxSQ = viper.GetInt("max-sq")
	cfg.Parallelism = viper.GetInt("workers")
	cfg.Logger = logger
	return cfg
}

// analyzeBlanked reruns the order search with a block of the training data
// marked missing and reports how selection and accuracy shift.
func analyzeBlanked(train, test *timeseries.Series, horizon, blankLen int, cfg *autoarima.Config) error {
	start := viper.GetInt("blank-start")
	if start < 0 {
		start = (train.Len() - blankLen) / 2
	}

	blanked, err := train.WithMissingBlock(start, blankLen)
	if err != nil {
		return fmt.Errorf("blanking block: %w", err)
	}
	logger.Info().Int("start", start).Int("length", blankLen).Msg("rerunning search with blanked block")

	result, err := autoarima.Search(blanked, cfg)
	if err != nil {
		return fmt.Errorf("order search on blanked series: %w", err)
	}
	fc, err := result.Forecast(horizon)
	if err != nil {
		return fmt.Errorf("blanked sarima forecast: %w", err)
	}
	acc := forecast.Measure(test.Values[:horizon], fc.Mean)

	fmt.Printf("\nblanked rerun (%d observations hidden from index %d):\n", blankLen, start)
	fmt.Printf("  selected %s  %s=%.1f  effective n=%d\n",
		result.Order, cfg.Criterion, result.Criterion, result.Model.NEff)
	fmt.Printf("  RMSE=%.2f MAE=%.2f MAPE=%.2f%%\n", acc.RMSE, acc.MAE, acc.MAPE)
	return nil
}

func printForecast(fc *forecast.Forecast) {
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "date\tforecast\tlo80\thi80\tlo95\thi95\n")
	for i := 0; i < fc.Horizon(); i++ {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			fc.Timestamps[i].Format("2006-01"),
			fc.Mean[i], fc.Lower80[i], fc.Upper80[i], fc.Lower95[i], fc.Upper95[i])
	}
	w.Flush()
}
