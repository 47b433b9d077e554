// Package commands implements the rxcast command-line interface.
package commands

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	debug      bool

	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rxcast",
	Short: "Seasonal forecasting for monthly count series",
	Long: `rxcast fits and compares forecasting models on monthly time series:
a seasonal naive baseline, additive Holt-Winters smoothing, and an
automatically selected seasonal ARIMA model.

Examples:
  rxcast analyze --input prescriptions.csv --cutoff 2014-01-01
  rxcast analyze --input prescriptions.csv --horizon 8 --search stepwise`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default rxcast.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	cobra.OnInitialize(initConfig)
}

// initConfig loads the optional config file and environment overrides.
// Flags take precedence over the file, the file over defaults.
func initConfig() {
	setupLogging()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("rxcast")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("RXCAST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logger.Warn().Err(err).Msg("failed to read config file")
		}
	}
}

func setupLogging() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger = zerolog.New(output).Level(level).With().Timestamp().Logger()
}
