package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kilnfi/cardano-pool-stakes/cmd/poolstakes/app/config"
	"github.com/kilnfi/cardano-pool-stakes/internal/csvexport"
	"github.com/kilnfi/cardano-pool-stakes/internal/exporter"
	"github.com/kilnfi/cardano-pool-stakes/internal/metrics"
	"github.com/kilnfi/cardano-pool-stakes/internal/stake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const pushTimeout = 30 * time.Second

var logger = slog.Default()

func initLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	case "debug":
		logLevel = slog.LevelDebug
	default:
		logLevel = slog.LevelInfo
	}

	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

func NewPoolStakesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cardano-pool-stakes",
		Short: "cardano pool stakes exports the stake delegated to each pool per epoch",
		Long: `cardano pool stakes reads the stake distribution of a range of epochs
		from Blockfrost or from a cardano-db-sync database, sums it per pool
		and writes one CSV file per epoch.`,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "", "", "config file (default is config.yml)")
	cmd.PersistentFlags().StringP("log-level", "", "info", "log level (debug, info, warn or error)")
	cmd.PersistentFlags().StringP("output-dir", "", csvexport.DefaultDir, "directory where the CSV files are written")
	cmd.PersistentFlags().StringP("pushgateway-url", "", "", "prometheus pushgateway URL to push the run metrics to (disabled if empty)")
	cmd.PersistentFlags().StringP("pushgateway-job", "", "cardano-pool-stakes", "job name used when pushing metrics")

	cmd.AddCommand(
		NewBlockfrostCommand(),
		NewDbsyncCommand(),
	)

	return cmd
}

// addEpochFlags registers the epoch range shared by every source.
func addEpochFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("epoch-start", "", 0, "first epoch to export")
	cmd.Flags().IntP("epoch-end", "", 0, "last epoch to export (included)")
	checkError(cmd.MarkFlagRequired("epoch-start"), "unable to mark epoch-start flag as required")
	checkError(cmd.MarkFlagRequired("epoch-end"), "unable to mark epoch-end flag as required")
}

// commonFlags maps config keys to the flags available on every subcommand.
var commonFlags = map[string]string{
	"log-level":       "log-level",
	"output.dir":      "output-dir",
	"pushgateway.url": "pushgateway-url",
	"pushgateway.job": "pushgateway-job",
	"epoch-start":     "epoch-start",
	"epoch-end":       "epoch-end",
}

// loadConfig merges flags, environment and the optional config file
// into a validated configuration for the given source.
func loadConfig(cmd *cobra.Command, source string, sourceFlags map[string]string) (*config.Config, error) {
	v := viper.New()

	for _, bindings := range []map[string]string{commonFlags, sourceFlags} {
		for key, name := range bindings {
			if err := v.BindPFlag(key, cmd.Flag(name)); err != nil {
				return nil, fmt.Errorf("unable to bind %s flag: %w", name, err)
			}
		}
	}

	configFile := cmd.Flag("config").Value.String()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// the config file is optional unless given explicitly
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := &config.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	initLogger(cfg.LogLevel)

	return cfg, nil
}

// export runs the exporter over the configured range and pushes
// the run metrics when a pushgateway is configured, even on failure.
func export(ctx context.Context, cfg *config.Config, source stake.Source) error {
	registry := prometheus.NewRegistry()
	collection := metrics.NewCollection()
	collection.MustRegister(registry)

	writer := csvexport.NewWriter(afero.NewOsFs(), cfg.Output.Dir)
	runErr := exporter.NewExporter(source, writer, collection).Run(ctx, cfg.EpochStart, cfg.EpochEnd)

	if cfg.Pushgateway.URL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()

		opts := metrics.PushOptions{
			URL: cfg.Pushgateway.URL,
			Job: cfg.Pushgateway.Job,
		}
		if err := metrics.Push(pushCtx, registry, opts); err != nil {
			logger.Error("unable to push metrics", slog.String("error", err.Error()))
		}
	}

	if runErr != nil {
		return fmt.Errorf("unable to export stakes: %w", runErr)
	}
	return nil
}

// checkError is a helper function to log an error and exit the program
// used for the flag parsing
func checkError(err error, msg string) {
	if err != nil {
		logger.Error(msg, slog.String("error", err.Error()))
		os.Exit(1)
	}
}
