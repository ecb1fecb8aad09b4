package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if v := os.Getenv("VOLLAB_LOG_LEVEL"); v != "" {
		if level, err := zerolog.ParseLevel(v); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Execute(ctx); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

// Execute builds the command tree and runs it.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:           "vollab",
		Short:         "Exploratory volatility research over hourly OHLC data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", defaultConfigPath(), "path to config file")
	root.AddCommand(clusteringCmd())
	root.AddCommand(atrRatioCmd())
	root.AddCommand(watchCmd())
	return root.ExecuteContext(ctx)
}

func defaultConfigPath() string {
	if v := os.Getenv("VOLLAB_CONFIG"); v != "" {
		return v
	}
	return "configs/config.yaml"
}
