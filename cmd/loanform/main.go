package main

import (
	"fmt"
	"os"

	"loan-approval/internal/approval"
	"loan-approval/internal/cfg"
	"loan-approval/internal/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	settings   cfg.Settings
	appMetrics *metrics.Metrics
)

var rootCmd = &cobra.Command{
	Use:   "loanform",
	Short: "Loan approval form backed by a pre-trained classifier",
	Long: `Collects applicant details, encodes them into the model's feature layout
and prints whether the loan would be approved.

Run without a subcommand to open the interactive form.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := cfg.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		settings = s

		if err := setupLogging(settings.LogLevel, settings.LogFormat); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		appMetrics = metrics.New()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if settings.MetricsFile == "" || appMetrics == nil {
			return
		}
		if err := appMetrics.WriteTextfile(settings.MetricsFile); err != nil {
			log.Warn().Err(err).Str("path", settings.MetricsFile).Msg("Failed to write metrics")
		}
	},
	RunE: runForm,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging points the global logger at stderr so prompts and verdicts on
// stdout stay clean.
func setupLogging(level, format string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

// newService loads the artifacts once and wires the evaluation service.
func newService() (*approval.Service, error) {
	wrapper := metrics.NewWrapper(appMetrics)

	ctx, err := approval.Load(settings, wrapper)
	if err != nil {
		return nil, err
	}
	appMetrics.MarkModelLoaded(ctx.LoadedAt)

	return approval.NewService(ctx, wrapper), nil
}
