package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/event-locator/internal/config"
	"github.com/pfrederiksen/event-locator/internal/event"
	"github.com/pfrederiksen/event-locator/internal/input"
	"github.com/pfrederiksen/event-locator/internal/locator"
	"github.com/pfrederiksen/event-locator/internal/logger"
	"github.com/pfrederiksen/event-locator/internal/observability"
	"github.com/pfrederiksen/event-locator/internal/random"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagEnvFile         string
	flagFormat          string
	flagMetricsTextfile string
	flagVerbose         bool
)

// newSource supplies the random source for each run; tests replace it
var newSource = random.NewSystem

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event-locator",
		Short: "Find the nearest simulated events and their cheapest tickets",
		Long: `A CLI tool that asks for a coordinate on a 21x21 grid, generates random events
with random ticket prices, and lists the closest events with their cheapest ticket.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLocate,
	}

	cmd.Flags().StringVar(&flagEnvFile, "env-file", ".env", "Optional env file with EVENT_LOCATOR_* settings")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagMetricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file after the run")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runLocate is the main command logic
func runLocate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Validate format
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := observability.InitTracing(ctx, cfg.Tracing, log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, log)

	collector, err := observability.NewLocatorCollector(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}

	metricsPath := flagMetricsTextfile
	if metricsPath == "" {
		metricsPath = cfg.MetricsTextfile
	}

	runErr := locate(ctx, cmd, format, log, collector)
	if runErr != nil {
		logger.Error("Run failed", logger.Fields{"format": string(format)}, runErr)
		collector.RecordRun("error")
	} else {
		collector.RecordRun("ok")
	}

	if metricsPath != "" {
		if err := collector.WriteTextfile(metricsPath); err != nil {
			log.Warn("Failed to write metrics", logger.Fields{"path": metricsPath, "error": err.Error()})
			if runErr == nil {
				return err
			}
		}
	}

	return runErr
}

// locate reads the user coordinate, runs the pipeline and writes the nearest events
func locate(ctx context.Context, cmd *cobra.Command, format OutputFormat, log *logger.Logger, collector *observability.LocatorCollector) error {
	out := cmd.OutOrStdout()

	// Keep stdout machine-readable in JSON mode
	var prompts io.Writer = out
	if format == FormatJSON {
		prompts = cmd.ErrOrStderr()
	}

	provider := input.NewProvider(cmd.InOrStdin(), prompts, log, collector)
	user, err := provider.Next(ctx)
	if err != nil {
		return fmt.Errorf("reading coordinates: %w", err)
	}

	loc := locator.New(newSource(), locator.Options{
		Logger:   log,
		Recorder: collector,
	})
	run, err := loc.Locate(ctx, user)
	if err != nil {
		return fmt.Errorf("locating events: %w", err)
	}

	results := run.Nearest(event.ResultCount)
	if len(results) > 0 {
		collector.SetRunSummary(len(run.Events), results[0].Distance)
	}

	log.Info("Nearest events found", logger.Fields{
		"user":    user.String(),
		"results": len(results),
		"events":  len(run.Events),
	})

	if err := WriteOutput(out, NewOutputResult(user, results), format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
