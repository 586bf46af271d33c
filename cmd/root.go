package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fuelstats/config"
	"github.com/kilianp07/fuelstats/core/monitoring"
	"github.com/kilianp07/fuelstats/core/report"
	"github.com/kilianp07/fuelstats/core/source"
	"github.com/kilianp07/fuelstats/core/stats"
	"github.com/kilianp07/fuelstats/infra/logger"
	infmon "github.com/kilianp07/fuelstats/infra/monitoring"
	_ "github.com/kilianp07/fuelstats/infra/report"
	_ "github.com/kilianp07/fuelstats/infra/source"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "fuelstats [fuel log]",
	Short: "Fuel consumption and cost statistics from a fuel log",
	Long: `fuelstats reads a tab separated fuel log (date, odometer km, liters, cost)
and prints per-year totals, distance driven, average price per liter and
consumption per 100 km. Without an argument the source configured in the
config file is read, ./tanken.txt by default.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         withMonitoring(runReport),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "fuelstats.yaml", "configuration file")
}

// Execute runs the CLI. Every command gets a context cancelled on SIGINT or
// SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	rep, err := buildReport(ctx, cfg, args)
	if err != nil {
		return err
	}
	if err := report.Render(cmd.OutOrStdout(), rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return publish(ctx, cfg, rep)
}

// setup loads the configuration and wires logging and error monitoring.
// The config file may be absent unless --config was given explicitly.
func setup(cmd *cobra.Command) (*config.Config, func(), error) {
	cfg, err := config.Load(cfgPath, !cmd.Flags().Changed("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	closer, err := logger.Configure(logger.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return nil, nil, err
	}
	mon, err := infmon.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		logger.New("main").Warnf("sentry disabled: %v", err)
	} else {
		monitoring.Init(mon)
	}
	return cfg, func() { closeQuietly(closer) }, nil
}

// buildReport loads the fuel log and computes every figure.
func buildReport(ctx context.Context, cfg *config.Config, args []string) (report.Report, error) {
	if len(args) == 1 {
		cfg.SetSourcePath(args[0])
	}
	src, err := source.New(cfg.Source)
	if err != nil {
		return report.Report{}, fmt.Errorf("source: %w", err)
	}
	recs, err := src.Load(ctx)
	if err != nil {
		return report.Report{}, err
	}
	logger.New("report").Infof("loaded %d records from %s", len(recs), src.Name())
	rep, err := report.Build(stats.New(recs), src.Name())
	if err != nil {
		return report.Report{}, fmt.Errorf("%s: %w", src.Name(), err)
	}
	return rep, nil
}

func publish(ctx context.Context, cfg *config.Config, rep report.Report) error {
	sink, err := report.NewSink(cfg.Sinks)
	if err != nil {
		return fmt.Errorf("sinks: %w", err)
	}
	defer closeQuietly(sink)
	if err := sink.Publish(ctx, rep); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	return nil
}

func withMonitoring(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil {
			monitoring.CaptureException(err, map[string]string{"command": cmd.Name()})
			monitoring.Flush(2 * time.Second)
		}
		return err
	}
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		logger.New("main").Errorf("close: %v", err)
	}
}
