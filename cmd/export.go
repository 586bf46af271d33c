package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fuelstats/infra/logger"
	"github.com/kilianp07/fuelstats/pkg/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:          "export [fuel log]",
	Short:        "Write the report as JSON or per-year CSV",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         withMonitoring(runExport),
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format (json or csv)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	rep, err := buildReport(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}
	return writeOutput(cmd, exportOut, func(w io.Writer) error {
		return export.Write(w, exportFormat, rep)
	})
}

// writeOutput runs write against path, or stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		if rerr := os.Remove(path); rerr != nil {
			logger.New("main").Warnf("remove %s: %v", path, rerr)
		}
		return err
	}
	return f.Close()
}
