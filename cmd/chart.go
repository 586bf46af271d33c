package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/kilianp07/fuelstats/pkg/chart"
)

var chartOut string

var chartCmd = &cobra.Command{
	Use:          "chart [fuel log]",
	Short:        "Render cost and liters per year as an HTML bar chart",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         withMonitoring(runChart),
}

func init() {
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "fuel.html", "output file, - for stdout")
	rootCmd.AddCommand(chartCmd)
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	rep, err := buildReport(cmd.Context(), cfg, args)
	if err != nil {
		return err
	}
	out := chartOut
	if out == "-" {
		out = ""
	}
	return writeOutput(cmd, out, func(w io.Writer) error {
		return chart.Render(w, rep)
	})
}
