// Package export writes reports in machine readable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/fuelstats/core/report"
)

// Formats lists the accepted values for Write.
var Formats = []string{"json", "csv"}

// Write dispatches on format.
func Write(w io.Writer, format string, r report.Report) error {
	switch format {
	case "json":
		return WriteJSON(w, r)
	case "csv":
		return WriteCSV(w, r)
	default:
		return fmt.Errorf("unsupported export format %q (want one of %v)", format, Formats)
	}
}

// WriteJSON writes the whole report as indented JSON.
func WriteJSON(w io.Writer, r report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV writes one row per year with cost and liters.
func WriteCSV(w io.Writer, r report.Report) error {
	liters := make(map[int]float64, len(r.LitersPerYear))
	for _, y := range r.LitersPerYear {
		liters[y.Year] = y.Total
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "cost", "liters"}); err != nil {
		return err
	}
	for _, y := range r.CostPerYear {
		rec := []string{
			strconv.Itoa(y.Year),
			strconv.FormatFloat(y.Total, 'f', 2, 64),
			strconv.FormatFloat(liters[y.Year], 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
