// Package report turns fuel log statistics into the figures printed by the
// CLI and handed to the configured sinks.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/fuelstats/core/model"
	"github.com/kilianp07/fuelstats/core/stats"
)

// Currency is the unit printed next to money amounts.
const Currency = "Euro"

var (
	now   = time.Now
	newID = uuid.NewString
)

// Report holds every figure of one run. All values are computed up front so
// a failing query aborts before anything is printed.
type Report struct {
	RunID         string            `json:"run_id"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Source        string            `json:"source"`
	Records       int               `json:"records"`
	FirstDate     model.Date        `json:"first_date"`
	LastDate      model.Date        `json:"last_date"`
	CostPerYear   []stats.YearTotal `json:"cost_per_year"`
	LitersPerYear []stats.YearTotal `json:"liters_per_year"`
	Kilometers    int               `json:"kilometers"`
	TotalLiters   float64           `json:"total_liters"`
	TotalCost     float64           `json:"total_cost"`
	AveragePrice  float64           `json:"average_price"`
	Consumption   float64           `json:"consumption_per_100km"`
	CostPer100km  float64           `json:"cost_per_100km"`
}

// Build runs every query against st. source names the input in the report.
func Build(st *stats.Statistics, source string) (Report, error) {
	km, err := st.Kilometers()
	if err != nil {
		return Report{}, err
	}
	avg, err := st.Average()
	if err != nil {
		return Report{}, err
	}
	cons, err := st.Consumption()
	if err != nil {
		return Report{}, err
	}
	first, _ := st.First()
	last, _ := st.Last()
	return Report{
		RunID:         newID(),
		GeneratedAt:   now(),
		Source:        source,
		Records:       st.Len(),
		FirstDate:     first.Date,
		LastDate:      last.Date,
		CostPerYear:   st.Years(stats.Cost),
		LitersPerYear: st.Years(stats.Liters),
		Kilometers:    km,
		TotalLiters:   st.Total(stats.Liters),
		TotalCost:     st.Total(stats.Cost),
		AveragePrice:  avg,
		Consumption:   cons,
		CostPer100km:  cons * avg,
	}, nil
}

// Render writes the human readable report.
func Render(w io.Writer, r Report) error {
	var b strings.Builder
	writeYears(&b, "Cost per year", r.CostPerYear, Currency)
	b.WriteString("\n")
	writeYears(&b, "Liters per year", r.LitersPerYear, "liters")
	fmt.Fprintf(&b, "\nKilometers driven: %d.\n", r.Kilometers)
	fmt.Fprintf(&b, "\nTotal consumption: %.2f liters.\n", r.TotalLiters)
	fmt.Fprintf(&b, "\nTotal cost: %.2f %s.\n", r.TotalCost, Currency)
	fmt.Fprintf(&b, "\nAverage cost: %.2f %s per liter.\n", r.AveragePrice, Currency)
	fmt.Fprintf(&b, "\nConsumption: %.2f liters per 100 km.\n", r.Consumption)
	fmt.Fprintf(&b, "\nCost: %.2f %s per 100 km.\n\n", r.CostPer100km, Currency)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeYears(b *strings.Builder, title string, years []stats.YearTotal, unit string) {
	fmt.Fprintf(b, "%s:\n%s\n", title, strings.Repeat("-", len(title)+1))
	for _, y := range years {
		fmt.Fprintf(b, "Year %d: %8.2f %s.\n", y.Year, y.Total, unit)
	}
}
