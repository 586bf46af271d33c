// Package chart renders per-year fuel figures as an HTML bar chart.
package chart

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/fuelstats/core/report"
)

// Render writes a bar chart with cost and liters per year.
func Render(w io.Writer, r report.Report) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Fuel per year",
			Subtitle: fmt.Sprintf("%s, %d km, %.2f l/100 km", r.Source, r.Kilometers, r.Consumption),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
	)

	liters := make(map[int]float64, len(r.LitersPerYear))
	for _, y := range r.LitersPerYear {
		liters[y.Year] = y.Total
	}
	var (
		years     []string
		costBars  []opts.BarData
		literBars []opts.BarData
	)
	for _, y := range r.CostPerYear {
		years = append(years, strconv.Itoa(y.Year))
		costBars = append(costBars, opts.BarData{Value: round2(y.Total)})
		literBars = append(literBars, opts.BarData{Value: round2(liters[y.Year])})
	}
	bar.SetXAxis(years).
		AddSeries("Cost ("+report.Currency+")", costBars).
		AddSeries("Liters", literBars)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

func round2(f float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	return v
}
