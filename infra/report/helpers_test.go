package report

import (
	"time"

	corereport "github.com/kilianp07/fuelstats/core/report"
	"github.com/kilianp07/fuelstats/core/stats"
)

func sampleReport() corereport.Report {
	return corereport.Report{
		RunID:         "run-1",
		GeneratedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Source:        "tanken.txt",
		Records:       3,
		CostPerYear:   []stats.YearTotal{{Year: 2022, Total: 108}, {Year: 2023, Total: 92}},
		LitersPerYear: []stats.YearTotal{{Year: 2022, Total: 70}, {Year: 2023, Total: 50}},
		Kilometers:    1000,
		TotalLiters:   120,
		TotalCost:     200,
		AveragePrice:  200.0 / 120.0,
		Consumption:   7,
		CostPer100km:  7 * 200.0 / 120.0,
	}
}
