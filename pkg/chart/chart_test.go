package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/fuelstats/core/report"
	"github.com/kilianp07/fuelstats/core/stats"
)

func TestRender(t *testing.T) {
	r := report.Report{
		Source:        "tanken.txt",
		CostPerYear:   []stats.YearTotal{{Year: 2022, Total: 108}, {Year: 2023, Total: 92.456}},
		LitersPerYear: []stats.YearTotal{{Year: 2022, Total: 70}, {Year: 2023, Total: 50.5}},
		Kilometers:    1000,
		Consumption:   7,
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r))
	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Fuel per year")
	assert.Contains(t, html, "2023")
	assert.Contains(t, html, "92.46")
}
