package stats

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/fuelstats/core/model"
)

// Selector extracts one numeric field of a record.
type Selector func(model.Record) float64

// Liters selects the amount of fuel filled.
func Liters(r model.Record) float64 { return r.Liters }

// Cost selects the amount paid.
func Cost(r model.Record) float64 { return r.Cost }

// YearTotal is the sum of a selected field over one calendar year.
type YearTotal struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

// Statistics answers aggregate queries over an immutable record sequence.
type Statistics struct {
	records []model.Record
}

// New copies records, keeping their order.
func New(records []model.Record) *Statistics {
	data := make([]model.Record, len(records))
	copy(data, records)
	return &Statistics{records: data}
}

// Len returns the number of records.
func (s *Statistics) Len() int { return len(s.records) }

// Records returns a copy of the records in input order.
func (s *Statistics) Records() []model.Record {
	out := make([]model.Record, len(s.records))
	copy(out, s.records)
	return out
}

// First returns the first record in input order.
func (s *Statistics) First() (model.Record, bool) {
	if len(s.records) == 0 {
		return model.Record{}, false
	}
	return s.records[0], true
}

// Last returns the last record in input order.
func (s *Statistics) Last() (model.Record, bool) {
	if len(s.records) == 0 {
		return model.Record{}, false
	}
	return s.records[len(s.records)-1], true
}

// Years sums sel per year, ascending by year. Years without records are absent.
func (s *Statistics) Years(sel Selector) []YearTotal {
	sums := make(map[int]float64)
	for _, r := range s.records {
		sums[r.Date.Year] += sel(r)
	}
	out := make([]YearTotal, 0, len(sums))
	for y, v := range sums {
		out = append(out, YearTotal{Year: y, Total: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Total sums sel over all records.
func (s *Statistics) Total(sel Selector) float64 {
	return floats.Sum(s.values(sel))
}

// Kilometers is the distance between the first and the last odometer reading
// in input order. Records are not sorted by date first.
func (s *Statistics) Kilometers() (int, error) {
	if len(s.records) < 2 {
		return 0, fmt.Errorf("kilometers over %d record(s): %w", len(s.records), ErrTooFewRecords)
	}
	first, last := s.records[0], s.records[len(s.records)-1]
	if last.KM < first.KM {
		return 0, fmt.Errorf("kilometers %d -> %d: %w", first.KM, last.KM, ErrOdometerRollback)
	}
	return last.KM - first.KM, nil
}

// Consumption returns liters per 100 km. The last fill has not been driven
// yet, so its liters are left out of the sum.
func (s *Statistics) Consumption() (float64, error) {
	km, err := s.Kilometers()
	if err != nil {
		return 0, err
	}
	if km == 0 {
		return 0, fmt.Errorf("consumption: %w", ErrZeroDistance)
	}
	liters := s.Total(Liters) - s.records[len(s.records)-1].Liters
	return liters / float64(km) * 100, nil
}

// Average returns the overall price per liter, total cost over total liters.
func (s *Statistics) Average() (float64, error) {
	liters := s.Total(Liters)
	if liters == 0 {
		return 0, fmt.Errorf("average price: %w", ErrZeroLiters)
	}
	return s.Total(Cost) / liters, nil
}

// CostPer100km is Consumption multiplied by Average.
func (s *Statistics) CostPer100km() (float64, error) {
	c, err := s.Consumption()
	if err != nil {
		return 0, err
	}
	avg, err := s.Average()
	if err != nil {
		return 0, err
	}
	return c * avg, nil
}

func (s *Statistics) values(sel Selector) []float64 {
	v := make([]float64, len(s.records))
	for i, r := range s.records {
		v[i] = sel(r)
	}
	return v
}
