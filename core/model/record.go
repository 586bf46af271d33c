package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldSeparator splits the columns of a fuel log line.
const FieldSeparator = "\t"

// Record is one fuel log entry.
type Record struct {
	Date   Date    `json:"date"`
	KM     int     `json:"km"`     // cumulative odometer reading
	Liters float64 `json:"liters"` // amount filled
	Cost   float64 `json:"cost"`   // amount paid for the fill
}

// FieldError reports which column of a line could not be parsed.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" && e.Err == nil {
		return fmt.Sprintf("missing field %s", e.Field)
	}
	return fmt.Sprintf("field %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

var fieldNames = [...]string{"date", "km", "liters", "cost"}

// ParseRecord parses a tab separated line: date, km, liters, cost.
// Liters and cost use a decimal comma. Columns after the fourth are ignored.
func ParseRecord(line string) (Record, error) {
	if strings.TrimSpace(line) == "" {
		return Record{}, &FieldError{Field: fieldNames[0]}
	}
	cols := strings.Split(line, FieldSeparator)
	if len(cols) < len(fieldNames) {
		return Record{}, &FieldError{Field: fieldNames[len(cols)]}
	}
	for i := range fieldNames {
		cols[i] = strings.TrimSpace(cols[i])
	}

	var (
		rec Record
		err error
	)
	if rec.Date, err = ParseDate(cols[0]); err != nil {
		return Record{}, &FieldError{Field: "date", Value: cols[0], Err: err}
	}
	km, err := strconv.ParseUint(cols[1], 10, 32)
	if err != nil {
		return Record{}, &FieldError{Field: "km", Value: cols[1], Err: err}
	}
	rec.KM = int(km)
	if rec.Liters, err = ParseDecimal(cols[2]); err != nil {
		return Record{}, &FieldError{Field: "liters", Value: cols[2], Err: err}
	}
	if rec.Cost, err = ParseDecimal(cols[3]); err != nil {
		return Record{}, &FieldError{Field: "cost", Value: cols[3], Err: err}
	}
	return rec, nil
}

// ParseDecimal parses a number written with a decimal comma ("90,5").
// A decimal point is accepted as well; thousands separators and hex floats
// are not.
func ParseDecimal(s string) (float64, error) {
	if strings.ContainsAny(s, "xX") {
		return 0, errNotDecimal
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

var (
	errNotFinite  = errors.New("not a finite number")
	errNotDecimal = errors.New("not a decimal number")
)
