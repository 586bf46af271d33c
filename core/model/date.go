package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Date is a calendar date as written in the fuel log ("D.M.YYYY").
// Values are taken as-is: day 99 or month 13 parse without complaint.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// ParseDate parses "D.M.YYYY". Leading zeros are allowed ("7.04.2022").
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("malformed date %q: want D.M.YYYY", s)
	}
	day, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return Date{}, fmt.Errorf("date %q day: %w", s, err)
	}
	month, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return Date{}, fmt.Errorf("date %q month: %w", s, err)
	}
	year, err := strconv.ParseUint(parts[2], 10, 16)
	if err != nil {
		return Date{}, fmt.Errorf("date %q year: %w", s, err)
	}
	return Date{Day: int(day), Month: int(month), Year: int(year)}, nil
}

// String formats the date the way the log writes it, without zero padding.
func (d Date) String() string {
	return fmt.Sprintf("%d.%d.%d", d.Day, d.Month, d.Year)
}
