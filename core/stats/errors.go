package stats

import "errors"

var (
	// ErrTooFewRecords is returned by distance based queries on logs with
	// fewer than two entries.
	ErrTooFewRecords = errors.New("at least two records are required")
	// ErrZeroDistance is returned when first and last odometer readings match.
	ErrZeroDistance = errors.New("distance driven is zero")
	// ErrZeroLiters is returned when the log holds no fuel at all.
	ErrZeroLiters = errors.New("total liters is zero")
	// ErrOdometerRollback is returned when the last odometer reading is below the first.
	ErrOdometerRollback = errors.New("last odometer reading is below the first")
)
