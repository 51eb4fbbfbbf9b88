package domain

import "time"

// AvailableDay represents a single free day of an office together with
// the demand-based price multiplier for that day
type AvailableDay struct {
	Date            time.Time
	PriceMultiplier float64
}

// MonthWindow returns the first and last day of the calendar month
// containing the reference date
func MonthWindow(reference time.Time) (time.Time, time.Time) {
	first := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}
