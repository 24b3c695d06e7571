package domain

import (
	"fmt"
	"time"
)

const monthKeyLayout = "2006-01"

// ParseMonthKey validates a "YYYY-MM" month key and returns its time value
// (first instant of the month, UTC).
func ParseMonthKey(month string) (time.Time, error) {
	t, err := time.Parse(monthKeyLayout, month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM: %w", month, err)
	}
	return t, nil
}

// MonthKey formats t as a "YYYY-MM" month key.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// MonthRange returns the inclusive [start, end] timestamps covering the
// calendar month identified by the key.
func MonthRange(month string) (start, end time.Time, err error) {
	start, err = ParseMonthKey(month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}
