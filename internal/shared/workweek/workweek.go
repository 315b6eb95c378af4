// Package workweek counts business days (Mon-Fri) in inclusive calendar
// ranges. Dates are treated as local midnight; there is no holiday calendar.
package workweek

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrEndBeforeStart = errors.New("end date is before start date")
	ErrUnparsableDate = errors.New("date is not in YYYY-MM-DD format")
)

// Count returns the number of weekdays in [start, end], both given as
// YYYY-MM-DD strings.
func Count(start, end string) (int, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return 0, ErrUnparsableDate
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return 0, ErrUnparsableDate
	}
	return CountDates(s, e)
}

// CountDates is the time.Time form of Count. Ranges are human-scale, so a
// day-by-day walk is fine.
func CountDates(start, end time.Time) (int, error) {
	if end.Before(start) {
		return 0, ErrEndBeforeStart
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days, nil
}
