// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/iwvelando/trident/pkg/constants"
)

const (
	// DateTimeLayout is the month format used for chart series.
	DateTimeLayout = constants.DateTimeLayout
)

// OffsetDate returns the string-formatted date offset by the given number of
// months relative to the given date.
func OffsetDate(date, layout string, months int) (string, error) {
	t, err := time.Parse(layout, date)
	if err != nil {
		return date, err
	}
	return t.AddDate(0, months, 0).Format(layout), nil
}

// MonthRange returns count consecutive months starting at start.
func MonthRange(start string, count int) ([]string, error) {
	if _, err := time.Parse(DateTimeLayout, start); err != nil {
		return nil, err
	}
	months := make([]string, count)
	for i := range months {
		month, err := OffsetDate(start, DateTimeLayout, i)
		if err != nil {
			return nil, err
		}
		months[i] = month
	}
	return months, nil
}
