package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout      = "02/01/2006"
	MonthYearLayout = "01/2006"
)

// ParseDate reads a DD/MM/YYYY date, also accepting ISO YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want DD/MM/YYYY", s)
}

// ParseMonthYear reads an MM/YYYY deadline. The result is the first day of
// that month.
func ParseMonthYear(s string) (time.Time, error) {
	t, err := time.Parse(MonthYearLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: want MM/YYYY", s)
	}
	return t, nil
}

// MonthsBetween counts calendar months from from to to, inclusive of the
// month of to. It is zero or negative once to's month has passed.
func MonthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
}
