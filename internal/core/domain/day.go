package domain

import (
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

// CalendarDay keeps the year, month and day of t as seen in t's own location and
// returns that day at midnight UTC. Two values from the same local day compare equal.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a calendar day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDay, s)
	}
	return t, nil
}

// daysBetween expects two calendar days.
func daysBetween(later, earlier time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
