package domain

import (
	"sort"
	"time"
)

// uniqueDaysDesc normalizes dates to calendar days, drops duplicates and sorts them
// most recent first.
func uniqueDaysDesc(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))

	for _, d := range dates {
		day := CalendarDay(d)
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	return days
}

// ComputeStreak returns the number of consecutive login days ending today or
// yesterday. Input order and duplicates do not matter.
func ComputeStreak(loginDates []time.Time, today time.Time) int {
	days := uniqueDaysDesc(loginDates)
	if len(days) == 0 {
		return 0
	}

	if daysBetween(CalendarDay(today), days[0]) > 1 {
		return 0
	}

	streak := 1
	for i := 0; i < len(days)-1; i++ {
		if daysBetween(days[i], days[i+1]) != 1 {
			break
		}
		streak++
	}

	return streak
}

// ComputeLongestStreak returns the longest run of consecutive days in loginDates,
// wherever it happens.
func ComputeLongestStreak(loginDates []time.Time) int {
	days := uniqueDaysDesc(loginDates)
	if len(days) == 0 {
		return 0
	}

	longest := 1
	run := 1
	for i := 0; i < len(days)-1; i++ {
		if daysBetween(days[i], days[i+1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return longest
}
