package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarDay(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	late := time.Date(2026, 1, 28, 23, 45, 0, 0, rome)
	assert.Equal(t, time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC), CalendarDay(late))
	assert.Equal(t, CalendarDay(late), CalendarDay(late.Add(-20*time.Hour)))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2026-10-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDay("14/10/2026")
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestDaysBetween_DST(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}

	// Clocks move forward on 2026-03-29 in Rome; local midnights are 23h apart.
	before := CalendarDay(time.Date(2026, 3, 29, 0, 0, 0, 0, rome))
	after := CalendarDay(time.Date(2026, 3, 30, 0, 0, 0, 0, rome))
	assert.Equal(t, 1, daysBetween(after, before))
}
