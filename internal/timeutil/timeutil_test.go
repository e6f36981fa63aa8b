package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-08", MonthKey(date(2026, time.August, 23)))
	assert.Equal(t, "2026-01", MonthKey(date(2026, time.January, 1)))
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"mid year", date(2026, time.August, 23), "2026-W34"},
		{"jan 1 belongs to previous iso year", date(2027, time.January, 1), "2026-W53"},
		{"single digit week zero padded", date(2026, time.January, 7), "2026-W02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekKey(tt.in))
		})
	}
}

func TestDayIndex(t *testing.T) {
	// 2026-08-17 is a Monday.
	for i := 0; i < 7; i++ {
		assert.Equal(t, i, DayIndex(date(2026, time.August, 17+i)))
	}
}

func TestWeekStart(t *testing.T) {
	sunday := date(2026, time.August, 23)
	monday := date(2026, time.August, 17)
	assert.Equal(t, monday, WeekStart(sunday))
	assert.Equal(t, monday, WeekStart(monday))
}

func TestFirstDayOfISOWeek(t *testing.T) {
	got := FirstDayOfISOWeek(2026, 34)
	assert.Equal(t, date(2026, time.August, 17), got)
	assert.Equal(t, time.Monday, got.Weekday())
}

func TestWeekDateRange(t *testing.T) {
	monday, sunday := WeekDateRange(2026, 34)
	assert.Equal(t, date(2026, time.August, 17), monday)
	assert.Equal(t, date(2026, time.August, 23), sunday)
	assert.Equal(t, time.Sunday, sunday.Weekday())
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(date(2026, time.August, 5)))
	assert.Equal(t, 28, DaysInMonth(date(2026, time.February, 5)))
	assert.Equal(t, 29, DaysInMonth(date(2028, time.February, 5)))
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Monday", WeekdayName(0))
	assert.Equal(t, "Sunday", WeekdayName(6))
	assert.Equal(t, "", WeekdayName(7))
}

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(4))
	assert.True(t, IsWeekend(5))
	assert.True(t, IsWeekend(6))
}
