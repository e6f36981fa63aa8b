// Package timeutil provides the calendar key derivations everything above it
// depends on: ISO week keys, month keys, Monday-based day indexes and day
// boundary logic. All functions are pure.
package timeutil

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// MonthKey returns the YYYY-MM key a date's records are stored under.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// WeekKey returns the ISO week key (YYYY-Www) a date's records are stored under.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// DayIndex returns the Monday-based weekday index (Monday=0 ... Sunday=6).
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns midnight of the Monday of t's ISO week, in t's location.
func WeekStart(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -DayIndex(d))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DaysInMonth returns the number of calendar days in t's month.
func DaysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}

// FirstDayOfISOWeek returns the Monday a given ISO year/week starts on.
func FirstDayOfISOWeek(year, week int) time.Time {
	date := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	isoYear, isoWeek := date.ISOWeek()

	for date.Weekday() != time.Monday {
		date = date.AddDate(0, 0, -1)
		isoYear, isoWeek = date.ISOWeek()
	}

	for isoYear < year {
		date = date.AddDate(0, 0, 7)
		isoYear, isoWeek = date.ISOWeek()
	}

	for isoWeek < week {
		date = date.AddDate(0, 0, 7)
		isoYear, isoWeek = date.ISOWeek()
	}

	return date
}

// WeekDateRange returns the Monday and Sunday bounding an ISO week.
func WeekDateRange(year, week int) (time.Time, time.Time) {
	start := FirstDayOfISOWeek(year, week)
	return start, start.AddDate(0, 0, 6)
}

// WeekdayName returns the display name for a Monday-based day index.
func WeekdayName(dayIndex int) string {
	names := [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if dayIndex < 0 || dayIndex > 6 {
		return ""
	}
	return names[dayIndex]
}

// IsWeekend reports whether a Monday-based day index is Saturday or Sunday.
func IsWeekend(dayIndex int) bool {
	return dayIndex >= 5
}
