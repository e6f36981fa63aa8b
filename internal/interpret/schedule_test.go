package interpret

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sunday, 2026-08-23.
var scheduleNow = time.Date(2026, time.August, 23, 10, 30, 0, 0, time.UTC)

func TestExtractScheduleTomorrowWithMeridiemTime(t *testing.T) {
	s := ExtractSchedule("Gym workout tomorrow at 7am", scheduleNow)

	require.NotNil(t, s.Date)
	assert.Equal(t, "2026-08-24", s.FormattedDate)
	assert.Equal(t, "07:00", s.FormattedTime)
	assert.True(t, s.IsTomorrow)
	assert.False(t, s.IsToday)
	assert.False(t, s.IsPast)
	assert.Equal(t, 0, s.DayIndex, "Aug 24 is a Monday")
	assert.Equal(t, "2026-W35", s.WeekKey)
	assert.Equal(t, "Gym workout", s.CleanedText)
}

func TestExtractScheduleToday(t *testing.T) {
	s := ExtractSchedule("review the report today", scheduleNow)

	require.NotNil(t, s.Date)
	assert.True(t, s.IsToday)
	assert.Equal(t, "2026-08-23", s.FormattedDate)
	assert.Equal(t, "review the report", s.CleanedText)
}

func TestExtractScheduleAbsoluteDate(t *testing.T) {
	s := ExtractSchedule("dentist on 2026-09-01 at 14:30", scheduleNow)

	require.NotNil(t, s.Date)
	assert.Equal(t, "2026-09-01", s.FormattedDate)
	assert.Equal(t, "14:30", s.FormattedTime)
	assert.Equal(t, 1, s.DayIndex, "Sep 1 is a Tuesday")
	assert.Equal(t, "dentist on", s.CleanedText)
}

func TestExtractSchedulePastDateFlagged(t *testing.T) {
	s := ExtractSchedule("submit form 2026-08-01", scheduleNow)

	require.NotNil(t, s.Date)
	assert.True(t, s.IsPast)
	assert.False(t, s.IsToday)
}

func TestExtractScheduleWeekday(t *testing.T) {
	// "friday" from Sunday Aug 23 means the upcoming Friday, Aug 28.
	s := ExtractSchedule("team lunch on friday", scheduleNow)

	require.NotNil(t, s.Date)
	assert.Equal(t, "2026-08-28", s.FormattedDate)
	assert.Equal(t, 4, s.DayIndex)
	assert.Equal(t, "team lunch", s.CleanedText)
}

func TestExtractScheduleNextWeekdaySkipsAWeek(t *testing.T) {
	// Plain "sunday" on a Sunday is today; "next sunday" is a week out.
	plain := ExtractSchedule("family dinner sunday", scheduleNow)
	require.NotNil(t, plain.Date)
	assert.Equal(t, "2026-08-23", plain.FormattedDate)
	assert.True(t, plain.IsToday)

	next := ExtractSchedule("family dinner next sunday", scheduleNow)
	require.NotNil(t, next.Date)
	assert.Equal(t, "2026-08-30", next.FormattedDate)
}

func TestExtractScheduleNoDateDefaultsToCurrentWeek(t *testing.T) {
	s := ExtractSchedule("write the newsletter", scheduleNow)

	assert.Nil(t, s.Date)
	assert.Equal(t, "2026-W34", s.WeekKey)
	assert.Equal(t, 6, s.DayIndex, "defaults to today's weekday")
	assert.Equal(t, "write the newsletter", s.CleanedText)
}

func TestExtractTimeVariants(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"meeting at 9:15", "09:15"},
		{"meeting at 9:15pm", "21:15"},
		{"meeting at 12:00am", "00:00"},
		{"call at 5pm", "17:00"},
		{"call at 12pm", "12:00"},
		{"call at 12am", "00:00"},
		{"no time here", ""},
	}

	for _, tt := range tests {
		s := ExtractSchedule(tt.text, scheduleNow)
		assert.Equal(t, tt.want, s.FormattedTime, "text %q", tt.text)
	}
}

func TestCleanedTextCollapsesWhitespace(t *testing.T) {
	s := ExtractSchedule("  gym   tomorrow   at 7am  ", scheduleNow)
	assert.Equal(t, "gym", s.CleanedText)
}
