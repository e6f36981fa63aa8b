// Package interpret turns free-form task text into structured attributes. It
// runs two independent passes: schedule extraction (dates and times) and
// semantic interpretation (category, priority, duration, tags). Both degrade
// gracefully: unparseable input lowers confidence, it never errors.
package interpret

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"guidely/internal/timeutil"
)

// ParsedSchedule is the result of the schedule-extraction pass. Date is nil
// when no date phrase was found; callers default to "today".
type ParsedSchedule struct {
	Date          *time.Time `json:"date,omitempty"`
	FormattedDate string     `json:"formatted_date,omitempty"`
	FormattedTime string     `json:"formatted_time,omitempty"`
	IsPast        bool       `json:"is_past"`
	IsToday       bool       `json:"is_today"`
	IsTomorrow    bool       `json:"is_tomorrow"`
	WeekKey       string     `json:"week_key,omitempty"`
	DayIndex      int        `json:"day_index"`
	CleanedText   string     `json:"cleaned_text"`
}

var (
	absoluteDateRe = regexp.MustCompile(`(?i)\b(\d{4})-(\d{2})-(\d{2})\b`)
	todayRe        = regexp.MustCompile(`(?i)\btoday\b`)
	tomorrowRe     = regexp.MustCompile(`(?i)\btomorrow\b`)
	weekdayRe      = regexp.MustCompile(`(?i)\b(?:(next)\s+)?(?:on\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	clockTimeRe    = regexp.MustCompile(`(?i)\b(?:at\s+)?(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	hourTimeRe     = regexp.MustCompile(`(?i)\b(?:at\s+)?(\d{1,2})\s*(am|pm)\b`)
	spaceRe        = regexp.MustCompile(`\s+`)
)

var weekdayIndex = map[string]int{
	"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
	"friday": 4, "saturday": 5, "sunday": 6,
}

// ExtractSchedule recognizes relative and absolute date phrases plus an
// optional time-of-day token, strips the matched tokens, and returns the
// structured schedule. "now" anchors all relative phrases.
func ExtractSchedule(text string, now time.Time) ParsedSchedule {
	cleaned := text
	var date *time.Time
	today := timeutil.StartOfDay(now)

	if m := absoluteDateRe.FindStringSubmatch(cleaned); m != nil {
		if parsed, err := time.ParseInLocation(timeutil.DateLayout, m[0], now.Location()); err == nil {
			date = &parsed
			cleaned = absoluteDateRe.ReplaceAllString(cleaned, " ")
		}
	}

	if date == nil && todayRe.MatchString(cleaned) {
		date = &today
		cleaned = todayRe.ReplaceAllString(cleaned, " ")
	}

	if date == nil && tomorrowRe.MatchString(cleaned) {
		d := today.AddDate(0, 0, 1)
		date = &d
		cleaned = tomorrowRe.ReplaceAllString(cleaned, " ")
	}

	if date == nil {
		if m := weekdayRe.FindStringSubmatch(cleaned); m != nil {
			target := weekdayIndex[strings.ToLower(m[2])]
			d := nextWeekday(today, target, strings.EqualFold(m[1], "next"))
			date = &d
			cleaned = weekdayRe.ReplaceAllString(cleaned, " ")
		}
	}

	formattedTime, cleaned := extractTime(cleaned)

	schedule := ParsedSchedule{
		FormattedTime: formattedTime,
		DayIndex:      timeutil.DayIndex(today),
		CleanedText:   tidy(cleaned),
	}

	if date != nil {
		schedule.Date = date
		schedule.FormattedDate = date.Format(timeutil.DateLayout)
		schedule.IsPast = date.Before(today)
		schedule.IsToday = timeutil.SameDay(*date, today)
		schedule.IsTomorrow = timeutil.SameDay(*date, today.AddDate(0, 0, 1))
		schedule.WeekKey = timeutil.WeekKey(*date)
		schedule.DayIndex = timeutil.DayIndex(*date)
	} else {
		schedule.WeekKey = timeutil.WeekKey(today)
	}

	return schedule
}

// extractTime pulls the first HH:MM or Ham/pm token out of the text and
// returns it normalized to 24h HH:MM.
func extractTime(text string) (string, string) {
	if m := clockTimeRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour <= 23 && minute <= 59 {
			hour = applyMeridiem(hour, m[3])
			return fmt.Sprintf("%02d:%02d", hour, minute), clockTimeRe.ReplaceAllString(text, " ")
		}
	}
	if m := hourTimeRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour <= 12 {
			hour = applyMeridiem(hour, m[2])
			return fmt.Sprintf("%02d:00", hour), hourTimeRe.ReplaceAllString(text, " ")
		}
	}
	return "", text
}

func applyMeridiem(hour int, meridiem string) int {
	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return hour
}

// nextWeekday returns the next occurrence of a Monday-based weekday strictly
// after consideration of "next": plain weekday means the upcoming one (today
// counts), "next <weekday>" skips ahead a full week.
func nextWeekday(today time.Time, target int, explicitNext bool) time.Time {
	delta := (target - timeutil.DayIndex(today) + 7) % 7
	if explicitNext {
		delta += 7
	}
	return today.AddDate(0, 0, delta)
}

func tidy(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}
