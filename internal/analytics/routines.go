package analytics

import (
	"time"

	"guidely/internal/model"
	"guidely/internal/timeutil"
)

const (
	// Weekday-vs-weekend completion gap (points) that triggers the weekend
	// routine suggestion.
	weekendGapThreshold = 20.0

	maxRoutineSuggestions = 4

	routineBaseConfidence    = 55.0
	routineSignalConfidence  = 15.0
	routineConfidenceCeiling = 100.0
)

// SuggestedRoutine is a candidate recurring routine synthesized from the
// user's signals. IDs are stable per rule so recomputation is reproducible.
type SuggestedRoutine struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Emoji         string   `json:"emoji"`
	Category      string   `json:"category"`  // planning | review | wellness | focus | social
	Frequency     string   `json:"frequency"` // daily | weekly | biweekly
	SuggestedDay  string   `json:"suggested_day,omitempty"`
	SuggestedTime string   `json:"suggested_time,omitempty"`
	Description   string   `json:"description"`
	Tasks         []string `json:"tasks"`
	Rationale     string   `json:"rationale"`
	Confidence    float64  `json:"confidence"` // 0-100
}

// SuggestRoutines synthesizes up to four routine suggestions from the
// assembled signals. Rule-driven; each rule fires independently.
func SuggestRoutines(snap *model.Snapshot, habits []HabitProfile, focus FocusAnalysis, burnout BurnoutAnalysis) []SuggestedRoutine {
	var routines []SuggestedRoutine

	if gap, ok := WeekdayWeekendGap(snap); ok && gap > weekendGapThreshold {
		signals := 1
		if len(habits) >= 3 {
			signals++
		}
		routines = append(routines, SuggestedRoutine{
			ID:           "routine-weekend-reset",
			Name:         "Weekend reset",
			Emoji:        "🌤",
			Category:     "planning",
			Frequency:    "weekly",
			SuggestedDay: "Saturday",
			Description:  "A light Saturday anchor so weekends stop being a dead zone",
			Tasks:        []string{"Pick one habit to keep alive over the weekend", "15-minute Saturday morning check-in", "Prep anything Monday-you will thank you for"},
			Rationale:    "Your weekday completion runs well ahead of your weekends",
			Confidence:   routineConfidence(signals),
		})
	}

	if burnout.Stage == StageWarning || burnout.Stage == StageBurnout {
		signals := 1
		if len(burnout.Factors) >= 2 {
			signals++
		}
		if burnout.Trend == "increasing" {
			signals++
		}
		routines = append(routines, SuggestedRoutine{
			ID:            "routine-wellness-block",
			Name:          "Wellness wind-down",
			Emoji:         "🌿",
			Category:      "wellness",
			Frequency:     "daily",
			SuggestedTime: "20:30",
			Description:   "A short nightly decompress to take pressure off the system",
			Tasks:         []string{"10 minutes away from screens", "Note one thing that went fine today", "Set tomorrow's single must-do"},
			Rationale:     "Your burnout signals are elevated; recovery needs a fixed slot",
			Confidence:    routineConfidence(signals),
		})
	}

	if week := snap.CurrentWeek(); week == nil || len(week.Tasks) == 0 {
		routines = append(routines, SuggestedRoutine{
			ID:           "routine-weekly-planning",
			Name:         "Weekly planning session",
			Emoji:        "🗓",
			Category:     "planning",
			Frequency:    "weekly",
			SuggestedDay: "Sunday",
			Description:  "20 minutes to lay the week out before it lays you out",
			Tasks:        []string{"Review last week's wins and misses", "Pick 3-5 tasks for the week", "Assign each task a day"},
			Rationale:    "This week has no planned tasks yet",
			Confidence:   routineConfidence(1),
		})
	}

	if focus.OptimalSlot.Time != "" {
		signals := 1
		if focus.OptimalSlot.Score >= 60 {
			signals++
		}
		routines = append(routines, SuggestedRoutine{
			ID:            "routine-deep-focus",
			Name:          "Deep focus block",
			Emoji:         "🎯",
			Category:      "focus",
			Frequency:     "daily",
			SuggestedDay:  focus.OptimalSlot.Day,
			SuggestedTime: focus.OptimalSlot.Time,
			Description:   "Protect your strongest window for the work that matters",
			Tasks:         []string{"Silence notifications for the block", "One task only, chosen the night before"},
			Rationale:     "Your completions cluster in the " + focus.OptimalSlot.Time,
			Confidence:    routineConfidence(signals),
		})
	}

	if len(routines) > maxRoutineSuggestions {
		routines = routines[:maxRoutineSuggestions]
	}
	return routines
}

func routineConfidence(signals int) float64 {
	c := routineBaseConfidence + float64(signals)*routineSignalConfidence
	if c > routineConfidenceCeiling {
		c = routineConfidenceCeiling
	}
	return c
}

// WeekdayWeekendGap returns weekday average completion minus weekend average
// completion, in points. ok is false until both sides have data.
func WeekdayWeekendGap(snap *model.Snapshot) (float64, bool) {
	var weekdaySum, weekendSum float64
	var weekdayN, weekendN int

	forEachDay(snap, func(date time.Time, entry *model.DayEntry) {
		month := snap.Months[timeutil.MonthKey(date)]
		if month == nil || len(month.Habits) == 0 {
			return
		}
		pct := dayCompletionPct(entry, month.Habits)
		if timeutil.IsWeekend(timeutil.DayIndex(date)) {
			weekendSum += pct
			weekendN++
		} else {
			weekdaySum += pct
			weekdayN++
		}
	})

	if weekdayN == 0 || weekendN == 0 {
		return 0, false
	}
	return weekdaySum/float64(weekdayN) - weekendSum/float64(weekendN), true
}
