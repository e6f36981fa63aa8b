package analytics

import (
	"math"
	"time"

	"guidely/internal/model"
	"guidely/internal/timeutil"
)

const (
	// Productivity score blend.
	productivityHabitWeight = 0.6
	productivityTaskWeight  = 0.4

	moodTrendWindowDays = 7
)

// UserBehaviorProfile aggregates every sub-analysis. Entirely derived:
// recomputed from the snapshot on each call, never persisted.
type UserBehaviorProfile struct {
	HabitProfiles               []HabitProfile          `json:"habit_profiles"`
	AvgMood                     float64                 `json:"avg_mood"`
	AvgMotivation               float64                 `json:"avg_motivation"`
	MoodTrend                   float64                 `json:"mood_trend"` // recent 7d minus prior 7d
	MoodProductivityCorrelation float64                 `json:"mood_productivity_correlation"` // -1..1
	ProductivityScore           float64                 `json:"productivity_score"` // 0-100
	WeeklyTaskRate              float64                 `json:"weekly_task_rate"`   // 0-100
	PerfectDaysThisMonth        int                     `json:"perfect_days_this_month"`
	PeakDays                    []string                `json:"peak_days"`
	Burnout                     BurnoutAnalysis         `json:"burnout_analysis"`
	Procrastination             ProcrastinationAnalysis `json:"procrastination_analysis"`
	Focus                       FocusAnalysis           `json:"focus_analysis"`
	SuggestedRoutines           []SuggestedRoutine      `json:"suggested_routines"`
}

// BuildProfile is the single orchestrating call: a flat composition of
// independent pure functions over one snapshot.
func BuildProfile(snap *model.Snapshot) *UserBehaviorProfile {
	habits := BuildHabitProfiles(snap)
	focus := AnalyzeFocus(snap)
	burnout := AnalyzeBurnout(snap)

	profile := &UserBehaviorProfile{
		HabitProfiles:   habits,
		Burnout:         burnout,
		Procrastination: AnalyzeProcrastination(snap),
		Focus:           focus,
	}

	profile.AvgMood, profile.AvgMotivation = moodAverages(snap)
	profile.MoodTrend = moodTrend(snap)
	profile.MoodProductivityCorrelation = moodProductivityCorrelation(snap)
	profile.WeeklyTaskRate = weeklyTaskRate(snap.CurrentWeek())
	profile.ProductivityScore = productivityScore(habits, profile.WeeklyTaskRate)
	profile.PerfectDaysThisMonth = perfectDays(snap)
	profile.PeakDays = peakDays(focus.WeeklyFocusHeatmap)
	profile.SuggestedRoutines = SuggestRoutines(snap, habits, focus, burnout)

	return profile
}

func moodAverages(snap *model.Snapshot) (avgMood, avgMotivation float64) {
	moods, motivations := moodSeries(snap, snap.Now, 3650)
	return round1(mean(moods)), round1(mean(motivations))
}

// moodTrend is the 7-day mood average minus the previous 7-day average.
func moodTrend(snap *model.Snapshot) float64 {
	recent, _ := moodSeries(snap, snap.Now, moodTrendWindowDays)
	previous, _ := moodSeries(snap, snap.Now.AddDate(0, 0, -moodTrendWindowDays), moodTrendWindowDays)
	if len(recent) == 0 || len(previous) == 0 {
		return 0
	}
	return round1(mean(recent) - mean(previous))
}

// moodProductivityCorrelation is the Pearson correlation between a day's mood
// and its completion percentage, over all days with both present.
func moodProductivityCorrelation(snap *model.Snapshot) float64 {
	var moods, pcts []float64
	forEachDay(snap, func(date time.Time, entry *model.DayEntry) {
		if entry.Mood == 0 {
			return
		}
		month := snap.Months[timeutil.MonthKey(date)]
		if month == nil || len(month.Habits) == 0 {
			return
		}
		moods = append(moods, float64(entry.Mood))
		pcts = append(pcts, dayCompletionPct(entry, month.Habits))
	})
	return round2(pearson(moods, pcts))
}

func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	var cov, vx, vy float64
	for i := 0; i < n; i++ {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}

// weeklyTaskRate is the completion percentage of the current ISO week's tasks.
func weeklyTaskRate(week *model.WeeklyData) float64 {
	if week == nil || len(week.Tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range week.Tasks {
		if t.Completed {
			done++
		}
	}
	return round1(float64(done) / float64(len(week.Tasks)) * 100)
}

// productivityScore blends average habit completion with weekly task
// completion. With no weekly tasks the habit side carries the whole score.
func productivityScore(habits []HabitProfile, taskRate float64) float64 {
	if len(habits) == 0 {
		return round1(taskRate)
	}
	sum := 0.0
	for _, h := range habits {
		sum += h.CompletionRate
	}
	habitRate := sum / float64(len(habits))
	if taskRate == 0 {
		return round1(habitRate)
	}
	return round1(habitRate*productivityHabitWeight + taskRate*productivityTaskWeight)
}

// perfectDays counts the current month's days with every habit completed.
func perfectDays(snap *model.Snapshot) int {
	month := snap.CurrentMonth()
	if month == nil || len(month.Habits) == 0 {
		return 0
	}
	count := 0
	for d := 1; d <= snap.Now.Day(); d++ {
		if entry := month.Days[d]; entry != nil && dayCompletionPct(entry, month.Habits) == 100 {
			count++
		}
	}
	return count
}

// peakDays names the weekdays tied for the highest heatmap score.
func peakDays(heatmap [7]float64) []string {
	best := 0.0
	for _, v := range heatmap {
		if v > best {
			best = v
		}
	}
	if best == 0 {
		return nil
	}
	var days []string
	for i, v := range heatmap {
		if v == best {
			days = append(days, timeutil.WeekdayName(i))
		}
	}
	return days
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
