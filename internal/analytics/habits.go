// Package analytics derives the behavioral profile from raw tracking records.
// Every function here is pure: input is an immutable model.Snapshot carrying a
// single "now", output is plain records, and recomputing from the same
// snapshot yields identical results.
package analytics

import (
	"math"
	"sort"
	"time"

	"guidely/internal/model"
	"guidely/internal/timeutil"
)

const (
	// A day "counts" toward streaks when at least half of all habits got done.
	streakDayThreshold = 50.0

	// Automaticity: the habit runs on rails.
	automaticRateMin        = 85.0
	automaticConsistencyMin = 70.0

	// Abandonment risk weights. The lapse term grows superlinearly so that
	// days-since-last-completion dominates as it gets large.
	riskIncompleteWeight = 0.35
	riskTrendWeight      = 0.25
	riskLapseFactor      = 0.9
	riskLapseCap         = 40.0
)

// HabitProfile is the derived per-habit statistics record. Recomputed on every
// run, never persisted.
type HabitProfile struct {
	HabitID          string  `json:"habit_id"`
	HabitName        string  `json:"habit_name"`
	CompletionRate   float64 `json:"completion_rate"` // percent of elapsed days
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
	Trend            float64 `json:"trend"` // signed delta, recent 7d vs prior 7d
	BestDayOfWeek    int     `json:"best_day_of_week"`  // Monday=0
	WorstDayOfWeek   int     `json:"worst_day_of_week"` // Monday=0
	ConsistencyScore float64 `json:"consistency_score"` // 0-100
	AbandonmentRisk  float64 `json:"abandonment_risk"`  // 0-100
	IsAutomatic      bool    `json:"is_automatic"`
}

// BuildHabitProfiles computes one HabitProfile per habit in the current month,
// using trailing months in the snapshot for weekday and consistency stats.
func BuildHabitProfiles(snap *model.Snapshot) []HabitProfile {
	month := snap.CurrentMonth()
	if month == nil || len(month.Habits) == 0 {
		return nil
	}

	elapsed := daysElapsed(snap.Now)
	if len(month.Days) == 0 {
		// Nothing tracked yet this month: zero elapsed days, zeroed stats.
		elapsed = 0
	}
	streak := CurrentStreak(snap)
	longest := longestStreak(month, elapsed, len(month.Habits))

	profiles := make([]HabitProfile, 0, len(month.Habits))
	for _, habit := range month.Habits {
		p := HabitProfile{
			HabitID:       habit.ID,
			HabitName:     habit.Name,
			CurrentStreak: streak,
			LongestStreak: longest,
		}

		if elapsed > 0 {
			done := completedDays(month, habit.ID, elapsed)
			p.CompletionRate = round1(float64(done) / float64(elapsed) * 100)
			p.Trend = round1(habitTrend(month, habit.ID, elapsed))
			p.BestDayOfWeek, p.WorstDayOfWeek = weekdayExtremes(snap, habit.ID)
			p.ConsistencyScore = round1(consistencyScore(snap, habit.ID))
			p.AbandonmentRisk = round1(abandonmentRisk(p.CompletionRate, p.Trend, daysSinceCompletion(month, habit.ID, elapsed)))
			p.IsAutomatic = p.CompletionRate >= automaticRateMin && p.ConsistencyScore >= automaticConsistencyMin
		}

		profiles = append(profiles, p)
	}

	return profiles
}

// CurrentStreak counts consecutive qualifying days walking backward from
// "today". A qualifying day has ≥50% of all habits completed. A missing entry
// breaks the streak, except today itself, which is still in progress and is
// skipped instead.
func CurrentStreak(snap *model.Snapshot) int {
	streak := 0
	day := timeutil.StartOfDay(snap.Now)

	for {
		month := snap.Months[timeutil.MonthKey(day)]
		var entry *model.DayEntry
		habitCount := 0
		if month != nil {
			entry = month.Days[day.Day()]
			habitCount = len(month.Habits)
		}

		isToday := timeutil.SameDay(day, snap.Now)
		if entry == nil || habitCount == 0 {
			if isToday {
				day = day.AddDate(0, 0, -1)
				continue
			}
			break
		}

		pct := dayCompletionPct(entry, month.Habits)
		if pct >= streakDayThreshold {
			streak++
		} else if isToday {
			// Today may still fill up; neither counts nor breaks.
		} else {
			break
		}

		day = day.AddDate(0, 0, -1)
		if streak > 366 {
			break
		}
	}

	return streak
}

func longestStreak(month *model.MonthData, elapsed, habitCount int) int {
	if habitCount == 0 {
		return 0
	}
	longest, run := 0, 0
	for d := 1; d <= elapsed; d++ {
		entry := month.Days[d]
		if entry != nil && dayCompletionPct(entry, month.Habits) >= streakDayThreshold {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// habitTrend compares the habit's completion percentage over the most recent
// 7 elapsed days with the 7 days before that (or two halves of the available
// history when shorter than 14 days).
func habitTrend(month *model.MonthData, habitID string, elapsed int) float64 {
	window := 7
	if elapsed < 2 {
		return 0
	}
	if elapsed < 14 {
		window = elapsed / 2
	}
	if window == 0 {
		return 0
	}

	recent := windowRate(month, habitID, elapsed-window+1, elapsed)
	previous := windowRate(month, habitID, elapsed-2*window+1, elapsed-window)
	return recent - previous
}

func windowRate(month *model.MonthData, habitID string, from, to int) float64 {
	if from < 1 {
		from = 1
	}
	if to < from {
		return 0
	}
	done := 0
	for d := from; d <= to; d++ {
		if month.Days[d].Completed(habitID) {
			done++
		}
	}
	return float64(done) / float64(to-from+1) * 100
}

// weekdayExtremes finds the Monday-based weekdays with the highest and lowest
// completion rate for a habit across all months in the snapshot.
func weekdayExtremes(snap *model.Snapshot, habitID string) (best, worst int) {
	var done, total [7]int
	forEachDay(snap, func(date time.Time, entry *model.DayEntry) {
		idx := timeutil.DayIndex(date)
		total[idx]++
		if entry.Completed(habitID) {
			done[idx]++
		}
	})

	bestRate, worstRate := -1.0, 101.0
	for i := 0; i < 7; i++ {
		if total[i] == 0 {
			continue
		}
		rate := float64(done[i]) / float64(total[i]) * 100
		if rate > bestRate {
			bestRate, best = rate, i
		}
		if rate < worstRate {
			worstRate, worst = rate, i
		}
	}
	return best, worst
}

// consistencyScore is 100 minus the coefficient of variation of weekly
// completion rates, clamped to [0,100]. Fewer than two weeks of data scores a
// neutral 50.
func consistencyScore(snap *model.Snapshot, habitID string) float64 {
	weekDone := map[string]int{}
	weekTotal := map[string]int{}
	forEachDay(snap, func(date time.Time, entry *model.DayEntry) {
		key := timeutil.WeekKey(date)
		weekTotal[key]++
		if entry.Completed(habitID) {
			weekDone[key]++
		}
	})

	rates := make([]float64, 0, len(weekTotal))
	for key, total := range weekTotal {
		rates = append(rates, float64(weekDone[key])/float64(total)*100)
	}
	if len(rates) < 2 {
		return 50
	}

	mean := 0.0
	for _, r := range rates {
		mean += r
	}
	mean /= float64(len(rates))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, r := range rates {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(rates))
	cv := math.Sqrt(variance) / mean * 100

	return clamp(100-cv, 0, 100)
}

// abandonmentRisk blends how incomplete the habit is, how hard it is
// declining, and how long it has sat untouched. Monotonic in each input; the
// lapse term grows quadratically so long gaps dominate.
func abandonmentRisk(completionRate, trend float64, daysSince int) float64 {
	negTrend := 0.0
	if trend < 0 {
		negTrend = -trend
	}
	lapse := math.Min(float64(daysSince*daysSince)*riskLapseFactor, riskLapseCap)
	risk := riskIncompleteWeight*(100-completionRate) + riskTrendWeight*negTrend + lapse
	return clamp(risk, 0, 100)
}

func daysSinceCompletion(month *model.MonthData, habitID string, elapsed int) int {
	for d := elapsed; d >= 1; d-- {
		if month.Days[d].Completed(habitID) {
			return elapsed - d
		}
	}
	return elapsed
}

func completedDays(month *model.MonthData, habitID string, elapsed int) int {
	done := 0
	for d := 1; d <= elapsed; d++ {
		if month.Days[d].Completed(habitID) {
			done++
		}
	}
	return done
}

// dayCompletionPct is the share of all habits completed on one day.
func dayCompletionPct(entry *model.DayEntry, habits []model.HabitRecord) float64 {
	if entry == nil || len(habits) == 0 {
		return 0
	}
	done := 0
	for _, h := range habits {
		if entry.CompletedHabits[h.ID] {
			done++
		}
	}
	return float64(done) / float64(len(habits)) * 100
}

// daysElapsed is how many days of the current month have started, today
// included.
func daysElapsed(now time.Time) int {
	return now.Day()
}

// forEachDay visits every recorded day entry in the snapshot, oldest first,
// skipping days after "now". Deterministic iteration order.
func forEachDay(snap *model.Snapshot, fn func(date time.Time, entry *model.DayEntry)) {
	keys := make([]string, 0, len(snap.Months))
	for key := range snap.Months {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		first, err := time.ParseInLocation("2006-01", key, snap.Now.Location())
		if err != nil {
			continue
		}
		month := snap.Months[key]
		days := make([]int, 0, len(month.Days))
		for d := range month.Days {
			days = append(days, d)
		}
		sort.Ints(days)
		for _, d := range days {
			date := first.AddDate(0, 0, d-1)
			if date.After(snap.Now) {
				continue
			}
			if entry := month.Days[d]; entry != nil {
				fn(date, entry)
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
