package analytics

import (
	"sort"
	"time"

	"guidely/internal/model"
	"guidely/internal/timeutil"
)

// Fixed, non-overlapping focus windows over the day.
var focusWindows = []FocusWindow{
	{Label: "morning", Start: "06:00", End: "12:00"},
	{Label: "afternoon", Start: "12:00", End: "17:00"},
	{Label: "evening", Start: "17:00", End: "22:00"},
}

// FocusWindow is one time-of-day bucket with its effectiveness score.
type FocusWindow struct {
	Label string  `json:"label"`
	Start string  `json:"start"`
	End   string  `json:"end"`
	Score float64 `json:"score"`
}

// TimeOfDaySplit is the productivity distribution across day parts, in whole
// percents summing to 100 (or all zero with no data).
type TimeOfDaySplit struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
}

// OptimalSlot is the single best (weekday, window) pair.
type OptimalSlot struct {
	Day   string  `json:"day"`
	Time  string  `json:"time"` // window label; empty when only weekday data exists
	Score float64 `json:"score"`
}

// FocusAnalysis is the analyzer output.
type FocusAnalysis struct {
	TimeOfDaySplit     TimeOfDaySplit `json:"time_of_day_split"`
	PeakFocusWindows   []FocusWindow  `json:"peak_focus_windows"` // sorted by score desc
	WeeklyFocusHeatmap [7]float64     `json:"weekly_focus_heatmap"` // Monday-first
	OptimalSlot        OptimalSlot    `json:"optimal_slot"`
	AvgProductiveHours float64        `json:"avg_productive_hours"`
}

// AnalyzeFocus derives the time-of-day and weekday productivity distribution
// from timestamped completion events plus day-level records.
func AnalyzeFocus(snap *model.Snapshot) FocusAnalysis {
	analysis := FocusAnalysis{}

	// Weekday heatmap from day-level completion percentages.
	var daySum, dayCount [7]float64
	forEachDay(snap, func(date time.Time, entry *model.DayEntry) {
		month := snap.Months[timeutil.MonthKey(date)]
		if month == nil || len(month.Habits) == 0 {
			return
		}
		idx := timeutil.DayIndex(date)
		daySum[idx] += dayCompletionPct(entry, month.Habits)
		dayCount[idx]++
	})
	for i := 0; i < 7; i++ {
		if dayCount[i] > 0 {
			analysis.WeeklyFocusHeatmap[i] = round1(daySum[i] / dayCount[i])
		}
	}

	// Time-of-day distribution from timestamped completion events.
	var windowCounts [3]int
	var activeDays = map[string]bool{}
	total := 0
	for _, ev := range snap.Events {
		if ev.Type != model.EventTaskCompleted {
			continue
		}
		if idx, ok := windowIndexFor(ev.OccurredAt.Hour()); ok {
			windowCounts[idx]++
			total++
			activeDays[ev.OccurredAt.Format(timeutil.DateLayout)] = true
		}
	}

	if total > 0 {
		analysis.TimeOfDaySplit = splitPercent(windowCounts, total)
		analysis.PeakFocusWindows = peakWindows(windowCounts, total)
		// Rough productive time: assume one focused hour per logged
		// completion, averaged over days with any activity.
		analysis.AvgProductiveHours = round1(float64(total) / float64(len(activeDays)))
	}

	analysis.OptimalSlot = optimalSlot(analysis)
	return analysis
}

func windowIndexFor(hour int) (int, bool) {
	switch {
	case hour >= 6 && hour < 12:
		return 0, true
	case hour >= 12 && hour < 17:
		return 1, true
	case hour >= 17 && hour < 22:
		return 2, true
	default:
		return 0, false
	}
}

// splitPercent converts window counts to whole percents that sum to exactly
// 100, assigning rounding leftovers to the largest bucket.
func splitPercent(counts [3]int, total int) TimeOfDaySplit {
	var pct [3]int
	sum, largest := 0, 0
	for i, c := range counts {
		pct[i] = c * 100 / total
		sum += pct[i]
		if counts[i] > counts[largest] {
			largest = i
		}
	}
	pct[largest] += 100 - sum

	return TimeOfDaySplit{Morning: pct[0], Afternoon: pct[1], Evening: pct[2]}
}

func peakWindows(counts [3]int, total int) []FocusWindow {
	windows := make([]FocusWindow, 0, len(focusWindows))
	for i, w := range focusWindows {
		w.Score = round1(float64(counts[i]) / float64(total) * 100)
		windows = append(windows, w)
	}
	sort.SliceStable(windows, func(i, j int) bool { return windows[i].Score > windows[j].Score })
	return windows
}

// optimalSlot pairs the strongest weekday with the strongest window. With no
// time-of-day data it falls back to the best weekday alone.
func optimalSlot(analysis FocusAnalysis) OptimalSlot {
	bestDay, bestDayScore := -1, 0.0
	for i, score := range analysis.WeeklyFocusHeatmap {
		if score > bestDayScore {
			bestDay, bestDayScore = i, score
		}
	}
	if bestDay < 0 {
		return OptimalSlot{}
	}

	slot := OptimalSlot{Day: timeutil.WeekdayName(bestDay), Score: round1(bestDayScore)}
	if len(analysis.PeakFocusWindows) > 0 && analysis.PeakFocusWindows[0].Score > 0 {
		top := analysis.PeakFocusWindows[0]
		slot.Time = top.Label
		slot.Score = round1((bestDayScore + top.Score) / 2)
	}
	return slot
}
