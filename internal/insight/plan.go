package insight

import (
	"math"

	"guidely/internal/model"
	"guidely/internal/timeutil"
)

// dailyPlan builds the short ordered list for today: remaining habits first,
// then today's scheduled tasks, then a time-of-day reminder.
func dailyPlan(ctx *ruleContext) []string {
	var plan []string

	for _, h := range ctx.remaining {
		plan = append(plan, "Habit: "+h.Name)
	}

	if week := ctx.snap.CurrentWeek(); week != nil {
		todayIdx := timeutil.DayIndex(ctx.snap.Now)
		for _, task := range week.Tasks {
			if task.DayIndex == todayIdx && !task.Completed {
				plan = append(plan, "Task: "+task.Text)
			}
		}
	}

	switch hour := ctx.snap.Now.Hour(); {
	case hour < 12:
		plan = append(plan, "Set your mood for the day")
	case hour >= 20:
		plan = append(plan, "Review how today went")
	}

	return plan
}

func greeting(hour int) string {
	switch {
	case hour < 5:
		return "Burning the midnight oil 🌙"
	case hour < 12:
		return "Good morning ☀️"
	case hour < 17:
		return "Good afternoon 🌤"
	case hour < 21:
		return "Good evening 🌇"
	default:
		return "Winding down 🌙"
	}
}

// todayScore is the rounded percentage of today's habits completed.
func todayScore(ctx *ruleContext) int {
	if len(ctx.habits) == 0 {
		return 0
	}
	done := len(ctx.habits) - len(ctx.remaining)
	return int(math.Round(float64(done) / float64(len(ctx.habits)) * 100))
}

// recentMoodAvg averages logged mood over the trailing window ending today.
func recentMoodAvg(snap *model.Snapshot, days int) float64 {
	sum, n := 0.0, 0
	day := timeutil.StartOfDay(snap.Now)
	for i := 0; i < days; i++ {
		date := day.AddDate(0, 0, -i)
		if month := snap.Months[timeutil.MonthKey(date)]; month != nil {
			if entry := month.Days[date.Day()]; entry != nil && entry.Mood > 0 {
				sum += float64(entry.Mood)
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
