package analytics

import (
	"sort"
	"time"

	"guidely/internal/interpret"
	"guidely/internal/model"
	"guidely/internal/timeutil"
)

const (
	// Score contribution per avoidance event, capped overall at 100.
	procrastSkipWeight  = 6.0
	procrastDeferWeight = 4.0
	procrastMissWeight  = 2.0

	// Recovery at or under this many days between a missed day and the next
	// ≥50% day counts as fast.
	fastRecoveryDays = 2

	maxTriggers = 3
)

// ProcrastinationTrigger is one avoidance cluster, ranked by event frequency.
type ProcrastinationTrigger struct {
	Trigger     string `json:"trigger"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
	Emoji       string `json:"emoji"`
	count       int
}

// ProcrastinationAnalysis is the classifier output.
type ProcrastinationAnalysis struct {
	Score         float64                  `json:"score"` // 0-100, higher = more avoidance
	Triggers      []ProcrastinationTrigger `json:"triggers"`
	RecoverySpeed string                   `json:"recovery_speed"` // fast | slow
}

var triggerCopy = map[interpret.Category]struct {
	description string
	suggestion  string
	emoji       string
}{
	interpret.CategoryAdmin:    {"Paperwork-style tasks keep getting pushed off", "Pair admin work with a reward: coffee first, form second", "📋"},
	interpret.CategoryFitness:  {"Workouts are the tasks you defer most", "Shrink the session: ten minutes still counts", "🏃"},
	interpret.CategoryWork:     {"Work items pile up before they get touched", "Start with a five-minute opening move, not the whole task", "💼"},
	interpret.CategoryErrand:   {"Errands linger on the list for days", "Batch them into one outing instead of five decisions", "🛒"},
	interpret.CategorySocial:   {"Social plans keep sliding", "Lock a time with the other person so it stops being optional", "👥"},
	interpret.CategoryWellness: {"Self-care tasks are the first to be dropped", "Treat rest like an appointment, not a leftover", "🌿"},
	interpret.CategoryCreative: {"Creative work waits for a 'right moment' that never comes", "Schedule a small fixed slot; momentum beats mood", "🎨"},
	interpret.CategoryOther:    {"A cluster of tasks keeps being put off", "Pick the smallest one and clear it today", "⏳"},
}

// AnalyzeProcrastination detects deferral and skip patterns from the
// interaction log plus the task records the events point at.
func AnalyzeProcrastination(snap *model.Snapshot) ProcrastinationAnalysis {
	taskText := taskTextIndex(snap)

	score := 0.0
	counts := map[interpret.Category]int{}
	for _, ev := range snap.Events {
		switch ev.Type {
		case model.EventTaskSkipped:
			score += procrastSkipWeight
			counts[eventCategory(ev, taskText)]++
		case model.EventTaskDeferred:
			score += procrastDeferWeight
			counts[eventCategory(ev, taskText)]++
		case model.EventHabitMissed:
			score += procrastMissWeight
		}
	}

	return ProcrastinationAnalysis{
		Score:         clamp(score, 0, 100),
		Triggers:      rankTriggers(counts),
		RecoverySpeed: recoverySpeed(snap),
	}
}

func eventCategory(ev model.AttentionEvent, taskText map[string]string) interpret.Category {
	if text, ok := taskText[ev.TaskID]; ok {
		return interpret.Categorize(text)
	}
	if text, ok := ev.Meta["text"]; ok {
		return interpret.Categorize(text)
	}
	return interpret.CategoryOther
}

// rankTriggers orders clusters by frequency descending and surfaces at most
// the top three. Category name breaks ties so the order is stable.
func rankTriggers(counts map[interpret.Category]int) []ProcrastinationTrigger {
	triggers := make([]ProcrastinationTrigger, 0, len(counts))
	for cat, count := range counts {
		if count == 0 {
			continue
		}
		copyFor := triggerCopy[cat]
		triggers = append(triggers, ProcrastinationTrigger{
			Trigger:     string(cat),
			Description: copyFor.description,
			Suggestion:  copyFor.suggestion,
			Emoji:       copyFor.emoji,
			count:       count,
		})
	}

	sort.Slice(triggers, func(i, j int) bool {
		if triggers[i].count != triggers[j].count {
			return triggers[i].count > triggers[j].count
		}
		return triggers[i].Trigger < triggers[j].Trigger
	})

	if len(triggers) > maxTriggers {
		triggers = triggers[:maxTriggers]
	}
	return triggers
}

// recoverySpeed measures the median number of days between a missed day
// (<50% completion) and the next day back at ≥50%. At or under the threshold
// is fast. With no misses on record the user is, by definition, fast.
func recoverySpeed(snap *model.Snapshot) string {
	type dayMark struct {
		date      time.Time
		qualified bool
	}

	var days []dayMark
	forEachDay(snap, func(date time.Time, entry *model.DayEntry) {
		month := snap.Months[timeutil.MonthKey(date)]
		if month == nil || len(month.Habits) == 0 {
			return
		}
		days = append(days, dayMark{
			date:      date,
			qualified: dayCompletionPct(entry, month.Habits) >= streakDayThreshold,
		})
	})

	var gaps []float64
	for i, day := range days {
		if day.qualified {
			continue
		}
		for j := i + 1; j < len(days); j++ {
			if days[j].qualified {
				gaps = append(gaps, days[j].date.Sub(day.date).Hours()/24)
				break
			}
		}
	}
	if len(gaps) == 0 {
		return "fast"
	}

	sort.Float64s(gaps)
	median := gaps[len(gaps)/2]
	if len(gaps)%2 == 0 {
		median = (gaps[len(gaps)/2-1] + gaps[len(gaps)/2]) / 2
	}

	if median <= fastRecoveryDays {
		return "fast"
	}
	return "slow"
}

func taskTextIndex(snap *model.Snapshot) map[string]string {
	index := map[string]string{}
	for _, week := range snap.Weeks {
		for _, task := range week.Tasks {
			index[task.ID] = task.Text
		}
	}
	return index
}
