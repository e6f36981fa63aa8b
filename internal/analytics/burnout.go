package analytics

import (
	"math"
	"time"

	"guidely/internal/model"
	"guidely/internal/timeutil"
)

// Burnout stage cutpoints. Ordered and exhaustive over [0,100]; stage is a
// pure function of risk level.
const (
	burnoutStrainedMin = 30.0
	burnoutWarningMin  = 55.0
	burnoutCriticalMin = 75.0

	// Each contributing factor's impact is capped so no single signal can
	// claim the whole score.
	burnoutFactorCap = 30.0

	// Habit load above this many active habits starts to count against the
	// user.
	comfortableHabitLoad = 5

	// Mood/motivation below these over the recent window add risk.
	lowMoodThreshold       = 5.0
	lowMotivationThreshold = 5.0

	burnoutWindowDays = 7
)

// BurnoutStage orders sustainable-effort risk from best to worst.
type BurnoutStage string

const (
	StageThriving BurnoutStage = "thriving"
	StageStrained BurnoutStage = "strained"
	StageWarning  BurnoutStage = "warning"
	StageBurnout  BurnoutStage = "burnout"
)

// BurnoutFactor is one contributing signal with its capped impact.
type BurnoutFactor struct {
	Label  string  `json:"label"`
	Impact float64 `json:"impact"` // 0..burnoutFactorCap
	Detail string  `json:"detail"`
}

// BurnoutAnalysis is the classifier output. Purely a function of the snapshot;
// "transitions" only exist by comparing two independently computed analyses.
type BurnoutAnalysis struct {
	RiskLevel         float64         `json:"risk_level"` // 0-100
	Stage             BurnoutStage    `json:"stage"`
	Factors           []BurnoutFactor `json:"factors"`
	Trend             string          `json:"trend"` // increasing | decreasing | stable
	DaysUntilCritical int             `json:"days_until_critical"` // 0 when not applicable
	RecoveryActions   []string        `json:"recovery_actions"`
}

// AnalyzeBurnout aggregates load, consistency and mood signals into a risk
// score and stage.
func AnalyzeBurnout(snap *model.Snapshot) BurnoutAnalysis {
	currentRisk, factors := burnoutRiskAt(snap, 0)
	previousRisk, _ := burnoutRiskAt(snap, burnoutWindowDays)

	analysis := BurnoutAnalysis{
		RiskLevel: round1(currentRisk),
		Stage:     StageForRisk(currentRisk),
		Factors:   factors,
		Trend:     riskTrend(currentRisk, previousRisk),
	}

	if analysis.Trend == "increasing" && currentRisk < burnoutCriticalMin {
		perDay := (currentRisk - previousRisk) / burnoutWindowDays
		if perDay > 0 {
			analysis.DaysUntilCritical = int(math.Ceil((burnoutCriticalMin - currentRisk) / perDay))
		}
	}

	analysis.RecoveryActions = recoveryActions(analysis.Stage, factors)
	return analysis
}

// StageForRisk maps a risk level onto the ordered stage scale.
func StageForRisk(risk float64) BurnoutStage {
	switch {
	case risk >= burnoutCriticalMin:
		return StageBurnout
	case risk >= burnoutWarningMin:
		return StageWarning
	case risk >= burnoutStrainedMin:
		return StageStrained
	default:
		return StageThriving
	}
}

// burnoutRiskAt computes the risk score for the window ending daysAgo before
// "now", so the trend can compare two snapshots of the same pure function.
func burnoutRiskAt(snap *model.Snapshot, daysAgo int) (float64, []BurnoutFactor) {
	end := snap.Now.AddDate(0, 0, -daysAgo)
	moods, motivations := moodSeries(snap, end, burnoutWindowDays)
	volatility := completionVolatility(snap, end, burnoutWindowDays*2)

	var factors []BurnoutFactor
	risk := 0.0

	if avg := mean(moods); len(moods) > 0 && avg < lowMoodThreshold {
		impact := math.Min((lowMoodThreshold-avg)*6, burnoutFactorCap)
		risk += impact
		factors = append(factors, BurnoutFactor{
			Label:  "Low mood",
			Impact: round1(impact),
			Detail: "Mood has been trending low over the past week",
		})
	}

	if avg := mean(motivations); len(motivations) > 0 && avg < lowMotivationThreshold {
		impact := math.Min((lowMotivationThreshold-avg)*5, burnoutFactorCap)
		risk += impact
		factors = append(factors, BurnoutFactor{
			Label:  "Low motivation",
			Impact: round1(impact),
			Detail: "Motivation scores are below your healthy baseline",
		})
	}

	if load := habitLoad(snap); load > comfortableHabitLoad {
		impact := math.Min(float64(load-comfortableHabitLoad)*5, burnoutFactorCap)
		risk += impact
		factors = append(factors, BurnoutFactor{
			Label:  "Heavy habit load",
			Impact: round1(impact),
			Detail: "You are tracking more habits than is sustainable at once",
		})
	}

	if volatility > 25 {
		impact := math.Min((volatility-25)*0.8, burnoutFactorCap)
		risk += impact
		factors = append(factors, BurnoutFactor{
			Label:  "Inconsistent completion",
			Impact: round1(impact),
			Detail: "Daily completion swings sharply between highs and lows",
		})
	}

	return clamp(risk, 0, 100), factors
}

func riskTrend(current, previous float64) string {
	switch {
	case current-previous > 5:
		return "increasing"
	case previous-current > 5:
		return "decreasing"
	default:
		return "stable"
	}
}

func recoveryActions(stage BurnoutStage, factors []BurnoutFactor) []string {
	if stage == StageThriving {
		return nil
	}

	actions := []string{"Pick your three most important habits and pause the rest for a week"}
	for _, f := range factors {
		switch f.Label {
		case "Low mood":
			actions = append(actions, "Schedule one genuinely enjoyable activity before anything productive")
		case "Low motivation":
			actions = append(actions, "Shrink each habit to its two-minute version until momentum returns")
		case "Heavy habit load":
			actions = append(actions, "Retire or merge habits you have not completed in two weeks")
		case "Inconsistent completion":
			actions = append(actions, "Anchor habits to fixed times instead of doing them when you feel like it")
		}
	}
	if stage == StageBurnout {
		actions = append(actions, "Take a full rest day with zero tracking guilt")
	}
	return actions
}

// moodSeries collects logged mood/motivation values over the window ending at
// "end". Unset entries (zero) are absence, not data.
func moodSeries(snap *model.Snapshot, end time.Time, windowDays int) (moods, motivations []float64) {
	start := timeutil.StartOfDay(end).AddDate(0, 0, -(windowDays - 1))
	forEachDay(snap, func(date time.Time, entry *model.DayEntry) {
		if date.Before(start) || date.After(end) {
			return
		}
		if entry.Mood > 0 {
			moods = append(moods, float64(entry.Mood))
		}
		if entry.Motivation > 0 {
			motivations = append(motivations, float64(entry.Motivation))
		}
	})
	return moods, motivations
}

// completionVolatility is the standard deviation of day-level completion
// percentages over the window ending at "end".
func completionVolatility(snap *model.Snapshot, end time.Time, windowDays int) float64 {
	start := timeutil.StartOfDay(end).AddDate(0, 0, -(windowDays - 1))
	var pcts []float64
	forEachDay(snap, func(date time.Time, entry *model.DayEntry) {
		if date.Before(start) || date.After(end) {
			return
		}
		month := snap.Months[timeutil.MonthKey(date)]
		if month != nil {
			pcts = append(pcts, dayCompletionPct(entry, month.Habits))
		}
	})
	if len(pcts) < 2 {
		return 0
	}

	m := mean(pcts)
	variance := 0.0
	for _, p := range pcts {
		variance += (p - m) * (p - m)
	}
	variance /= float64(len(pcts))
	return math.Sqrt(variance)
}

func habitLoad(snap *model.Snapshot) int {
	if month := snap.CurrentMonth(); month != nil {
		return len(month.Habits)
	}
	return 0
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
