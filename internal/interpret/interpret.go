package interpret

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Category is the fixed task taxonomy.
type Category string

const (
	CategoryAdmin    Category = "admin"
	CategoryFitness  Category = "fitness"
	CategorySocial   Category = "social"
	CategoryWork     Category = "work"
	CategoryErrand   Category = "errand"
	CategoryWellness Category = "wellness"
	CategoryCreative Category = "creative"
	CategoryOther    Category = "other"
)

// Priority levels for interpreted tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// TaskInterpretation is the result of the semantic pass over cleaned text.
type TaskInterpretation struct {
	Category         Category `json:"category"`
	Priority         Priority `json:"priority"`
	EstimatedMinutes int      `json:"estimated_minutes"`
	Tags             []string `json:"tags"`
	Confidence       float64  `json:"confidence"` // 0-100
	Suggestion       string   `json:"suggestion,omitempty"`
}

// categoryOrder is the declared tie-break priority: when keyword matches tie,
// the earliest category in this list wins.
var categoryOrder = []Category{
	CategoryWork,
	CategoryFitness,
	CategoryAdmin,
	CategoryErrand,
	CategorySocial,
	CategoryWellness,
	CategoryCreative,
}

var categoryKeywords = map[Category][]string{
	CategoryWork:     {"work", "meeting", "report", "presentation", "deadline", "email", "client", "project", "review", "standup"},
	CategoryFitness:  {"gym", "workout", "run", "running", "exercise", "training", "swim", "yoga", "bike", "stretch", "walk"},
	CategoryAdmin:    {"tax", "taxes", "form", "paperwork", "invoice", "bank", "insurance", "renew", "register", "bill", "bills", "documents"},
	CategoryErrand:   {"buy", "groceries", "shopping", "pick up", "pickup", "drop off", "return", "post office", "pharmacy"},
	CategorySocial:   {"call", "dinner", "lunch", "coffee", "birthday", "party", "visit", "catch up", "hang out"},
	CategoryWellness: {"meditate", "meditation", "journal", "sleep", "rest", "therapy", "doctor", "dentist", "relax"},
	CategoryCreative: {"write", "writing", "draw", "paint", "music", "practice", "design", "compose", "photography"},
}

// categoryMinutes are the default duration estimates per category.
var categoryMinutes = map[Category]int{
	CategoryWork:     60,
	CategoryFitness:  45,
	CategoryAdmin:    30,
	CategoryErrand:   30,
	CategorySocial:   90,
	CategoryWellness: 30,
	CategoryCreative: 60,
	CategoryOther:    30,
}

var categorySuggestions = map[Category]string{
	CategoryAdmin:    "Admin tasks feel lighter in the morning — knock it out before lunch",
	CategoryFitness:  "Lay out your gear the night before to cut the friction",
	CategoryWellness: "Protect this one — recovery time is what keeps the rest running",
	CategoryWork:     "Block focus time for this instead of squeezing it between meetings",
}

var (
	highUrgencyWords = []string{"urgent", "asap", "important", "must", "critical", "now", "immediately", "deadline"}
	lowUrgencyWords  = []string{"sometime", "someday", "maybe", "eventually", "whenever", "no rush"}

	durationMinRe  = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:min|mins|minutes)\b`)
	durationHourRe = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d)?)\s*(?:h|hr|hrs|hour|hours)\b`)
	wordRe         = regexp.MustCompile(`[a-zA-Z]{4,}`)
)

const maxTags = 3

// InterpretTask classifies cleaned task text. It never fails: unrecognized
// text returns category "other" with low confidence.
func InterpretTask(cleanedText string, schedule ParsedSchedule) TaskInterpretation {
	lower := strings.ToLower(cleanedText)
	signals := 0

	category, keywordHits := classify(lower)
	if keywordHits > 0 {
		signals++
	}

	priority, prioritySignal := classifyPriority(lower, schedule)
	if prioritySignal {
		signals++
	}

	minutes, explicitDuration := estimateMinutes(lower, category)
	if explicitDuration {
		signals++
	}

	tags := extractTags(lower, category)
	if len(tags) > 0 {
		signals++
	}

	return TaskInterpretation{
		Category:         category,
		Priority:         priority,
		EstimatedMinutes: minutes,
		Tags:             tags,
		Confidence:       confidenceFor(signals, keywordHits),
		Suggestion:       categorySuggestions[category],
	}
}

// Interpret runs both passes over raw text.
func Interpret(text string, now time.Time) (ParsedSchedule, TaskInterpretation) {
	schedule := ExtractSchedule(text, now)
	return schedule, InterpretTask(schedule.CleanedText, schedule)
}

// Categorize classifies arbitrary task text into the taxonomy. Used by the
// analytics side to cluster task interactions without running a full
// interpretation.
func Categorize(text string) Category {
	cat, _ := classify(strings.ToLower(text))
	return cat
}

// classify picks the category with the most keyword hits; ties resolve to the
// first category in categoryOrder.
func classify(lower string) (Category, int) {
	best := CategoryOther
	bestHits := 0
	for _, cat := range categoryOrder {
		hits := 0
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = cat, hits
		}
	}
	return best, bestHits
}

func classifyPriority(lower string, schedule ParsedSchedule) (Priority, bool) {
	for _, w := range highUrgencyWords {
		if strings.Contains(lower, w) {
			return PriorityHigh, true
		}
	}
	for _, w := range lowUrgencyWords {
		if strings.Contains(lower, w) {
			return PriorityLow, true
		}
	}
	// Deadline proximity bumps priority even without urgency words.
	if schedule.IsToday {
		return PriorityHigh, true
	}
	if schedule.IsTomorrow {
		return PriorityMedium, true
	}
	return PriorityMedium, false
}

// estimateMinutes honors an explicit duration phrase, otherwise falls back to
// the category default.
func estimateMinutes(lower string, category Category) (int, bool) {
	if m := durationMinRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			return v, true
		}
	}
	if m := durationHourRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > 0 {
			return int(v * 60), true
		}
	}
	return categoryMinutes[category], false
}

// extractTags surfaces up to three notable keywords: category keywords first,
// then longer distinctive words.
func extractTags(lower string, category Category) []string {
	seen := map[string]bool{}
	var tags []string

	for _, kw := range categoryKeywords[category] {
		if strings.Contains(lower, kw) && !seen[kw] {
			seen[kw] = true
			tags = append(tags, kw)
			if len(tags) == maxTags {
				return tags
			}
		}
	}

	words := wordRe.FindAllString(lower, -1)
	sort.SliceStable(words, func(i, j int) bool { return len(words[i]) > len(words[j]) })
	for _, w := range words {
		if !seen[w] {
			seen[w] = true
			tags = append(tags, w)
			if len(tags) == maxTags {
				break
			}
		}
	}
	return tags
}

func confidenceFor(signals, keywordHits int) float64 {
	confidence := 25.0 + float64(signals)*15
	if keywordHits > 1 {
		confidence += 10
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}
