// Package model holds the source records the analytics engine consumes. The
// engine never mutates these: it receives an immutable Snapshot and derives
// everything else from it.
package model

import (
	"time"

	"guidely/internal/timeutil"
)

// HabitRecord is the immutable identity of a tracked habit.
type HabitRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DayEntry is one calendar day inside a month: which habits got checked off
// plus the mood/motivation the user logged that evening (0 when unset).
type DayEntry struct {
	CompletedHabits map[string]bool `json:"completed_habits"`
	Mood            int             `json:"mood"`       // 0-10
	Motivation      int             `json:"motivation"` // 0-10
}

// Completed reports whether a habit was checked off on this day.
func (e *DayEntry) Completed(habitID string) bool {
	if e == nil {
		return false
	}
	return e.CompletedHabits[habitID]
}

// MonthData is one month of tracking, keyed externally by YYYY-MM.
type MonthData struct {
	Habits []HabitRecord     `json:"habits"`
	Days   map[int]*DayEntry `json:"days"` // keyed by day-of-month 1..31
}

// PruneHabit removes a habit and any stale completion marks referencing it,
// keeping the completedHabits ⊆ habits invariant.
func (m *MonthData) PruneHabit(habitID string) {
	kept := m.Habits[:0]
	for _, h := range m.Habits {
		if h.ID != habitID {
			kept = append(kept, h)
		}
	}
	m.Habits = kept
	for _, day := range m.Days {
		if day != nil {
			delete(day.CompletedHabits, habitID)
		}
	}
}

// WeeklyTask is a to-do pinned to one weekday of an ISO week.
type WeeklyTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	DayIndex  int    `json:"day_index"` // Monday=0
}

// WeeklyData is one ISO week of planning, keyed externally by YYYY-Www.
type WeeklyData struct {
	WeekStartDate    string             `json:"week_start_date"` // YYYY-MM-DD, a Monday
	Tasks            []WeeklyTask       `json:"tasks"`
	Habits           []HabitRecord      `json:"habits"`
	HabitCompletions map[string][7]bool `json:"habit_completions"`
	Notes            string             `json:"notes"`
}

// EventType classifies an attention event.
type EventType string

const (
	EventTaskCompleted EventType = "task_completed"
	EventTaskSkipped   EventType = "task_skipped"
	EventTaskDeferred  EventType = "task_deferred"
	EventHabitMissed   EventType = "habit_missed"
	EventAppOpen       EventType = "app_open"
)

// AttentionEvent is one entry of the append-only interaction log.
type AttentionEvent struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	OccurredAt time.Time         `json:"occurred_at"`
	TaskID     string            `json:"task_id,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
}

// MaxAttentionEvents caps the interaction log; the oldest entries are evicted
// first once the cap is reached.
const MaxAttentionEvents = 500

// EventLog is a capped append-only log of attention events. Appends must be
// serialized by the caller (single writer); reads take copies.
type EventLog struct {
	events []AttentionEvent
}

// NewEventLog builds a log from stored events, trimming to the cap.
func NewEventLog(events []AttentionEvent) *EventLog {
	if len(events) > MaxAttentionEvents {
		events = events[len(events)-MaxAttentionEvents:]
	}
	l := &EventLog{events: make([]AttentionEvent, len(events))}
	copy(l.events, events)
	return l
}

// Append adds an event, evicting from the head once the cap is hit.
func (l *EventLog) Append(e AttentionEvent) {
	l.events = append(l.events, e)
	if len(l.events) > MaxAttentionEvents {
		l.events = l.events[len(l.events)-MaxAttentionEvents:]
	}
}

// Len returns the current number of retained events.
func (l *EventLog) Len() int {
	return len(l.events)
}

// Events returns a copy of the retained events, oldest first.
func (l *EventLog) Events() []AttentionEvent {
	out := make([]AttentionEvent, len(l.events))
	copy(out, l.events)
	return out
}

// Snapshot is the immutable input to every derivation: all loaded records plus
// the single "now" reference the whole computation shares. Building the
// profile twice from the same snapshot yields identical output.
type Snapshot struct {
	Now    time.Time
	Months map[string]*MonthData  // keyed by YYYY-MM
	Weeks  map[string]*WeeklyData // keyed by YYYY-Www
	Events []AttentionEvent       // oldest first
}

// CurrentMonth returns the month container "now" falls in, or nil.
func (s *Snapshot) CurrentMonth() *MonthData {
	return s.Months[timeutil.MonthKey(s.Now)]
}

// CurrentWeek returns the week container "now" falls in, or nil.
func (s *Snapshot) CurrentWeek() *WeeklyData {
	return s.Weeks[timeutil.WeekKey(s.Now)]
}
