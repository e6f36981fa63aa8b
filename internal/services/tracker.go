package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"guidely/internal/interpret"
	"guidely/internal/model"
	"guidely/internal/store"
	"guidely/internal/timeutil"
)

// TrackerService performs all record mutation: habit check-offs, mood logging,
// weekly task life-cycle and attention-event appends. The analytics side never
// mutates; everything flows through here.
type TrackerService struct {
	repository *store.Repository
}

func NewTrackerService(repo *store.Repository) *TrackerService {
	return &TrackerService{repository: repo}
}

// AddTaskFromText interprets free text and files the task into the right week
// and weekday. Without a date phrase the task lands on today.
func (ts *TrackerService) AddTaskFromText(text string, now time.Time) (*model.WeeklyTask, interpret.TaskInterpretation, error) {
	schedule, interpretation := interpret.Interpret(text, now)

	weekKey := schedule.WeekKey
	week, err := ts.repository.LoadWeek(weekKey)
	if err != nil {
		return nil, interpretation, err
	}
	if week == nil {
		week = &model.WeeklyData{
			WeekStartDate:    timeutil.WeekStart(scheduleAnchor(schedule, now)).Format(timeutil.DateLayout),
			HabitCompletions: map[string][7]bool{},
		}
	}

	task := model.WeeklyTask{
		ID:       uuid.NewString(),
		Text:     schedule.CleanedText,
		DayIndex: schedule.DayIndex,
	}
	week.Tasks = append(week.Tasks, task)

	if err := ts.repository.SaveWeek(weekKey, week); err != nil {
		return nil, interpretation, err
	}
	return &task, interpretation, nil
}

func scheduleAnchor(schedule interpret.ParsedSchedule, now time.Time) time.Time {
	if schedule.Date != nil {
		return *schedule.Date
	}
	return now
}

// CompleteTask marks a task done and logs the completion event.
func (ts *TrackerService) CompleteTask(weekKey, taskID string, now time.Time) error {
	if err := ts.updateTask(weekKey, taskID, func(t *model.WeeklyTask) { t.Completed = true }); err != nil {
		return err
	}
	return ts.appendEvent(model.EventTaskCompleted, taskID, nil, now)
}

// SkipTask logs an explicit skip without completing the task.
func (ts *TrackerService) SkipTask(weekKey, taskID string, now time.Time) error {
	return ts.appendEvent(model.EventTaskSkipped, taskID, nil, now)
}

// DeferTask pushes a task one weekday later (capped at Sunday) and logs the
// deferral.
func (ts *TrackerService) DeferTask(weekKey, taskID string, now time.Time) error {
	err := ts.updateTask(weekKey, taskID, func(t *model.WeeklyTask) {
		if t.DayIndex < 6 {
			t.DayIndex++
		}
	})
	if err != nil {
		return err
	}
	return ts.appendEvent(model.EventTaskDeferred, taskID, nil, now)
}

func (ts *TrackerService) updateTask(weekKey, taskID string, mutate func(*model.WeeklyTask)) error {
	week, err := ts.repository.LoadWeek(weekKey)
	if err != nil {
		return err
	}
	if week == nil {
		return fmt.Errorf("no week record for %s", weekKey)
	}

	found := false
	for i := range week.Tasks {
		if week.Tasks[i].ID == taskID {
			mutate(&week.Tasks[i])
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("task %s not found in week %s", taskID, weekKey)
	}

	return ts.repository.SaveWeek(weekKey, week)
}

// CheckHabit toggles a habit for a given day of the current month.
func (ts *TrackerService) CheckHabit(habitID string, now time.Time, done bool) error {
	key := timeutil.MonthKey(now)
	month, err := ts.repository.LoadMonth(key)
	if err != nil {
		return err
	}
	if month == nil {
		return fmt.Errorf("no month record for %s", key)
	}

	day := now.Day()
	entry := month.Days[day]
	if entry == nil {
		entry = &model.DayEntry{CompletedHabits: map[string]bool{}}
		if month.Days == nil {
			month.Days = map[int]*model.DayEntry{}
		}
		month.Days[day] = entry
	}
	if entry.CompletedHabits == nil {
		entry.CompletedHabits = map[string]bool{}
	}

	if done {
		entry.CompletedHabits[habitID] = true
	} else {
		delete(entry.CompletedHabits, habitID)
		if err := ts.appendEvent(model.EventHabitMissed, "", map[string]string{"habit_id": habitID}, now); err != nil {
			return err
		}
	}

	return ts.repository.SaveMonth(key, month)
}

// AddHabit registers a new habit in the current month.
func (ts *TrackerService) AddHabit(name string, now time.Time) (*model.HabitRecord, error) {
	key := timeutil.MonthKey(now)
	month, err := ts.repository.LoadMonth(key)
	if err != nil {
		return nil, err
	}
	if month == nil {
		month = &model.MonthData{Days: map[int]*model.DayEntry{}}
	}

	habit := model.HabitRecord{ID: uuid.NewString(), Name: name}
	month.Habits = append(month.Habits, habit)

	if err := ts.repository.SaveMonth(key, month); err != nil {
		return nil, err
	}
	return &habit, nil
}

// RemoveHabit deletes a habit and prunes its stale completion marks.
func (ts *TrackerService) RemoveHabit(habitID string, now time.Time) error {
	key := timeutil.MonthKey(now)
	month, err := ts.repository.LoadMonth(key)
	if err != nil {
		return err
	}
	if month == nil {
		return nil
	}

	month.PruneHabit(habitID)
	return ts.repository.SaveMonth(key, month)
}

// LogMood records mood and motivation for today.
func (ts *TrackerService) LogMood(mood, motivation int, now time.Time) error {
	if mood < 0 || mood > 10 || motivation < 0 || motivation > 10 {
		return fmt.Errorf("mood and motivation must be between 0 and 10")
	}

	key := timeutil.MonthKey(now)
	month, err := ts.repository.LoadMonth(key)
	if err != nil {
		return err
	}
	if month == nil {
		month = &model.MonthData{Days: map[int]*model.DayEntry{}}
	}
	if month.Days == nil {
		month.Days = map[int]*model.DayEntry{}
	}

	entry := month.Days[now.Day()]
	if entry == nil {
		entry = &model.DayEntry{CompletedHabits: map[string]bool{}}
		month.Days[now.Day()] = entry
	}
	entry.Mood = mood
	entry.Motivation = motivation

	return ts.repository.SaveMonth(key, month)
}

// RecordAppOpen logs an app_open attention event.
func (ts *TrackerService) RecordAppOpen(now time.Time) error {
	return ts.appendEvent(model.EventAppOpen, "", nil, now)
}

func (ts *TrackerService) appendEvent(evType model.EventType, taskID string, meta map[string]string, now time.Time) error {
	return ts.repository.AppendEvent(model.AttentionEvent{
		ID:         uuid.NewString(),
		Type:       evType,
		OccurredAt: now,
		TaskID:     taskID,
		Meta:       meta,
	})
}
