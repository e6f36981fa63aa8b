package services

import (
	"fmt"
	"time"

	"guidely/internal/insight"
	"guidely/internal/timeutil"
)

// ApplyAction executes a declarative Action emitted by the insight generator.
// This is the only place insight output turns into mutation; the generator
// itself never writes.
func (ts *TrackerService) ApplyAction(action insight.Action, now time.Time) error {
	switch action.Type {
	case insight.ActionDismissHabit:
		habitID := action.Payload["habit_id"]
		if habitID == "" {
			return fmt.Errorf("dismiss_habit action without habit_id")
		}
		return ts.RemoveHabit(habitID, now)

	case insight.ActionCreateMinimum:
		habitID := action.Payload["habit_id"]
		month, err := ts.repository.LoadMonth(timeutil.MonthKey(now))
		if err != nil {
			return err
		}
		if month == nil {
			return fmt.Errorf("no month record to create minimum habit in")
		}
		for _, h := range month.Habits {
			if h.ID == habitID {
				_, err := ts.AddHabit(h.Name+" (2-minute version)", now)
				return err
			}
		}
		return fmt.Errorf("habit %s not found", habitID)

	case insight.ActionReschedule:
		// Reschedule intent is stored as a setting the UI reads back; habit
		// slots themselves live outside the month record.
		habitID := action.Payload["habit_id"]
		return ts.repository.SetSetting("reschedule:"+habitID, action.Payload["time"])

	case insight.ActionLowerDifficulty:
		return ts.repository.SetSetting("difficulty", "light")

	case insight.ActionFocusMode, insight.ActionNavigate:
		// Pure UI commands; nothing to persist.
		return nil

	default:
		return fmt.Errorf("unknown action type %q", action.Type)
	}
}
