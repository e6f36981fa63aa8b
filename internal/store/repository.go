package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"guidely/internal/model"
	"guidely/internal/timeutil"
)

// Repository exposes the load/save surface the engine's callers use. Absent
// records return (nil, nil); corrupt stored JSON returns an error rather than
// being misread as empty data.
type Repository struct {
	store *Store
}

func NewRepository(store *Store) *Repository {
	return &Repository{store: store}
}

// LoadMonth returns the month container for a YYYY-MM key, or nil when none
// has been saved yet.
func (r *Repository) LoadMonth(key string) (*model.MonthData, error) {
	var raw string
	err := r.store.db.QueryRow(`SELECT data FROM months WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var month model.MonthData
	if err := json.Unmarshal([]byte(raw), &month); err != nil {
		return nil, fmt.Errorf("corrupt month record %s: %w", key, err)
	}
	return &month, nil
}

func (r *Repository) SaveMonth(key string, month *model.MonthData) error {
	raw, err := json.Marshal(month)
	if err != nil {
		return err
	}
	_, err = r.store.db.Exec(`
		INSERT INTO months (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, key, string(raw))
	return err
}

// LoadWeek returns the week container for a YYYY-Www key, or nil when none
// has been saved yet.
func (r *Repository) LoadWeek(key string) (*model.WeeklyData, error) {
	var raw string
	err := r.store.db.QueryRow(`SELECT data FROM weeks WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var week model.WeeklyData
	if err := json.Unmarshal([]byte(raw), &week); err != nil {
		return nil, fmt.Errorf("corrupt week record %s: %w", key, err)
	}
	return &week, nil
}

func (r *Repository) SaveWeek(key string, week *model.WeeklyData) error {
	raw, err := json.Marshal(week)
	if err != nil {
		return err
	}
	_, err = r.store.db.Exec(`
		INSERT INTO weeks (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, key, string(raw))
	return err
}

// GetSetting returns a setting value, empty when unset.
func (r *Repository) GetSetting(name string) (string, error) {
	var value string
	err := r.store.db.QueryRow(`SELECT value FROM settings WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

func (r *Repository) SetSetting(name, value string) error {
	_, err := r.store.db.Exec(`
		INSERT INTO settings (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, name, value)
	return err
}

// AppendEvent stores an attention event and trims the log down to the cap,
// oldest first. Single-writer discipline is assumed.
func (r *Repository) AppendEvent(ev model.AttentionEvent) error {
	meta := ""
	if len(ev.Meta) > 0 {
		raw, err := json.Marshal(ev.Meta)
		if err != nil {
			return err
		}
		meta = string(raw)
	}

	_, err := r.store.db.Exec(`
		INSERT INTO events (id, type, occurred_at, task_id, meta)
		VALUES (?, ?, ?, ?, ?)
	`, ev.ID, string(ev.Type), ev.OccurredAt.UTC(), ev.TaskID, meta)
	if err != nil {
		return err
	}

	_, err = r.store.db.Exec(`
		DELETE FROM events WHERE seq <= (
			SELECT seq FROM events ORDER BY seq DESC LIMIT 1 OFFSET ?
		)
	`, model.MaxAttentionEvents)
	return err
}

// LoadEvents returns the retained events, oldest first.
func (r *Repository) LoadEvents() ([]model.AttentionEvent, error) {
	rows, err := r.store.db.Query(`
		SELECT id, type, occurred_at, task_id, meta
		FROM events ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.AttentionEvent
	for rows.Next() {
		var ev model.AttentionEvent
		var evType, taskID, meta string
		if err := rows.Scan(&ev.ID, &evType, &ev.OccurredAt, &taskID, &meta); err != nil {
			return nil, err
		}
		ev.Type = model.EventType(evType)
		ev.TaskID = taskID
		if meta != "" {
			if err := json.Unmarshal([]byte(meta), &ev.Meta); err != nil {
				return nil, fmt.Errorf("corrupt event meta %s: %w", ev.ID, err)
			}
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// LoadSnapshot materializes the immutable input the engine computes from:
// a trailing window of months, the current week, the event log and a single
// "now" reference.
func (r *Repository) LoadSnapshot(now time.Time, trailingMonths int) (*model.Snapshot, error) {
	snap := &model.Snapshot{
		Now:    now,
		Months: map[string]*model.MonthData{},
		Weeks:  map[string]*model.WeeklyData{},
	}

	for i := 0; i <= trailingMonths; i++ {
		key := timeutil.MonthKey(now.AddDate(0, -i, 0))
		month, err := r.LoadMonth(key)
		if err != nil {
			return nil, err
		}
		if month != nil {
			snap.Months[key] = month
		}
	}

	weekKey := timeutil.WeekKey(now)
	week, err := r.LoadWeek(weekKey)
	if err != nil {
		return nil, err
	}
	if week != nil {
		snap.Weeks[weekKey] = week
	}

	events, err := r.LoadEvents()
	if err != nil {
		return nil, err
	}
	// The sqlite trim keeps the table at the cap for our own appends; rows
	// written before the cap existed (or by anything else touching the file)
	// must not leak an over-cap log into the engine.
	snap.Events = model.NewEventLog(events).Events()

	return snap, nil
}
