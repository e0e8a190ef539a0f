package db

import (
	"database/sql"
	"time"

	"github.com/vess/tock/internal/model"
	"github.com/vess/tock/internal/state"
)

const metaLastReset = "last_reset_date"

// LastResetDate returns the stored daily-reset date, empty if never set
func (db *DB) LastResetDate() (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = ?`, metaLastReset).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ResetCompletionsIfNewDay applies the daily-reset contract: when the
// stored reset date differs from today, every task's completed flag is
// cleared, stale skips are dropped, and the date advances. Returns whether
// a reset happened.
func (db *DB) ResetCompletionsIfNewDay(today time.Time) (bool, error) {
	snap, err := db.Snapshot()
	if err != nil {
		return false, err
	}

	next := state.ResetIfNewDay(snap, today)
	if next.LastResetDate == snap.LastResetDate {
		return false, nil
	}

	err = db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`UPDATE tasks SET completed = 0`); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM skips WHERE day != ?`, next.LastResetDate); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, metaLastReset, next.LastResetDate)
		return err
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Snapshot loads the persisted state the day-boundary rules operate on
func (db *DB) Snapshot() (state.Snapshot, error) {
	snap := state.Snapshot{
		Items:       make(map[model.Category][]model.Task),
		TaskHistory: make(map[model.Category][]string),
	}

	for _, cat := range model.Categories {
		tasks, err := db.GetTasks(cat)
		if err != nil {
			return snap, err
		}
		snap.Items[cat] = tasks

		history, err := db.TaskHistory(cat)
		if err != nil {
			return snap, err
		}
		snap.TaskHistory[cat] = history
	}

	lastReset, err := db.LastResetDate()
	if err != nil {
		return snap, err
	}
	snap.LastResetDate = lastReset

	if lastReset != "" {
		skips, err := db.SkipsFor(lastReset)
		if err != nil {
			return snap, err
		}
		snap.Skips = skips
	}
	return snap, nil
}

// SkipsFor returns the skip set stored for a calendar day
func (db *DB) SkipsFor(day string) (state.SkipState, error) {
	sk := state.SkipState{Date: day, IDs: make(map[model.Category][]string)}

	rows, err := db.Query(`SELECT category, task_id FROM skips WHERE day = ?`, day)
	if err != nil {
		return sk, err
	}
	defer rows.Close()

	for rows.Next() {
		var cat model.Category
		var taskID string
		if err := rows.Scan(&cat, &taskID); err != nil {
			return sk, err
		}
		sk.IDs[cat] = append(sk.IDs[cat], taskID)
	}
	return sk, rows.Err()
}

// AddSkip hides a task for one calendar day without touching its schedule
// or history.
func (db *DB) AddSkip(day string, category model.Category, taskID string) error {
	_, err := db.Exec(`
		INSERT OR IGNORE INTO skips (day, category, task_id) VALUES (?, ?, ?)
	`, day, category, taskID)
	return err
}

// TaskHistory returns the distinct task texts ever used in a category,
// newest first, for autocomplete.
func (db *DB) TaskHistory(category model.Category) ([]string, error) {
	rows, err := db.Query(`
		SELECT text FROM task_history
		WHERE category = ?
		ORDER BY created_at DESC
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		history = append(history, text)
	}
	return history, rows.Err()
}

// RecordTaskText promotes a task text to the front of its category's
// history. Texts dedupe case-insensitively; the latest spelling wins.
func (db *DB) RecordTaskText(category model.Category, text string) error {
	_, err := db.Exec(`
		INSERT INTO task_history (category, text, created_at) VALUES (?, ?, ?)
		ON CONFLICT(category, text) DO UPDATE SET text = excluded.text, created_at = excluded.created_at
	`, category, text, time.Now().Format(time.RFC3339Nano))
	return err
}
