package db

import (
	"database/sql"
	"time"

	"github.com/vess/tock/internal/model"
)

// InsertLog appends an entry to the session log. Entries are never updated
// after insertion.
func (db *DB) InsertLog(entry model.LogEntry) error {
	_, err := db.Exec(`
		INSERT INTO logs (id, item_id, item_text, category, started_at, ended_at, duration_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.ItemID, entry.ItemText, entry.Category,
		entry.StartedAt.Format(time.RFC3339), entry.EndedAt.Format(time.RFC3339),
		entry.DurationSeconds)
	return err
}

// GetLogs returns log entries, newest first. Category and since are
// optional filters.
func (db *DB) GetLogs(category *model.Category, since *time.Time) ([]model.LogEntry, error) {
	query := `
		SELECT id, item_id, item_text, category, started_at, ended_at, duration_seconds
		FROM logs`
	var args []interface{}
	var conds []string

	if category != nil {
		conds = append(conds, "category = ?")
		args = append(args, *category)
	}
	if since != nil {
		conds = append(conds, "ended_at >= ?")
		args = append(args, since.Format(time.RFC3339))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY ended_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLogs(rows)
}

// DeleteLog removes a single entry by id. This is the only mutation the
// log supports besides appending.
func (db *DB) DeleteLog(id string) error {
	_, err := db.Exec(`DELETE FROM logs WHERE id = ?`, id)
	return err
}

func scanLogs(rows *sql.Rows) ([]model.LogEntry, error) {
	var entries []model.LogEntry
	for rows.Next() {
		var e model.LogEntry
		var started, ended string
		if err := rows.Scan(&e.ID, &e.ItemID, &e.ItemText, &e.Category,
			&started, &ended, &e.DurationSeconds); err != nil {
			return nil, err
		}
		if parsed, err := time.Parse(time.RFC3339, started); err == nil {
			e.StartedAt = parsed
		}
		if parsed, err := time.Parse(time.RFC3339, ended); err == nil {
			e.EndedAt = parsed
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
