package model

import (
	"fmt"
	"time"
)

// LogEntry is an immutable record of time spent on a task. Entries are
// append-only: un-completing a task never removes the entry it produced.
// The only way an entry leaves the log is explicit per-entry deletion.
type LogEntry struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"item_id"`
	ItemText        string    `json:"item_text"`
	Category        Category  `json:"category"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	DurationSeconds int       `json:"duration_seconds"`
}

// LogEntryID derives an entry id from the end timestamp and the task id.
// Nanosecond precision keeps ids unique even for rapid successive
// completions of the same task.
func LogEntryID(end time.Time, itemID string) string {
	return fmt.Sprintf("%d-%s", end.UnixNano(), itemID)
}
