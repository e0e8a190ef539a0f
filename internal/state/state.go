// Package state holds the pure day-boundary logic: the daily completion
// reset and the per-day skip set. The storage layer applies these
// transitions; keeping them here makes the reset contract testable without
// a database.
package state

import (
	"strings"
	"time"

	"github.com/vess/tock/internal/model"
)

// Snapshot is the persisted application state the day-boundary rules
// operate on.
type Snapshot struct {
	Items         map[model.Category][]model.Task `json:"items"`
	TaskHistory   map[model.Category][]string     `json:"task_history"`
	LastResetDate string                          `json:"last_reset_date"` // YYYY-MM-DD
	Skips         SkipState                       `json:"skips"`
}

// SkipState hides specific tasks from today's view without touching their
// history or future occurrences. It only ever applies to one calendar day.
type SkipState struct {
	Date string                        `json:"date"` // YYYY-MM-DD
	IDs  map[model.Category][]string   `json:"ids"`
}

// ResetIfNewDay returns the snapshot adjusted for the given day. If the
// stored reset date already matches, the input is returned unchanged.
// Otherwise every task's completed flag is cleared, the reset date
// advances, and a stale skip set is emptied. The input snapshot is never
// mutated.
func ResetIfNewDay(s Snapshot, today time.Time) Snapshot {
	day := model.DayString(today)
	if s.LastResetDate == day {
		return s
	}

	out := s
	out.LastResetDate = day
	out.Items = make(map[model.Category][]model.Task, len(s.Items))
	for cat, tasks := range s.Items {
		copied := make([]model.Task, len(tasks))
		copy(copied, tasks)
		for i := range copied {
			copied[i].Completed = false
		}
		out.Items[cat] = copied
	}
	out.Skips = s.Skips.ForDay(today)
	return out
}

// ForDay returns the skip set as it applies to the given day: unchanged if
// the stored date matches, empty otherwise.
func (sk SkipState) ForDay(today time.Time) SkipState {
	day := model.DayString(today)
	if sk.Date == day {
		return sk
	}
	return SkipState{Date: day, IDs: make(map[model.Category][]string)}
}

// Contains reports whether a task id is skipped for the skip set's day
func (sk SkipState) Contains(cat model.Category, taskID string) bool {
	for _, id := range sk.IDs[cat] {
		if id == taskID {
			return true
		}
	}
	return false
}

// With returns a copy of the skip set with the task id added
func (sk SkipState) With(cat model.Category, taskID string) SkipState {
	if sk.Contains(cat, taskID) {
		return sk
	}
	out := SkipState{Date: sk.Date, IDs: make(map[model.Category][]string, len(sk.IDs))}
	for c, ids := range sk.IDs {
		out.IDs[c] = append([]string(nil), ids...)
	}
	out.IDs[cat] = append(out.IDs[cat], taskID)
	return out
}

// RecordHistory returns the history list with text promoted to the front.
// Matching is case-insensitive; the canonical casing becomes the newest
// spelling used.
func RecordHistory(history []string, text string) []string {
	out := make([]string, 0, len(history)+1)
	out = append(out, text)
	for _, h := range history {
		if !strings.EqualFold(h, text) {
			out = append(out, h)
		}
	}
	return out
}
