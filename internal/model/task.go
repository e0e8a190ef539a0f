package model

import (
	"time"
)

// Category separates the two tracked lists: things you want to do more of
// and things you want to do less of.
type Category string

const (
	CategoryGoals Category = "goals"
	CategoryWaste Category = "waste"
)

// Categories lists all categories in display order.
var Categories = []Category{CategoryGoals, CategoryWaste}

// Title returns the display name for a category
func (c Category) Title() string {
	switch c {
	case CategoryGoals:
		return "Goals"
	case CategoryWaste:
		return "Time Sinks"
	default:
		return string(c)
	}
}

// Task represents a recurring goal or time-waste entry
type Task struct {
	ID             string    `json:"id"`
	Category       Category  `json:"category"`
	Text           string    `json:"text"`
	Completed      bool      `json:"completed"`
	CreatedDate    time.Time `json:"created_date"` // date-only, local midnight
	ElapsedSeconds *int      `json:"elapsed_seconds,omitempty"`
	Link           string    `json:"link,omitempty"`
	Schedule       *Schedule `json:"schedule,omitempty"` // nil means due every day
	Position       int       `json:"position"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsDueOn reports whether the task's schedule marks the given calendar date
// as an occurrence. A task without a schedule is due every day. The task's
// creation date serves as the anchor when the schedule has none of its own.
func (t *Task) IsDueOn(date time.Time) bool {
	if t.Schedule == nil {
		return true
	}
	return t.Schedule.DueOn(date, t.CreatedDate)
}

// DateOnly strips the time-of-day, returning local midnight of the same
// calendar date. Recurrence math must run on normalized dates so DST shifts
// cannot introduce fractional-day drift.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// DayString formats a date as the canonical YYYY-MM-DD form used in storage.
func DayString(t time.Time) string {
	return t.Format("2006-01-02")
}
