package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/vess/tock/internal/model"
)

const taskColumns = `id, category, text, completed, created_date, elapsed_seconds,
       link, schedule, position, created_at, updated_at`

// GetTasks returns all tasks in a category, active ones first
func (db *DB) GetTasks(category model.Category) ([]model.Task, error) {
	rows, err := db.Query(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE category = ?
		ORDER BY
			CASE completed WHEN 1 THEN 1 ELSE 0 END,
			position,
			created_at
	`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return db.scanTasks(rows)
}

// GetTask returns a single task by ID, or nil when it does not exist
func (db *DB) GetTask(id string) (*model.Task, error) {
	row := db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	t, err := db.scanTaskRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// CreateTask creates a new task at the bottom of its category and records
// its text in the autocomplete history.
func (db *DB) CreateTask(category model.Category, text, link string, schedule *model.Schedule) (*model.Task, error) {
	id := uuid.New().String()
	now := time.Now()
	created := model.DateOnly(now)

	var position int
	db.QueryRow(`SELECT COALESCE(MAX(position), -1) + 1 FROM tasks WHERE category = ?`, category).Scan(&position)

	var linkVal interface{}
	if link != "" {
		linkVal = link
	}

	_, err := db.Exec(`
		INSERT INTO tasks (id, category, text, completed, created_date, link, schedule, position, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?, ?, ?, ?, ?)
	`, id, category, text, model.DayString(created), linkVal, scheduleVal(schedule),
		position, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	if err := db.RecordTaskText(category, text); err != nil {
		return nil, err
	}

	return &model.Task{
		ID:          id,
		Category:    category,
		Text:        text,
		CreatedDate: created,
		Link:        link,
		Schedule:    schedule,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdateTaskText renames a task and records the new text in history
func (db *DB) UpdateTaskText(id string, category model.Category, text string) error {
	_, err := db.Exec(`UPDATE tasks SET text = ?, updated_at = ? WHERE id = ?`,
		text, time.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return db.RecordTaskText(category, text)
}

// UpdateTaskLink sets or clears a task's external link
func (db *DB) UpdateTaskLink(id, link string) error {
	var linkVal interface{}
	if link != "" {
		linkVal = link
	}
	_, err := db.Exec(`UPDATE tasks SET link = ?, updated_at = ? WHERE id = ?`,
		linkVal, time.Now().Format(time.RFC3339), id)
	return err
}

// UpdateTaskSchedule replaces a task's recurrence rule. Callers switching
// variants carry the old anchor onto the new rule unless the user set a
// new one.
func (db *DB) UpdateTaskSchedule(id string, schedule *model.Schedule) error {
	_, err := db.Exec(`UPDATE tasks SET schedule = ?, updated_at = ? WHERE id = ?`,
		scheduleVal(schedule), time.Now().Format(time.RFC3339), id)
	return err
}

// CompleteTask checks off the current occurrence and stores the elapsed
// timer duration for display. Writing the log entry is the caller's job.
func (db *DB) CompleteTask(id string, elapsedSeconds *int) error {
	var elapsed interface{}
	if elapsedSeconds != nil {
		elapsed = *elapsedSeconds
	}
	_, err := db.Exec(`UPDATE tasks SET completed = 1, elapsed_seconds = ?, updated_at = ? WHERE id = ?`,
		elapsed, time.Now().Format(time.RFC3339), id)
	return err
}

// UncompleteTask moves a task back to the active list. The log entry
// created when it was completed stays: the log is an audit trail, not a
// mirror of current task state.
func (db *DB) UncompleteTask(id string) error {
	_, err := db.Exec(`UPDATE tasks SET completed = 0, updated_at = ? WHERE id = ?`,
		time.Now().Format(time.RFC3339), id)
	return err
}

// SetTaskPosition moves a task within its category's ordering
func (db *DB) SetTaskPosition(id string, position int) error {
	_, err := db.Exec(`UPDATE tasks SET position = ?, updated_at = ? WHERE id = ?`,
		position, time.Now().Format(time.RFC3339), id)
	return err
}

// DeleteTask removes a task. Its log entries survive.
func (db *DB) DeleteTask(id string) error {
	_, err := db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// Helper functions

func scheduleVal(s *model.Schedule) interface{} {
	raw := s.Encode()
	if raw == nil {
		return nil
	}
	return *raw
}

func (db *DB) scanTasks(rows *sql.Rows) ([]model.Task, error) {
	var tasks []model.Task
	for rows.Next() {
		t, err := db.scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (db *DB) scanTaskRow(s scanner) (*model.Task, error) {
	var t model.Task
	var completed int
	var createdDate, createdAt, updatedAt string
	var elapsed *int
	var link, schedule *string

	err := s.Scan(
		&t.ID, &t.Category, &t.Text, &completed, &createdDate,
		&elapsed, &link, &schedule, &t.Position, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Completed = completed == 1
	t.ElapsedSeconds = elapsed
	if link != nil {
		t.Link = *link
	}
	t.Schedule = model.ParseSchedule(schedule)

	// Malformed dates degrade to the zero value instead of failing the load.
	if parsed, err := time.ParseInLocation("2006-01-02", createdDate, time.Local); err == nil {
		t.CreatedDate = parsed
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = parsed
	}
	if parsed, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		t.UpdatedAt = parsed
	}

	return &t, nil
}
