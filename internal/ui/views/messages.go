package views

import (
	"github.com/vess/tock/internal/model"
)

// Messages shared between the views and the root model

// TickMsg is the shared one-second clock every view receives
type TickMsg struct{}

// FocusTaskMsg asks the timer view to take over a task
type FocusTaskMsg struct {
	Task model.Task
}

// TasksChangedMsg tells views that task state was mutated elsewhere
type TasksChangedMsg struct{}

// ErrMsg surfaces an operation failure in the footer
type ErrMsg struct {
	Err error
}

// StatusMsg sets the footer status line
type StatusMsg struct {
	Text string
}
