// Package timer implements the per-task countdown/stopwatch engine. Timers
// are ephemeral: they live in memory, keyed by task id, and are discarded on
// completion, deletion, or explicit clear. The engine is driven by a shared
// one-second tick from the UI loop.
package timer

import (
	"math"
	"sync"
	"time"

	"github.com/vess/tock/internal/model"
)

// Countdown duration bounds for manually entered durations.
const (
	MinCountdown = 1 * time.Minute
	MaxCountdown = 1440 * time.Minute
)

// Mode distinguishes the two timer flavors
type Mode int

const (
	ModeCountdown Mode = iota
	ModeStopwatch
)

// State is the live state of one task's timer. ItemText and Category are
// snapshots taken at start time so a completion can still be logged after
// the task is renamed or deleted.
type State struct {
	TaskID   string
	ItemText string
	Category model.Category
	Mode     Mode
	Running  bool

	// Countdown fields
	Remaining int // seconds left
	Total     int // seconds at start
	Elapsed   int // seconds spent running
	Target    *time.Time // absolute deadline, when started from a wall-clock time

	// Stopwatch field
	Seconds int
}

// Completion is emitted when a countdown runs out.
type Completion struct {
	TaskID         string
	ItemText       string
	Category       model.Category
	ElapsedSeconds int
}

// Engine owns all timer state. Every mutation happens under the mutex, so
// the engine tolerates being driven from a multi-goroutine host even though
// the TUI delivers commands and ticks serially.
type Engine struct {
	mu       sync.Mutex
	now      func() time.Time
	timers   map[string]*State
	lastTick int64 // unix second of the last applied tick
}

// NewEngine creates an empty timer engine
func NewEngine() *Engine {
	return &Engine{
		now:    time.Now,
		timers: make(map[string]*State),
	}
}

// StartCountdown starts a countdown for the task. The duration is clamped
// to [1m, 24h]. Any existing timer for the task is replaced.
func (e *Engine) StartCountdown(t model.Task, d time.Duration) *State {
	if d < MinCountdown {
		d = MinCountdown
	}
	if d > MaxCountdown {
		d = MaxCountdown
	}
	secs := int(d / time.Second)

	e.mu.Lock()
	defer e.mu.Unlock()
	st := &State{
		TaskID:    t.ID,
		ItemText:  t.Text,
		Category:  t.Category,
		Mode:      ModeCountdown,
		Running:   true,
		Remaining: secs,
		Total:     secs,
	}
	e.timers[t.ID] = st
	return st
}

// StartCountdownUntil starts a countdown pinned to an absolute deadline.
// A deadline whose clock time has already passed today rolls over to the
// same time tomorrow. The effective duration is never under a minute.
func (e *Engine) StartCountdownUntil(t model.Task, target time.Time) *State {
	now := e.now()
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	secs := int(math.Round(target.Sub(now).Seconds()))
	if secs < 60 {
		secs = 60
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	st := &State{
		TaskID:    t.ID,
		ItemText:  t.Text,
		Category:  t.Category,
		Mode:      ModeCountdown,
		Running:   true,
		Remaining: secs,
		Total:     secs,
		Target:    &target,
	}
	e.timers[t.ID] = st
	return st
}

// StartStopwatch starts a count-up timer for the task
func (e *Engine) StartStopwatch(t model.Task) *State {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := &State{
		TaskID:   t.ID,
		ItemText: t.Text,
		Category: t.Category,
		Mode:     ModeStopwatch,
		Running:  true,
	}
	e.timers[t.ID] = st
	return st
}

// PauseResume toggles the running flag. Resuming a deadline-pinned
// countdown recomputes the remaining time from the deadline instead of
// trusting the stored value, so wall-clock drift during a pause cannot
// desynchronize the display. Unknown ids are a no-op.
func (e *Engine) PauseResume(taskID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.timers[taskID]
	if !ok {
		return
	}
	st.Running = !st.Running
	if st.Running && st.Mode == ModeCountdown && st.Target != nil {
		left := int(math.Round(st.Target.Sub(e.now()).Seconds()))
		if left < 0 {
			left = 0
		}
		st.Remaining = left
	}
}

// Tick advances every running timer by one second and returns completion
// events for countdowns that ran out. Multiple calls within the same
// wall-clock second apply at most one step, so a polling loop faster than
// 1Hz cannot make timers run fast.
func (e *Engine) Tick() []Completion {
	e.mu.Lock()
	defer e.mu.Unlock()

	sec := e.now().Unix()
	if sec == e.lastTick {
		return nil
	}
	e.lastTick = sec

	var done []Completion
	for _, st := range e.timers {
		if !st.Running {
			continue
		}
		switch st.Mode {
		case ModeStopwatch:
			st.Seconds++
		case ModeCountdown:
			if st.Remaining > 0 {
				st.Remaining--
			}
			st.Elapsed++
			if st.Remaining == 0 {
				st.Running = false
				if st.Elapsed > 0 {
					done = append(done, Completion{
						TaskID:         st.TaskID,
						ItemText:       st.ItemText,
						Category:       st.Category,
						ElapsedSeconds: st.Elapsed,
					})
				}
			}
		}
	}
	return done
}

// Clear discards the timer for a task without emitting anything. Logging a
// partial session is the caller's responsibility.
func (e *Engine) Clear(taskID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.timers, taskID)
}

// Get returns a copy of the timer state for a task, if any
func (e *Engine) Get(taskID string) (State, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.timers[taskID]
	if !ok {
		return State{}, false
	}
	return *st, true
}

// ElapsedSeconds returns the seconds accumulated so far for a task's timer:
// the elapsed count for countdowns, the running count for stopwatches.
// Returns 0 for unknown ids.
func (e *Engine) ElapsedSeconds(taskID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.timers[taskID]
	if !ok {
		return 0
	}
	if st.Mode == ModeStopwatch {
		return st.Seconds
	}
	return st.Elapsed
}
