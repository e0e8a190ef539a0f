package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vess/tock/internal/db"
	"github.com/vess/tock/internal/model"
	"github.com/vess/tock/internal/sessionlog"
	"github.com/vess/tock/internal/timer"
	"github.com/vess/tock/internal/ui/theme"
)

// timerInput identifies which prompt the timer view is showing
type timerInput int

const (
	inputNone timerInput = iota
	inputMinutes
	inputUntil
)

// TimerView runs a countdown or stopwatch against the focused task.
type TimerView struct {
	db     *db.DB
	timers *timer.Engine
	logger *sessionlog.Builder
	width  int
	height int

	defaultMinutes int

	task    *model.Task
	input   textinput.Model
	editing timerInput

	statusMsg string
}

// NewTimerView creates the timer view
func NewTimerView(database *db.DB, timers *timer.Engine, logger *sessionlog.Builder, defaultMinutes int) TimerView {
	input := textinput.New()
	input.CharLimit = 8

	return TimerView{
		db:             database,
		timers:         timers,
		logger:         logger,
		defaultMinutes: defaultMinutes,
		input:          input,
	}
}

// Init initializes the timer view
func (v TimerView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v TimerView) SetSize(width, height int) TimerView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v TimerView) IsInputMode() bool {
	return v.editing != inputNone
}

// Update handles messages
func (v TimerView) Update(msg tea.Msg) (TimerView, tea.Cmd) {
	switch msg := msg.(type) {
	case FocusTaskMsg:
		task := msg.Task
		v.task = &task
		v.statusMsg = ""
		return v, nil

	case TasksChangedMsg:
		// The focused task may have been completed or deleted elsewhere.
		if v.task != nil {
			return v, v.refreshTask(v.task.ID)
		}
		return v, nil

	case timerTaskRefreshedMsg:
		v.task = msg.task
		return v, nil

	case TickMsg:
		// Timer state lives in the engine; a tick just redraws.
		return v, nil

	case tea.KeyMsg:
		if v.editing != inputNone {
			return v.updateInput(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

type timerTaskRefreshedMsg struct {
	task *model.Task
}

// refreshTask reloads the focused task, dropping it if it is gone or done
func (v TimerView) refreshTask(id string) tea.Cmd {
	return func() tea.Msg {
		task, err := v.db.GetTask(id)
		if err != nil || task == nil || task.Completed {
			return timerTaskRefreshedMsg{task: nil}
		}
		return timerTaskRefreshedMsg{task: task}
	}
}

func (v TimerView) updateNormal(msg tea.KeyMsg) (TimerView, tea.Cmd) {
	if v.task == nil {
		return v, nil
	}

	switch msg.String() {
	case "c":
		v.timers.StartCountdown(*v.task, time.Duration(v.defaultMinutes)*time.Minute)
		v.statusMsg = fmt.Sprintf("Countdown started: %dm", v.defaultMinutes)

	case "m":
		v.editing = inputMinutes
		v.input.Placeholder = "minutes"
		v.input.SetValue("")
		v.input.Focus()
		return v, textinput.Blink

	case "u":
		v.editing = inputUntil
		v.input.Placeholder = "HH:MM"
		v.input.SetValue("")
		v.input.Focus()
		return v, textinput.Blink

	case "w":
		v.timers.StartStopwatch(*v.task)
		v.statusMsg = "Stopwatch started"

	case " ", "p":
		v.timers.PauseResume(v.task.ID)

	case "r":
		v.timers.Clear(v.task.ID)
		v.statusMsg = "Timer cleared"

	case "f", "enter":
		return v, v.finishNow(*v.task)
	}

	return v, nil
}

func (v TimerView) updateInput(msg tea.KeyMsg) (TimerView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editing = inputNone
		v.input.Blur()
		return v, nil

	case "enter":
		value := strings.TrimSpace(v.input.Value())
		mode := v.editing
		v.editing = inputNone
		v.input.Blur()
		if value == "" || v.task == nil {
			return v, nil
		}

		switch mode {
		case inputMinutes:
			minutes, err := strconv.Atoi(value)
			if err != nil || minutes <= 0 {
				v.statusMsg = "Not a number of minutes: " + value
				return v, nil
			}
			st := v.timers.StartCountdown(*v.task, time.Duration(minutes)*time.Minute)
			v.statusMsg = fmt.Sprintf("Countdown started: %dm", st.Total/60)

		case inputUntil:
			target, err := parseClock(value, time.Now())
			if err != nil {
				v.statusMsg = "Not a time (use HH:MM): " + value
				return v, nil
			}
			st := v.timers.StartCountdownUntil(*v.task, target)
			v.statusMsg = "Counting down to " + st.Target.Format("15:04")
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// parseClock resolves "HH:MM" to today's wall-clock instant. Rollover to
// tomorrow for times already past is the engine's job.
func parseClock(s string, now time.Time) (time.Time, error) {
	at, err := time.ParseInLocation("15:04", s, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location()), nil
}

// finishNow ends the session early: logs whatever ran and completes the task
func (v TimerView) finishNow(task model.Task) tea.Cmd {
	return func() tea.Msg {
		elapsed := v.timers.ElapsedSeconds(task.ID)
		if entry, ok := v.logger.Build(task.ID, task.Text, task.Category, elapsed); ok {
			if err := v.db.InsertLog(entry); err != nil {
				return ErrMsg{Err: err}
			}
		}
		if err := v.db.CompleteTask(task.ID, &elapsed); err != nil {
			return ErrMsg{Err: err}
		}
		v.timers.Clear(task.ID)
		return TasksChangedMsg{}
	}
}

// View renders the timer view
func (v TimerView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current
	var sections []string

	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1)
	sections = append(sections, title.Render("Timer"))

	if v.task == nil {
		empty := lipgloss.NewStyle().Foreground(t.Subtle)
		sections = append(sections, empty.Render("No task focused. Pick one on the Today view with t."))
		return strings.Join(sections, "\n")
	}

	taskLine := lipgloss.NewStyle().Foreground(t.Info)
	sections = append(sections, taskLine.Render(v.task.Category.Title()+": "+v.task.Text))

	sections = append(sections, v.renderClock())

	if v.editing != inputNone {
		label := "Minutes:"
		if v.editing == inputUntil {
			label = "Until (HH:MM):"
		}
		prompt := lipgloss.NewStyle().Foreground(t.Primary).MarginTop(1)
		sections = append(sections, prompt.Render(label))
		sections = append(sections, v.input.View())
	}

	if v.statusMsg != "" {
		status := lipgloss.NewStyle().Foreground(t.Success).MarginTop(1)
		sections = append(sections, status.Render(v.statusMsg))
	}

	controls := lipgloss.NewStyle().Foreground(t.Subtle).MarginTop(2)
	sections = append(sections, controls.Render(
		fmt.Sprintf("c %dm countdown • m minutes • u until time • w stopwatch • space pause • f finish now • r clear",
			v.defaultMinutes)))

	return strings.Join(sections, "\n")
}

func (v TimerView) renderClock() string {
	t := theme.Current

	st, ok := v.timers.Get(v.task.ID)
	if !ok {
		idle := lipgloss.NewStyle().Foreground(t.Subtle).MarginTop(1)
		return idle.Render("No timer running.")
	}

	var color lipgloss.Color
	var label string
	switch {
	case st.Mode == timer.ModeStopwatch && st.Running:
		color, label = t.Success, "STOPWATCH"
	case st.Mode == timer.ModeCountdown && st.Remaining == 0:
		color, label = t.Primary, "DONE"
	case st.Running:
		color, label = t.Error, "FOCUS"
	default:
		color, label = t.Warning, "PAUSED"
	}

	var timeStr string
	if st.Mode == timer.ModeStopwatch {
		timeStr = formatClock(st.Seconds)
	} else {
		timeStr = formatClock(st.Remaining)
	}

	face := lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color)

	parts := []string{
		lipgloss.NewStyle().Bold(true).Foreground(color).Render(label),
		face.Render(timeStr),
	}

	if st.Mode == timer.ModeCountdown && st.Total > 0 {
		barWidth := 30
		filled := (st.Total - st.Remaining) * barWidth / st.Total
		if filled > barWidth {
			filled = barWidth
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		parts = append(parts, lipgloss.NewStyle().Foreground(color).Render(bar))
	}

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

// formatClock renders seconds as MM:SS, or H:MM:SS past the hour
func formatClock(secs int) string {
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, (secs/60)%60, secs%60)
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
