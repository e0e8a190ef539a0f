package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vess/tock/internal/db"
	"github.com/vess/tock/internal/model"
	"github.com/vess/tock/internal/sessionlog"
	"github.com/vess/tock/internal/state"
	"github.com/vess/tock/internal/timer"
	"github.com/vess/tock/internal/ui/theme"
)

// TodayView shows the tasks due today per category, with completion,
// skip-for-today, and quick add.
type TodayView struct {
	db     *db.DB
	timers *timer.Engine
	logger *sessionlog.Builder
	width  int
	height int

	category model.Category
	tasks    []model.Task // due today, skips already filtered out
	skips    state.SkipState
	history  []string
	cursor   int

	// Quick add input
	input       textinput.Model
	adding      bool
	suggestIdx  int
	suggestBase string

	statusMsg string
}

// NewTodayView creates the today view
func NewTodayView(database *db.DB, timers *timer.Engine, logger *sessionlog.Builder) TodayView {
	input := textinput.New()
	input.Placeholder = "task text"
	input.CharLimit = 120

	return TodayView{
		db:       database,
		timers:   timers,
		logger:   logger,
		category: model.CategoryGoals,
		input:    input,
	}
}

// Init initializes the today view
func (v TodayView) Init() tea.Cmd {
	return v.loadTasks()
}

// SetSize sets the view dimensions
func (v TodayView) SetSize(width, height int) TodayView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v TodayView) IsInputMode() bool {
	return v.adding
}

type todayLoadedMsg struct {
	tasks   []model.Task
	skips   state.SkipState
	history []string
	err     error
}

// loadTasks loads today's due tasks for the active category
func (v TodayView) loadTasks() tea.Cmd {
	category := v.category
	return func() tea.Msg {
		now := time.Now()
		all, err := v.db.GetTasks(category)
		if err != nil {
			return todayLoadedMsg{err: err}
		}
		skips, err := v.db.SkipsFor(model.DayString(now))
		if err != nil {
			return todayLoadedMsg{err: err}
		}
		history, err := v.db.TaskHistory(category)
		if err != nil {
			return todayLoadedMsg{err: err}
		}

		var due []model.Task
		for _, t := range all {
			if !t.IsDueOn(now) {
				continue
			}
			if skips.Contains(category, t.ID) {
				continue
			}
			due = append(due, t)
		}
		return todayLoadedMsg{tasks: due, skips: skips, history: history}
	}
}

// Update handles messages
func (v TodayView) Update(msg tea.Msg) (TodayView, tea.Cmd) {
	switch msg := msg.(type) {
	case todayLoadedMsg:
		if msg.err != nil {
			v.statusMsg = "load failed: " + msg.err.Error()
			return v, nil
		}
		v.tasks = msg.tasks
		v.skips = msg.skips
		v.history = msg.history
		if v.cursor >= len(v.tasks) {
			v.cursor = max(0, len(v.tasks)-1)
		}
		return v, nil

	case TasksChangedMsg:
		return v, v.loadTasks()

	case tea.KeyMsg:
		if v.adding {
			return v.updateInput(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v TodayView) updateNormal(msg tea.KeyMsg) (TodayView, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
		}

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

	case "g":
		v.cursor = 0

	case "G":
		if len(v.tasks) > 0 {
			v.cursor = len(v.tasks) - 1
		}

	case "tab", "h", "l":
		if v.category == model.CategoryGoals {
			v.category = model.CategoryWaste
		} else {
			v.category = model.CategoryGoals
		}
		v.cursor = 0
		return v, v.loadTasks()

	case " ", "x":
		if task, ok := v.selected(); ok {
			return v, v.toggleComplete(task)
		}

	case "a":
		v.adding = true
		v.input.SetValue("")
		v.suggestBase = ""
		v.suggestIdx = -1
		v.input.Focus()
		return v, textinput.Blink

	case "d":
		if task, ok := v.selected(); ok {
			return v, v.deleteTask(task)
		}

	case "s":
		if task, ok := v.selected(); ok {
			return v, v.skipToday(task)
		}

	case "e":
		if task, ok := v.selected(); ok {
			return v, v.cycleSchedule(task)
		}

	case "t", "enter":
		if task, ok := v.selected(); ok && !task.Completed {
			return v, func() tea.Msg { return FocusTaskMsg{Task: task} }
		}
	}

	return v, nil
}

func (v TodayView) updateInput(msg tea.KeyMsg) (TodayView, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.adding = false
		v.input.Blur()
		return v, nil

	case "enter":
		text := strings.TrimSpace(v.input.Value())
		v.adding = false
		v.input.Blur()
		if text == "" {
			return v, nil
		}
		category := v.category
		return v, func() tea.Msg {
			if _, err := v.db.CreateTask(category, text, "", nil); err != nil {
				return ErrMsg{Err: err}
			}
			return TasksChangedMsg{}
		}

	case "tab":
		// Cycle through history entries matching the typed prefix.
		if v.suggestIdx < 0 {
			v.suggestBase = v.input.Value()
		}
		matches := v.suggestions()
		if len(matches) > 0 {
			v.suggestIdx = (v.suggestIdx + 1) % len(matches)
			v.input.SetValue(matches[v.suggestIdx])
			v.input.CursorEnd()
		}
		return v, nil
	}

	v.suggestIdx = -1
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v TodayView) suggestions() []string {
	base := strings.ToLower(v.suggestBase)
	var out []string
	for _, h := range v.history {
		if base == "" || strings.HasPrefix(strings.ToLower(h), base) {
			out = append(out, h)
		}
	}
	return out
}

func (v TodayView) selected() (model.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.tasks) {
		return model.Task{}, false
	}
	return v.tasks[v.cursor], true
}

// toggleComplete flips the task's completion with its two explicit
// outcomes: completing logs the captured time and drops the timer;
// un-completing only returns the task to the active list.
func (v TodayView) toggleComplete(task model.Task) tea.Cmd {
	return func() tea.Msg {
		if task.Completed {
			if err := v.db.UncompleteTask(task.ID); err != nil {
				return ErrMsg{Err: err}
			}
			return TasksChangedMsg{}
		}

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

func (v TodayView) deleteTask(task model.Task) tea.Cmd {
	return func() tea.Msg {
		if err := v.db.DeleteTask(task.ID); err != nil {
			return ErrMsg{Err: err}
		}
		v.timers.Clear(task.ID)
		return TasksChangedMsg{}
	}
}

// skipToday hides the task until tomorrow without touching its schedule
func (v TodayView) skipToday(task model.Task) tea.Cmd {
	return func() tea.Msg {
		if err := v.db.AddSkip(model.DayString(time.Now()), task.Category, task.ID); err != nil {
			return ErrMsg{Err: err}
		}
		return TasksChangedMsg{}
	}
}

// scheduleCycle is the order the e key steps through. The richer variants
// (custom days, specific date) are set from the CLI where their parameters
// can be typed out.
var scheduleCycle = []model.ScheduleKind{
	model.ScheduleDaily,
	model.ScheduleWeekdays,
	model.ScheduleWeekends,
	model.ScheduleEveryOtherDay,
	model.ScheduleEvery3Days,
	model.ScheduleWeekly,
	model.ScheduleBiweekly,
	model.ScheduleMonthly,
}

// cycleSchedule advances the task to the next recurrence variant. The
// anchor carries over so switching variants never moves the epoch.
func (v TodayView) cycleSchedule(task model.Task) tea.Cmd {
	return func() tea.Msg {
		next := 0
		if task.Schedule != nil {
			for i, k := range scheduleCycle {
				if task.Schedule.Kind == k {
					next = (i + 1) % len(scheduleCycle)
					break
				}
			}
		}

		sched := &model.Schedule{Kind: scheduleCycle[next]}
		if task.Schedule != nil {
			sched.Anchor = task.Schedule.Anchor
		}
		if err := v.db.UpdateTaskSchedule(task.ID, sched); err != nil {
			return ErrMsg{Err: err}
		}
		return TasksChangedMsg{}
	}
}

// View renders the today view
func (v TodayView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current
	var sections []string

	sections = append(sections, v.renderTabs())

	if len(v.tasks) == 0 {
		empty := lipgloss.NewStyle().Foreground(t.Subtle).MarginTop(1)
		sections = append(sections, empty.Render("Nothing due today. Press a to add a task."))
	} else {
		sections = append(sections, v.renderTasks())
	}

	if v.adding {
		label := lipgloss.NewStyle().Foreground(t.Primary).MarginTop(1)
		sections = append(sections, label.Render("New "+string(v.category)+" task (tab completes from history):"))
		sections = append(sections, v.input.View())
	}

	if v.statusMsg != "" {
		status := lipgloss.NewStyle().Foreground(t.Warning).MarginTop(1)
		sections = append(sections, status.Render(v.statusMsg))
	}

	controls := lipgloss.NewStyle().Foreground(t.Subtle).MarginTop(1)
	sections = append(sections, controls.Render(
		"space toggle done • t timer • s skip today • e schedule • a add • d delete • tab switch list"))

	return strings.Join(sections, "\n")
}

func (v TodayView) renderTabs() string {
	t := theme.Current
	var tabs []string
	for _, cat := range model.Categories {
		style := lipgloss.NewStyle().Padding(0, 2).Foreground(t.Subtle)
		if cat == v.category {
			style = style.Foreground(t.Primary).Bold(true).Underline(true)
		}
		tabs = append(tabs, style.Render(cat.Title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v TodayView) renderTasks() string {
	t := theme.Current
	var lines []string

	for i, task := range v.tasks {
		cursor := "  "
		if i == v.cursor {
			cursor = "> "
		}

		check := "[ ]"
		if task.Completed {
			check = "[x]"
		}

		line := fmt.Sprintf("%s%s %s", cursor, check, task.Text)
		if task.Schedule != nil && task.Schedule.Kind != model.ScheduleDaily {
			line += lipgloss.NewStyle().Foreground(t.Info).Render("  (" + task.Schedule.Label() + ")")
		}
		if task.Completed && task.ElapsedSeconds != nil && *task.ElapsedSeconds > 0 {
			line += lipgloss.NewStyle().Foreground(t.Subtle).Render(
				fmt.Sprintf("  %dm logged", *task.ElapsedSeconds/60))
		}
		if _, ok := v.timers.Get(task.ID); ok {
			line += lipgloss.NewStyle().Foreground(t.Warning).Render("  ⏱")
		}

		style := lipgloss.NewStyle()
		if i == v.cursor {
			style = style.Background(t.Highlight)
		}
		if task.Completed {
			style = style.Foreground(t.Subtle).Strikethrough(true)
		}
		lines = append(lines, style.Render(line))
	}

	return strings.Join(lines, "\n")
}
