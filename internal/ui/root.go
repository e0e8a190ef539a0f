package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vess/tock/internal/app"
	"github.com/vess/tock/internal/timer"
	"github.com/vess/tock/internal/ui/theme"
	"github.com/vess/tock/internal/ui/views"
)

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView View
	todayView   views.TodayView
	timerView   views.TimerView
	trendsView  views.TrendsView
	helpVisible bool

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		app:         application,
		keys:        DefaultKeyMap(),
		help:        h,
		currentView: ViewToday,
		todayView:   views.NewTodayView(application.DB, application.Timers, application.Logger),
		timerView:   views.NewTimerView(application.DB, application.Timers, application.Logger, application.Config.DefaultCountdownMinutes),
		trendsView:  views.NewTrendsView(application.DB),
	}
}

// WithView sets the starting view
func (m RootModel) WithView(v View) RootModel {
	m.currentView = v
	return m
}

// tickCmd schedules the shared one-second clock
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return views.TickMsg{}
	})
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewTimer:
		cmd = m.timerView.Init()
	case ViewTrends:
		cmd = m.trendsView.Init()
	default:
		cmd = m.todayView.Init()
	}
	return tea.Batch(cmd, tickCmd())
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Header takes 2 lines and footer 2
		contentHeight := m.height - 4
		m.todayView = m.todayView.SetSize(m.width, contentHeight)
		m.timerView = m.timerView.SetSize(m.width, contentHeight)
		m.trendsView = m.trendsView.SetSize(m.width, contentHeight)

	case views.TickMsg:
		// The engine steps on the shared clock. Completions are logged and
		// fanned out here so every view sees the resulting state change.
		cmds = append(cmds, tickCmd())
		completions := m.app.Timers.Tick()
		for _, done := range completions {
			if cmd := m.handleCompletion(done); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := false
		switch m.currentView {
		case ViewToday:
			isInputMode = m.todayView.IsInputMode()
		case ViewTimer:
			isInputMode = m.timerView.IsInputMode()
		case ViewTrends:
			isInputMode = m.trendsView.IsInputMode()
		}

		// ctrl+c always quits, q only outside input mode
		if key.Matches(msg, m.keys.Quit) {
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}
		}

		if !isInputMode {
			switch {
			case key.Matches(msg, m.keys.Help):
				m.helpVisible = !m.helpVisible
				m.help.ShowAll = m.helpVisible
				return m, nil

			case key.Matches(msg, m.keys.TodayView):
				m.currentView = ViewToday
				return m, m.todayView.Init()

			case key.Matches(msg, m.keys.TimerView):
				m.currentView = ViewTimer
				return m, m.timerView.Init()

			case key.Matches(msg, m.keys.TrendsView):
				m.currentView = ViewTrends
				return m, m.trendsView.Init()
			}
		}

	case views.ErrMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case views.StatusMsg:
		m.statusMsg = msg.Text
		return m, nil

	case views.FocusTaskMsg:
		m.currentView = ViewTimer
		// Fall through to delegation so the timer view picks up the task.
	}

	// Delegate. TickMsg and TasksChangedMsg go to every view so background
	// views stay current; everything else goes to the active one.
	switch msg.(type) {
	case views.TickMsg, views.TasksChangedMsg, views.FocusTaskMsg:
		var cmd tea.Cmd
		m.todayView, cmd = m.todayView.Update(msg)
		cmds = append(cmds, cmd)
		m.timerView, cmd = m.timerView.Update(msg)
		cmds = append(cmds, cmd)
		m.trendsView, cmd = m.trendsView.Update(msg)
		cmds = append(cmds, cmd)

	default:
		var cmd tea.Cmd
		switch m.currentView {
		case ViewToday:
			m.todayView, cmd = m.todayView.Update(msg)
		case ViewTimer:
			m.timerView, cmd = m.timerView.Update(msg)
		case ViewTrends:
			m.trendsView, cmd = m.trendsView.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleCompletion logs a finished countdown, completes its task and fires
// the desktop notification. Runs as a command so db writes stay off the
// update loop.
func (m RootModel) handleCompletion(done timer.Completion) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		if entry, ok := a.Logger.Build(done.TaskID, done.ItemText, done.Category, done.ElapsedSeconds); ok {
			if err := a.DB.InsertLog(entry); err != nil {
				return views.ErrMsg{Err: err}
			}
		}
		elapsed := done.ElapsedSeconds
		if err := a.DB.CompleteTask(done.TaskID, &elapsed); err != nil {
			return views.ErrMsg{Err: err}
		}
		a.Timers.Clear(done.TaskID)
		if a.Notifier != nil {
			a.Notifier.SendTimerComplete(done.ItemText, time.Duration(done.ElapsedSeconds)*time.Second)
		}
		return views.TasksChangedMsg{}
	}
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader(), "")

	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}

	var content string
	if m.helpVisible {
		content = m.help.View(m.keys)
	} else {
		switch m.currentView {
		case ViewToday:
			content = m.todayView.View()
		case ViewTimer:
			content = m.timerView.View()
		case ViewTrends:
			content = m.trendsView.View()
		}
	}

	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	t := theme.Current

	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1).Render("tock")
	indicator := lipgloss.NewStyle().Foreground(t.Subtle).Padding(0, 1).
		Render(fmt.Sprintf("[%s]", m.currentView.String()))
	themeName := lipgloss.NewStyle().Foreground(t.Subtle).Padding(0, 1).
		Render("theme: " + t.Name)

	left := lipgloss.JoinHorizontal(lipgloss.Center, title, indicator)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(themeName)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + themeName
}

// renderFooter renders the status line and key hints
func (m RootModel) renderFooter() string {
	t := theme.Current

	var parts []string
	if m.errorMsg != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Error).Render("error: "+m.errorMsg))
	} else if m.statusMsg != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(t.Success).Render(m.statusMsg))
	}
	parts = append(parts, m.help.View(m.keys))
	return strings.Join(parts, "\n")
}
