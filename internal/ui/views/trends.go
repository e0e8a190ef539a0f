package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vess/tock/internal/db"
	"github.com/vess/tock/internal/model"
	"github.com/vess/tock/internal/trend"
	"github.com/vess/tock/internal/ui/theme"
)

// recentWindow bounds how far back the recent entry list reaches.
const recentWindow = 14 * 24 * time.Hour

// TrendsView shows the weekly pros/cons summary and the recent session log.
type TrendsView struct {
	db     *db.DB
	width  int
	height int

	summary trend.Summary
	recent  []model.LogEntry
	cursor  int

	statusMsg string
}

// NewTrendsView creates the trends view
func NewTrendsView(database *db.DB) TrendsView {
	return TrendsView{db: database}
}

// Init initializes the trends view
func (v TrendsView) Init() tea.Cmd {
	return v.load()
}

// SetSize sets the view dimensions
func (v TrendsView) SetSize(width, height int) TrendsView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode reports whether the view is capturing text input
func (v TrendsView) IsInputMode() bool {
	return false
}

type trendsLoadedMsg struct {
	summary trend.Summary
	recent  []model.LogEntry
	err     error
}

// load pulls the full log for the summary and a recent slice for the list
func (v TrendsView) load() tea.Cmd {
	return func() tea.Msg {
		now := time.Now()
		all, err := v.db.GetLogs(nil, nil)
		if err != nil {
			return trendsLoadedMsg{err: err}
		}
		since := now.Add(-recentWindow)
		var recent []model.LogEntry
		for _, entry := range all {
			if entry.EndedAt.Before(since) {
				continue
			}
			recent = append(recent, entry)
		}
		return trendsLoadedMsg{summary: trend.Summarize(all, now), recent: recent}
	}
}

// Update handles messages
func (v TrendsView) Update(msg tea.Msg) (TrendsView, tea.Cmd) {
	switch msg := msg.(type) {
	case trendsLoadedMsg:
		if msg.err != nil {
			v.statusMsg = "load failed: " + msg.err.Error()
			return v, nil
		}
		v.summary = msg.summary
		v.recent = msg.recent
		if v.cursor >= len(v.recent) {
			v.cursor = max(0, len(v.recent)-1)
		}
		return v, nil

	case TasksChangedMsg:
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if v.cursor < len(v.recent)-1 {
				v.cursor++
			}

		case "k", "up":
			if v.cursor > 0 {
				v.cursor--
			}

		case "g":
			v.cursor = 0

		case "G":
			if len(v.recent) > 0 {
				v.cursor = len(v.recent) - 1
			}

		case "d", "x":
			if v.cursor >= 0 && v.cursor < len(v.recent) {
				return v, v.deleteEntry(v.recent[v.cursor])
			}

		case "R":
			return v, v.load()
		}
	}

	return v, nil
}

// deleteEntry removes one log entry. Entries never expire on their own, so
// this is the only way data leaves the log.
func (v TrendsView) deleteEntry(entry model.LogEntry) tea.Cmd {
	return func() tea.Msg {
		if err := v.db.DeleteLog(entry.ID); err != nil {
			return ErrMsg{Err: err}
		}
		return TasksChangedMsg{}
	}
}

// View renders the trends view
func (v TrendsView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current
	var sections []string

	title := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1)
	sections = append(sections, title.Render("Trends"))

	sections = append(sections, v.renderFacts("Goals", v.summary.Goals))
	sections = append(sections, v.renderFacts("Time Sinks", v.summary.Waste))
	sections = append(sections, v.renderRecent())

	if v.statusMsg != "" {
		status := lipgloss.NewStyle().Foreground(t.Warning).MarginTop(1)
		sections = append(sections, status.Render(v.statusMsg))
	}

	controls := lipgloss.NewStyle().Foreground(t.Subtle).MarginTop(1)
	sections = append(sections, controls.Render("j/k move • d delete entry • R refresh"))

	return strings.Join(sections, "\n")
}

func (v TrendsView) renderFacts(label string, facts trend.Facts) string {
	t := theme.Current

	header := lipgloss.NewStyle().Bold(true).Foreground(t.Info)
	pro := lipgloss.NewStyle().Foreground(t.Success)
	con := lipgloss.NewStyle().Foreground(t.Error)

	var lines []string
	lines = append(lines, header.Render(label))
	for _, f := range facts.Pros {
		lines = append(lines, pro.Render("  + "+f))
	}
	for _, f := range facts.Cons {
		lines = append(lines, con.Render("  - "+f))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (v TrendsView) renderRecent() string {
	t := theme.Current

	header := lipgloss.NewStyle().Bold(true).Foreground(t.Info)
	var lines []string
	lines = append(lines, header.Render("Recent sessions"))

	if len(v.recent) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Render("  (none in the last two weeks)"))
		return strings.Join(lines, "\n")
	}

	maxShow := 10
	for i, entry := range v.recent {
		if i >= maxShow {
			lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).
				Render(fmt.Sprintf("  ... +%d more", len(v.recent)-maxShow)))
			break
		}

		cursor := "  "
		if i == v.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s  %-7s %s  %s",
			cursor,
			entry.EndedAt.Format("Jan 02 15:04"),
			entry.Category.Title(),
			formatSpan(entry.DurationSeconds),
			entry.ItemText)

		style := lipgloss.NewStyle()
		if i == v.cursor {
			style = style.Background(t.Highlight)
		}
		lines = append(lines, style.Render(line))
	}

	return strings.Join(lines, "\n")
}

// formatSpan renders a duration as a fixed-width list column
func formatSpan(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%dh%02dm", seconds/3600, (seconds/60)%60)
	}
	if seconds >= 60 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%ds", seconds)
}
