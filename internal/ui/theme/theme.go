package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	Primary lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// Slate is the default theme, a muted blue-grey palette
var Slate = Theme{
	Name:       "slate",
	Foreground: lipgloss.Color("#E2E8F0"),
	Subtle:     lipgloss.Color("#64748B"),
	Highlight:  lipgloss.Color("#334155"),
	Border:     lipgloss.Color("#475569"),
	Primary:    lipgloss.Color("#7DD3FC"),
	Success:    lipgloss.Color("#86EFAC"),
	Warning:    lipgloss.Color("#FDE047"),
	Error:      lipgloss.Color("#FCA5A5"),
	Info:       lipgloss.Color("#A5B4FC"),
}

// Ember is a warm alternative palette
var Ember = Theme{
	Name:       "ember",
	Foreground: lipgloss.Color("#FCEFE3"),
	Subtle:     lipgloss.Color("#8C7A6B"),
	Highlight:  lipgloss.Color("#44403C"),
	Border:     lipgloss.Color("#78716C"),
	Primary:    lipgloss.Color("#FDBA74"),
	Success:    lipgloss.Color("#BEF264"),
	Warning:    lipgloss.Color("#FACC15"),
	Error:      lipgloss.Color("#F87171"),
	Info:       lipgloss.Color("#C4B5FD"),
}

// Current is the active theme
var Current = Slate

// Set switches the active theme by name; unknown names keep the default
func Set(name string) {
	switch name {
	case "ember":
		Current = Ember
	case "slate":
		Current = Slate
	}
}
