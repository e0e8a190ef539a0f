package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings
type KeyMap struct {
	TodayView  key.Binding
	TimerView  key.Binding
	TrendsView key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TodayView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "today"),
		),
		TimerView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "timer"),
		),
		TrendsView: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "trends"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TodayView, k.TimerView, k.TrendsView, k.Help, k.Quit}
}

// FullHelp returns all bindings for the expanded help
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TodayView, k.TimerView, k.TrendsView},
		{k.Help, k.Quit},
	}
}
