package ui

// View represents the current active view
type View int

const (
	ViewToday View = iota
	ViewTimer
	ViewTrends
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewToday:
		return "Today"
	case ViewTimer:
		return "Timer"
	case ViewTrends:
		return "Trends"
	default:
		return "Unknown"
	}
}
