package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
}

// NewNotifier creates a new notifier
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "tock")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	cmd := exec.Command("notify-send", args...)
	return cmd.Run()
}

// SendTimerComplete announces a countdown that ran out
func (n *Notifier) SendTimerComplete(taskText string, elapsed time.Duration) error {
	return n.Send(Notification{
		Title:   "Time's up",
		Body:    fmt.Sprintf("%s (%s logged)", taskText, formatMinutes(elapsed)),
		Urgency: UrgencyNormal,
		Timeout: 10 * time.Second,
		Icon:    "alarm-symbolic",
	})
}

// SendNewDay announces the daily reset with the number of tasks due today
func (n *Notifier) SendNewDay(dueCount int) error {
	body := "Nothing scheduled for today."
	if dueCount == 1 {
		body = "1 task due today."
	} else if dueCount > 1 {
		body = fmt.Sprintf("%d tasks due today.", dueCount)
	}
	return n.Send(Notification{
		Title:   "New day",
		Body:    body,
		Urgency: UrgencyLow,
		Timeout: 5 * time.Second,
		Icon:    "appointment-soon-symbolic",
	})
}

func formatMinutes(d time.Duration) string {
	mins := int(d.Minutes())
	if mins < 1 {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm", mins)
}
