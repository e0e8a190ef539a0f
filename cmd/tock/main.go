package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vess/tock/internal/app"
	"github.com/vess/tock/internal/config"
	"github.com/vess/tock/internal/db"
	"github.com/vess/tock/internal/model"
	"github.com/vess/tock/internal/ui"
	"github.com/vess/tock/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "add":
			handleAdd(os.Args[2:])
			return
		case "version":
			fmt.Printf("tock v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}

	viewFlag := flag.String("view", "today", "Starting view (today, timer, trends)")
	themeFlag := flag.String("theme", "", "Theme name (slate, ember)")
	flag.Parse()

	if err := runTUI(*viewFlag, *themeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `tock - recurring goals and time-sink tracking

Usage:
  tock                      Start the TUI
  tock add <task>           Quick add a task
  tock version              Show version
  tock help                 Show this help

Quick Add Syntax:
  tock add "Morning run"
  tock add "Scrolling feeds" --waste
  tock add "Weekly review" every:weekly
  tock add "Stretch" every:mon,wed,fri link:https://example.com/routine

  Category:    --waste                (default is goals)
  Schedule:    every:daily every:weekdays every:weekends
               every:2d every:3d every:weekly every:biweekly
               every:monthly every:mon,wed,fri on:2026-09-01
  Link:        link:<url>

TUI Options:
  --view <name>     Starting view (today, timer, trends)
  --theme <name>    Theme (slate, ember)

Keybindings:
  Today:        j/k           Move cursor
                tab           Switch goals/waste
                space         Toggle done
                t/enter       Focus task in timer
                s             Skip for today
                e             Cycle schedule
                a             Add (tab completes from history)
                d             Delete

  Timer:        c             Default countdown
                m             Countdown, minutes prompt
                u             Countdown until HH:MM
                w             Stopwatch
                space         Pause/resume
                f             Finish now (log + complete)

  Views:        1-3           Switch views
                ?             Help
                q             Quit`

	fmt.Println(help)
}

func handleAdd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: tock add <task>")
		fmt.Fprintln(os.Stderr, "Example: tock add \"Morning run\" every:weekdays")
		os.Exit(1)
	}

	category, text, link, schedule, err := parseQuickAdd(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if text == "" {
		fmt.Fprintln(os.Stderr, "Error: empty task text")
		os.Exit(1)
	}

	cfg := config.Load(config.DefaultPath())
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	task, err := database.CreateTask(category, text, link, schedule)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating task: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s task: %s\n", category, task.Text)
	if task.Schedule != nil {
		fmt.Printf("Schedule: %s\n", task.Schedule.Label())
	}
	if task.Link != "" {
		fmt.Printf("Link: %s\n", task.Link)
	}
}

// parseQuickAdd splits the quick-add arguments into task fields. Words that
// look like directives but do not parse are kept as plain text.
func parseQuickAdd(args []string) (model.Category, string, string, *model.Schedule, error) {
	category := model.CategoryGoals
	var link string
	var schedule *model.Schedule
	var textParts []string

	for _, word := range args {
		lower := strings.ToLower(word)
		switch {
		case lower == "--waste" || lower == "-w":
			category = model.CategoryWaste

		case lower == "--goal" || lower == "-g":
			category = model.CategoryGoals

		case strings.HasPrefix(lower, "link:"):
			link = word[len("link:"):]

		case strings.HasPrefix(lower, "every:"):
			s, err := parseEvery(lower[len("every:"):])
			if err != nil {
				return category, "", "", nil, err
			}
			schedule = s

		case strings.HasPrefix(lower, "on:"):
			date := lower[len("on:"):]
			if _, err := time.Parse("2006-01-02", date); err != nil {
				return category, "", "", nil, fmt.Errorf("bad date %q (want YYYY-MM-DD)", date)
			}
			schedule = &model.Schedule{Kind: model.ScheduleSpecificDate, Date: date}

		default:
			textParts = append(textParts, word)
		}
	}

	return category, strings.Join(textParts, " "), link, schedule, nil
}

// parseEvery maps the every: shorthand to a schedule
func parseEvery(s string) (*model.Schedule, error) {
	switch s {
	case "daily", "day", "1d":
		return &model.Schedule{Kind: model.ScheduleDaily}, nil
	case "weekdays":
		return &model.Schedule{Kind: model.ScheduleWeekdays}, nil
	case "weekends":
		return &model.Schedule{Kind: model.ScheduleWeekends}, nil
	case "2d", "other":
		return &model.Schedule{Kind: model.ScheduleEveryOtherDay}, nil
	case "3d":
		return &model.Schedule{Kind: model.ScheduleEvery3Days}, nil
	case "weekly", "week":
		return &model.Schedule{Kind: model.ScheduleWeekly}, nil
	case "biweekly":
		return &model.Schedule{Kind: model.ScheduleBiweekly}, nil
	case "monthly", "month":
		return &model.Schedule{Kind: model.ScheduleMonthly}, nil
	}

	// Comma-separated weekday names select custom days.
	if days, ok := parseWeekdays(s); ok {
		return &model.Schedule{Kind: model.ScheduleCustomDays, Days: days}, nil
	}
	return nil, fmt.Errorf("unknown schedule %q", s)
}

func parseWeekdays(s string) ([]time.Weekday, bool) {
	names := map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}

	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		day, ok := names[strings.TrimSpace(part)]
		if !ok {
			return nil, false
		}
		days = append(days, day)
	}
	return days, len(days) > 0
}

func runTUI(startView, themeName string) error {
	cfg := config.Load(config.DefaultPath())
	if themeName != "" {
		cfg.Theme = themeName
	}
	theme.Set(cfg.Theme)

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	m := ui.NewRootModel(application)
	switch strings.ToLower(startView) {
	case "timer":
		m = m.WithView(ui.ViewTimer)
	case "trends":
		m = m.WithView(ui.ViewTrends)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
