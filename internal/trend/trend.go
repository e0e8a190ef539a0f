// Package trend derives weekly pros/cons summaries from the session log.
// Everything here is a pure function over a log slice; the caller decides
// which entries are in scope.
package trend

import (
	"fmt"
	"math"
	"time"

	"github.com/vess/tock/internal/model"
)

// Facts is a pros/cons pair of human-readable statements about a category
type Facts struct {
	Pros []string
	Cons []string
}

// Summary holds the trend facts for both categories
type Summary struct {
	Goals Facts
	Waste Facts
}

type catStats struct {
	total      int // lifetime seconds
	activeDays int // distinct local calendar dates with entries
	thisWeek   int
	lastWeek   int
}

// Summarize aggregates the log into per-category facts. "This week" starts
// Monday 00:00 local time; "last week" is the preceding seven days. The
// goals narrative treats more time as good; the waste narrative is
// inverted.
func Summarize(logs []model.LogEntry, now time.Time) Summary {
	weekStart := startOfWeek(now)
	prevStart := weekStart.AddDate(0, 0, -7)

	stats := map[model.Category]*catStats{
		model.CategoryGoals: {},
		model.CategoryWaste: {},
	}
	days := map[model.Category]map[string]bool{
		model.CategoryGoals: {},
		model.CategoryWaste: {},
	}

	for _, entry := range logs {
		st, ok := stats[entry.Category]
		if !ok {
			continue
		}
		st.total += entry.DurationSeconds
		days[entry.Category][model.DayString(entry.EndedAt)] = true

		switch {
		case !entry.EndedAt.Before(weekStart):
			st.thisWeek += entry.DurationSeconds
		case !entry.EndedAt.Before(prevStart):
			st.lastWeek += entry.DurationSeconds
		}
	}
	for cat, st := range stats {
		st.activeDays = len(days[cat])
	}

	summary := Summary{
		Goals: categoryFacts(model.CategoryGoals, stats[model.CategoryGoals]),
		Waste: categoryFacts(model.CategoryWaste, stats[model.CategoryWaste]),
	}
	addComparison(&summary, stats[model.CategoryGoals].total, stats[model.CategoryWaste].total)
	return summary
}

func categoryFacts(cat model.Category, st *catStats) Facts {
	var f Facts
	goals := cat == model.CategoryGoals

	if st.total == 0 && st.activeDays == 0 {
		// One explanatory fact instead of an empty list. No time wasted is
		// the one case where nothing is good news.
		if goals {
			f.Cons = append(f.Cons, "No goal sessions logged yet.")
		} else {
			f.Pros = append(f.Pros, "No time sinks logged yet.")
		}
		return f
	}

	totalFact := fmt.Sprintf("%s logged across %d active %s (%s per active day).",
		formatDuration(st.total), st.activeDays, plural(st.activeDays, "day", "days"),
		formatDuration(averagePerDay(st.total, st.activeDays)))
	if goals {
		f.Pros = append(f.Pros, totalFact)
	} else {
		f.Cons = append(f.Cons, totalFact)
	}

	weeklyFact(&f, goals, st)
	return f
}

func weeklyFact(f *Facts, goals bool, st *catStats) {
	switch {
	case st.lastWeek > 0:
		delta := float64(st.thisWeek-st.lastWeek) / float64(st.lastWeek) * 100
		pct := int(math.Round(math.Abs(delta)))
		cur, prev := formatDuration(st.thisWeek), formatDuration(st.lastWeek)
		switch {
		case delta > 0:
			fact := fmt.Sprintf("Up %d%% this week (%s vs %s last week).", pct, cur, prev)
			if goals {
				f.Pros = append(f.Pros, fact)
			} else {
				f.Cons = append(f.Cons, fact)
			}
		case delta < 0:
			fact := fmt.Sprintf("Down %d%% this week (%s vs %s last week).", pct, cur, prev)
			if goals {
				f.Cons = append(f.Cons, fact)
			} else {
				f.Pros = append(f.Pros, fact)
			}
		default:
			fact := fmt.Sprintf("Holding steady at %s per week.", cur)
			if goals {
				f.Pros = append(f.Pros, fact)
			} else {
				f.Cons = append(f.Cons, fact)
			}
		}

	case st.thisWeek > 0:
		// No previous week to compare against: report the fresh start as a
		// plain fact, never as a percentage.
		if goals {
			f.Pros = append(f.Pros, fmt.Sprintf("Just started this week: %s so far.", formatDuration(st.thisWeek)))
		} else {
			f.Cons = append(f.Cons, fmt.Sprintf("New this week: %s logged so far.", formatDuration(st.thisWeek)))
		}
	}
}

func addComparison(s *Summary, goalsTotal, wasteTotal int) {
	if goalsTotal == wasteTotal {
		return
	}
	if goalsTotal > wasteTotal {
		fact := fmt.Sprintf("Goal time outweighs time sinks by %s", formatDuration(goalsTotal-wasteTotal))
		if wasteTotal > 0 {
			fact += fmt.Sprintf(" (%s the time).", formatRatio(goalsTotal, wasteTotal))
		} else {
			fact += "."
		}
		s.Goals.Pros = append(s.Goals.Pros, fact)
		return
	}
	fact := fmt.Sprintf("Time sinks outweigh goal time by %s", formatDuration(wasteTotal-goalsTotal))
	if goalsTotal > 0 {
		fact += fmt.Sprintf(" (%s the time).", formatRatio(wasteTotal, goalsTotal))
	} else {
		fact += "."
	}
	s.Waste.Cons = append(s.Waste.Cons, fact)
}

func averagePerDay(total, days int) int {
	if days == 0 {
		return 0
	}
	return total / days
}

// formatRatio renders bigger/smaller as "2.4x" below 10 and "12x" above,
// where the precision stops being meaningful.
func formatRatio(bigger, smaller int) string {
	r := float64(bigger) / float64(smaller)
	if r >= 10 {
		return fmt.Sprintf("%dx", int(math.Round(r)))
	}
	return fmt.Sprintf("%.1fx", r)
}

func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// startOfWeek returns Monday 00:00 local time of the week containing t
func startOfWeek(t time.Time) time.Time {
	day := model.DateOnly(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
