package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// ScheduleKind identifies a recurrence rule variant
type ScheduleKind string

const (
	ScheduleDaily         ScheduleKind = "daily"
	ScheduleWeekdays      ScheduleKind = "weekdays"
	ScheduleWeekends      ScheduleKind = "weekends"
	ScheduleCustomDays    ScheduleKind = "custom_days"
	ScheduleEveryOtherDay ScheduleKind = "every_other_day"
	ScheduleEvery3Days    ScheduleKind = "every_3_days"
	ScheduleWeekly        ScheduleKind = "weekly"
	ScheduleBiweekly      ScheduleKind = "biweekly"
	ScheduleMonthly       ScheduleKind = "monthly"
	ScheduleSpecificDate  ScheduleKind = "specific_date"
)

// Schedule is a recurrence rule. Exactly one Kind is active at a time; the
// other fields are only meaningful for the variants that declare them:
//
//	custom_days, weekly, biweekly  -> Days
//	monthly                        -> DayOfMonth
//	specific_date                  -> Date
//
// Anchor is the epoch for the modulo-based variants (every_other_day,
// every_3_days, weekly, biweekly). When empty, the caller supplies a
// fallback anchor (normally the task's creation date).
type Schedule struct {
	Kind       ScheduleKind   `json:"kind"`
	Days       []time.Weekday `json:"days,omitempty"`
	DayOfMonth int            `json:"day_of_month,omitempty"`
	Date       string         `json:"date,omitempty"`   // YYYY-MM-DD
	Anchor     string         `json:"anchor,omitempty"` // YYYY-MM-DD
}

// ParseSchedule decodes a schedule from its stored JSON form. A missing or
// unparseable value yields nil, which callers treat as due every day: a
// broken rule must never hide a task.
func ParseSchedule(raw *string) *Schedule {
	if raw == nil || *raw == "" {
		return nil
	}
	var s Schedule
	if err := json.Unmarshal([]byte(*raw), &s); err != nil {
		return nil
	}
	if s.Kind == "" {
		return nil
	}
	return &s
}

// Encode returns the stored JSON form of the schedule, or nil for no rule.
func (s *Schedule) Encode() *string {
	if s == nil {
		return nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	out := string(b)
	return &out
}

// DueOn reports whether date is an occurrence of the rule. Both date and
// anchor are normalized to local midnight before any day arithmetic. Unknown
// kinds and missing required fields fail open (due) rather than closed.
func (s *Schedule) DueOn(date, fallbackAnchor time.Time) bool {
	if s == nil {
		return true
	}

	day := DateOnly(date)
	anchor := DateOnly(s.anchorOr(fallbackAnchor))
	diff := daysBetween(anchor, day)
	weekday := day.Weekday()

	switch s.Kind {
	case ScheduleDaily:
		return true

	case ScheduleWeekdays:
		return weekday >= time.Monday && weekday <= time.Friday

	case ScheduleWeekends:
		return weekday == time.Saturday || weekday == time.Sunday

	case ScheduleCustomDays:
		if len(s.Days) == 0 {
			return true
		}
		return containsWeekday(s.Days, weekday)

	case ScheduleEveryOtherDay:
		return mod(diff, 2) == 0

	case ScheduleEvery3Days:
		return mod(diff, 3) == 0

	case ScheduleWeekly:
		if diff < 0 {
			return false
		}
		return containsWeekday(s.weekdaysOr(anchor), weekday)

	case ScheduleBiweekly:
		if diff < 0 {
			return false
		}
		if (diff/7)%2 != 0 {
			return false
		}
		return containsWeekday(s.weekdaysOr(anchor), weekday)

	case ScheduleMonthly:
		target := s.DayOfMonth
		if target < 1 || target > 31 {
			target = anchor.Day()
		}
		return day.Day() == target

	case ScheduleSpecificDate:
		if s.Date == "" {
			return true
		}
		return DayString(day) == s.Date

	default:
		// Unknown rule: fail open.
		return true
	}
}

// Label returns a short human form of the rule for list rows.
func (s *Schedule) Label() string {
	if s == nil {
		return "daily"
	}
	switch s.Kind {
	case ScheduleDaily:
		return "daily"
	case ScheduleWeekdays:
		return "weekdays"
	case ScheduleWeekends:
		return "weekends"
	case ScheduleCustomDays:
		if len(s.Days) == 0 {
			return "daily"
		}
		names := make([]string, len(s.Days))
		for i, d := range s.Days {
			names[i] = d.String()[:3]
		}
		return strings.Join(names, "/")
	case ScheduleEveryOtherDay:
		return "every other day"
	case ScheduleEvery3Days:
		return "every 3 days"
	case ScheduleWeekly:
		return "weekly"
	case ScheduleBiweekly:
		return "biweekly"
	case ScheduleMonthly:
		if s.DayOfMonth >= 1 && s.DayOfMonth <= 31 {
			return fmt.Sprintf("monthly on the %d", s.DayOfMonth)
		}
		return "monthly"
	case ScheduleSpecificDate:
		if s.Date != "" {
			return "on " + s.Date
		}
		return "once"
	default:
		return string(s.Kind)
	}
}

func (s *Schedule) anchorOr(fallback time.Time) time.Time {
	if s.Anchor != "" {
		if t, err := time.ParseInLocation("2006-01-02", s.Anchor, fallback.Location()); err == nil {
			return t
		}
	}
	return fallback
}

// weekdaysOr returns the configured weekday set, defaulting to the anchor's
// own weekday for weekly/biweekly rules with no explicit days.
func (s *Schedule) weekdaysOr(anchor time.Time) []time.Weekday {
	if len(s.Days) > 0 {
		return s.Days
	}
	return []time.Weekday{anchor.Weekday()}
}

func containsWeekday(days []time.Weekday, w time.Weekday) bool {
	for _, d := range days {
		if d == w {
			return true
		}
	}
	return false
}

// daysBetween returns the whole-day difference b - a for two local
// midnights. Rounding absorbs the ±1h a DST transition leaves in the raw
// subtraction.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// mod is the non-negative remainder, so dates before the anchor still land
// on the same cycle.
func mod(a, n int) int {
	return ((a % n) + n) % n
}
