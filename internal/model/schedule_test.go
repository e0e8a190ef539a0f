package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDailyAlwaysDue(t *testing.T) {
	s := &Schedule{Kind: ScheduleDaily}
	anchor := date(2026, 3, 2)
	for i := 0; i < 14; i++ {
		d := anchor.AddDate(0, 0, i)
		if !s.DueOn(d, anchor) {
			t.Fatalf("daily schedule not due on %s", d.Format("2006-01-02"))
		}
	}
}

func TestWeekdaysAndWeekends(t *testing.T) {
	weekdays := &Schedule{Kind: ScheduleWeekdays}
	weekends := &Schedule{Kind: ScheduleWeekends}
	anchor := date(2026, 3, 2) // Monday

	for i := 0; i < 7; i++ {
		d := anchor.AddDate(0, 0, i)
		isWeekend := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
		if weekdays.DueOn(d, anchor) == isWeekend {
			t.Errorf("weekdays rule wrong on %s", d.Weekday())
		}
		if weekends.DueOn(d, anchor) != isWeekend {
			t.Errorf("weekends rule wrong on %s", d.Weekday())
		}
	}
}

func TestEveryOtherDayFromAnchor(t *testing.T) {
	anchor := date(2026, 3, 2)
	s := &Schedule{Kind: ScheduleEveryOtherDay}

	for i := 0; i < 10; i++ {
		d := anchor.AddDate(0, 0, i)
		want := i%2 == 0
		if got := s.DueOn(d, anchor); got != want {
			t.Errorf("day %d: got %v want %v", i, got, want)
		}
	}
}

func TestEvery3DaysBeforeAnchorStaysOnCycle(t *testing.T) {
	anchor := date(2026, 3, 10)
	s := &Schedule{Kind: ScheduleEvery3Days}

	if !s.DueOn(anchor.AddDate(0, 0, -3), anchor) {
		t.Error("expected due 3 days before anchor")
	}
	if s.DueOn(anchor.AddDate(0, 0, -2), anchor) {
		t.Error("expected not due 2 days before anchor")
	}
}

func TestCustomDays(t *testing.T) {
	anchor := date(2026, 3, 2) // Monday
	s := &Schedule{Kind: ScheduleCustomDays, Days: []time.Weekday{time.Monday, time.Thursday}}

	want := map[time.Weekday]bool{time.Monday: true, time.Thursday: true}
	for i := 0; i < 7; i++ {
		d := anchor.AddDate(0, 0, i)
		if got := s.DueOn(d, anchor); got != want[d.Weekday()] {
			t.Errorf("%s: got %v", d.Weekday(), got)
		}
	}
}

func TestCustomDaysEmptySetFailsOpen(t *testing.T) {
	anchor := date(2026, 3, 2)
	s := &Schedule{Kind: ScheduleCustomDays}
	if !s.DueOn(anchor.AddDate(0, 0, 3), anchor) {
		t.Error("custom_days with no days configured should be due")
	}
}

func TestWeeklyDefaultsToAnchorWeekday(t *testing.T) {
	anchor := date(2026, 3, 2) // Monday
	s := &Schedule{Kind: ScheduleWeekly}

	// Check every day of the anchor week: only Monday should be due.
	for i := 0; i < 7; i++ {
		d := anchor.AddDate(0, 0, i)
		want := d.Weekday() == time.Monday
		if got := s.DueOn(d, anchor); got != want {
			t.Errorf("%s: got %v want %v", d.Weekday(), got, want)
		}
	}
	if s.DueOn(anchor.AddDate(0, 0, -7), anchor) {
		t.Error("weekly rule should not fire before its anchor")
	}
}

func TestBiweeklySkipsAlternateWeeks(t *testing.T) {
	anchor := date(2026, 3, 2) // Monday
	s := &Schedule{Kind: ScheduleBiweekly}

	cases := []struct {
		offsetDays int
		want       bool
	}{
		{0, true},   // anchor Monday
		{7, false},  // next Monday, off week
		{14, true},  // Monday two weeks out
		{21, false}, // three weeks out
		{28, true},
		{15, false}, // Tuesday on an on-week
	}
	for _, c := range cases {
		d := anchor.AddDate(0, 0, c.offsetDays)
		if got := s.DueOn(d, anchor); got != c.want {
			t.Errorf("offset %d: got %v want %v", c.offsetDays, got, c.want)
		}
	}
}

func TestMonthly(t *testing.T) {
	anchor := date(2026, 1, 15)
	explicit := &Schedule{Kind: ScheduleMonthly, DayOfMonth: 20}
	if !explicit.DueOn(date(2026, 4, 20), anchor) {
		t.Error("monthly day 20 should be due on the 20th")
	}
	if explicit.DueOn(date(2026, 4, 15), anchor) {
		t.Error("monthly day 20 should not be due on the 15th")
	}

	// No configured day of month: falls back to the anchor's day.
	implicit := &Schedule{Kind: ScheduleMonthly}
	if !implicit.DueOn(date(2026, 4, 15), anchor) {
		t.Error("monthly without day should use anchor day")
	}
}

func TestSpecificDate(t *testing.T) {
	anchor := date(2026, 3, 1)
	s := &Schedule{Kind: ScheduleSpecificDate, Date: "2026-03-14"}

	for i := 0; i < 30; i++ {
		d := date(2026, 3, 1).AddDate(0, 0, i)
		want := DayString(d) == "2026-03-14"
		if got := s.DueOn(d, anchor); got != want {
			t.Errorf("%s: got %v want %v", DayString(d), got, want)
		}
	}
}

func TestUnknownKindFailsOpen(t *testing.T) {
	s := &Schedule{Kind: "lunar_cycle"}
	if !s.DueOn(date(2026, 3, 3), date(2026, 3, 1)) {
		t.Error("unknown schedule kind should fail open")
	}
}

func TestExplicitAnchorOverridesFallback(t *testing.T) {
	s := &Schedule{Kind: ScheduleEveryOtherDay, Anchor: "2026-03-03"}
	fallback := date(2026, 3, 2)

	if !s.DueOn(date(2026, 3, 5), fallback) {
		t.Error("expected due two days after explicit anchor")
	}
	if s.DueOn(date(2026, 3, 4), fallback) {
		t.Error("expected not due one day after explicit anchor")
	}
}

func TestParseScheduleMalformedFailsOpen(t *testing.T) {
	bad := `{"kind": "weekly", "days": "not-an-array"}`
	if ParseSchedule(&bad) != nil {
		t.Error("malformed schedule JSON should parse to nil (due every day)")
	}

	empty := ""
	if ParseSchedule(&empty) != nil {
		t.Error("empty schedule should parse to nil")
	}
	if ParseSchedule(nil) != nil {
		t.Error("absent schedule should parse to nil")
	}
}

func TestScheduleEncodeRoundTrip(t *testing.T) {
	s := &Schedule{Kind: ScheduleBiweekly, Days: []time.Weekday{time.Wednesday}, Anchor: "2026-03-04"}
	raw := s.Encode()
	if raw == nil {
		t.Fatal("encode returned nil")
	}
	got := ParseSchedule(raw)
	if got == nil || got.Kind != s.Kind || len(got.Days) != 1 || got.Days[0] != time.Wednesday || got.Anchor != s.Anchor {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestTaskWithoutScheduleDueEveryDay(t *testing.T) {
	task := &Task{ID: "t1", Text: "read", CreatedDate: date(2026, 3, 2)}
	for i := 0; i < 5; i++ {
		if !task.IsDueOn(date(2026, 3, 2).AddDate(0, 0, i)) {
			t.Fatalf("schedule-less task should always be due")
		}
	}
}
