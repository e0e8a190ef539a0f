package timer

import (
	"testing"
	"time"

	"github.com/vess/tock/internal/model"
)

// fakeClock steps one second per Advance call
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testEngine() (*Engine, *fakeClock) {
	clock := newFakeClock()
	e := NewEngine()
	e.now = clock.Now
	return e, clock
}

func testTask() model.Task {
	return model.Task{ID: "t1", Text: "write report", Category: model.CategoryGoals}
}

func TestCountdownRunsToCompletion(t *testing.T) {
	e, clock := testEngine()
	e.StartCountdown(testTask(), 5*time.Minute)

	var completions []Completion
	for i := 0; i < 300; i++ {
		clock.Advance(time.Second)
		completions = append(completions, e.Tick()...)
	}

	st, ok := e.Get("t1")
	if !ok {
		t.Fatal("timer state gone after completion")
	}
	if st.Remaining != 0 || st.Running {
		t.Fatalf("expected expired timer, got remaining=%d running=%v", st.Remaining, st.Running)
	}
	if len(completions) != 1 {
		t.Fatalf("expected exactly 1 completion, got %d", len(completions))
	}
	if completions[0].ElapsedSeconds != 300 {
		t.Fatalf("expected 300s elapsed, got %d", completions[0].ElapsedSeconds)
	}
	if completions[0].TaskID != "t1" || completions[0].ItemText != "write report" {
		t.Fatalf("completion lost task identity: %+v", completions[0])
	}

	// Further ticks must not emit again.
	clock.Advance(time.Second)
	if extra := e.Tick(); len(extra) != 0 {
		t.Fatalf("expired timer emitted again: %+v", extra)
	}
}

func TestTickIdempotentWithinSameSecond(t *testing.T) {
	e, clock := testEngine()
	e.StartCountdown(testTask(), 5*time.Minute)

	clock.Advance(time.Second)
	e.Tick()
	e.Tick()
	e.Tick()

	st, _ := e.Get("t1")
	if st.Remaining != 299 {
		t.Fatalf("expected one decrement for one wall-clock second, remaining=%d", st.Remaining)
	}
}

func TestPausedCountdownHoldsRemaining(t *testing.T) {
	e, clock := testEngine()
	e.StartCountdown(testTask(), 5*time.Minute)

	for i := 0; i < 180; i++ {
		clock.Advance(time.Second)
		e.Tick()
	}
	e.PauseResume("t1")

	// Ten ticks while paused must not move the clock.
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		e.Tick()
	}
	st, _ := e.Get("t1")
	if st.Remaining != 120 {
		t.Fatalf("paused timer drifted: remaining=%d want 120", st.Remaining)
	}

	e.PauseResume("t1")
	clock.Advance(time.Second)
	e.Tick()
	st, _ = e.Get("t1")
	if st.Remaining != 119 {
		t.Fatalf("resumed timer remaining=%d want 119", st.Remaining)
	}
}

func TestDeadlineCountdownResyncsOnResume(t *testing.T) {
	e, clock := testEngine()
	target := clock.Now().Add(10 * time.Minute)
	e.StartCountdownUntil(testTask(), target)

	e.PauseResume("t1")
	clock.Advance(4 * time.Minute) // wall clock keeps moving during the pause
	e.PauseResume("t1")

	st, _ := e.Get("t1")
	if st.Remaining != 360 {
		t.Fatalf("deadline timer should resync to target: remaining=%d want 360", st.Remaining)
	}
}

func TestCountdownUntilRollsOverPastTimes(t *testing.T) {
	e, clock := testEngine()
	target := clock.Now().Add(-2 * time.Hour)
	st := e.StartCountdownUntil(testTask(), target)

	want := int((22 * time.Hour).Seconds())
	if st.Remaining != want {
		t.Fatalf("past target should roll to tomorrow: remaining=%d want %d", st.Remaining, want)
	}
}

func TestCountdownUntilMinimumMinute(t *testing.T) {
	e, clock := testEngine()
	st := e.StartCountdownUntil(testTask(), clock.Now().Add(5*time.Second))
	if st.Remaining != 60 {
		t.Fatalf("near deadline should clamp to 60s, got %d", st.Remaining)
	}
}

func TestCountdownDurationClamp(t *testing.T) {
	e, _ := testEngine()
	if st := e.StartCountdown(testTask(), 10*time.Second); st.Total != 60 {
		t.Errorf("short duration should clamp to 1m, got %ds", st.Total)
	}
	if st := e.StartCountdown(testTask(), 48*time.Hour); st.Total != int((1440 * time.Minute).Seconds()) {
		t.Errorf("long duration should clamp to 24h, got %ds", st.Total)
	}
}

func TestStopwatchCountsUp(t *testing.T) {
	e, clock := testEngine()
	e.StartStopwatch(testTask())

	for i := 0; i < 90; i++ {
		clock.Advance(time.Second)
		e.Tick()
	}
	if got := e.ElapsedSeconds("t1"); got != 90 {
		t.Fatalf("stopwatch seconds=%d want 90", got)
	}

	e.PauseResume("t1")
	clock.Advance(time.Second)
	e.Tick()
	if got := e.ElapsedSeconds("t1"); got != 90 {
		t.Fatalf("paused stopwatch advanced to %d", got)
	}
}

func TestOpsOnUnknownIDAreNoOps(t *testing.T) {
	e, clock := testEngine()
	e.PauseResume("ghost")
	e.Clear("ghost")
	clock.Advance(time.Second)
	if done := e.Tick(); len(done) != 0 {
		t.Fatalf("unexpected completions: %+v", done)
	}
	if _, ok := e.Get("ghost"); ok {
		t.Fatal("unknown id should have no state")
	}
}

func TestClearDiscardsWithoutEmitting(t *testing.T) {
	e, clock := testEngine()
	e.StartCountdown(testTask(), time.Minute)

	for i := 0; i < 30; i++ {
		clock.Advance(time.Second)
		e.Tick()
	}
	e.Clear("t1")

	if _, ok := e.Get("t1"); ok {
		t.Fatal("cleared timer still present")
	}
	for i := 0; i < 60; i++ {
		clock.Advance(time.Second)
		if done := e.Tick(); len(done) != 0 {
			t.Fatalf("cleared timer emitted completion: %+v", done)
		}
	}
}
