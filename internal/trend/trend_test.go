package trend

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vess/tock/internal/model"
)

// Wednesday 2026-03-04; the containing week starts Monday 2026-03-02.
var testNow = time.Date(2026, 3, 4, 15, 0, 0, 0, time.Local)

func entry(cat model.Category, end time.Time, seconds int) model.LogEntry {
	return model.LogEntry{
		ID:              model.LogEntryID(end, "x"),
		ItemID:          "x",
		ItemText:        "something",
		Category:        cat,
		StartedAt:       end.Add(-time.Duration(seconds) * time.Second),
		EndedAt:         end,
		DurationSeconds: seconds,
	}
}

func TestEmptyLogReportsNoData(t *testing.T) {
	s := Summarize(nil, testNow)

	require.Len(t, s.Goals.Cons, 1)
	assert.Contains(t, s.Goals.Cons[0], "No goal sessions")
	require.Len(t, s.Waste.Pros, 1)
	assert.Contains(t, s.Waste.Pros[0], "No time sinks")
	assert.Empty(t, s.Goals.Pros)
	assert.Empty(t, s.Waste.Cons)
}

func TestGoalsIncreasingIsPro(t *testing.T) {
	logs := []model.LogEntry{
		entry(model.CategoryGoals, testNow.AddDate(0, 0, -7), 3600), // last week
		entry(model.CategoryGoals, testNow, 5400),                   // this week
	}
	s := Summarize(logs, testNow)

	require.NotEmpty(t, s.Goals.Pros)
	found := false
	for _, p := range s.Goals.Pros {
		if strings.Contains(p, "Up 50%") {
			found = true
		}
	}
	assert.True(t, found, "expected a 50%% increase pro, got %v", s.Goals.Pros)
}

func TestGoalsDecreasingIsCon(t *testing.T) {
	logs := []model.LogEntry{
		entry(model.CategoryGoals, testNow.AddDate(0, 0, -7), 7200),
		entry(model.CategoryGoals, testNow, 3600),
	}
	s := Summarize(logs, testNow)

	require.NotEmpty(t, s.Goals.Cons)
	assert.Contains(t, s.Goals.Cons[0], "Down 50%")
}

func TestWasteNarrativeInverted(t *testing.T) {
	logs := []model.LogEntry{
		entry(model.CategoryWaste, testNow.AddDate(0, 0, -7), 7200),
		entry(model.CategoryWaste, testNow, 3600),
	}
	s := Summarize(logs, testNow)

	// Less wasted time this week is good news.
	found := false
	for _, p := range s.Waste.Pros {
		if strings.Contains(p, "Down 50%") {
			found = true
		}
	}
	assert.True(t, found, "expected decreasing waste as pro, got %+v", s.Waste)
}

func TestZeroPreviousWeekReportsJustStarted(t *testing.T) {
	logs := []model.LogEntry{
		entry(model.CategoryGoals, testNow, 1800),
	}
	s := Summarize(logs, testNow)

	joined := strings.Join(s.Goals.Pros, " ")
	assert.Contains(t, joined, "Just started")
	assert.NotContains(t, joined, "%", "no percentage when last week is zero")
}

func TestCrossCategoryComparison(t *testing.T) {
	logs := []model.LogEntry{
		entry(model.CategoryGoals, testNow, 7200),
		entry(model.CategoryWaste, testNow, 3600),
	}
	s := Summarize(logs, testNow)

	joined := strings.Join(s.Goals.Pros, " ")
	assert.Contains(t, joined, "outweighs")
	assert.Contains(t, joined, "1h")
	assert.Contains(t, joined, "2.0x")
}

func TestCrossCategoryLargeRatioRoundsToInt(t *testing.T) {
	logs := []model.LogEntry{
		entry(model.CategoryWaste, testNow, 36000),
		entry(model.CategoryGoals, testNow, 3000),
	}
	s := Summarize(logs, testNow)

	joined := strings.Join(s.Waste.Cons, " ")
	assert.Contains(t, joined, "outweigh")
	assert.Contains(t, joined, "12x")
}

func TestActiveDaysAreDistinctDates(t *testing.T) {
	day := model.DateOnly(testNow)
	logs := []model.LogEntry{
		entry(model.CategoryGoals, day.Add(9*time.Hour), 600),
		entry(model.CategoryGoals, day.Add(20*time.Hour), 600),
		entry(model.CategoryGoals, day.AddDate(0, 0, -1).Add(12*time.Hour), 600),
	}
	s := Summarize(logs, testNow)

	joined := strings.Join(s.Goals.Pros, " ")
	assert.Contains(t, joined, "2 active days")
}

func TestWeekStartsMonday(t *testing.T) {
	// Sunday evening belongs to the previous week.
	sunday := time.Date(2026, 3, 1, 22, 0, 0, 0, time.Local)
	logs := []model.LogEntry{
		entry(model.CategoryGoals, sunday, 3600),
		entry(model.CategoryGoals, testNow, 5400),
	}
	s := Summarize(logs, testNow)

	found := false
	for _, p := range s.Goals.Pros {
		if strings.Contains(p, "Up 50%") {
			found = true
		}
	}
	assert.True(t, found, "Sunday entry should count as last week: %+v", s.Goals)
}

func TestSummarizeIsPure(t *testing.T) {
	logs := []model.LogEntry{
		entry(model.CategoryGoals, testNow, 3600),
	}
	before := logs[0]
	_ = Summarize(logs, testNow)
	_ = Summarize(logs, testNow)
	assert.Equal(t, before, logs[0])
}
