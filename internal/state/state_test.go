package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vess/tock/internal/model"
)

func snapshot() Snapshot {
	return Snapshot{
		Items: map[model.Category][]model.Task{
			model.CategoryGoals: {
				{ID: "g1", Text: "read", Completed: true},
				{ID: "g2", Text: "run", Completed: false},
			},
			model.CategoryWaste: {
				{ID: "w1", Text: "scrolling", Completed: true},
			},
		},
		TaskHistory:   map[model.Category][]string{model.CategoryGoals: {"read", "run"}},
		LastResetDate: "2026-03-03",
		Skips: SkipState{
			Date: "2026-03-03",
			IDs:  map[model.Category][]string{model.CategoryGoals: {"g2"}},
		},
	}
}

func TestResetIfNewDayClearsCompletions(t *testing.T) {
	s := snapshot()
	today := time.Date(2026, 3, 4, 8, 0, 0, 0, time.Local)

	out := ResetIfNewDay(s, today)

	assert.Equal(t, "2026-03-04", out.LastResetDate)
	for _, tasks := range out.Items {
		for _, task := range tasks {
			assert.False(t, task.Completed, "task %s still completed after reset", task.ID)
		}
	}
	// Yesterday's skips no longer apply.
	assert.Empty(t, out.Skips.IDs[model.CategoryGoals])
	assert.Equal(t, "2026-03-04", out.Skips.Date)
}

func TestResetIfNewDaySameDayIsIdentity(t *testing.T) {
	s := snapshot()
	today := time.Date(2026, 3, 3, 23, 0, 0, 0, time.Local)

	out := ResetIfNewDay(s, today)
	assert.Equal(t, s, out)
	assert.True(t, out.Items[model.CategoryGoals][0].Completed)
}

func TestResetIfNewDayDoesNotMutateInput(t *testing.T) {
	s := snapshot()
	_ = ResetIfNewDay(s, time.Date(2026, 3, 4, 8, 0, 0, 0, time.Local))

	require.True(t, s.Items[model.CategoryGoals][0].Completed, "input snapshot was mutated")
	assert.Equal(t, "2026-03-03", s.LastResetDate)
}

func TestSkipStateForDay(t *testing.T) {
	sk := SkipState{
		Date: "2026-03-03",
		IDs:  map[model.Category][]string{model.CategoryWaste: {"w1"}},
	}

	same := sk.ForDay(time.Date(2026, 3, 3, 12, 0, 0, 0, time.Local))
	assert.True(t, same.Contains(model.CategoryWaste, "w1"))

	next := sk.ForDay(time.Date(2026, 3, 4, 0, 30, 0, 0, time.Local))
	assert.False(t, next.Contains(model.CategoryWaste, "w1"))
	assert.Equal(t, "2026-03-04", next.Date)
}

func TestSkipStateWith(t *testing.T) {
	sk := SkipState{Date: "2026-03-03", IDs: map[model.Category][]string{}}

	added := sk.With(model.CategoryGoals, "g1")
	assert.True(t, added.Contains(model.CategoryGoals, "g1"))
	assert.False(t, sk.Contains(model.CategoryGoals, "g1"), "With must not mutate the receiver")

	again := added.With(model.CategoryGoals, "g1")
	assert.Len(t, again.IDs[model.CategoryGoals], 1)
}

func TestRecordHistoryDedupesCaseInsensitive(t *testing.T) {
	history := []string{"Read", "run", "stretch"}

	out := RecordHistory(history, "READ")
	require.Equal(t, []string{"READ", "run", "stretch"}, out)

	out = RecordHistory(out, "swim")
	assert.Equal(t, "swim", out[0])
	assert.Len(t, out, 4)
}
