package sessionlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vess/tock/internal/model"
)

func testBuilder() (*Builder, *time.Time) {
	now := time.Date(2026, 3, 2, 14, 0, 0, 0, time.Local)
	b := NewBuilder()
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBuildEntryShape(t *testing.T) {
	b, now := testBuilder()

	entry, ok := b.Build("t1", "write report", model.CategoryGoals, 300)
	require.True(t, ok)
	assert.Equal(t, "t1", entry.ItemID)
	assert.Equal(t, "write report", entry.ItemText)
	assert.Equal(t, model.CategoryGoals, entry.Category)
	assert.Equal(t, 300, entry.DurationSeconds)
	assert.Equal(t, *now, entry.EndedAt)
	assert.Equal(t, now.Add(-300*time.Second), entry.StartedAt)
	assert.NotEmpty(t, entry.ID)
}

func TestDuplicateWithinWindowDropped(t *testing.T) {
	b, now := testBuilder()

	_, ok := b.Build("t1", "write report", model.CategoryGoals, 300)
	require.True(t, ok)

	*now = now.Add(500 * time.Millisecond)
	_, ok = b.Build("t1", "write report", model.CategoryGoals, 300)
	assert.False(t, ok, "repeat within 1.5s with same duration should drop")

	// Same task, different duration: not a duplicate.
	*now = now.Add(100 * time.Millisecond)
	_, ok = b.Build("t1", "write report", model.CategoryGoals, 0)
	assert.True(t, ok)
}

func TestDuplicateOutsideWindowKept(t *testing.T) {
	b, now := testBuilder()

	first, ok := b.Build("t1", "write report", model.CategoryGoals, 300)
	require.True(t, ok)

	*now = now.Add(2 * time.Second)
	second, ok := b.Build("t1", "write report", model.CategoryGoals, 300)
	require.True(t, ok)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDifferentTasksNeverCollide(t *testing.T) {
	b, _ := testBuilder()

	_, ok := b.Build("t1", "write report", model.CategoryGoals, 300)
	require.True(t, ok)
	_, ok = b.Build("t2", "scrolling", model.CategoryWaste, 300)
	assert.True(t, ok)
}

func TestNegativeDurationClampsToZero(t *testing.T) {
	b, _ := testBuilder()

	entry, ok := b.Build("t1", "write report", model.CategoryGoals, -45)
	require.True(t, ok)
	assert.Equal(t, 0, entry.DurationSeconds)
	assert.Equal(t, entry.EndedAt, entry.StartedAt)
}

func TestZeroDurationManualCompletionRecorded(t *testing.T) {
	b, _ := testBuilder()

	entry, ok := b.Build("t1", "write report", model.CategoryGoals, 0)
	require.True(t, ok, "untimed completions must still be logged")
	assert.Equal(t, 0, entry.DurationSeconds)
}
