// Package sessionlog turns timer completions and manual check-offs into
// immutable log entries.
package sessionlog

import (
	"sync"
	"time"

	"github.com/vess/tock/internal/model"
)

// DedupWindow is how long a repeated completion for the same task and
// duration is considered a duplicate. The UI can deliver the same
// completion through more than one path (timer expiry plus a manual
// toggle); the second arrival inside the window is dropped.
const DedupWindow = 1500 * time.Millisecond

type recentEntry struct {
	duration int
	at       time.Time
}

// Builder creates log entries, de-duplicating rapid repeats per task.
type Builder struct {
	mu     sync.Mutex
	now    func() time.Time
	recent map[string]recentEntry
}

// NewBuilder creates a session log builder
func NewBuilder() *Builder {
	return &Builder{
		now:    time.Now,
		recent: make(map[string]recentEntry),
	}
}

// Build creates a log entry ending now and starting duration seconds
// earlier. Negative durations clamp to zero; a zero duration is still a
// valid entry, because every completion is recorded even when untimed.
// The second return is false when the request was dropped as a duplicate.
func (b *Builder) Build(itemID, itemText string, category model.Category, durationSeconds int) (model.LogEntry, bool) {
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	end := b.now()
	if last, ok := b.recent[itemID]; ok {
		if last.duration == durationSeconds && end.Sub(last.at) < DedupWindow {
			return model.LogEntry{}, false
		}
	}
	b.recent[itemID] = recentEntry{duration: durationSeconds, at: end}

	entry := model.LogEntry{
		ID:              model.LogEntryID(end, itemID),
		ItemID:          itemID,
		ItemText:        itemText,
		Category:        category,
		StartedAt:       end.Add(-time.Duration(durationSeconds) * time.Second),
		EndedAt:         end,
		DurationSeconds: durationSeconds,
	}
	return entry, true
}
