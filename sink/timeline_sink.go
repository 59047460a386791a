package sink

import (
	"context"
	"sync"
	"time"

	"chatmux/domain/event"
)

// TimelineEntry is one line of recent relay activity.
type TimelineEntry struct {
	At      time.Time
	From    string
	Target  string
	User    string
	Content string
	Lang    string
}

// Timeline keeps a bounded, newest-last window of relayed messages for
// the admin surface. It holds content in memory only and never persists
// it.
type Timeline struct {
	mu      sync.Mutex
	entries []TimelineEntry
	limit   int
}

func NewTimeline(limit int) *Timeline {
	return &Timeline{limit: limit}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.MessageRelayed)
	if !ok {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, TimelineEntry{
		At:      evt.At,
		From:    evt.From.String(),
		Target:  evt.Target.String(),
		User:    evt.User,
		Content: evt.Content,
		Lang:    evt.Lang,
	})
	if len(t.entries) > t.limit {
		t.entries = t.entries[len(t.entries)-t.limit:]
	}
	return nil
}

// Entries returns a copy of the current window, oldest first.
func (t *Timeline) Entries() []TimelineEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]TimelineEntry(nil), t.entries...)
}
