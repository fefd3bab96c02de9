package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/FarmBot_Go/internal/eventlog"
)

// EventLog is an in-process implementation of eventlog.Repository
type EventLog struct {
	mu      sync.RWMutex
	nextID  int64
	entries []eventlog.Entry
}

var _ eventlog.Repository = (*EventLog)(nil)

// NewEventLog creates an empty journal
func NewEventLog() *EventLog {
	return &EventLog{}
}

// LogEvent appends an entry
func (l *EventLog) LogEvent(_ context.Context, e eventlog.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	e.ID = l.nextID
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	l.entries = append(l.entries, e)
	return nil
}

// GetEventsByUser returns up to limit entries involving userID, newest first
func (l *EventLog) GetEventsByUser(_ context.Context, userID string, limit int) ([]eventlog.Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]eventlog.Entry, 0)
	for _, e := range l.entries {
		if e.Involves(userID) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CleanupOldEvents drops entries created before cutoff
func (l *EventLog) CleanupOldEvents(_ context.Context, cutoff time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.entries[:0]
	var deleted int64
	for _, e := range l.entries {
		if e.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept
	return deleted, nil
}
