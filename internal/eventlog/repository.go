package eventlog

import (
	"context"
	"time"
)

// Entry is one journaled farm event
type Entry struct {
	ID            int64                  `json:"id"`
	EventType     string                 `json:"event_type"`
	UserID        string                 `json:"user_id"`
	TargetID      string                 `json:"target_id,omitempty"`
	CropID        string                 `json:"crop_id,omitempty"`
	Quantity      int                    `json:"quantity"`
	CurrencyDelta int                    `json:"currency_delta"`
	Experience    int                    `json:"experience,omitempty"`
	PlotIndex     int                    `json:"plot_index,omitempty"`
	Level         int                    `json:"level,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// Involves reports whether uid acted in or was targeted by the entry
func (e Entry) Involves(uid string) bool {
	return e.UserID == uid || (e.TargetID != "" && e.TargetID == uid)
}

// Repository defines the interface for journal storage
type Repository interface {
	// LogEvent stores an entry
	LogEvent(ctx context.Context, entry Entry) error

	// GetEventsByUser returns up to limit entries the user acted in or was
	// targeted by, newest first
	GetEventsByUser(ctx context.Context, userID string, limit int) ([]Entry, error)

	// CleanupOldEvents removes entries created before cutoff
	CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error)
}
