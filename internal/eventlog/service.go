package eventlog

import (
	"context"
	"time"

	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

// Service journals farm events and serves a user's recent activity
type Service interface {
	// Subscribe registers the journal for every farm event type
	Subscribe(bus event.Bus) error

	// RecentActivity returns the user's newest entries. A non-positive limit
	// uses DefaultActivityLimit; larger limits are capped at MaxActivityLimit.
	RecentActivity(ctx context.Context, userID string, limit int) ([]Entry, error)

	// CleanupOldEvents removes entries older than retention
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new journal service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent converts a farm event into a journal entry
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[event.FarmActionPayloadV1](evt.Payload)
	if err != nil || payload.UserID == "" {
		log.Debug(LogMsgEventPayloadUndecodable, LogFieldType, evt.Type)
		return nil
	}

	createdAt := s.now().UTC()
	if payload.Timestamp > 0 {
		createdAt = time.Unix(payload.Timestamp, 0).UTC()
	}

	entry := Entry{
		EventType:     string(evt.Type),
		UserID:        payload.UserID,
		TargetID:      payload.TargetID,
		CropID:        payload.CropID,
		Quantity:      payload.Quantity,
		CurrencyDelta: payload.CurrencyDelta,
		Experience:    payload.Experience,
		PlotIndex:     payload.PlotIndex,
		Level:         payload.Level,
		Metadata:      evt.Metadata,
		CreatedAt:     createdAt,
	}

	if err := s.repo.LogEvent(ctx, entry); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldUserID, payload.UserID)
	return nil
}

func (s *service) RecentActivity(ctx context.Context, userID string, limit int) ([]Entry, error) {
	switch {
	case limit <= 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}
	return s.repo.GetEventsByUser(ctx, userID, limit)
}

// CleanupOldEvents removes entries older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, s.now().Add(-retention))
}
