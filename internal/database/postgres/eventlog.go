package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FarmBot_Go/internal/eventlog"
)

const (
	sqlInsertEvent = `
		INSERT INTO farm_events (event_type, user_id, target_id, crop_id, quantity,
			currency_delta, experience, plot_index, level, metadata, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11)`

	sqlSelectEventsByUser = `
		SELECT id, event_type, user_id, COALESCE(target_id, ''), COALESCE(crop_id, ''), quantity,
			currency_delta, experience, plot_index, level, metadata, created_at
		FROM farm_events
		WHERE user_id = $1 OR target_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	sqlDeleteEventsBefore = `DELETE FROM farm_events WHERE created_at < $1`
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

var _ eventlog.Repository = (*eventLogRepository)(nil)

// NewEventLogRepository creates a new PostgreSQL event journal repository
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db}
}

// LogEvent stores an entry in the database
func (r *eventLogRepository) LogEvent(ctx context.Context, e eventlog.Entry) error {
	var metadataJSON []byte
	if e.Metadata != nil {
		var err error
		if metadataJSON, err = json.Marshal(e.Metadata); err != nil {
			return err
		}
	}

	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.Exec(ctx, sqlInsertEvent,
		e.EventType, e.UserID, e.TargetID, e.CropID, e.Quantity,
		e.CurrencyDelta, e.Experience, e.PlotIndex, e.Level, metadataJSON, createdAt)
	if err != nil {
		return storageErr(ErrMsgFailedToLogEvent, err)
	}
	return nil
}

// GetEventsByUser retrieves entries the user acted in or was targeted by
func (r *eventLogRepository) GetEventsByUser(ctx context.Context, userID string, limit int) ([]eventlog.Entry, error) {
	rows, err := r.db.Query(ctx, sqlSelectEventsByUser, userID, limit)
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetEvents, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CleanupOldEvents removes entries created before cutoff
func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, sqlDeleteEventsBefore, cutoff)
	if err != nil {
		return 0, storageErr(ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}

func scanEvents(rows pgx.Rows) ([]eventlog.Entry, error) {
	entries := make([]eventlog.Entry, 0)
	for rows.Next() {
		var e eventlog.Entry
		var metadataJSON []byte
		if err := rows.Scan(&e.ID, &e.EventType, &e.UserID, &e.TargetID, &e.CropID, &e.Quantity,
			&e.CurrencyDelta, &e.Experience, &e.PlotIndex, &e.Level, &metadataJSON, &e.CreatedAt); err != nil {
			return nil, storageErr(ErrMsgFailedToGetEvents, err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &e.Metadata); err != nil {
				return nil, storageErr(ErrMsgFailedToGetEvents, err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(ErrMsgFailedToGetEvents, err)
	}
	return entries, nil
}
