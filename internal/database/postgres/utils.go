package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// storageErr marks a driver failure as a storage fault
func storageErr(msg string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorageFailure, msg, err)
}

func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func getUser(ctx context.Context, q dbtx, query, uid string) (*domain.User, error) {
	var u domain.User
	err := q.QueryRow(ctx, query, uid).Scan(&u.ID, &u.Name, &u.Experience, &u.Currency, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, uid)
		}
		return nil, storageErr(ErrMsgFailedToGetUser, err)
	}
	return &u, nil
}

func getPlots(ctx context.Context, q dbtx, query, uid string) ([]domain.Plot, error) {
	rows, err := q.Query(ctx, query, uid)
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetPlots, err)
	}
	defer rows.Close()

	plots := make([]domain.Plot, 0)
	for rows.Next() {
		var (
			p         domain.Plot
			state     string
			cropID    *string
			plantedAt *time.Time
		)
		if err := rows.Scan(&p.OwnerID, &p.Index, &p.Level, &state, &cropID, &plantedAt, &p.StolenYield); err != nil {
			return nil, storageErr(ErrMsgFailedToGetPlots, err)
		}
		p.State = domain.PlotState(state)
		if cropID != nil {
			p.CropID = *cropID
		}
		p.PlantedAt = plantedAt
		plots = append(plots, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(ErrMsgFailedToGetPlots, err)
	}
	return plots, nil
}

func getInventory(ctx context.Context, q dbtx, uid string) (domain.Inventory, error) {
	rows, err := q.Query(ctx, sqlSelectInventory, uid)
	if err != nil {
		return nil, storageErr(ErrMsgFailedToGetInventory, err)
	}
	defer rows.Close()

	inv := make(domain.Inventory)
	for rows.Next() {
		var itemID string
		var count int
		if err := rows.Scan(&itemID, &count); err != nil {
			return nil, storageErr(ErrMsgFailedToGetInventory, err)
		}
		inv[itemID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(ErrMsgFailedToGetInventory, err)
	}
	return inv, nil
}

// nullableCrop maps an empty crop ID to SQL NULL
func nullableCrop(cropID string) *string {
	if cropID == "" {
		return nil
	}
	return &cropID
}

// utcTime normalizes timestamps before they reach TIMESTAMPTZ columns
func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
