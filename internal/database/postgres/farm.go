package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// FarmRepository implements repository.Farm for PostgreSQL
type FarmRepository struct {
	db *pgxpool.Pool
}

var _ repository.Farm = (*FarmRepository)(nil)

// NewFarmRepository creates a new FarmRepository
func NewFarmRepository(db *pgxpool.Pool) *FarmRepository {
	return &FarmRepository{db: db}
}

// GetUser returns a registered user
func (r *FarmRepository) GetUser(ctx context.Context, uid string) (*domain.User, error) {
	return getUser(ctx, r.db, sqlSelectUser, uid)
}

// GetPlots returns a user's plots ordered by index
func (r *FarmRepository) GetPlots(ctx context.Context, uid string) ([]domain.Plot, error) {
	return getPlots(ctx, r.db, sqlSelectPlots, uid)
}

// GetInventory returns a user's positive inventory counts
func (r *FarmRepository) GetInventory(ctx context.Context, uid string) (domain.Inventory, error) {
	return getInventory(ctx, r.db, uid)
}

// Ping checks database connectivity
func (r *FarmRepository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

// BeginTx starts a read-committed transaction; row locks are taken with *ForUpdate reads
func (r *FarmRepository) BeginTx(ctx context.Context) (repository.FarmTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, storageErr(ErrMsgFailedToBeginTransaction, err)
	}
	return &farmTx{tx: tx}, nil
}
