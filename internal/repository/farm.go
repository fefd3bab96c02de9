package repository

import (
	"context"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Farm defines the data access contract of the farm engine.
// Reads outside a transaction are unlocked snapshots.
type Farm interface {
	// GetUser returns domain.ErrUserNotFound when uid is not registered
	GetUser(ctx context.Context, uid string) (*domain.User, error)
	GetPlots(ctx context.Context, uid string) ([]domain.Plot, error)
	GetInventory(ctx context.Context, uid string) (domain.Inventory, error)

	// Transaction support
	BeginTx(ctx context.Context) (FarmTx, error)

	// Ping reports whether the backing store is reachable
	Ping(ctx context.Context) error
}

// FarmTx extends Tx with farm operations. Rows read with *ForUpdate stay locked
// until Commit or Rollback; callers lock users in ascending uid order.
type FarmTx interface {
	Tx // Commit, Rollback

	// Users
	GetUserForUpdate(ctx context.Context, uid string) (*domain.User, error)
	// CreateUser returns domain.ErrAlreadyRegistered when uid exists
	CreateUser(ctx context.Context, user domain.User) error
	UpdateUserName(ctx context.Context, uid, name string) error
	// AdjustCurrency applies delta and returns the new balance.
	// It fails with domain.ErrInsufficientFunds, without mutation, if the balance would go negative.
	AdjustCurrency(ctx context.Context, uid string, delta int) (int, error)
	AddExperience(ctx context.Context, uid string, delta int) (int, error)

	// Plots
	GetPlotsForUpdate(ctx context.Context, uid string) ([]domain.Plot, error)
	InsertPlot(ctx context.Context, plot domain.Plot) error
	UpdatePlot(ctx context.Context, plot domain.Plot) error

	// Inventory
	GetInventory(ctx context.Context, uid string) (domain.Inventory, error)
	// AdjustItem applies delta and returns the new count.
	// It fails with domain.ErrInsufficientQuantity, without mutation, if the count would go negative.
	AdjustItem(ctx context.Context, uid, itemID string, delta int) (int, error)

	// Sign-ins; date is a domain.DateOf value
	GetSignIn(ctx context.Context, uid string, date time.Time) (*domain.SignInRecord, error)
	// InsertSignIn returns domain.ErrAlreadySignedToday when (uid, date) exists
	InsertSignIn(ctx context.Context, record domain.SignInRecord) error

	// Cooldowns; lock uid's row first so concurrent uses of one action serialize
	GetLastUsed(ctx context.Context, uid, action string) (*time.Time, error)
	SetLastUsed(ctx context.Context, uid, action string, at time.Time) error
}
