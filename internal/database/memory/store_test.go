package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

func seedUser(t *testing.T, s *Store, uid string, currency int) {
	t.Helper()
	ctx := context.Background()
	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateUser(ctx, domain.User{ID: uid, Name: uid, Currency: currency}))
	require.NoError(t, tx.InsertPlot(ctx, domain.Plot{OwnerID: uid, Index: 0, Level: 1, State: domain.PlotStateTilled}))
	require.NoError(t, tx.Commit(ctx))
}

func TestStore_CreateAndRead(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "alice", 500)

	u, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 500, u.Currency)

	_, err = s.GetUser(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	plots, err := s.GetPlots(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, plots, 1)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	assert.ErrorIs(t, tx.CreateUser(ctx, domain.User{ID: "alice"}), domain.ErrAlreadyRegistered)
}

func TestStore_ConditionalAdjust(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "alice", 100)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	bal, err := tx.AdjustCurrency(ctx, "alice", -60)
	require.NoError(t, err)
	assert.Equal(t, 40, bal)

	bal, err = tx.AdjustCurrency(ctx, "alice", -41)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, 40, bal, "failed debit must not mutate")

	n, err := tx.AdjustItem(ctx, "alice", "seed:carrot", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = tx.AdjustItem(ctx, "alice", "seed:carrot", -4)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	inv, err := tx.GetInventory(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, inv.Count("seed:carrot"))
}

func TestStore_RollbackRestoresEverything(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "alice", 100)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)

	_, err = tx.AdjustCurrency(ctx, "alice", -50)
	require.NoError(t, err)
	_, err = tx.AddExperience(ctx, "alice", 10)
	require.NoError(t, err)
	_, err = tx.AdjustItem(ctx, "alice", "crop:carrot", 5)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, tx.UpdatePlot(ctx, domain.Plot{OwnerID: "alice", Index: 0, Level: 1, State: domain.PlotStatePlanted, CropID: "carrot", PlantedAt: &now}))
	require.NoError(t, tx.InsertPlot(ctx, domain.Plot{OwnerID: "alice", Index: 1, Level: 1, State: domain.PlotStateBarren}))
	require.NoError(t, tx.UpdateUserName(ctx, "alice", "Alice"))
	date := domain.DateOf(now, time.UTC)
	require.NoError(t, tx.InsertSignIn(ctx, domain.SignInRecord{UserID: "alice", Date: date, StreakDay: 1}))
	require.NoError(t, tx.CreateUser(ctx, domain.User{ID: "bob"}))
	require.NoError(t, tx.SetLastUsed(ctx, "alice", "steal:bob", now))

	require.NoError(t, tx.Rollback(ctx))
	assert.ErrorIs(t, tx.Rollback(ctx), domain.ErrTxClosed)
	assert.ErrorIs(t, tx.Commit(ctx), domain.ErrTxClosed)

	u, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 100, u.Currency)
	assert.Equal(t, 0, u.Experience)
	assert.Equal(t, "alice", u.Name)

	_, err = s.GetUser(ctx, "bob")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	plots, _ := s.GetPlots(ctx, "alice")
	require.Len(t, plots, 1)
	assert.Equal(t, domain.PlotStateTilled, plots[0].State)

	inv, _ := s.GetInventory(ctx, "alice")
	assert.Empty(t, inv)

	tx2, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx2)
	rec, err := tx2.GetSignIn(ctx, "alice", date)
	require.NoError(t, err)
	assert.Nil(t, rec)
	last, err := tx2.GetLastUsed(ctx, "alice", "steal:bob")
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestStore_LastUsed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "alice", 0)
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SetLastUsed(ctx, "alice", "steal:bob", at))
	require.NoError(t, tx.SetLastUsed(ctx, "alice", "steal:bob", at.Add(time.Hour)))
	require.NoError(t, tx.Commit(ctx))

	tx, err = s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	last, err := tx.GetLastUsed(ctx, "alice", "steal:bob")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, at.Add(time.Hour), *last)

	other, err := tx.GetLastUsed(ctx, "alice", "steal:carol")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestStore_PlotValidation(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "alice", 0)

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	assert.ErrorIs(t, tx.InsertPlot(ctx, domain.Plot{OwnerID: "alice", Index: 0, Level: 1, State: domain.PlotStateBarren}), domain.ErrInvalidPlot)
	assert.ErrorIs(t, tx.UpdatePlot(ctx, domain.Plot{OwnerID: "alice", Index: 7, Level: 1, State: domain.PlotStateTilled}), domain.ErrInvalidPlotIndex)
	assert.ErrorIs(t, tx.UpdatePlot(ctx, domain.Plot{OwnerID: "alice", Index: 0, Level: 1, State: domain.PlotStatePlanted}), domain.ErrInvalidPlot)
}

func TestStore_ReturnedPlotsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedUser(t, s, "alice", 0)

	plots, _ := s.GetPlots(ctx, "alice")
	plots[0].State = domain.PlotStateBarren

	again, _ := s.GetPlots(ctx, "alice")
	assert.Equal(t, domain.PlotStateTilled, again[0].State)
}

func TestStore_SingleWriter(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	tx, err := s.BeginTx(ctx)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	_, err = s.BeginTx(waitCtx)
	assert.ErrorIs(t, err, domain.ErrStorageFailure)

	require.NoError(t, tx.Commit(ctx))

	tx2, err := s.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx2.Commit(ctx))
}
