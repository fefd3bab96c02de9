package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// farmTx implements repository.FarmTx on a pgx transaction
type farmTx struct {
	tx pgx.Tx
}

var _ repository.FarmTx = (*farmTx)(nil)

func (t *farmTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return storageErr(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *farmTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return storageErr(ErrMsgFailedToRollback, err)
	}
	return nil
}

func (t *farmTx) GetUserForUpdate(ctx context.Context, uid string) (*domain.User, error) {
	return getUser(ctx, t.tx, sqlSelectUserForUpdate, uid)
}

func (t *farmTx) CreateUser(ctx context.Context, user domain.User) error {
	_, err := t.tx.Exec(ctx, sqlInsertUser, user.ID, user.Name, user.Experience, user.Currency, user.CreatedAt.UTC())
	if err != nil {
		if isPgError(err, PgErrorCodeUniqueViolation) {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyRegistered, user.ID)
		}
		return storageErr(ErrMsgFailedToInsertUser, err)
	}
	return nil
}

func (t *farmTx) UpdateUserName(ctx context.Context, uid, name string) error {
	tag, err := t.tx.Exec(ctx, sqlUpdateUserName, uid, name)
	if err != nil {
		return storageErr(ErrMsgFailedToUpdateUser, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, uid)
	}
	return nil
}

func (t *farmTx) AdjustCurrency(ctx context.Context, uid string, delta int) (int, error) {
	return t.conditionalUserUpdate(ctx, sqlAdjustCurrency, ErrMsgFailedToAdjustMoney, uid, delta, domain.ErrInsufficientFunds)
}

func (t *farmTx) AddExperience(ctx context.Context, uid string, delta int) (int, error) {
	return t.conditionalUserUpdate(ctx, sqlAddExperience, ErrMsgFailedToAddXP, uid, delta, domain.ErrInvalidQuantity)
}

// conditionalUserUpdate runs an UPDATE ... WHERE value + delta >= 0 RETURNING value.
// No row means either the user is missing or the guard rejected the change.
func (t *farmTx) conditionalUserUpdate(ctx context.Context, query, failMsg, uid string, delta int, guardErr error) (int, error) {
	var value int
	err := t.tx.QueryRow(ctx, query, uid, delta).Scan(&value)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, storageErr(failMsg, err)
	}

	var exists bool
	if err := t.tx.QueryRow(ctx, sqlUserExists, uid).Scan(&exists); err != nil {
		return 0, storageErr(failMsg, err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", domain.ErrUserNotFound, uid)
	}
	return 0, fmt.Errorf("%w: delta %d", guardErr, delta)
}

func (t *farmTx) GetPlotsForUpdate(ctx context.Context, uid string) ([]domain.Plot, error) {
	return getPlots(ctx, t.tx, sqlSelectPlotsForUpdate, uid)
}

func (t *farmTx) InsertPlot(ctx context.Context, p domain.Plot) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := t.tx.Exec(ctx, sqlInsertPlot,
		p.OwnerID, p.Index, p.Level, string(p.State), nullableCrop(p.CropID), utcTime(p.PlantedAt), p.StolenYield)
	if err != nil {
		if isPgError(err, PgErrorCodeUniqueViolation) {
			return fmt.Errorf("%w: plot %d already exists", domain.ErrInvalidPlot, p.Index)
		}
		return storageErr(ErrMsgFailedToInsertPlot, err)
	}
	return nil
}

func (t *farmTx) UpdatePlot(ctx context.Context, p domain.Plot) error {
	if err := p.Validate(); err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, sqlUpdatePlot,
		p.OwnerID, p.Index, p.Level, string(p.State), nullableCrop(p.CropID), utcTime(p.PlantedAt), p.StolenYield)
	if err != nil {
		return storageErr(ErrMsgFailedToUpdatePlot, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: plot %d not found", domain.ErrInvalidPlotIndex, p.Index)
	}
	return nil
}

func (t *farmTx) GetInventory(ctx context.Context, uid string) (domain.Inventory, error) {
	return getInventory(ctx, t.tx, uid)
}

func (t *farmTx) AdjustItem(ctx context.Context, uid, itemID string, delta int) (int, error) {
	var count int
	if delta >= 0 {
		if err := t.tx.QueryRow(ctx, sqlCreditItem, uid, itemID, delta).Scan(&count); err != nil {
			return 0, storageErr(ErrMsgFailedToAdjustItem, err)
		}
		return count, nil
	}

	err := t.tx.QueryRow(ctx, sqlDebitItem, uid, itemID, delta).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s need %d", domain.ErrInsufficientQuantity, itemID, -delta)
		}
		return 0, storageErr(ErrMsgFailedToAdjustItem, err)
	}
	return count, nil
}

func (t *farmTx) GetSignIn(ctx context.Context, uid string, date time.Time) (*domain.SignInRecord, error) {
	var rec domain.SignInRecord
	err := t.tx.QueryRow(ctx, sqlSelectSignIn, uid, date).
		Scan(&rec.UserID, &rec.Date, &rec.StreakDay, &rec.CurrencyReward, &rec.ExperienceReward, &rec.ClaimedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr(ErrMsgFailedToGetSignIn, err)
	}
	return &rec, nil
}

func (t *farmTx) InsertSignIn(ctx context.Context, rec domain.SignInRecord) error {
	_, err := t.tx.Exec(ctx, sqlInsertSignIn,
		rec.UserID, rec.Date, rec.StreakDay, rec.CurrencyReward, rec.ExperienceReward, rec.ClaimedAt.UTC())
	if err != nil {
		if isPgError(err, PgErrorCodeUniqueViolation) {
			return fmt.Errorf("%w: %s", domain.ErrAlreadySignedToday, rec.Date.Format(domain.DateLayout))
		}
		return storageErr(ErrMsgFailedToInsertSignIn, err)
	}
	return nil
}

func (t *farmTx) GetLastUsed(ctx context.Context, uid, action string) (*time.Time, error) {
	var at time.Time
	if err := t.tx.QueryRow(ctx, sqlSelectCooldown, uid, action).Scan(&at); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr(ErrMsgFailedToGetCooldown, err)
	}
	return &at, nil
}

func (t *farmTx) SetLastUsed(ctx context.Context, uid, action string, at time.Time) error {
	if _, err := t.tx.Exec(ctx, sqlUpsertCooldown, uid, action, at.UTC()); err != nil {
		return storageErr(ErrMsgFailedToSetCooldown, err)
	}
	return nil
}
