// Package ledger applies currency, experience and inventory changes inside one
// repository transaction. Debits are conditional: a debit that would drive a balance
// negative fails and leaves it unchanged.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// Ledger wraps a FarmTx with typed economy operations
type Ledger struct {
	tx repository.FarmTx
}

// New binds a ledger to an open transaction
func New(tx repository.FarmTx) *Ledger {
	return &Ledger{tx: tx}
}

func checkAmount(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, amount)
	}
	return nil
}

// Debit removes amount currency and returns the new balance
func (l *Ledger) Debit(ctx context.Context, uid string, amount int) (int, error) {
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	return l.tx.AdjustCurrency(ctx, uid, -amount)
}

// Credit adds amount currency and returns the new balance
func (l *Ledger) Credit(ctx context.Context, uid string, amount int) (int, error) {
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	return l.tx.AdjustCurrency(ctx, uid, amount)
}

// GrantExperience adds experience and returns the new total
func (l *Ledger) GrantExperience(ctx context.Context, uid string, amount int) (int, error) {
	if err := checkAmount(amount); err != nil {
		return 0, err
	}
	return l.tx.AddExperience(ctx, uid, amount)
}

// AddSeeds credits seed units of a crop
func (l *Ledger) AddSeeds(ctx context.Context, uid, cropID string, count int) (int, error) {
	return l.add(ctx, uid, domain.SeedItemID(cropID), count)
}

// RemoveSeeds debits seed units, failing with domain.ErrInsufficientSeeds
func (l *Ledger) RemoveSeeds(ctx context.Context, uid, cropID string, count int) (int, error) {
	n, err := l.remove(ctx, uid, domain.SeedItemID(cropID), count)
	if errors.Is(err, domain.ErrInsufficientQuantity) {
		return 0, fmt.Errorf("%w: %s need %d", domain.ErrInsufficientSeeds, cropID, count)
	}
	return n, err
}

// AddCrops credits harvested crop units
func (l *Ledger) AddCrops(ctx context.Context, uid, cropID string, count int) (int, error) {
	return l.add(ctx, uid, domain.CropItemID(cropID), count)
}

// RemoveCrops debits crop units, failing with domain.ErrInsufficientQuantity
func (l *Ledger) RemoveCrops(ctx context.Context, uid, cropID string, count int) (int, error) {
	return l.remove(ctx, uid, domain.CropItemID(cropID), count)
}

// Grant credits every part of a reward bundle. Seeds are credited in crop ID order.
func (l *Ledger) Grant(ctx context.Context, uid string, reward domain.Reward) error {
	if reward.Currency > 0 {
		if _, err := l.Credit(ctx, uid, reward.Currency); err != nil {
			return err
		}
	}
	if reward.Experience > 0 {
		if _, err := l.GrantExperience(ctx, uid, reward.Experience); err != nil {
			return err
		}
	}

	cropIDs := make([]string, 0, len(reward.Seeds))
	for cropID, n := range reward.Seeds {
		if n > 0 {
			cropIDs = append(cropIDs, cropID)
		}
	}
	sort.Strings(cropIDs)
	for _, cropID := range cropIDs {
		if _, err := l.AddSeeds(ctx, uid, cropID, reward.Seeds[cropID]); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) add(ctx context.Context, uid, itemID string, count int) (int, error) {
	if err := checkAmount(count); err != nil {
		return 0, err
	}
	return l.tx.AdjustItem(ctx, uid, itemID, count)
}

func (l *Ledger) remove(ctx context.Context, uid, itemID string, count int) (int, error) {
	if err := checkAmount(count); err != nil {
		return 0, err
	}
	return l.tx.AdjustItem(ctx, uid, itemID, -count)
}
