package farm

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/ledger"
	"github.com/osse101/FarmBot_Go/internal/plot"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

func (m *manager) Steal(ctx context.Context, uid, targetID string) (*StealResult, error) {
	res := &StealResult{TargetID: targetID}
	err := m.steal(ctx, uid, targetID, res)

	var onCooldown cooldown.ErrOnCooldown
	if errors.As(err, &onCooldown) {
		res.RetryAfterSeconds = int64(math.Ceil(onCooldown.Remaining.Seconds()))
	}
	if err := m.finish(ctx, OpSteal, &res.Reply, MsgStolen, err); err != nil {
		return nil, err
	}
	if res.OK() {
		m.publish(ctx, event.CropStolen, event.FarmActionPayloadV1{
			UserID: uid, TargetID: targetID, CropID: res.CropID, Quantity: res.Amount, PlotIndex: res.PlotIndex,
		})
	}
	return res, nil
}

func (m *manager) steal(ctx context.Context, uid, targetID string, res *StealResult) error {
	if uid == targetID {
		return fmt.Errorf("%w: %s", domain.ErrSelfTheft, uid)
	}
	return m.locked(ctx, []string{uid, targetID}, func(tx repository.FarmTx) error {
		if err := lockParticipants(ctx, tx, uid, targetID); err != nil {
			return err
		}
		if m.cooldowns == nil {
			return m.raid(ctx, tx, uid, targetID, res)
		}
		// the cooldown row commits or rolls back with the raid
		return m.cooldowns.EnforceCooldown(ctx, tx, uid, cooldown.StealAction(targetID), func() error {
			return m.raid(ctx, tx, uid, targetID, res)
		})
	})
}

// lockParticipants row-locks both users in the same uid order as the in-process locks
func lockParticipants(ctx context.Context, tx repository.FarmTx, uid, targetID string) error {
	found := make(map[string]error, 2)
	for _, id := range concurrency.OrderKeys(uid, targetID) {
		_, err := tx.GetUserForUpdate(ctx, id)
		if err != nil && !isNotFound(err) {
			return err
		}
		found[id] = err
	}
	if found[uid] != nil {
		return fmt.Errorf("%w: %s", domain.ErrNotRegistered, uid)
	}
	if found[targetID] != nil {
		return fmt.Errorf("%w: %s", domain.ErrTargetNotRegistered, targetID)
	}
	return nil
}

// raid moves crops from the target's first eligible plot; both users are locked
func (m *manager) raid(ctx context.Context, tx repository.FarmTx, uid, targetID string, res *StealResult) error {
	plots, err := tx.GetPlotsForUpdate(ctx, targetID)
	if err != nil {
		return err
	}
	r, err := m.theft.Plan(plots, m.now())
	if err != nil {
		return err
	}
	robbed, err := plot.AddStolen(r.Plot, r.Amount)
	if err != nil {
		return err
	}
	if err := tx.UpdatePlot(ctx, robbed); err != nil {
		return err
	}
	if _, err := ledger.New(tx).AddCrops(ctx, uid, r.CropID, r.Amount); err != nil {
		return err
	}

	res.CropID = r.CropID
	if crop, ok := m.catalog.Crop(r.CropID); ok {
		res.CropName = crop.Name
	}
	res.Amount = r.Amount
	res.PlotIndex = r.Plot.Index
	return nil
}
