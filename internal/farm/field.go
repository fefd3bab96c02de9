package farm

import (
	"context"
	"fmt"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/ledger"
	"github.com/osse101/FarmBot_Go/internal/plot"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

func (m *manager) Sow(ctx context.Context, uid, name string, count int) (*SowResult, error) {
	res := &SowResult{Plots: []int{}}
	err := m.locked(ctx, []string{uid}, func(tx repository.FarmTx) error {
		if _, err := lockUser(ctx, tx, uid, domain.ErrNotRegistered); err != nil {
			return err
		}
		if err := checkQuantity(count, true); err != nil {
			return err
		}
		crop, err := m.catalog.ResolveCrop(name)
		if err != nil {
			return err
		}
		res.CropID = crop.ID

		plots, err := tx.GetPlotsForUpdate(ctx, uid)
		if err != nil {
			return err
		}
		inv, err := tx.GetInventory(ctx, uid)
		if err != nil {
			return err
		}
		tilled := plot.Sorted(plots).Tilled(-1)
		seeds := inv.Count(domain.SeedItemID(crop.ID))
		plantable := seeds / crop.SeedCost

		n := count
		if n == 0 {
			n = min(len(tilled), plantable)
		}
		switch {
		case len(tilled) == 0 || len(tilled) < n:
			return fmt.Errorf("%w: want %d, have %d", domain.ErrInsufficientPlots, n, len(tilled))
		case n == 0 || plantable < n:
			return fmt.Errorf("%w: %s needs %d, have %d", domain.ErrInsufficientSeeds, crop.ID, max(n, 1)*crop.SeedCost, seeds)
		}

		left, err := ledger.New(tx).RemoveSeeds(ctx, uid, crop.ID, n*crop.SeedCost)
		if err != nil {
			return err
		}
		now := m.now()
		for _, p := range tilled[:n] {
			sown, err := plot.Sow(p, crop.ID, now)
			if err != nil {
				return err
			}
			if err := tx.UpdatePlot(ctx, sown); err != nil {
				return err
			}
			res.Plots = append(res.Plots, sown.Index)
		}
		res.SeedsUsed = n * crop.SeedCost
		res.SeedsLeft = left
		return nil
	})
	if err := m.finish(ctx, OpSow, &res.Reply, MsgSown, err); err != nil {
		return nil, err
	}
	if res.OK() {
		m.publish(ctx, event.CropSown, event.FarmActionPayloadV1{UserID: uid, CropID: res.CropID, Quantity: len(res.Plots)})
	}
	return res, nil
}

func (m *manager) Harvest(ctx context.Context, uid string) (*HarvestResult, error) {
	res := &HarvestResult{Crops: []HarvestedCrop{}}
	err := m.locked(ctx, []string{uid}, func(tx repository.FarmTx) error {
		if _, err := lockUser(ctx, tx, uid, domain.ErrNotRegistered); err != nil {
			return err
		}
		plots, err := tx.GetPlotsForUpdate(ctx, uid)
		if err != nil {
			return err
		}

		now := m.now()
		l := ledger.New(tx)
		byCrop := make(map[string]int)
		experience := 0
		for _, p := range plot.Sorted(plots).Planted() {
			g := m.growth.Derive(p, now)
			switch {
			case g.IsWithered:
				res.Withered++
			case g.IsMature:
				crop, _ := m.catalog.Crop(p.CropID)
				amount := m.growth.RemainingYield(p)
				if amount > 0 {
					if _, err := l.AddCrops(ctx, uid, p.CropID, amount); err != nil {
						return err
					}
				}
				experience += crop.Experience
				idx, seen := byCrop[p.CropID]
				if !seen {
					idx = len(res.Crops)
					byCrop[p.CropID] = idx
					res.Crops = append(res.Crops, HarvestedCrop{CropID: crop.ID, Name: crop.Name})
				}
				res.Crops[idx].Plots++
				res.Crops[idx].Quantity += amount
				res.Crops[idx].Experience += crop.Experience
			default:
				continue
			}
			if err := tx.UpdatePlot(ctx, plot.Clear(p)); err != nil {
				return err
			}
		}
		if len(res.Crops) == 0 && res.Withered == 0 {
			return fmt.Errorf("%w: no mature or withered plots", domain.ErrNothingToHarvest)
		}

		total, err := l.GrantExperience(ctx, uid, experience)
		if err != nil {
			return err
		}
		res.Experience = experience
		res.Level = domain.User{Experience: total}.Level(m.catalog.Economy().LevelExperience)
		return nil
	})
	if err := m.finish(ctx, OpHarvest, &res.Reply, MsgHarvested, err); err != nil {
		return nil, err
	}
	if res.OK() {
		for _, c := range res.Crops {
			m.publish(ctx, event.CropHarvested, event.FarmActionPayloadV1{
				UserID: uid, CropID: c.CropID, Quantity: c.Quantity, Experience: c.Experience,
			})
		}
	}
	return res, nil
}

func (m *manager) Eradicate(ctx context.Context, uid string) (*EradicateResult, error) {
	res := &EradicateResult{}
	err := m.locked(ctx, []string{uid}, func(tx repository.FarmTx) error {
		if _, err := lockUser(ctx, tx, uid, domain.ErrNotRegistered); err != nil {
			return err
		}
		plots, err := tx.GetPlotsForUpdate(ctx, uid)
		if err != nil {
			return err
		}
		for _, p := range plot.Sorted(plots).Planted() {
			if err := tx.UpdatePlot(ctx, plot.Clear(p)); err != nil {
				return err
			}
			res.Cleared++
		}
		return nil
	})
	if err := m.finish(ctx, OpEradicate, &res.Reply, MsgEradicated, err); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *manager) Till(ctx context.Context, uid string) (*TillResult, error) {
	res := &TillResult{Plots: []int{}}
	err := m.locked(ctx, []string{uid}, func(tx repository.FarmTx) error {
		u, err := lockUser(ctx, tx, uid, domain.ErrNotRegistered)
		if err != nil {
			return err
		}
		plots, err := tx.GetPlotsForUpdate(ctx, uid)
		if err != nil {
			return err
		}
		barren := plot.Sorted(plots).Barren()
		if len(barren) == 0 {
			return fmt.Errorf("%w: no barren plots", domain.ErrNothingToTill)
		}

		cost := len(barren) * m.catalog.Economy().TillCost
		balance := u.Currency
		if cost > 0 {
			if balance, err = ledger.New(tx).Debit(ctx, uid, cost); err != nil {
				return err
			}
		}
		for _, p := range barren {
			tilled, err := plot.Till(p)
			if err != nil {
				return err
			}
			if err := tx.UpdatePlot(ctx, tilled); err != nil {
				return err
			}
			res.Plots = append(res.Plots, tilled.Index)
		}
		res.Cost = cost
		res.Balance = balance
		return nil
	})
	if err := m.finish(ctx, OpTill, &res.Reply, MsgTilled, err); err != nil {
		return nil, err
	}
	return res, nil
}
