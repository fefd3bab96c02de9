package farm

import (
	"context"
	"fmt"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/ledger"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

func (m *manager) ShopList(ctx context.Context, filter string, page int) (*ShopResult, error) {
	res := &ShopResult{ShopPage: m.catalog.ShopList(filter, page)}
	if err := m.finish(ctx, OpShopList, &res.Reply, MsgOK, nil); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *manager) BuySeed(ctx context.Context, uid, name string, count int) (*BuyResult, error) {
	res := &BuyResult{}
	err := m.locked(ctx, []string{uid}, func(tx repository.FarmTx) error {
		u, err := lockUser(ctx, tx, uid, domain.ErrNotRegistered)
		if err != nil {
			return err
		}
		if err := checkQuantity(count, false); err != nil {
			return err
		}
		crop, err := m.catalog.ResolveCrop(name)
		if err != nil {
			return err
		}
		res.CropID = crop.ID
		res.MinLevel = crop.MinLevel
		if lvl := m.level(*u); lvl < crop.MinLevel {
			return fmt.Errorf("%w: %s needs level %d, have %d", domain.ErrLevelTooLow, crop.ID, crop.MinLevel, lvl)
		}

		cost := count * crop.BuyPrice
		l := ledger.New(tx)
		balance, err := l.Debit(ctx, uid, cost)
		if err != nil {
			return err
		}
		seeds, err := l.AddSeeds(ctx, uid, crop.ID, count)
		if err != nil {
			return err
		}
		res.Count = count
		res.Cost = cost
		res.Balance = balance
		res.Seeds = seeds
		return nil
	})
	if err := m.finish(ctx, OpBuySeed, &res.Reply, MsgBought, err); err != nil {
		return nil, err
	}
	if res.OK() {
		m.publish(ctx, event.SeedBought, event.FarmActionPayloadV1{
			UserID: uid, CropID: res.CropID, Quantity: res.Count, CurrencyDelta: -res.Cost,
		})
	}
	return res, nil
}

func (m *manager) SellCrop(ctx context.Context, uid, name string, count int) (*SellResult, error) {
	res := &SellResult{Sold: []SoldCrop{}}
	err := m.locked(ctx, []string{uid}, func(tx repository.FarmTx) error {
		if _, err := lockUser(ctx, tx, uid, domain.ErrNotRegistered); err != nil {
			return err
		}
		if err := checkQuantity(count, true); err != nil {
			return err
		}
		inv, err := tx.GetInventory(ctx, uid)
		if err != nil {
			return err
		}

		var lines []SoldCrop
		if name == "" {
			if count != 0 {
				return fmt.Errorf("%w: a count needs a crop name", domain.ErrInvalidQuantity)
			}
			for _, e := range inv.Entries(domain.ItemKindCrop) {
				crop, ok := m.catalog.Crop(e.CropID)
				if !ok {
					continue
				}
				lines = append(lines, SoldCrop{CropID: crop.ID, Name: crop.Name, Quantity: e.Count, Earned: e.Count * crop.SellPrice})
			}
		} else {
			crop, err := m.catalog.ResolveCrop(name)
			if err != nil {
				return err
			}
			held := inv.Count(domain.CropItemID(crop.ID))
			n := count
			if n == 0 {
				n = held
			}
			if n > held {
				return fmt.Errorf("%w: %s want %d, have %d", domain.ErrInsufficientQuantity, crop.ID, n, held)
			}
			if n > 0 {
				lines = append(lines, SoldCrop{CropID: crop.ID, Name: crop.Name, Quantity: n, Earned: n * crop.SellPrice})
			}
		}
		if len(lines) == 0 {
			return fmt.Errorf("%w: no crops held", domain.ErrNothingToSell)
		}

		l := ledger.New(tx)
		earned := 0
		for _, line := range lines {
			if _, err := l.RemoveCrops(ctx, uid, line.CropID, line.Quantity); err != nil {
				return err
			}
			earned += line.Earned
		}
		balance, err := l.Credit(ctx, uid, earned)
		if err != nil {
			return err
		}
		res.Sold = lines
		res.Earned = earned
		res.Balance = balance
		return nil
	})
	if err := m.finish(ctx, OpSellCrop, &res.Reply, MsgSold, err); err != nil {
		return nil, err
	}
	if res.OK() {
		for _, line := range res.Sold {
			m.publish(ctx, event.CropSold, event.FarmActionPayloadV1{
				UserID: uid, CropID: line.CropID, Quantity: line.Quantity, CurrencyDelta: line.Earned,
			})
		}
	}
	return res, nil
}
