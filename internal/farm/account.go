package farm

import (
	"context"
	"fmt"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/ledger"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/plot"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

func (m *manager) Register(ctx context.Context, uid, name string) (*RegisterResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Register called", "uid", uid)

	name = SanitizeName(name)
	if name == "" {
		name = DefaultFarmerName
	}

	res := &RegisterResult{}
	eco := m.catalog.Economy()
	err := m.locked(ctx, []string{uid}, func(tx repository.FarmTx) error {
		if _, err := tx.GetUserForUpdate(ctx, uid); err == nil {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyRegistered, uid)
		} else if !isNotFound(err) {
			return err
		}

		user := domain.User{ID: uid, Name: name, CreatedAt: m.now().UTC()}
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		if eco.InitialCurrency > 0 {
			balance, err := ledger.New(tx).Credit(ctx, uid, eco.InitialCurrency)
			if err != nil {
				return err
			}
			user.Currency = balance
		}
		for i := 0; i < eco.InitialPlots; i++ {
			if err := tx.InsertPlot(ctx, plot.New(uid, i, domain.PlotStateTilled)); err != nil {
				return err
			}
		}
		res.User = &user
		res.Plots = eco.InitialPlots
		return nil
	})
	if err := m.finish(ctx, OpRegister, &res.Reply, MsgRegistered, err); err != nil {
		return nil, err
	}
	if res.OK() {
		m.publish(ctx, event.UserRegistered, event.FarmActionPayloadV1{UserID: uid, Quantity: res.Plots})
	}
	return res, nil
}

func (m *manager) Rename(ctx context.Context, uid, name string) (*RenameResult, error) {
	res := &RenameResult{}
	err := m.locked(ctx, []string{uid}, func(tx repository.FarmTx) error {
		if _, err := lockUser(ctx, tx, uid, domain.ErrNotRegistered); err != nil {
			return err
		}
		clean := SanitizeName(name)
		if clean == "" {
			return fmt.Errorf("%w: empty after sanitizing", domain.ErrInvalidName)
		}
		if err := tx.UpdateUserName(ctx, uid, clean); err != nil {
			return err
		}
		res.Name = clean
		return nil
	})
	if err := m.finish(ctx, OpRename, &res.Reply, MsgRenamed, err); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *manager) Balance(ctx context.Context, uid string) (*BalanceResult, error) {
	res := &BalanceResult{}
	u, err := m.readUser(ctx, uid)
	if err == nil {
		res.Currency = u.Currency
		res.Experience = u.Experience
		res.Level = m.level(*u)
	}
	if err := m.finish(ctx, OpBalance, &res.Reply, MsgOK, err); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *manager) Status(ctx context.Context, uid string) (*StatusResult, error) {
	res := &StatusResult{}
	snap, err := m.snapshot(ctx, uid)
	if err == nil {
		res.Snapshot = snap
	}
	if err := m.finish(ctx, OpStatus, &res.Reply, MsgOK, err); err != nil {
		return nil, err
	}
	return res, nil
}

// snapshot assembles the renderable farm state with growth resolved at one instant
func (m *manager) snapshot(ctx context.Context, uid string) (*domain.FarmSnapshot, error) {
	u, err := m.readUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	plots, err := m.repo.GetPlots(ctx, uid)
	if err != nil {
		return nil, err
	}
	inv, err := m.repo.GetInventory(ctx, uid)
	if err != nil {
		return nil, err
	}

	now := m.now()
	sorted := plot.Sorted(plots)
	views := make([]domain.PlotView, 0, len(sorted))
	for _, p := range sorted {
		views = append(views, m.growth.View(p, now))
	}
	return &domain.FarmSnapshot{
		User:      *u,
		Level:     m.level(*u),
		Plots:     views,
		Seeds:     inv.Entries(domain.ItemKindSeed),
		Crops:     inv.Entries(domain.ItemKindCrop),
		TakenAt:   now.UTC(),
		PlotCount: len(views),
	}, nil
}

func (m *manager) SeedInventory(ctx context.Context, uid string) (*InventoryResult, error) {
	return m.inventory(ctx, OpSeedInventory, uid, domain.ItemKindSeed)
}

func (m *manager) CropInventory(ctx context.Context, uid string) (*InventoryResult, error) {
	return m.inventory(ctx, OpCropInventory, uid, domain.ItemKindCrop)
}

func (m *manager) inventory(ctx context.Context, op, uid string, kind domain.ItemKind) (*InventoryResult, error) {
	res := &InventoryResult{Items: []InventoryItem{}}
	err := func() error {
		if _, err := m.readUser(ctx, uid); err != nil {
			return err
		}
		inv, err := m.repo.GetInventory(ctx, uid)
		if err != nil {
			return err
		}
		for _, e := range inv.Entries(kind) {
			item := InventoryItem{InventoryEntry: e, Name: e.CropID}
			if crop, ok := m.catalog.Crop(e.CropID); ok {
				item.Name = crop.Name
				item.SellPrice = crop.SellPrice
			}
			res.Items = append(res.Items, item)
		}
		return nil
	}()
	if err := m.finish(ctx, op, &res.Reply, MsgOK, err); err != nil {
		return nil, err
	}
	return res, nil
}
