package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// tx mutates the store in place and keeps an undo log for Rollback
type tx struct {
	store *Store
	undo  []func()
	done  bool
}

func (t *tx) check() error {
	if t.done {
		return domain.ErrTxClosed
	}
	return nil
}

func (t *tx) Commit(context.Context) error {
	if err := t.check(); err != nil {
		return err
	}
	t.done = true
	t.undo = nil
	t.store.release()
	return nil
}

func (t *tx) Rollback(context.Context) error {
	if err := t.check(); err != nil {
		return err
	}
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.done = true
	t.undo = nil
	t.store.release()
	return nil
}

func (t *tx) GetUserForUpdate(_ context.Context, uid string) (*domain.User, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	return t.store.getUser(uid)
}

func (t *tx) CreateUser(_ context.Context, user domain.User) error {
	if err := t.check(); err != nil {
		return err
	}
	if _, exists := t.store.users[user.ID]; exists {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyRegistered, user.ID)
	}
	t.store.users[user.ID] = user
	t.undo = append(t.undo, func() { delete(t.store.users, user.ID) })
	return nil
}

func (t *tx) updateUser(uid string, mutate func(*domain.User) error) (domain.User, error) {
	if err := t.check(); err != nil {
		return domain.User{}, err
	}
	before, ok := t.store.users[uid]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrUserNotFound, uid)
	}
	after := before
	if err := mutate(&after); err != nil {
		return before, err
	}
	t.store.users[uid] = after
	t.undo = append(t.undo, func() { t.store.users[uid] = before })
	return after, nil
}

func (t *tx) UpdateUserName(_ context.Context, uid, name string) error {
	_, err := t.updateUser(uid, func(u *domain.User) error {
		u.Name = name
		return nil
	})
	return err
}

func (t *tx) AdjustCurrency(_ context.Context, uid string, delta int) (int, error) {
	u, err := t.updateUser(uid, func(u *domain.User) error {
		if u.Currency+delta < 0 {
			return fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientFunds, u.Currency, -delta)
		}
		u.Currency += delta
		return nil
	})
	return u.Currency, err
}

func (t *tx) AddExperience(_ context.Context, uid string, delta int) (int, error) {
	u, err := t.updateUser(uid, func(u *domain.User) error {
		if u.Experience+delta < 0 {
			return fmt.Errorf("%w: experience would be negative", domain.ErrInvalidQuantity)
		}
		u.Experience += delta
		return nil
	})
	return u.Experience, err
}

func (t *tx) GetPlotsForUpdate(_ context.Context, uid string) ([]domain.Plot, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	return t.store.getPlots(uid), nil
}

func (t *tx) InsertPlot(_ context.Context, p domain.Plot) error {
	if err := t.check(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	before := t.store.plots[p.OwnerID]
	for _, existing := range before {
		if existing.Index == p.Index {
			return fmt.Errorf("%w: plot %d already exists", domain.ErrInvalidPlot, p.Index)
		}
	}
	after := make([]domain.Plot, 0, len(before)+1)
	after = append(after, before...)
	after = append(after, clonePlot(p))
	sortPlots(after)
	t.store.plots[p.OwnerID] = after
	t.undo = append(t.undo, func() { t.store.plots[p.OwnerID] = before })
	return nil
}

func (t *tx) UpdatePlot(_ context.Context, p domain.Plot) error {
	if err := t.check(); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	plots := t.store.plots[p.OwnerID]
	for i := range plots {
		if plots[i].Index != p.Index {
			continue
		}
		before := plots[i]
		plots[i] = clonePlot(p)
		t.undo = append(t.undo, func() { plots[i] = before })
		return nil
	}
	return fmt.Errorf("%w: plot %d not found", domain.ErrInvalidPlotIndex, p.Index)
}

func (t *tx) GetInventory(_ context.Context, uid string) (domain.Inventory, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	return t.store.getInventory(uid), nil
}

func (t *tx) AdjustItem(_ context.Context, uid, itemID string, delta int) (int, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	items, ok := t.store.inventory[uid]
	if !ok {
		items = make(map[string]int)
		t.store.inventory[uid] = items
	}
	before, had := items[itemID]
	if before+delta < 0 {
		return before, fmt.Errorf("%w: %s have %d, need %d", domain.ErrInsufficientQuantity, itemID, before, -delta)
	}
	items[itemID] = before + delta
	t.undo = append(t.undo, func() {
		if had {
			items[itemID] = before
		} else {
			delete(items, itemID)
		}
	})
	return before + delta, nil
}

func (t *tx) GetSignIn(_ context.Context, uid string, date time.Time) (*domain.SignInRecord, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	rec, ok := t.store.signins[uid][dateKey(date)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (t *tx) InsertSignIn(_ context.Context, record domain.SignInRecord) error {
	if err := t.check(); err != nil {
		return err
	}
	byDate, ok := t.store.signins[record.UserID]
	if !ok {
		byDate = make(map[string]domain.SignInRecord)
		t.store.signins[record.UserID] = byDate
	}
	key := dateKey(record.Date)
	if _, exists := byDate[key]; exists {
		return fmt.Errorf("%w: %s", domain.ErrAlreadySignedToday, key)
	}
	byDate[key] = record
	t.undo = append(t.undo, func() { delete(byDate, key) })
	return nil
}

func (t *tx) GetLastUsed(_ context.Context, uid, action string) (*time.Time, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	at, ok := t.store.cooldowns[cooldownKey{uid, action}]
	if !ok {
		return nil, nil
	}
	return &at, nil
}

func (t *tx) SetLastUsed(_ context.Context, uid, action string, at time.Time) error {
	if err := t.check(); err != nil {
		return err
	}
	key := cooldownKey{uid, action}
	before, had := t.store.cooldowns[key]
	t.store.cooldowns[key] = at
	t.undo = append(t.undo, func() {
		if had {
			t.store.cooldowns[key] = before
		} else {
			delete(t.store.cooldowns, key)
		}
	})
	return nil
}
