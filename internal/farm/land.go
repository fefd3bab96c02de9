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

func pendingToken(req domain.PendingRequest) *PendingToken {
	return &PendingToken{Token: req.Token, ExpiresAt: req.ExpiresAt}
}

// ReclaimCondition quotes the next plot and issues a confirmation token.
// A quote the user cannot afford yet still gets a token; Confirm re-checks.
func (m *manager) ReclaimCondition(ctx context.Context, uid string) (*ReclaimConditionResult, error) {
	res := &ReclaimConditionResult{}
	err := func() error {
		u, err := m.readUser(ctx, uid)
		if err != nil {
			return err
		}
		plots, err := m.repo.GetPlots(ctx, uid)
		if err != nil {
			return err
		}
		q, err := m.upgrades.QuoteReclaim(*u, plots)
		if err != nil {
			return err
		}
		res.Quote = &q
		res.Affordable = q.Affordable()
		res.Pending = pendingToken(m.confirms.Issue(uid, domain.OperationReclaim, q.NextIndex, q.Cost))
		return nil
	}()
	if err := m.finish(ctx, OpReclaimCondition, &res.Reply, MsgReclaimQuote, err); err != nil {
		return nil, err
	}
	return res, nil
}

// UpgradeCondition quotes raising one plot by a level. Only a fully satisfied quote
// gets a confirmation token.
func (m *manager) UpgradeCondition(ctx context.Context, uid string, plotIndex int) (*UpgradeConditionResult, error) {
	res := &UpgradeConditionResult{}
	err := func() error {
		u, err := m.readUser(ctx, uid)
		if err != nil {
			return err
		}
		plots, err := m.repo.GetPlots(ctx, uid)
		if err != nil {
			return err
		}
		q, err := m.upgrades.QuoteUpgrade(*u, plots, plotIndex)
		if q.ToLevel > 0 {
			res.Quote = &q
		}
		if err != nil {
			return err
		}
		res.Pending = pendingToken(m.confirms.Issue(uid, domain.OperationUpgrade, plotIndex, q.Cost))
		return nil
	}()
	if err := m.finish(ctx, OpUpgradeCondition, &res.Reply, MsgUpgradeQuote, err); err != nil {
		return nil, err
	}
	return res, nil
}

// Confirm consumes a pending token. A missing or expired token and a declined
// request are both terminal; an accepted one re-validates and commits.
func (m *manager) Confirm(ctx context.Context, uid string, op domain.Operation, token string, accept bool) (*ConfirmResult, error) {
	res := &ConfirmResult{Operation: op}
	okMsg := MsgReclaimed
	if op == domain.OperationUpgrade {
		okMsg = MsgUpgraded
	}

	err := func() error {
		req, err := m.confirms.Take(uid, op, token)
		if err != nil {
			return err
		}
		res.PlotIndex = req.PlotIndex
		if !accept {
			return fmt.Errorf("%w: %s", domain.ErrConfirmationDeclined, op)
		}
		return m.locked(ctx, []string{uid}, func(tx repository.FarmTx) error {
			u, err := lockUser(ctx, tx, uid, domain.ErrNotRegistered)
			if err != nil {
				return err
			}
			plots, err := tx.GetPlotsForUpdate(ctx, uid)
			if err != nil {
				return err
			}
			switch op {
			case domain.OperationReclaim:
				return m.commitReclaim(ctx, tx, *u, plots, res)
			case domain.OperationUpgrade:
				return m.commitUpgrade(ctx, tx, *u, plots, req.PlotIndex, res)
			}
			return fmt.Errorf("%w: unknown operation %q", domain.ErrConfirmationTimeout, op)
		})
	}()
	if err := m.finish(ctx, OpConfirm, &res.Reply, okMsg, err); err != nil {
		return nil, err
	}
	if res.OK() {
		eventType := event.PlotReclaimed
		if op == domain.OperationUpgrade {
			eventType = event.PlotUpgraded
		}
		m.publish(ctx, eventType, event.FarmActionPayloadV1{
			UserID: uid, PlotIndex: res.PlotIndex, Level: res.Level, Quantity: 1, CurrencyDelta: -res.Cost,
		})
	}
	return res, nil
}

func (m *manager) commitReclaim(ctx context.Context, tx repository.FarmTx, u domain.User, plots []domain.Plot, res *ConfirmResult) error {
	q, err := m.upgrades.CheckReclaim(u, plots)
	if err != nil {
		return err
	}
	balance, err := ledger.New(tx).Debit(ctx, u.ID, q.Cost)
	if err != nil {
		return err
	}
	p := plot.New(u.ID, q.NextIndex, domain.PlotStateBarren)
	if err := tx.InsertPlot(ctx, p); err != nil {
		return err
	}
	res.PlotIndex = p.Index
	res.Level = p.Level
	res.Cost = q.Cost
	res.Balance = balance
	return nil
}

func (m *manager) commitUpgrade(ctx context.Context, tx repository.FarmTx, u domain.User, plots []domain.Plot, index int, res *ConfirmResult) error {
	q, err := m.upgrades.QuoteUpgrade(u, plots, index)
	if err != nil {
		return err
	}
	p, _ := plot.Set(plots).Find(index)
	balance, err := ledger.New(tx).Debit(ctx, u.ID, q.Cost)
	if err != nil {
		return err
	}
	upgraded := plot.Upgrade(p)
	if err := tx.UpdatePlot(ctx, upgraded); err != nil {
		return err
	}
	res.PlotIndex = index
	res.Level = upgraded.Level
	res.Cost = q.Cost
	res.Balance = balance
	return nil
}
