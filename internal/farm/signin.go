package farm

import (
	"context"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/ledger"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

func (m *manager) SignIn(ctx context.Context, uid string) (*SignInResult, error) {
	res := &SignInResult{}
	var reward domain.Reward
	err := m.locked(ctx, []string{uid}, func(tx repository.FarmTx) error {
		if _, err := lockUser(ctx, tx, uid, domain.ErrNotRegistered); err != nil {
			return err
		}

		now := m.now()
		date := domain.DateOf(now, m.loc)
		today, err := tx.GetSignIn(ctx, uid, date)
		if err != nil {
			return err
		}
		var yesterday *domain.SignInRecord
		if today == nil {
			if yesterday, err = tx.GetSignIn(ctx, uid, domain.PreviousDay(date)); err != nil {
				return err
			}
		}
		claim, err := m.signins.Sign(date, today, yesterday)
		if err != nil {
			return err
		}

		reward = claim.Total()
		if err := ledger.New(tx).Grant(ctx, uid, reward); err != nil {
			return err
		}
		if err := tx.InsertSignIn(ctx, claim.Record(uid, now.UTC())); err != nil {
			return err
		}
		u, err := tx.GetUserForUpdate(ctx, uid)
		if err != nil {
			return err
		}

		res.Date = date.Format(domain.DateLayout)
		res.StreakDay = claim.StreakDay
		res.Base = claim.Base
		res.Bonus = claim.Bonus
		res.Milestone = claim.Milestone
		res.Currency = u.Currency
		res.Experience = u.Experience
		return nil
	})
	if err := m.finish(ctx, OpSignIn, &res.Reply, MsgSignedIn, err); err != nil {
		return nil, err
	}
	if res.OK() {
		m.publish(ctx, event.SignedIn, event.FarmActionPayloadV1{
			UserID: uid, Quantity: res.StreakDay, CurrencyDelta: reward.Currency, Experience: reward.Experience,
		})
	}
	return res, nil
}
