// Package signin computes daily sign-in streaks and rewards. It formats nothing;
// callers render the returned Claim.
package signin

import (
	"fmt"
	"time"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Claim is the outcome of a successful sign-in
type Claim struct {
	Date      time.Time     `json:"date"`
	StreakDay int           `json:"streak_day"`
	Base      domain.Reward `json:"base"`
	Bonus     domain.Reward `json:"bonus"`
	Milestone bool          `json:"milestone"`
}

// Total merges base and bonus rewards
func (c Claim) Total() domain.Reward {
	total := domain.Reward{
		Currency:   c.Base.Currency + c.Bonus.Currency,
		Experience: c.Base.Experience + c.Bonus.Experience,
	}
	if len(c.Bonus.Seeds) > 0 {
		total.Seeds = make(map[string]int, len(c.Bonus.Seeds))
		for k, v := range c.Bonus.Seeds {
			total.Seeds[k] = v
		}
	}
	return total
}

// Record converts the claim into the row persisted for (uid, date)
func (c Claim) Record(uid string, claimedAt time.Time) domain.SignInRecord {
	total := c.Total()
	return domain.SignInRecord{
		UserID:           uid,
		Date:             c.Date,
		StreakDay:        c.StreakDay,
		CurrencyReward:   total.Currency,
		ExperienceReward: total.Experience,
		ClaimedAt:        claimedAt,
	}
}

// Tracker applies the catalog sign-in schedule
type Tracker struct {
	catalog *catalog.Catalog
}

// NewTracker creates a sign-in tracker
func NewTracker(c *catalog.Catalog) *Tracker {
	return &Tracker{catalog: c}
}

// Sign computes the claim for date given the records already stored for date and
// the day before it. A record for date means the user already signed today.
func (t *Tracker) Sign(date time.Time, today, yesterday *domain.SignInRecord) (Claim, error) {
	if today != nil {
		return Claim{}, fmt.Errorf("%w: %s", domain.ErrAlreadySignedToday, date.Format(domain.DateLayout))
	}

	streak := 1
	if yesterday != nil && yesterday.Date.Equal(domain.PreviousDay(date)) {
		streak = yesterday.StreakDay + 1
	}

	claim := Claim{
		Date:      date,
		StreakDay: streak,
		Base:      t.BaseReward(streak),
	}
	if bonus, ok := t.catalog.Milestone(streak); ok {
		claim.Bonus = bonus
		claim.Milestone = true
	}
	return claim, nil
}

// BaseReward is base + perDay × (min(streakDay, cap) − 1) for currency and experience.
// A zero scaling cap lets the reward grow without bound.
func (t *Tracker) BaseReward(streakDay int) domain.Reward {
	s := t.catalog.SignIn()
	steps := streakDay
	if s.ScalingCap > 0 && steps > s.ScalingCap {
		steps = s.ScalingCap
	}
	steps--
	if steps < 0 {
		steps = 0
	}
	return domain.Reward{
		Currency:   s.BaseCurrency + s.PerDayCurrency*steps,
		Experience: s.BaseExperience + s.PerDayExperience*steps,
	}
}
