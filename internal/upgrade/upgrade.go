// Package upgrade evaluates plot upgrades and land reclamation against the catalog
// cost tables. Evaluation is pure; the farm applies a quote only after confirmation
// and re-evaluates it under lock first.
package upgrade

import (
	"fmt"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/plot"
)

// UpgradeQuote prices raising one plot by one level
type UpgradeQuote struct {
	PlotIndex         int `json:"plot_index"`
	FromLevel         int `json:"from_level"`
	ToLevel           int `json:"to_level"`
	Cost              int `json:"cost"`
	MinUserLevel      int `json:"min_user_level"`
	YieldBonusPercent int `json:"yield_bonus_percent"`
}

// ReclaimQuote prices the next plot
type ReclaimQuote struct {
	PlotCount int `json:"plot_count"`
	NextIndex int `json:"next_index"`
	Cost      int `json:"cost"`
	MinLevel  int `json:"min_level"`
	UserLevel int `json:"user_level"`
	Currency  int `json:"currency"`
}

// Affordable reports whether the user could pay for the plot when the quote was made
func (q ReclaimQuote) Affordable() bool {
	return q.UserLevel >= q.MinLevel && q.Currency >= q.Cost
}

// Controller evaluates upgrade and reclamation conditions
type Controller struct {
	catalog *catalog.Catalog
}

// NewController creates an upgrade controller
func NewController(c *catalog.Catalog) *Controller {
	return &Controller{catalog: c}
}

func (c *Controller) userLevel(u domain.User) int {
	return u.Level(c.catalog.Economy().LevelExperience)
}

// QuoteUpgrade returns the cost of raising plot index by one level, or the reason it
// cannot be raised: ErrInvalidPlotIndex, ErrMaxLevelReached, ErrLevelTooLow or
// ErrInsufficientFunds. Plots may be upgraded in any state.
func (c *Controller) QuoteUpgrade(u domain.User, plots []domain.Plot, index int) (UpgradeQuote, error) {
	p, ok := plot.Set(plots).Find(index)
	if !ok {
		return UpgradeQuote{}, fmt.Errorf("%w: %d", domain.ErrInvalidPlotIndex, index)
	}

	next, ok := c.catalog.Upgrade(p.Level + 1)
	if !ok {
		return UpgradeQuote{}, fmt.Errorf("%w: plot %d is level %d", domain.ErrMaxLevelReached, index, p.Level)
	}

	q := UpgradeQuote{
		PlotIndex:         index,
		FromLevel:         p.Level,
		ToLevel:           next.Level,
		Cost:              next.Cost,
		MinUserLevel:      next.MinUserLevel,
		YieldBonusPercent: next.YieldBonusPercent,
	}
	if lvl := c.userLevel(u); lvl < next.MinUserLevel {
		return q, fmt.Errorf("%w: need level %d, have %d", domain.ErrLevelTooLow, next.MinUserLevel, lvl)
	}
	if u.Currency < next.Cost {
		return q, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, next.Cost, u.Currency)
	}
	return q, nil
}

// QuoteReclaim describes the next plot. It fails only with ErrMaxPlotsReached;
// level and funds are reported in the quote and enforced by CheckReclaim.
func (c *Controller) QuoteReclaim(u domain.User, plots []domain.Plot) (ReclaimQuote, error) {
	step, ok := c.catalog.ReclaimStep(len(plots))
	if !ok {
		return ReclaimQuote{}, fmt.Errorf("%w: %d plots", domain.ErrMaxPlotsReached, len(plots))
	}
	return ReclaimQuote{
		PlotCount: len(plots),
		NextIndex: plot.Set(plots).NextIndex(),
		Cost:      step.Cost,
		MinLevel:  step.MinLevel,
		UserLevel: c.userLevel(u),
		Currency:  u.Currency,
	}, nil
}

// CheckReclaim is QuoteReclaim with level and funds enforced
func (c *Controller) CheckReclaim(u domain.User, plots []domain.Plot) (ReclaimQuote, error) {
	q, err := c.QuoteReclaim(u, plots)
	if err != nil {
		return q, err
	}
	if q.UserLevel < q.MinLevel {
		return q, fmt.Errorf("%w: need level %d, have %d", domain.ErrLevelTooLow, q.MinLevel, q.UserLevel)
	}
	if q.Currency < q.Cost {
		return q, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, q.Cost, q.Currency)
	}
	return q, nil
}
