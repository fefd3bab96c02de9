// Package theft decides which plot a raid hits and how much it takes.
// It performs no I/O; callers apply the returned Raid inside a transaction.
package theft

import (
	"fmt"
	"time"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/growth"
	"github.com/osse101/FarmBot_Go/internal/plot"
)

// Raid is the planned theft from one plot
type Raid struct {
	Plot   domain.Plot
	CropID string
	Amount int
	// Cap is the total that may ever be stolen from this planting
	Cap int
}

// Controller selects theft targets using the catalog theft settings
type Controller struct {
	catalog *catalog.Catalog
	growth  *growth.Engine
}

// NewController creates a theft controller
func NewController(c *catalog.Catalog, g *growth.Engine) *Controller {
	return &Controller{catalog: c, growth: g}
}

// Cap is the most that may be stolen from a plot over one planting
func (c *Controller) Cap(p domain.Plot) int {
	effective := c.growth.EffectiveYield(p)
	limit := effective * c.catalog.Theft().CapPercent / 100
	if limit > effective {
		return effective
	}
	return limit
}

// Amount is what a single raid takes from p, already limited by the cap
func (c *Controller) Amount(p domain.Plot) int {
	cfg := c.catalog.Theft()
	amount := cfg.Amount
	if cfg.Percent > 0 {
		amount = ceilPercent(c.growth.EffectiveYield(p), cfg.Percent)
	}
	if left := c.Cap(p) - p.StolenYield; amount > left {
		amount = left
	}
	if amount < 0 {
		return 0
	}
	return amount
}

// Plan scans the target's plots by ascending index for the first planted, mature,
// non-withered plot that is still below its theft cap.
func (c *Controller) Plan(targetPlots []domain.Plot, now time.Time) (Raid, error) {
	for _, p := range plot.Sorted(targetPlots).Planted() {
		g := c.growth.Derive(p, now)
		if !g.IsMature || g.IsWithered {
			continue
		}
		amount := c.Amount(p)
		if amount <= 0 {
			continue
		}
		return Raid{Plot: p, CropID: p.CropID, Amount: amount, Cap: c.Cap(p)}, nil
	}
	return Raid{}, fmt.Errorf("%w: no ripe plot below its cap", domain.ErrNothingToSteal)
}

// ceilPercent returns ceil(value * percent / 100) for non-negative inputs
func ceilPercent(value, percent int) int {
	return (value*percent + 99) / 100
}
