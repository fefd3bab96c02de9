package growth

import (
	"time"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/domain"
)

// Engine derives growth state from stored planting timestamps (no DB dependencies).
// Nothing is cached: every call recomputes from (plantedAt, now, crop).
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates a growth engine bound to an immutable catalog
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// DeriveCrop computes the growth state of a crop planted at plantedAt, observed at now
func (e *Engine) DeriveCrop(crop catalog.CropDefinition, plantedAt, now time.Time) domain.GrowthState {
	growth := time.Duration(crop.GrowthSeconds) * time.Second
	elapsed := now.Sub(plantedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	state := domain.GrowthState{
		StageCount: crop.StageCount,
		Elapsed:    elapsed,
	}

	if elapsed >= growth {
		state.Stage = crop.StageCount
		state.IsMature = true
	} else {
		state.Stage = int(int64(crop.StageCount) * int64(elapsed) / int64(growth))
		state.Remaining = growth - elapsed
	}

	if mult := e.catalog.Growth().WitherMultiplier; mult > 0 {
		witherAfter := time.Duration(float64(growth) * mult)
		state.IsWithered = elapsed >= witherAfter
	}
	return state
}

// Derive computes the growth state of a plot. Plots that are not planted have a zero state.
// A planted plot whose crop is no longer in the catalog is reported withered so the
// owner can clear it.
func (e *Engine) Derive(p domain.Plot, now time.Time) domain.GrowthState {
	if !p.IsPlanted() {
		return domain.GrowthState{}
	}
	crop, ok := e.catalog.Crop(p.CropID)
	if !ok {
		return domain.GrowthState{IsWithered: true}
	}
	return e.DeriveCrop(crop, *p.PlantedAt, now)
}

// EffectiveState is the state a reader should observe, with withering resolved
func (e *Engine) EffectiveState(p domain.Plot, now time.Time) domain.PlotState {
	if p.IsPlanted() && e.Derive(p, now).IsWithered {
		return domain.PlotStateWithered
	}
	return p.State
}

// EffectiveYield is the crop yield scaled by the plot level's bonus, before theft
func (e *Engine) EffectiveYield(p domain.Plot) int {
	crop, ok := e.catalog.Crop(p.CropID)
	if !ok {
		return 0
	}
	return ScaleYield(crop.YieldAmount, e.catalog.YieldBonusPercent(p.Level))
}

// RemainingYield is what the owner would still collect from a mature plot
func (e *Engine) RemainingYield(p domain.Plot) int {
	remaining := e.EffectiveYield(p) - p.StolenYield
	if remaining < 0 {
		return 0
	}
	return remaining
}

// View resolves a plot into its renderable form
func (e *Engine) View(p domain.Plot, now time.Time) domain.PlotView {
	v := domain.PlotView{
		Index:       p.Index,
		Level:       p.Level,
		State:       p.State,
		CropID:      p.CropID,
		StolenYield: p.StolenYield,
	}
	if !p.IsPlanted() {
		return v
	}
	g := e.Derive(p, now)
	if crop, ok := e.catalog.Crop(p.CropID); ok {
		v.CropName = crop.Name
	}
	v.Stage = g.Stage
	v.StageCount = g.StageCount
	v.IsMature = g.IsMature
	v.IsWithered = g.IsWithered
	v.RemainingSeconds = int64(g.Remaining.Round(time.Second) / time.Second)
	v.EffectiveYield = e.EffectiveYield(p)
	if g.IsWithered {
		v.State = domain.PlotStateWithered
	}
	return v
}

// ScaleYield applies a percentage bonus with integer floor division
func ScaleYield(base, bonusPercent int) int {
	return base * (100 + bonusPercent) / 100
}
