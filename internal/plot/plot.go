package plot

import (
	"fmt"
	"sort"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// New creates a level-1 plot in the given state (barren or tilled)
func New(ownerID string, index int, state domain.PlotState) domain.Plot {
	return domain.Plot{
		OwnerID: ownerID,
		Index:   index,
		Level:   1,
		State:   state,
	}
}

// Sow plants cropID on a tilled plot
func Sow(p domain.Plot, cropID string, now time.Time) (domain.Plot, error) {
	if !p.IsSowable() {
		return p, fmt.Errorf("%w: plot %d is %s", domain.ErrInsufficientPlots, p.Index, p.State)
	}
	plantedAt := now
	p.State = domain.PlotStatePlanted
	p.CropID = cropID
	p.PlantedAt = &plantedAt
	p.StolenYield = 0
	return p, nil
}

// Clear resets a planted plot to tilled, discarding crop and theft record
func Clear(p domain.Plot) domain.Plot {
	p.State = domain.PlotStateTilled
	p.CropID = ""
	p.PlantedAt = nil
	p.StolenYield = 0
	return p
}

// Till turns a barren plot into a tilled one
func Till(p domain.Plot) (domain.Plot, error) {
	if p.State != domain.PlotStateBarren {
		return p, fmt.Errorf("%w: plot %d is %s", domain.ErrNothingToTill, p.Index, p.State)
	}
	p.State = domain.PlotStateTilled
	return p, nil
}

// Upgrade raises the plot level by one; state and crop are untouched
func Upgrade(p domain.Plot) domain.Plot {
	p.Level++
	return p
}

// AddStolen records amount units taken from the plot by another user
func AddStolen(p domain.Plot, amount int) (domain.Plot, error) {
	if amount <= 0 {
		return p, fmt.Errorf("%w: stolen amount %d", domain.ErrInvalidQuantity, amount)
	}
	if !p.IsPlanted() {
		return p, fmt.Errorf("%w: plot %d is %s", domain.ErrNothingToSteal, p.Index, p.State)
	}
	p.StolenYield += amount
	return p, nil
}

// Set is a user's ordered plot array
type Set []domain.Plot

// Sorted returns the plots ordered by index
func Sorted(plots []domain.Plot) Set {
	s := make(Set, len(plots))
	copy(s, plots)
	sort.Slice(s, func(i, j int) bool { return s[i].Index < s[j].Index })
	return s
}

// Find returns the plot with the given index
func (s Set) Find(index int) (domain.Plot, bool) {
	for _, p := range s {
		if p.Index == index {
			return p, true
		}
	}
	return domain.Plot{}, false
}

// NextIndex is the index a newly reclaimed plot receives
func (s Set) NextIndex() int {
	next := 0
	for _, p := range s {
		if p.Index >= next {
			next = p.Index + 1
		}
	}
	return next
}

// Tilled returns up to limit tilled plots with the lowest indexes.
// A negative limit returns all of them.
func (s Set) Tilled(limit int) Set {
	return s.filter(limit, func(p domain.Plot) bool { return p.State == domain.PlotStateTilled })
}

// Barren returns every barren plot
func (s Set) Barren() Set {
	return s.filter(-1, func(p domain.Plot) bool { return p.State == domain.PlotStateBarren })
}

// Planted returns every plot carrying a crop, withered or not
func (s Set) Planted() Set {
	return s.filter(-1, func(p domain.Plot) bool { return p.IsPlanted() })
}

func (s Set) filter(limit int, keep func(domain.Plot) bool) Set {
	out := make(Set, 0, len(s))
	for _, p := range Sorted(s) {
		if limit >= 0 && len(out) >= limit {
			break
		}
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks every plot and that indexes are unique
func (s Set) Validate() error {
	seen := make(map[int]struct{}, len(s))
	for _, p := range s {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.Index]; dup {
			return fmt.Errorf("%w: duplicate index %d", domain.ErrInvalidPlot, p.Index)
		}
		seen[p.Index] = struct{}{}
	}
	return nil
}
