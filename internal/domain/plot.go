package domain

import (
	"fmt"
	"time"
)

// PlotState represents the lifecycle state of a plot
type PlotState string

const (
	PlotStateBarren  PlotState = "barren"
	PlotStateTilled  PlotState = "tilled"
	PlotStatePlanted PlotState = "planted"
	// PlotStateWithered is only ever derived on read, never persisted
	PlotStateWithered PlotState = "withered"
)

// Valid reports whether s is a known plot state
func (s PlotState) Valid() bool {
	switch s {
	case PlotStateBarren, PlotStateTilled, PlotStatePlanted, PlotStateWithered:
		return true
	}
	return false
}

// Plot is a single unit of land owned by a user
type Plot struct {
	OwnerID     string     `json:"owner_id"`
	Index       int        `json:"index"`
	Level       int        `json:"level"`
	State       PlotState  `json:"state"`
	CropID      string     `json:"crop_id,omitempty"`
	PlantedAt   *time.Time `json:"planted_at,omitempty"`
	StolenYield int        `json:"stolen_yield"`
}

// IsPlanted reports whether the plot currently carries a crop
func (p Plot) IsPlanted() bool {
	return p.State == PlotStatePlanted && p.CropID != "" && p.PlantedAt != nil
}

// IsSowable reports whether a seed can be planted right now
func (p Plot) IsSowable() bool {
	return p.State == PlotStateTilled
}

// Validate checks the structural invariants of a plot
func (p Plot) Validate() error {
	if p.Index < 0 {
		return fmt.Errorf("%w: negative plot index %d", ErrInvalidPlot, p.Index)
	}
	if p.Level < 1 {
		return fmt.Errorf("%w: plot %d has level %d", ErrInvalidPlot, p.Index, p.Level)
	}
	if p.StolenYield < 0 {
		return fmt.Errorf("%w: plot %d has negative stolen yield", ErrInvalidPlot, p.Index)
	}
	hasCrop := p.CropID != "" || p.PlantedAt != nil
	switch p.State {
	case PlotStatePlanted:
		if p.CropID == "" || p.PlantedAt == nil {
			return fmt.Errorf("%w: planted plot %d without crop or timestamp", ErrInvalidPlot, p.Index)
		}
	case PlotStateBarren, PlotStateTilled:
		if hasCrop {
			return fmt.Errorf("%w: %s plot %d carries a crop", ErrInvalidPlot, p.State, p.Index)
		}
	default:
		return fmt.Errorf("%w: plot %d has state %q", ErrInvalidPlot, p.Index, p.State)
	}
	return nil
}

// GrowthState is the derived, never-stored view of a planted plot at a point in time
type GrowthState struct {
	Stage      int           `json:"stage"`
	StageCount int           `json:"stage_count"`
	IsMature   bool          `json:"is_mature"`
	IsWithered bool          `json:"is_withered"`
	Elapsed    time.Duration `json:"elapsed"`
	Remaining  time.Duration `json:"remaining"`
}
