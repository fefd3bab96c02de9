package domain

import "time"

// PlotView is a plot with its derived growth state resolved at snapshot time
type PlotView struct {
	Index            int       `json:"index"`
	Level            int       `json:"level"`
	State            PlotState `json:"state"`
	CropID           string    `json:"crop_id,omitempty"`
	CropName         string    `json:"crop_name,omitempty"`
	Stage            int       `json:"stage"`
	StageCount       int       `json:"stage_count"`
	IsMature         bool      `json:"is_mature"`
	IsWithered       bool      `json:"is_withered"`
	RemainingSeconds int64     `json:"remaining_seconds"`
	EffectiveYield   int       `json:"effective_yield"`
	StolenYield      int       `json:"stolen_yield"`
}

// FarmSnapshot is the renderable state of one user's farm
type FarmSnapshot struct {
	User      User             `json:"user"`
	Level     int              `json:"level"`
	Plots     []PlotView       `json:"plots"`
	Seeds     []InventoryEntry `json:"seeds"`
	Crops     []InventoryEntry `json:"crops"`
	TakenAt   time.Time        `json:"taken_at"`
	PlotCount int              `json:"plot_count"`
}
