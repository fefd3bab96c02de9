package catalog

import (
	"fmt"
	"sort"
)

func applyDefaults(f *file) {
	if f.Version == 0 {
		f.Version = CurrentVersion
	}
	if f.Economy.InitialCurrency == 0 {
		f.Economy.InitialCurrency = DefaultInitialCurrency
	}
	if f.Economy.InitialPlots == 0 {
		f.Economy.InitialPlots = DefaultInitialPlots
	}
	if f.Economy.LevelExperience == 0 {
		f.Economy.LevelExperience = DefaultLevelExperience
	}
	if f.Theft.Amount == 0 && f.Theft.Percent == 0 {
		f.Theft.Amount = DefaultTheftAmount
	}
	if f.Theft.CapPercent == 0 {
		f.Theft.CapPercent = DefaultTheftCapPercent
	}
	if f.Shop.PageSize <= 0 {
		f.Shop.PageSize = DefaultShopPageSize
	}
	if len(f.Upgrades) == 0 {
		f.Upgrades = []UpgradeLevel{{Level: BasePlotLevel}}
	}
	for i := range f.Crops {
		if f.Crops[i].StageCount == 0 {
			f.Crops[i].StageCount = 1
		}
		if f.Crops[i].SeedCost == 0 {
			f.Crops[i].SeedCost = 1
		}
	}
}

func build(f file, digest string) (*Catalog, error) {
	applyDefaults(&f)
	if f.Version != CurrentVersion {
		return nil, fmt.Errorf(ErrMsgVersionMismatch, f.Version, CurrentVersion)
	}
	if err := validateScalars(f); err != nil {
		return nil, err
	}

	c := &Catalog{
		version:    f.Version,
		digest:     digest,
		economy:    f.Economy,
		growth:     f.Growth,
		theft:      f.Theft,
		shop:       f.Shop,
		signIn:     f.SignIn,
		byID:       make(map[string]int, len(f.Crops)),
		lookup:     make(map[string]string, len(f.Crops)*3),
		upgrades:   make(map[int]UpgradeLevel, len(f.Upgrades)),
		reclaim:    make(map[int]ReclaimStep, len(f.Reclaim)),
		milestones: make(map[int]Milestone, len(f.SignIn.Milestones)),
	}

	if err := c.indexCrops(f.Crops); err != nil {
		return nil, err
	}
	if err := c.indexUpgrades(f.Upgrades); err != nil {
		return nil, err
	}
	if err := c.indexReclaim(f.Reclaim); err != nil {
		return nil, err
	}
	if err := c.indexMilestones(f.SignIn.Milestones); err != nil {
		return nil, err
	}
	c.signIn.Milestones = nil
	return c, nil
}

func validateScalars(f file) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"economy.initial_currency", float64(f.Economy.InitialCurrency)},
		{"economy.initial_plots", float64(f.Economy.InitialPlots)},
		{"economy.level_experience", float64(f.Economy.LevelExperience)},
		{"economy.till_cost", float64(f.Economy.TillCost)},
		{"growth.wither_multiplier", f.Growth.WitherMultiplier},
		{"theft.amount", float64(f.Theft.Amount)},
		{"theft.percent", float64(f.Theft.Percent)},
		{"theft.cap_percent", float64(f.Theft.CapPercent)},
		{"theft.cooldown_seconds", float64(f.Theft.CooldownSeconds)},
		{"signin.base_currency", float64(f.SignIn.BaseCurrency)},
		{"signin.base_experience", float64(f.SignIn.BaseExperience)},
		{"signin.per_day_currency", float64(f.SignIn.PerDayCurrency)},
		{"signin.per_day_experience", float64(f.SignIn.PerDayExperience)},
		{"signin.scaling_cap", float64(f.SignIn.ScalingCap)},
	}
	for _, ch := range checks {
		if ch.value < 0 {
			return fmt.Errorf(ErrMsgNegativeValue, ch.name)
		}
	}
	if f.Growth.WitherMultiplier > 0 && f.Growth.WitherMultiplier < 1 {
		return fmt.Errorf("growth.wither_multiplier must be 0 or at least 1, got %v", f.Growth.WitherMultiplier)
	}
	return nil
}

func (c *Catalog) indexCrops(crops []CropDefinition) error {
	if len(crops) == 0 {
		return fmt.Errorf(ErrMsgNoCrops)
	}
	c.crops = make([]CropDefinition, len(crops))
	copy(c.crops, crops)
	sortCrops(c.crops)

	for i, crop := range c.crops {
		if err := validateCrop(crop); err != nil {
			return err
		}
		if _, dup := c.byID[crop.ID]; dup {
			return fmt.Errorf(ErrMsgDuplicateCrop, crop.ID)
		}
		c.byID[crop.ID] = i
	}

	for _, crop := range c.crops {
		keys := append([]string{crop.ID, crop.Name}, crop.Aliases...)
		for _, k := range keys {
			folded := Fold(k)
			if folded == "" {
				continue
			}
			if owner, taken := c.lookup[folded]; taken && owner != crop.ID {
				return fmt.Errorf(ErrMsgAmbiguousName, k, owner, crop.ID)
			}
			c.lookup[folded] = crop.ID
		}
	}
	return nil
}

func validateCrop(crop CropDefinition) error {
	fail := func(msg string) error { return fmt.Errorf(ErrMsgInvalidCropField, crop.ID, msg) }
	switch {
	case crop.ID == "":
		return fmt.Errorf(ErrMsgInvalidCropField, crop.Name, "missing id")
	case crop.Name == "":
		return fail("missing name")
	case crop.GrowthSeconds <= 0:
		return fail("growth_seconds must be positive")
	case crop.StageCount < 1:
		return fail("stage_count must be at least 1")
	case crop.YieldAmount <= 0:
		return fail("yield_amount must be positive")
	case crop.BuyPrice < 0 || crop.SellPrice < 0:
		return fail("prices must not be negative")
	case crop.SeedCost < 1:
		return fail("seed_cost must be at least 1")
	case crop.Experience < 0 || crop.MinLevel < 0:
		return fail("experience and min_level must not be negative")
	}
	return nil
}

func (c *Catalog) indexUpgrades(levels []UpgradeLevel) error {
	maxLevel := BasePlotLevel
	for _, u := range levels {
		if u.Level < BasePlotLevel {
			return fmt.Errorf("upgrade level %d is below base level %d", u.Level, BasePlotLevel)
		}
		if u.Cost < 0 || u.MinUserLevel < 0 || u.YieldBonusPercent < 0 {
			return fmt.Errorf(ErrMsgNegativeValue, fmt.Sprintf("upgrade level %d values", u.Level))
		}
		c.upgrades[u.Level] = u
		if u.Level > maxLevel {
			maxLevel = u.Level
		}
	}
	if _, ok := c.upgrades[BasePlotLevel]; !ok {
		c.upgrades[BasePlotLevel] = UpgradeLevel{Level: BasePlotLevel}
	}
	for lvl := BasePlotLevel; lvl <= maxLevel; lvl++ {
		if _, ok := c.upgrades[lvl]; !ok {
			return fmt.Errorf(ErrMsgUpgradeGap, BasePlotLevel, maxLevel, lvl)
		}
	}
	c.maxPlotLevel = maxLevel
	return nil
}

func (c *Catalog) indexReclaim(steps []ReclaimStep) error {
	c.maxPlots = c.economy.InitialPlots
	if len(steps) == 0 {
		return nil
	}
	sorted := make([]ReclaimStep, len(steps))
	copy(sorted, steps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PlotCount < sorted[j].PlotCount })
	if sorted[0].PlotCount != c.economy.InitialPlots {
		return fmt.Errorf(ErrMsgReclaimStart, c.economy.InitialPlots, sorted[0].PlotCount)
	}
	for i, s := range sorted {
		if s.Cost < 0 || s.MinLevel < 0 {
			return fmt.Errorf(ErrMsgNegativeValue, fmt.Sprintf("reclaim step %d values", s.PlotCount))
		}
		if i > 0 {
			prev := sorted[i-1]
			if s.PlotCount != prev.PlotCount+1 {
				return fmt.Errorf(ErrMsgReclaimGap, prev.PlotCount+1)
			}
			if s.Cost <= prev.Cost {
				return fmt.Errorf(ErrMsgReclaimOrder, s.PlotCount, s.Cost, prev.Cost)
			}
		}
		c.reclaim[s.PlotCount] = s
	}
	c.maxPlots = sorted[len(sorted)-1].PlotCount + 1
	return nil
}

func (c *Catalog) indexMilestones(milestones []Milestone) error {
	for _, m := range milestones {
		if m.Day < 1 {
			return fmt.Errorf("sign-in milestone day must be at least 1, got %d", m.Day)
		}
		for cropID, n := range m.Seeds {
			if _, ok := c.byID[cropID]; !ok {
				return fmt.Errorf(ErrMsgMilestoneCrop, m.Day, cropID)
			}
			if n < 0 {
				return fmt.Errorf(ErrMsgNegativeValue, fmt.Sprintf("milestone day %d seeds", m.Day))
			}
		}
		c.milestones[m.Day] = m
	}
	return nil
}
