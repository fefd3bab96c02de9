package catalog

import (
	"sort"

	"github.com/osse101/FarmBot_Go/internal/domain"
)

// CropDefinition describes one plantable crop and its seed
type CropDefinition struct {
	ID            string   `yaml:"id" toml:"id" json:"id"`
	Name          string   `yaml:"name" toml:"name" json:"name"`
	Aliases       []string `yaml:"aliases" toml:"aliases" json:"aliases,omitempty"`
	GrowthSeconds int64    `yaml:"growth_seconds" toml:"growth_seconds" json:"growth_seconds"`
	StageCount    int      `yaml:"stage_count" toml:"stage_count" json:"stage_count"`
	YieldAmount   int      `yaml:"yield_amount" toml:"yield_amount" json:"yield_amount"`
	BuyPrice      int      `yaml:"buy_price" toml:"buy_price" json:"buy_price"`
	SellPrice     int      `yaml:"sell_price" toml:"sell_price" json:"sell_price"`
	SeedCost      int      `yaml:"seed_cost" toml:"seed_cost" json:"seed_cost"`
	Experience    int      `yaml:"experience" toml:"experience" json:"experience"`
	MinLevel      int      `yaml:"min_level" toml:"min_level" json:"min_level"`
}

// Economy holds account-wide constants
type Economy struct {
	InitialCurrency int `yaml:"initial_currency" toml:"initial_currency" json:"initial_currency"`
	InitialPlots    int `yaml:"initial_plots" toml:"initial_plots" json:"initial_plots"`
	LevelExperience int `yaml:"level_experience" toml:"level_experience" json:"level_experience"`
	TillCost        int `yaml:"till_cost" toml:"till_cost" json:"till_cost"`
}

// Growth holds growth-model constants
type Growth struct {
	// WitherMultiplier of 0 disables withering
	WitherMultiplier float64 `yaml:"wither_multiplier" toml:"wither_multiplier" json:"wither_multiplier"`
}

// Theft holds the theft rate and cap
type Theft struct {
	Amount          int   `yaml:"amount" toml:"amount" json:"amount"`
	Percent         int   `yaml:"percent" toml:"percent" json:"percent"`
	CapPercent      int   `yaml:"cap_percent" toml:"cap_percent" json:"cap_percent"`
	CooldownSeconds int64 `yaml:"cooldown_seconds" toml:"cooldown_seconds" json:"cooldown_seconds"`
}

// Shop holds shop listing settings
type Shop struct {
	PageSize int `yaml:"page_size" toml:"page_size" json:"page_size"`
}

// UpgradeLevel is the price of reaching Level from Level-1
type UpgradeLevel struct {
	Level             int `yaml:"level" toml:"level" json:"level"`
	Cost              int `yaml:"cost" toml:"cost" json:"cost"`
	MinUserLevel      int `yaml:"min_user_level" toml:"min_user_level" json:"min_user_level"`
	YieldBonusPercent int `yaml:"yield_bonus_percent" toml:"yield_bonus_percent" json:"yield_bonus_percent"`
}

// ReclaimStep is the price of the next plot for a user who owns PlotCount plots
type ReclaimStep struct {
	PlotCount int `yaml:"plot_count" toml:"plot_count" json:"plot_count"`
	Cost      int `yaml:"cost" toml:"cost" json:"cost"`
	MinLevel  int `yaml:"min_level" toml:"min_level" json:"min_level"`
}

// Milestone is a bonus reward granted on a given streak day
type Milestone struct {
	Day        int            `yaml:"day" toml:"day" json:"day"`
	Currency   int            `yaml:"currency" toml:"currency" json:"currency"`
	Experience int            `yaml:"experience" toml:"experience" json:"experience"`
	Seeds      map[string]int `yaml:"seeds" toml:"seeds" json:"seeds,omitempty"`
}

// SignInSchedule defines daily sign-in rewards
type SignInSchedule struct {
	BaseCurrency     int         `yaml:"base_currency" toml:"base_currency" json:"base_currency"`
	BaseExperience   int         `yaml:"base_experience" toml:"base_experience" json:"base_experience"`
	PerDayCurrency   int         `yaml:"per_day_currency" toml:"per_day_currency" json:"per_day_currency"`
	PerDayExperience int         `yaml:"per_day_experience" toml:"per_day_experience" json:"per_day_experience"`
	ScalingCap       int         `yaml:"scaling_cap" toml:"scaling_cap" json:"scaling_cap"`
	Milestones       []Milestone `yaml:"milestones" toml:"milestones" json:"milestones,omitempty"`
}

// Catalog is the immutable, process-wide table of crops, prices and reward schedules.
// All accessors return copies; a *Catalog is safe for unsynchronized concurrent reads.
type Catalog struct {
	version int
	digest  string

	economy Economy
	growth  Growth
	theft   Theft
	shop    Shop
	signIn  SignInSchedule

	crops  []CropDefinition
	byID   map[string]int
	lookup map[string]string

	upgrades     map[int]UpgradeLevel
	maxPlotLevel int

	reclaim  map[int]ReclaimStep
	maxPlots int

	milestones map[int]Milestone
}

// Version returns the catalog schema version
func (c *Catalog) Version() int { return c.version }

// Digest returns a stable hash of the catalog source
func (c *Catalog) Digest() string { return c.digest }

func (c *Catalog) Economy() Economy { return c.economy }

func (c *Catalog) Growth() Growth { return c.growth }

func (c *Catalog) Theft() Theft { return c.theft }

func (c *Catalog) Shop() Shop { return c.shop }

// SignIn returns the reward schedule without its milestones; use Milestone for those
func (c *Catalog) SignIn() SignInSchedule {
	s := c.signIn
	s.Milestones = nil
	return s
}

// Crop looks up a crop by its canonical ID
func (c *Catalog) Crop(id string) (CropDefinition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return CropDefinition{}, false
	}
	return c.crops[i], true
}

// Crops returns every crop sorted by minimum level, then ID
func (c *Catalog) Crops() []CropDefinition {
	out := make([]CropDefinition, len(c.crops))
	copy(out, c.crops)
	return out
}

// ResolveCrop finds a crop by ID, name or alias, ignoring case and character width
func (c *Catalog) ResolveCrop(name string) (CropDefinition, error) {
	key := Fold(name)
	if key == "" {
		return CropDefinition{}, domain.ErrUnknownCrop
	}
	id, ok := c.lookup[key]
	if !ok {
		return CropDefinition{}, domain.ErrUnknownCrop
	}
	crop, _ := c.Crop(id)
	return crop, nil
}

// Upgrade returns the cost of reaching level from level-1
func (c *Catalog) Upgrade(level int) (UpgradeLevel, bool) {
	u, ok := c.upgrades[level]
	return u, ok
}

// MaxPlotLevel is the highest plot level in the upgrade table
func (c *Catalog) MaxPlotLevel() int { return c.maxPlotLevel }

// YieldBonusPercent returns the yield bonus of a plot at level
func (c *Catalog) YieldBonusPercent(level int) int {
	return c.upgrades[level].YieldBonusPercent
}

// ReclaimStep returns the price of the next plot for a user owning plotCount plots
func (c *Catalog) ReclaimStep(plotCount int) (ReclaimStep, bool) {
	s, ok := c.reclaim[plotCount]
	return s, ok
}

// MaxPlots is the largest plot count reachable through reclamation
func (c *Catalog) MaxPlots() int { return c.maxPlots }

// Milestone returns the bonus for a streak day, if one is configured
func (c *Catalog) Milestone(day int) (domain.Reward, bool) {
	m, ok := c.milestones[day]
	if !ok {
		return domain.Reward{}, false
	}
	r := domain.Reward{Currency: m.Currency, Experience: m.Experience}
	if len(m.Seeds) > 0 {
		r.Seeds = make(map[string]int, len(m.Seeds))
		for k, v := range m.Seeds {
			r.Seeds[k] = v
		}
	}
	return r, true
}

// ShopPage is one page of the seed shop listing
type ShopPage struct {
	Items      []CropDefinition `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	TotalItems int              `json:"total_items"`
}

// ShopList returns the crops whose ID, name or alias contains filter.
// Pages are 1-based; a page outside the range yields no items but correct totals.
func (c *Catalog) ShopList(filter string, page int) ShopPage {
	key := Fold(filter)
	matched := make([]CropDefinition, 0, len(c.crops))
	for _, crop := range c.crops {
		if key == "" || cropMatches(crop, key) {
			matched = append(matched, crop)
		}
	}

	size := c.shop.PageSize
	totalPages := (len(matched) + size - 1) / size
	if page < 1 {
		page = 1
	}
	result := ShopPage{
		Items:      []CropDefinition{},
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		TotalItems: len(matched),
	}
	if page > totalPages {
		return result
	}
	start := (page - 1) * size
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	result.Items = matched[start:end]
	return result
}

func cropMatches(crop CropDefinition, key string) bool {
	if containsFolded(crop.ID, key) || containsFolded(crop.Name, key) {
		return true
	}
	for _, a := range crop.Aliases {
		if containsFolded(a, key) {
			return true
		}
	}
	return false
}

func sortCrops(crops []CropDefinition) {
	sort.SliceStable(crops, func(i, j int) bool {
		if crops[i].MinLevel != crops[j].MinLevel {
			return crops[i].MinLevel < crops[j].MinLevel
		}
		return crops[i].ID < crops[j].ID
	})
}
