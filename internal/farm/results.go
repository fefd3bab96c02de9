package farm

import (
	"time"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/upgrade"
)

// Reply carries the typed outcome of every operation. Rejections are replies, not errors.
type Reply struct {
	Outcome domain.Outcome `json:"outcome"`
	Message string         `json:"message"`
}

// OK reports whether the operation succeeded
func (r Reply) OK() bool {
	return r.Outcome == domain.OutcomeOK
}

// RegisterResult is returned by Register
type RegisterResult struct {
	Reply
	User  *domain.User `json:"user,omitempty"`
	Plots int          `json:"plots"`
}

// RenameResult is returned by Rename
type RenameResult struct {
	Reply
	Name string `json:"name,omitempty"`
}

// BalanceResult is returned by Balance
type BalanceResult struct {
	Reply
	Currency   int `json:"currency"`
	Experience int `json:"experience"`
	Level      int `json:"level"`
}

// StatusResult is returned by Status
type StatusResult struct {
	Reply
	Snapshot *domain.FarmSnapshot `json:"snapshot,omitempty"`
}

// InventoryResult is returned by SeedInventory and CropInventory
type InventoryResult struct {
	Reply
	Items []InventoryItem `json:"items"`
}

// InventoryItem is an inventory entry resolved against the catalog
type InventoryItem struct {
	domain.InventoryEntry
	Name      string `json:"name"`
	SellPrice int    `json:"sell_price"`
}

// ShopResult is returned by ShopList
type ShopResult struct {
	Reply
	catalog.ShopPage
}

// BuyResult is returned by BuySeed
type BuyResult struct {
	Reply
	CropID   string `json:"crop_id,omitempty"`
	Count    int    `json:"count"`
	Cost     int    `json:"cost"`
	Balance  int    `json:"balance"`
	Seeds    int    `json:"seeds"`
	MinLevel int    `json:"min_level,omitempty"`
}

// SoldCrop is one line of a sale
type SoldCrop struct {
	CropID   string `json:"crop_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Earned   int    `json:"earned"`
}

// SellResult is returned by SellCrop
type SellResult struct {
	Reply
	Sold    []SoldCrop `json:"sold"`
	Earned  int        `json:"earned"`
	Balance int        `json:"balance"`
}

// SowResult is returned by Sow
type SowResult struct {
	Reply
	CropID    string `json:"crop_id,omitempty"`
	Plots     []int  `json:"plots"`
	SeedsUsed int    `json:"seeds_used"`
	SeedsLeft int    `json:"seeds_left"`
}

// HarvestedCrop summarizes one crop of a harvest
type HarvestedCrop struct {
	CropID     string `json:"crop_id"`
	Name       string `json:"name"`
	Plots      int    `json:"plots"`
	Quantity   int    `json:"quantity"`
	Experience int    `json:"experience"`
}

// HarvestResult is returned by Harvest
type HarvestResult struct {
	Reply
	Crops      []HarvestedCrop `json:"crops"`
	Withered   int             `json:"withered"`
	Experience int             `json:"experience"`
	Level      int             `json:"level"`
}

// EradicateResult is returned by Eradicate
type EradicateResult struct {
	Reply
	Cleared int `json:"cleared"`
}

// TillResult is returned by Till
type TillResult struct {
	Reply
	Plots   []int `json:"plots"`
	Cost    int   `json:"cost"`
	Balance int   `json:"balance"`
}

// StealResult is returned by Steal
type StealResult struct {
	Reply
	TargetID          string `json:"target_id"`
	CropID            string `json:"crop_id,omitempty"`
	CropName          string `json:"crop_name,omitempty"`
	Amount            int    `json:"amount"`
	PlotIndex         int    `json:"plot_index"`
	RetryAfterSeconds int64  `json:"retry_after_seconds,omitempty"`
}

// SignInResult is returned by SignIn
type SignInResult struct {
	Reply
	Date       string        `json:"date,omitempty"`
	StreakDay  int           `json:"streak_day"`
	Base       domain.Reward `json:"base"`
	Bonus      domain.Reward `json:"bonus"`
	Milestone  bool          `json:"milestone"`
	Currency   int           `json:"currency"`
	Experience int           `json:"experience"`
}

// PendingToken is what the session collaborator echoes back on confirmation
type PendingToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReclaimConditionResult is returned by ReclaimCondition
type ReclaimConditionResult struct {
	Reply
	Quote      *upgrade.ReclaimQuote `json:"quote,omitempty"`
	Affordable bool                  `json:"affordable"`
	Pending    *PendingToken         `json:"pending,omitempty"`
}

// UpgradeConditionResult is returned by UpgradeCondition. A quote is included when
// the plot exists and has a next level, even if the user cannot afford it yet.
type UpgradeConditionResult struct {
	Reply
	Quote   *upgrade.UpgradeQuote `json:"quote,omitempty"`
	Pending *PendingToken         `json:"pending,omitempty"`
}

// ConfirmResult is returned by Confirm
type ConfirmResult struct {
	Reply
	Operation domain.Operation `json:"operation"`
	PlotIndex int              `json:"plot_index"`
	Level     int              `json:"level,omitempty"`
	Cost      int              `json:"cost"`
	Balance   int              `json:"balance"`
}
