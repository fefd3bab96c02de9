package farm

import "github.com/osse101/FarmBot_Go/internal/domain"

// Operation names used for metrics and logs
const (
	OpRegister         = "register"
	OpRename           = "rename"
	OpBalance          = "balance"
	OpStatus           = "status"
	OpSeedInventory    = "seed_inventory"
	OpCropInventory    = "crop_inventory"
	OpShopList         = "shop_list"
	OpBuySeed          = "buy_seed"
	OpSellCrop         = "sell_crop"
	OpSow              = "sow"
	OpHarvest          = "harvest"
	OpEradicate        = "eradicate"
	OpTill             = "till"
	OpSteal            = "steal"
	OpSignIn           = "signin"
	OpReclaimCondition = "reclaim_condition"
	OpUpgradeCondition = "upgrade_condition"
	OpConfirm          = "confirm"
)

// OutcomeStorageFailure labels operations that ended in a storage fault
const OutcomeStorageFailure = "storage_failure"

// Name rules
const (
	// DefaultFarmerName is used when a registration supplies no usable name
	DefaultFarmerName = "农场主"
	// MaxNameRunes bounds display names after sanitizing
	MaxNameRunes = 32
)

// MaxQuantity bounds a single buy, sow or sell request
const MaxQuantity = 1_000_000

// OK messages
const (
	MsgRegistered   = "Welcome to your farm!"
	MsgRenamed      = "Name updated."
	MsgBought       = "Seeds bought."
	MsgSold         = "Crops sold."
	MsgSown         = "Seeds sown."
	MsgHarvested    = "Harvest complete."
	MsgEradicated   = "Field cleared."
	MsgTilled       = "Land tilled."
	MsgStolen       = "You sneaked away with some crops."
	MsgSignedIn     = "Signed in."
	MsgReclaimQuote = "Confirm to reclaim the next plot."
	MsgUpgradeQuote = "Confirm to upgrade this plot."
	MsgReclaimed    = "A new plot has been reclaimed."
	MsgUpgraded     = "Plot upgraded."
	MsgOK           = "OK"
)

// outcomeMessages are the user-facing texts for rejected operations
var outcomeMessages = map[domain.Outcome]string{
	domain.OutcomeNotRegistered:        "You don't have a farm yet. Register first.",
	domain.OutcomeTargetNotRegistered:  "That user doesn't have a farm.",
	domain.OutcomeAlreadyRegistered:    "You already have a farm.",
	domain.OutcomeInvalidName:          "That name can't be used.",
	domain.OutcomeUnknownCrop:          "No such crop.",
	domain.OutcomeInsufficientFunds:    "You don't have enough money.",
	domain.OutcomeInsufficientSeeds:    "You don't have enough seeds.",
	domain.OutcomeInsufficientQuantity: "You don't have that many.",
	domain.OutcomeInvalidQuantity:      "Invalid quantity.",
	domain.OutcomeNothingToSell:        "You have nothing to sell.",
	domain.OutcomeInsufficientPlots:    "Not enough empty tilled plots.",
	domain.OutcomeInvalidPlotIndex:     "No such plot.",
	domain.OutcomeNothingToHarvest:     "Nothing is ready to harvest.",
	domain.OutcomeNothingToTill:        "There is no barren land to till.",
	domain.OutcomeSelfTheft:            "You can't steal from your own farm.",
	domain.OutcomeNothingToSteal:       "There is nothing worth stealing there.",
	domain.OutcomeMaxLevelReached:      "This plot is already at the highest level.",
	domain.OutcomeMaxPlotsReached:      "You already own the maximum number of plots.",
	domain.OutcomeLevelTooLow:          "Your level is too low.",
	domain.OutcomeAlreadySignedToday:   "You already signed in today.",
	domain.OutcomeOnCooldown:           "You need to wait before doing that again.",
	domain.OutcomeConfirmationTimeout:  "There is nothing waiting for confirmation, or it expired.",
	domain.OutcomeConfirmationDeclined: "Cancelled.",
}

// OutcomeMessage returns the user-facing text for an outcome
func OutcomeMessage(o domain.Outcome) string {
	if msg, ok := outcomeMessages[o]; ok {
		return msg
	}
	return MsgOK
}

// Log messages
const (
	LogMsgOperationRejected = "Farm operation rejected"
	LogMsgOperationFailed   = "Farm operation failed"
	LogMsgOperationDone     = "Farm operation completed"
	LogMsgPublishFailed     = "Failed to publish farm event"
)

// Error contexts
const (
	ErrContextBeginTx  = "failed to begin transaction"
	ErrContextCommitTx = "failed to commit transaction"
)
