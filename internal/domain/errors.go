package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Registration errors
	ErrMsgNotRegistered       = "user is not registered"
	ErrMsgTargetNotRegistered = "target user is not registered"
	ErrMsgAlreadyRegistered   = "user is already registered"
	ErrMsgUserNotFound        = "user not found"
	ErrMsgInvalidName         = "invalid name"

	// Catalog errors
	ErrMsgUnknownCrop = "unknown crop"

	// Ledger errors
	ErrMsgInsufficientFunds    = "insufficient funds"
	ErrMsgInsufficientSeeds    = "insufficient seeds"
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgInvalidQuantity      = "invalid quantity"
	ErrMsgNothingToSell        = "nothing to sell"

	// Plot errors
	ErrMsgInsufficientPlots = "not enough tilled plots"
	ErrMsgInvalidPlot       = "invalid plot"
	ErrMsgInvalidPlotIndex  = "invalid plot index"
	ErrMsgNothingToHarvest  = "nothing to harvest"
	ErrMsgNothingToTill     = "nothing to till"

	// Theft errors
	ErrMsgSelfTheft      = "cannot steal from yourself"
	ErrMsgNothingToSteal = "nothing to steal"

	// Upgrade / reclamation errors
	ErrMsgMaxLevelReached = "max level reached"
	ErrMsgMaxPlotsReached = "max plots reached"
	ErrMsgLevelTooLow     = "level too low"

	// Sign-in errors
	ErrMsgAlreadySignedToday = "already signed in today"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"

	// Confirmation errors
	ErrMsgConfirmationTimeout  = "confirmation timed out"
	ErrMsgConfirmationDeclined = "confirmation declined"

	// Database/System errors
	ErrMsgStorageFailure = "storage failure"
	ErrMsgTxClosed       = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Registration errors
	ErrNotRegistered       = errors.New(ErrMsgNotRegistered)
	ErrTargetNotRegistered = errors.New(ErrMsgTargetNotRegistered)
	ErrAlreadyRegistered   = errors.New(ErrMsgAlreadyRegistered)
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrInvalidName         = errors.New(ErrMsgInvalidName)

	// Catalog errors
	ErrUnknownCrop = errors.New(ErrMsgUnknownCrop)

	// Ledger errors
	ErrInsufficientFunds    = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientSeeds    = errors.New(ErrMsgInsufficientSeeds)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrInvalidQuantity      = errors.New(ErrMsgInvalidQuantity)
	ErrNothingToSell        = errors.New(ErrMsgNothingToSell)

	// Plot errors
	ErrInsufficientPlots = errors.New(ErrMsgInsufficientPlots)
	ErrInvalidPlot       = errors.New(ErrMsgInvalidPlot)
	ErrInvalidPlotIndex  = errors.New(ErrMsgInvalidPlotIndex)
	ErrNothingToHarvest  = errors.New(ErrMsgNothingToHarvest)
	ErrNothingToTill     = errors.New(ErrMsgNothingToTill)

	// Theft errors
	ErrSelfTheft      = errors.New(ErrMsgSelfTheft)
	ErrNothingToSteal = errors.New(ErrMsgNothingToSteal)

	// Upgrade / reclamation errors
	ErrMaxLevelReached = errors.New(ErrMsgMaxLevelReached)
	ErrMaxPlotsReached = errors.New(ErrMsgMaxPlotsReached)
	ErrLevelTooLow     = errors.New(ErrMsgLevelTooLow)

	// Sign-in errors
	ErrAlreadySignedToday = errors.New(ErrMsgAlreadySignedToday)

	// Cooldown errors
	ErrOnCooldown = errors.New(ErrMsgOnCooldown)

	// Confirmation errors
	ErrConfirmationTimeout  = errors.New(ErrMsgConfirmationTimeout)
	ErrConfirmationDeclined = errors.New(ErrMsgConfirmationDeclined)

	// Database/System errors
	ErrStorageFailure = errors.New(ErrMsgStorageFailure)
	ErrTxClosed       = errors.New(ErrMsgTxClosed)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
