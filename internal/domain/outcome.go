package domain

import "errors"

// Outcome is the typed result of a farm operation as seen by the dispatcher.
// Game-rule violations are outcomes, never Go errors.
type Outcome string

const (
	OutcomeOK                   Outcome = "ok"
	OutcomeNotRegistered        Outcome = "not_registered"
	OutcomeTargetNotRegistered  Outcome = "target_not_registered"
	OutcomeAlreadyRegistered    Outcome = "already_registered"
	OutcomeInvalidName          Outcome = "invalid_name"
	OutcomeUnknownCrop          Outcome = "unknown_crop"
	OutcomeInsufficientFunds    Outcome = "insufficient_funds"
	OutcomeInsufficientSeeds    Outcome = "insufficient_seeds"
	OutcomeInsufficientQuantity Outcome = "insufficient_quantity"
	OutcomeInvalidQuantity      Outcome = "invalid_quantity"
	OutcomeNothingToSell        Outcome = "nothing_to_sell"
	OutcomeInsufficientPlots    Outcome = "insufficient_plots"
	OutcomeInvalidPlotIndex     Outcome = "invalid_plot_index"
	OutcomeNothingToHarvest     Outcome = "nothing_to_harvest"
	OutcomeNothingToTill        Outcome = "nothing_to_till"
	OutcomeSelfTheft            Outcome = "self_theft"
	OutcomeNothingToSteal       Outcome = "nothing_to_steal"
	OutcomeMaxLevelReached      Outcome = "max_level_reached"
	OutcomeMaxPlotsReached      Outcome = "max_plots_reached"
	OutcomeLevelTooLow          Outcome = "level_too_low"
	OutcomeAlreadySignedToday   Outcome = "already_signed_today"
	OutcomeOnCooldown           Outcome = "on_cooldown"
	OutcomeConfirmationTimeout  Outcome = "confirmation_timeout"
	OutcomeConfirmationDeclined Outcome = "confirmation_declined"
)

var outcomeErrors = []struct {
	err     error
	outcome Outcome
}{
	{ErrNotRegistered, OutcomeNotRegistered},
	{ErrTargetNotRegistered, OutcomeTargetNotRegistered},
	{ErrAlreadyRegistered, OutcomeAlreadyRegistered},
	{ErrInvalidName, OutcomeInvalidName},
	{ErrUnknownCrop, OutcomeUnknownCrop},
	{ErrInsufficientFunds, OutcomeInsufficientFunds},
	{ErrInsufficientSeeds, OutcomeInsufficientSeeds},
	{ErrInsufficientQuantity, OutcomeInsufficientQuantity},
	{ErrInvalidQuantity, OutcomeInvalidQuantity},
	{ErrNothingToSell, OutcomeNothingToSell},
	{ErrInsufficientPlots, OutcomeInsufficientPlots},
	{ErrInvalidPlotIndex, OutcomeInvalidPlotIndex},
	{ErrNothingToHarvest, OutcomeNothingToHarvest},
	{ErrNothingToTill, OutcomeNothingToTill},
	{ErrSelfTheft, OutcomeSelfTheft},
	{ErrNothingToSteal, OutcomeNothingToSteal},
	{ErrMaxLevelReached, OutcomeMaxLevelReached},
	{ErrMaxPlotsReached, OutcomeMaxPlotsReached},
	{ErrLevelTooLow, OutcomeLevelTooLow},
	{ErrAlreadySignedToday, OutcomeAlreadySignedToday},
	{ErrOnCooldown, OutcomeOnCooldown},
	{ErrConfirmationTimeout, OutcomeConfirmationTimeout},
	{ErrConfirmationDeclined, OutcomeConfirmationDeclined},
}

// OutcomeOf maps a game-rule error to its outcome.
// It returns false for nil and for errors that are not game rules (storage faults included).
func OutcomeOf(err error) (Outcome, bool) {
	if err == nil {
		return OutcomeOK, false
	}
	for _, oe := range outcomeErrors {
		if errors.Is(err, oe.err) {
			return oe.outcome, true
		}
	}
	return "", false
}

// IsSoft reports whether the outcome is a user-facing no-op rather than a rejection
func (o Outcome) IsSoft() bool {
	switch o {
	case OutcomeNothingToHarvest, OutcomeNothingToSteal, OutcomeNothingToSell, OutcomeNothingToTill,
		OutcomeAlreadySignedToday, OutcomeAlreadyRegistered:
		return true
	}
	return false
}
