package cooldown

// =============================================================================
// Action Constants
// =============================================================================

const (
	// ActionSteal is the action prefix for theft cooldowns
	ActionSteal = "steal"
)

// =============================================================================
// Key Constants
// =============================================================================

const (
	// ActionSeparator joins an action prefix and its qualifier, as in "steal:bob"
	ActionSeparator = ":"
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgCheckCooldownFailed  = "failed to check cooldown: %w"
	ErrMsgUpdateCooldownFailed = "failed to update cooldown: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	// LogMsgCooldownEnforced is logged when cooldown is successfully enforced and updated
	LogMsgCooldownEnforced = "Cooldown enforced successfully"
)

// =============================================================================
// Error Message Format Strings (for ErrOnCooldown.Error())
// =============================================================================

const (
	// ErrFmtCooldownWithMinutes formats cooldown error with minutes and seconds
	ErrFmtCooldownWithMinutes = "You can %s again in %dm %ds"

	// ErrFmtCooldownSecondsOnly formats cooldown error with seconds only
	ErrFmtCooldownSecondsOnly = "You can %s again in %ds"
)

// =============================================================================
// Time Conversion Constants
// =============================================================================

const (
	// SecondsPerMinute is used for time duration calculations
	SecondsPerMinute = 60
)
