package cooldown

import (
	"strings"
	"time"
)

// Config holds cooldown service configuration
type Config struct {
	// Cooldowns maps action prefixes to their durations.
	// An action "steal:bob" uses the entry for "steal".
	Cooldowns map[string]time.Duration

	// Now overrides the clock in tests
	Now func() time.Time
}

// GetCooldownDuration returns the cooldown duration for an action; 0 means no cooldown
func (c *Config) GetCooldownDuration(action string) time.Duration {
	if c.Cooldowns == nil {
		return 0
	}
	if duration, ok := c.Cooldowns[action]; ok {
		return duration
	}
	if prefix, _, ok := strings.Cut(action, ActionSeparator); ok {
		return c.Cooldowns[prefix]
	}
	return 0
}

func (c *Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// StealAction names the cooldown between one actor and one target
func StealAction(targetID string) string {
	return ActionSteal + ActionSeparator + targetID
}
