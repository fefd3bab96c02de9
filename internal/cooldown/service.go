package cooldown

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/logger"
)

// Store keeps last-use timestamps. Implementations read and write through the
// transaction that runs the guarded action, with the user's row already locked.
type Store interface {
	GetLastUsed(ctx context.Context, userID, action string) (*time.Time, error)
	SetLastUsed(ctx context.Context, userID, action string, at time.Time) error
}

// Service manages per-user action cooldowns
type Service interface {
	// EnforceCooldown checks the cooldown in store and runs fn if allowed.
	// The cooldown starts only when fn succeeds, and is written to store,
	// so it commits or rolls back together with whatever fn wrote there.
	EnforceCooldown(ctx context.Context, store Store, userID, action string, fn func() error) error
}

type service struct {
	config Config
}

// NewService creates a cooldown service over the given durations
func NewService(config Config) Service {
	return &service{config: config}
}

func (s *service) EnforceCooldown(ctx context.Context, store Store, userID, action string, fn func() error) error {
	duration := s.config.GetCooldownDuration(action)
	if duration <= 0 {
		return fn()
	}

	lastUsed, err := store.GetLastUsed(ctx, userID, action)
	if err != nil {
		return fmt.Errorf(ErrMsgCheckCooldownFailed, err)
	}
	if onCooldown, remaining := remainingCooldown(lastUsed, duration, s.config.now()); onCooldown {
		return ErrOnCooldown{Action: action, Remaining: remaining}
	}

	if err := fn(); err != nil {
		return err
	}

	if err := store.SetLastUsed(ctx, userID, action, s.config.now()); err != nil {
		return fmt.Errorf(ErrMsgUpdateCooldownFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgCooldownEnforced, "action", action, "userID", userID)
	return nil
}

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % SecondsPerMinute

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.Action, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.Action, seconds)
}

// Is allows errors.Is() to match both ErrOnCooldown and domain.ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	if target == domain.ErrOnCooldown {
		return true
	}
	_, ok := target.(ErrOnCooldown)
	return ok
}

// remainingCooldown reports whether lastUsed+duration is still in the future at now
func remainingCooldown(lastUsed *time.Time, duration time.Duration, now time.Time) (bool, time.Duration) {
	if lastUsed == nil || duration <= 0 {
		return false, 0
	}

	elapsed := now.Sub(*lastUsed)
	if elapsed < duration {
		return true, duration - elapsed
	}

	return false, 0
}
