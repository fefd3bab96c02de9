// Package farm orchestrates every game operation: it checks registration, takes the
// per-user locks, runs one repository transaction and publishes a farm event after
// commit. Game-rule violations come back as typed outcomes inside the result; only
// storage faults are returned as errors.
package farm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/concurrency"
	"github.com/osse101/FarmBot_Go/internal/confirm"
	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/growth"
	"github.com/osse101/FarmBot_Go/internal/logger"
	"github.com/osse101/FarmBot_Go/internal/metrics"
	"github.com/osse101/FarmBot_Go/internal/repository"
	"github.com/osse101/FarmBot_Go/internal/signin"
	"github.com/osse101/FarmBot_Go/internal/theft"
	"github.com/osse101/FarmBot_Go/internal/upgrade"
)

// Manager is the public game surface used by the transport layer
type Manager interface {
	Register(ctx context.Context, uid, name string) (*RegisterResult, error)
	Rename(ctx context.Context, uid, name string) (*RenameResult, error)
	Balance(ctx context.Context, uid string) (*BalanceResult, error)
	Status(ctx context.Context, uid string) (*StatusResult, error)
	SeedInventory(ctx context.Context, uid string) (*InventoryResult, error)
	CropInventory(ctx context.Context, uid string) (*InventoryResult, error)

	ShopList(ctx context.Context, filter string, page int) (*ShopResult, error)
	BuySeed(ctx context.Context, uid, name string, count int) (*BuyResult, error)
	// SellCrop sells count units of name. An empty name sells every crop held;
	// a zero count sells all units of the named crop.
	SellCrop(ctx context.Context, uid, name string, count int) (*SellResult, error)

	// Sow plants count plots; zero plants as many as plots and seeds allow
	Sow(ctx context.Context, uid, name string, count int) (*SowResult, error)
	Harvest(ctx context.Context, uid string) (*HarvestResult, error)
	Eradicate(ctx context.Context, uid string) (*EradicateResult, error)
	Till(ctx context.Context, uid string) (*TillResult, error)

	Steal(ctx context.Context, uid, targetID string) (*StealResult, error)
	SignIn(ctx context.Context, uid string) (*SignInResult, error)

	ReclaimCondition(ctx context.Context, uid string) (*ReclaimConditionResult, error)
	UpgradeCondition(ctx context.Context, uid string, plotIndex int) (*UpgradeConditionResult, error)
	Confirm(ctx context.Context, uid string, op domain.Operation, token string, accept bool) (*ConfirmResult, error)
}

// Config holds the optional manager settings
type Config struct {
	// Location is the time zone sign-in days are counted in. Nil means UTC.
	Location *time.Location
	// Now overrides the clock in tests
	Now func() time.Time
}

type manager struct {
	repo      repository.Farm
	catalog   *catalog.Catalog
	growth    *growth.Engine
	theft     *theft.Controller
	upgrades  *upgrade.Controller
	signins   *signin.Tracker
	confirms  *confirm.Store
	cooldowns cooldown.Service
	locks     *concurrency.LockManager
	bus       event.Bus
	loc       *time.Location
	now       func() time.Time
}

// NewManager wires the game controllers around a repository.
// cooldowns and bus may be nil.
func NewManager(repo repository.Farm, c *catalog.Catalog, confirms *confirm.Store, cooldowns cooldown.Service, bus event.Bus, cfg Config) Manager {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if confirms == nil {
		confirms = confirm.NewStore(0, 0, cfg.Now)
	}
	g := growth.NewEngine(c)
	return &manager{
		repo:      repo,
		catalog:   c,
		growth:    g,
		theft:     theft.NewController(c, g),
		upgrades:  upgrade.NewController(c),
		signins:   signin.NewTracker(c),
		confirms:  confirms,
		cooldowns: cooldowns,
		locks:     concurrency.NewLockManager(),
		bus:       bus,
		loc:       cfg.Location,
		now:       cfg.Now,
	}
}

// finish turns err into the reply. Game-rule errors become outcomes and are swallowed;
// anything else is logged and returned wrapped in domain.ErrStorageFailure.
func (m *manager) finish(ctx context.Context, op string, reply *Reply, okMsg string, err error) error {
	log := logger.FromContext(ctx)

	if err == nil {
		reply.Outcome = domain.OutcomeOK
		reply.Message = okMsg
		metrics.RecordOutcome(op, string(domain.OutcomeOK))
		log.Debug(LogMsgOperationDone, "operation", op)
		return nil
	}

	if outcome, ok := domain.OutcomeOf(err); ok {
		reply.Outcome = outcome
		reply.Message = OutcomeMessage(outcome)
		metrics.RecordOutcome(op, string(outcome))
		log.Info(LogMsgOperationRejected, "operation", op, "outcome", outcome, "reason", err.Error())
		return nil
	}

	metrics.RecordOutcome(op, OutcomeStorageFailure)
	log.Error(LogMsgOperationFailed, "operation", op, "error", err)
	if !errors.Is(err, domain.ErrStorageFailure) {
		err = fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	return err
}

// withTx runs fn in one transaction and commits when fn succeeds
func (m *manager) withTx(ctx context.Context, fn func(tx repository.FarmTx) error) error {
	tx, err := m.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrContextCommitTx, err)
	}
	return nil
}

// locked runs fn in a transaction while holding the locks of every uid
func (m *manager) locked(ctx context.Context, uids []string, fn func(tx repository.FarmTx) error) error {
	unlock := m.locks.Lock(uids...)
	defer unlock()
	return m.withTx(ctx, fn)
}

// lockUser reads uid inside tx, mapping an unknown uid to notFound
func lockUser(ctx context.Context, tx repository.FarmTx, uid string, notFound error) (*domain.User, error) {
	u, err := tx.GetUserForUpdate(ctx, uid)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %s", notFound, uid)
	}
	return u, err
}

// readUser is the unlocked registration check used by read-only operations
func (m *manager) readUser(ctx context.Context, uid string) (*domain.User, error) {
	u, err := m.repo.GetUser(ctx, uid)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotRegistered, uid)
	}
	return u, err
}

func (m *manager) level(u domain.User) int {
	return u.Level(m.catalog.Economy().LevelExperience)
}

// publish emits a farm event after commit. Delivery problems never undo the operation.
func (m *manager) publish(ctx context.Context, eventType event.Type, payload event.FarmActionPayloadV1) {
	if m.bus == nil {
		return
	}
	payload.Timestamp = m.now().Unix()
	if err := m.bus.Publish(ctx, event.NewFarmEvent(eventType, payload)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", eventType, "error", err)
	}
}

func checkQuantity(count int, allowZero bool) error {
	if count < 0 || count > MaxQuantity || (count == 0 && !allowZero) {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, count)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrUserNotFound)
}
