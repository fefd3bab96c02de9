package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// Store is an in-process implementation of repository.Farm.
// It admits one open transaction at a time; unlocked reads wait for it to finish.
type Store struct {
	sem chan struct{}

	users     map[string]domain.User
	plots     map[string][]domain.Plot
	inventory map[string]map[string]int
	signins   map[string]map[string]domain.SignInRecord
	cooldowns map[cooldownKey]time.Time
}

type cooldownKey struct {
	uid    string
	action string
}

var _ repository.Farm = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		sem:       make(chan struct{}, 1),
		users:     make(map[string]domain.User),
		plots:     make(map[string][]domain.Plot),
		inventory: make(map[string]map[string]int),
		signins:   make(map[string]map[string]domain.SignInRecord),
		cooldowns: make(map[cooldownKey]time.Time),
	}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, ctx.Err())
	}
}

func (s *Store) release() {
	<-s.sem
}

// GetUser returns a registered user
func (s *Store) GetUser(ctx context.Context, uid string) (*domain.User, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()
	return s.getUser(uid)
}

// GetPlots returns a user's plots ordered by index
func (s *Store) GetPlots(ctx context.Context, uid string) ([]domain.Plot, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()
	return s.getPlots(uid), nil
}

// GetInventory returns a user's positive inventory counts
func (s *Store) GetInventory(ctx context.Context, uid string) (domain.Inventory, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()
	return s.getInventory(uid), nil
}

// Ping always succeeds
func (s *Store) Ping(context.Context) error { return nil }

// BeginTx waits until no other transaction is open
func (s *Store) BeginTx(ctx context.Context) (repository.FarmTx, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	return &tx{store: s}, nil
}

func (s *Store) getUser(uid string) (*domain.User, error) {
	u, ok := s.users[uid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, uid)
	}
	return &u, nil
}

func (s *Store) getPlots(uid string) []domain.Plot {
	stored := s.plots[uid]
	out := make([]domain.Plot, len(stored))
	for i, p := range stored {
		out[i] = clonePlot(p)
	}
	return out
}

func (s *Store) getInventory(uid string) domain.Inventory {
	inv := make(domain.Inventory, len(s.inventory[uid]))
	for k, v := range s.inventory[uid] {
		if v > 0 {
			inv[k] = v
		}
	}
	return inv
}

func clonePlot(p domain.Plot) domain.Plot {
	if p.PlantedAt != nil {
		t := *p.PlantedAt
		p.PlantedAt = &t
	}
	return p
}

func sortPlots(plots []domain.Plot) {
	sort.Slice(plots, func(i, j int) bool { return plots[i].Index < plots[j].Index })
}

func dateKey(date time.Time) string {
	return date.UTC().Format(domain.DateLayout)
}
