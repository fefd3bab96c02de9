package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/confirm"
	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// These tests drive the farm engine against Postgres, where row locks rather
// than a single-writer store keep concurrent operations consistent.

const engineCatalog = `
version: 1
economy:
  initial_currency: 500
  initial_plots: 3
  level_experience: 100
theft:
  amount: 3
  cap_percent: 100
crops:
  - {id: carrot, name: Carrot, growth_seconds: 3600, stage_count: 4, yield_amount: 10, buy_price: 50, sell_price: 8, experience: 5}
upgrades:
  - {level: 1}
`

type engineClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *engineClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *engineClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newEngine(t *testing.T, stealCooldown time.Duration) (farm.Manager, *FarmRepository, *engineClock) {
	t.Helper()
	repo := requireDB(t)
	clock := &engineClock{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	var cooldowns cooldown.Service
	if stealCooldown > 0 {
		cooldowns = cooldown.NewService(cooldown.Config{
			Cooldowns: map[string]time.Duration{cooldown.ActionSteal: stealCooldown},
			Now:       clock.Now,
		})
	}
	c := catalog.MustParse([]byte(engineCatalog), catalog.FormatYAML)
	m := farm.NewManager(repo, c, confirm.NewStore(16, time.Minute, clock.Now), cooldowns, nil, farm.Config{Now: clock.Now})
	return m, repo, clock
}

func register(t *testing.T, m farm.Manager, uid string) {
	t.Helper()
	res, err := m.Register(context.Background(), uid, uid)
	require.NoError(t, err)
	require.True(t, res.OK(), "register %s: %s", uid, res.Outcome)
}

func plantCarrots(t *testing.T, m farm.Manager, uid string, n int) {
	t.Helper()
	ctx := context.Background()
	buy, err := m.BuySeed(ctx, uid, "carrot", n)
	require.NoError(t, err)
	require.True(t, buy.OK())
	sow, err := m.Sow(ctx, uid, "carrot", n)
	require.NoError(t, err)
	require.True(t, sow.OK())
}

func itemCount(t *testing.T, repo *FarmRepository, uid, itemID string) int {
	t.Helper()
	inv, err := repo.GetInventory(context.Background(), uid)
	require.NoError(t, err)
	return inv.Count(itemID)
}

func TestEngine_ConcurrentMixedOperations(t *testing.T) {
	m, repo, clock := newEngine(t, 0)
	ctx := context.Background()
	uid := nextUID("mixed")
	register(t, m, uid)

	// 30 carrots, 3 spare seeds and 200 coins before the race
	plantCarrots(t, m, uid, 3)
	_, err := m.BuySeed(ctx, uid, "carrot", 3)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	harvest, err := m.Harvest(ctx, uid)
	require.NoError(t, err)
	require.True(t, harvest.OK())

	var wg sync.WaitGroup
	run := func(op func() (bool, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := op()
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	for i := 0; i < 4; i++ {
		run(func() (bool, error) {
			res, err := m.BuySeed(ctx, uid, "carrot", 1)
			return err == nil && res.OK(), err
		})
	}
	for i := 0; i < 10; i++ {
		run(func() (bool, error) {
			res, err := m.SellCrop(ctx, uid, "carrot", 1)
			return err == nil && res.OK(), err
		})
	}
	for i := 0; i < 3; i++ {
		run(func() (bool, error) {
			res, err := m.Sow(ctx, uid, "carrot", 1)
			return err == nil && res.OK(), err
		})
	}
	wg.Wait()

	u, err := repo.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 200-4*50+10*8, u.Currency)
	assert.Equal(t, 20, itemCount(t, repo, uid, domain.CropItemID("carrot")))
	assert.Equal(t, 4, itemCount(t, repo, uid, domain.SeedItemID("carrot")))

	plots, err := repo.GetPlots(ctx, uid)
	require.NoError(t, err)
	for _, p := range plots {
		assert.Equal(t, domain.PlotStatePlanted, p.State)
	}
}

func TestEngine_MutualSteal_NoDeadlock(t *testing.T) {
	m, repo, clock := newEngine(t, 0)
	ctx := context.Background()
	a, b := nextUID("mutual"), nextUID("mutual")
	for _, uid := range []string{a, b} {
		register(t, m, uid)
		plantCarrots(t, m, uid, 1)
	}
	clock.Advance(time.Hour)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			for _, pair := range [][2]string{{a, b}, {b, a}} {
				wg.Add(1)
				go func(thief, victim string) {
					defer wg.Done()
					_, err := m.Steal(ctx, thief, victim)
					assert.NoError(t, err)
				}(pair[0], pair[1])
			}
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("mutual steals did not finish")
	}

	assert.Equal(t, 10, itemCount(t, repo, a, domain.CropItemID("carrot")))
	assert.Equal(t, 10, itemCount(t, repo, b, domain.CropItemID("carrot")))
}

func TestEngine_StealCooldownCommitsWithRaid(t *testing.T) {
	m, repo, clock := newEngine(t, 10*time.Minute)
	ctx := context.Background()
	victim, thief := nextUID("victim"), nextUID("thief")
	register(t, m, victim)
	register(t, m, thief)
	plantCarrots(t, m, victim, 1)
	clock.Advance(time.Hour)

	res, err := m.Steal(ctx, thief, victim)
	require.NoError(t, err)
	require.True(t, res.OK())
	stolenAt := clock.Now()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	last, err := tx.GetLastUsed(ctx, thief, cooldown.StealAction(victim))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))
	require.NotNil(t, last)
	assert.True(t, stolenAt.Equal(*last))
	assert.Equal(t, 3, itemCount(t, repo, thief, domain.CropItemID("carrot")))

	clock.Advance(time.Minute)
	res, err = m.Steal(ctx, thief, victim)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeOnCooldown, res.Outcome)
	assert.Equal(t, int64(540), res.RetryAfterSeconds)
	assert.Equal(t, 3, itemCount(t, repo, thief, domain.CropItemID("carrot")))
}

func TestFarmRepository_Cooldown(t *testing.T) {
	repo := requireDB(t)
	ctx := context.Background()
	uid := nextUID("cooldown")
	createUser(t, repo, uid, 0)
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SetLastUsed(ctx, uid, "steal:x", at))
	require.NoError(t, tx.Rollback(ctx))

	tx, err = repo.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	last, err := tx.GetLastUsed(ctx, uid, "steal:x")
	require.NoError(t, err)
	assert.Nil(t, last, "rolled back timestamps are not kept")

	require.NoError(t, tx.SetLastUsed(ctx, uid, "steal:x", at))
	require.NoError(t, tx.SetLastUsed(ctx, uid, "steal:x", at.Add(time.Hour)))
	require.NoError(t, tx.Commit(ctx))

	tx2, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx2)
	last, err = tx2.GetLastUsed(ctx, uid, "steal:x")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, at.Add(time.Hour).Equal(*last))
}
