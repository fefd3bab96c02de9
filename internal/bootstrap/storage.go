package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/cooldown"
	"github.com/osse101/FarmBot_Go/internal/database"
	"github.com/osse101/FarmBot_Go/internal/database/memory"
	"github.com/osse101/FarmBot_Go/internal/database/postgres"
	"github.com/osse101/FarmBot_Go/internal/eventlog"
	"github.com/osse101/FarmBot_Go/internal/repository"
)

// Storage holds the repository implementations chosen by STORAGE_BACKEND
type Storage struct {
	Farm     repository.Farm
	EventLog eventlog.Repository

	// DB is nil for the memory backend
	DB *pgxpool.Pool
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

// InitializeStorage opens the configured backend. The postgres backend
// connects, applies pending migrations and shares the pool across repositories.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		slog.Warn(LogMsgMemoryStorage)
		return &Storage{
			Farm:     memory.NewStore(),
			EventLog: memory.NewEventLog(),
		}, nil

	case config.StorageBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(),
			cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgStorageInitialized, "backend", cfg.StorageBackend, "db_name", cfg.DBName)
		return &Storage{
			Farm:     postgres.NewFarmRepository(pool),
			EventLog: postgres.NewEventLogRepository(pool),
			DB:       pool,
		}, nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageBackend, cfg.StorageBackend)
}

// StealCooldown is STEAL_COOLDOWN when set, otherwise the catalog's theft cooldown
func StealCooldown(cfg *config.Config, c *catalog.Catalog) time.Duration {
	if cfg.StealCooldown != nil {
		return *cfg.StealCooldown
	}
	return time.Duration(c.Theft().CooldownSeconds) * time.Second
}

// NewCooldowns builds the cooldown service; timestamps live in the farm store
func NewCooldowns(cfg *config.Config, c *catalog.Catalog) cooldown.Service {
	return cooldown.NewService(cooldown.Config{
		Cooldowns: map[string]time.Duration{cooldown.ActionSteal: StealCooldown(cfg, c)},
	})
}

// LoadCatalog reads CATALOG_PATH, or the embedded catalog when unset
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	var (
		c   *catalog.Catalog
		err error
	)
	if cfg.CatalogPath == "" {
		c, err = catalog.Default()
	} else {
		c, err = catalog.Load(cfg.CatalogPath)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	slog.Info(LogMsgCatalogLoaded,
		"path", cfg.CatalogPath,
		"version", c.Version(),
		"digest", c.Digest(),
		"crops", len(c.Crops()))
	return c, nil
}
