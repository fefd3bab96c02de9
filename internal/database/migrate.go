package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/FarmBot_Go/internal/database/migrations"
)

// goose keeps its FS, dialect and logger in package globals
var gooseMu sync.Mutex

type gooseLogger struct {
	log *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}

func withGoose(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{log: slog.Default().With("component", "goose")})
	if err := goose.SetDialect(GooseDialect); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetDialect, err)
	}
	return fn()
}

// Migrate applies every pending embedded migration
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	return withGoose(func() error {
		if err := goose.UpContext(ctx, db, MigrationsDir); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToApplyMigrations, err)
		}
		version, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToGetSchemaVersion, err)
		}
		slog.Default().Info(LogMsgMigrationsApplied, "version", version)
		return nil
	})
}

// MigrationStatus logs the applied/pending state of every migration and
// returns the current schema version
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	var version int64
	err := withGoose(func() error {
		if err := goose.StatusContext(ctx, db, MigrationsDir); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToReadMigrations, err)
		}
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToGetSchemaVersion, err)
		}
		version = v
		return nil
	})
	return version, err
}
