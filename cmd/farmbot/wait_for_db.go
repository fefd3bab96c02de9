package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/database"
)

var (
	waitRetries  int
	waitInterval time.Duration
)

var waitForDBCmd = &cobra.Command{
	Use:   "wait-for-db",
	Short: "Wait for the database to accept connections (with retries)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadDatabase()
		out := cmd.OutOrStdout()

		var lastErr error
		for i := 0; i < waitRetries; i++ {
			if lastErr = pingDB(cmd.Context(), cfg); lastErr == nil {
				fmt.Fprintln(out, "Database is ready")
				return nil
			}
			fmt.Fprintf(out, "Database not ready (%d/%d): %v\n", i+1, waitRetries, lastErr)

			select {
			case <-time.After(waitInterval):
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
		}
		return fmt.Errorf("database failed to become ready after %d attempts: %w", waitRetries, lastErr)
	},
}

func pingDB(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 1, time.Minute, time.Minute)
	if err != nil {
		return err
	}
	defer pool.Close()
	return pool.Ping(ctx)
}

func init() {
	waitForDBCmd.Flags().IntVar(&waitRetries, "retries", 30, "maximum connection attempts")
	waitForDBCmd.Flags().DurationVar(&waitInterval, "interval", 2*time.Second, "delay between attempts")
}
