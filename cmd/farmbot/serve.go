package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/osse101/FarmBot_Go/internal/bootstrap"
	"github.com/osse101/FarmBot_Go/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API until SIGINT or SIGTERM",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		logFile, err := bootstrap.SetupLogger(cfg)
		if err != nil {
			return fmt.Errorf("setting up logger: %w", err)
		}
		defer logFile.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, err := bootstrap.NewApp(ctx, cfg)
		if err != nil {
			slog.Error("Failed to initialize application", "error", err)
			return err
		}

		serveErr := make(chan error, 1)
		go func() {
			serveErr <- app.Server.Start()
		}()

		select {
		case err = <-serveErr:
		case <-ctx.Done():
			slog.Info("Shutdown signal received")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		app.Shutdown(shutdownCtx)

		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}
