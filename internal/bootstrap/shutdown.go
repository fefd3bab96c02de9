package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/scheduler"
	"github.com/osse101/FarmBot_Go/internal/server"
	"github.com/osse101/FarmBot_Go/internal/sse"
	"github.com/osse101/FarmBot_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	SSEHub             *sse.Hub
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	Workers            *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Storage            *Storage
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down components in order:
// 1. Live event streams (open streams would hold the server open)
// 2. HTTP server (stop accepting new requests, finish in-flight ones)
// 3. Background jobs
// 4. Event publisher (flush pending retries)
// 5. Storage
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.SSEHub != nil {
		slog.Info(LogMsgShuttingDownSSE)
		components.SSEHub.Stop()
	}

	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownJobs)
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.Workers != nil {
		components.Workers.Stop()
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Storage != nil {
		components.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
