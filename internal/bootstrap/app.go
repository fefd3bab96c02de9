package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FarmBot_Go/internal/catalog"
	"github.com/osse101/FarmBot_Go/internal/config"
	"github.com/osse101/FarmBot_Go/internal/confirm"
	"github.com/osse101/FarmBot_Go/internal/event"
	"github.com/osse101/FarmBot_Go/internal/eventlog"
	"github.com/osse101/FarmBot_Go/internal/farm"
	"github.com/osse101/FarmBot_Go/internal/scheduler"
	"github.com/osse101/FarmBot_Go/internal/server"
	"github.com/osse101/FarmBot_Go/internal/sse"
	"github.com/osse101/FarmBot_Go/internal/worker"
)

// App is the fully wired farm service
type App struct {
	Config    *config.Config
	Catalog   *catalog.Catalog
	Storage   *Storage
	Publisher *event.ResilientPublisher
	Journal   eventlog.Service
	Events    *sse.Hub
	Manager   farm.Manager
	Server    *server.Server
	Workers   *worker.Pool
	Scheduler *scheduler.Scheduler
}

// NewApp builds every component from cfg. Background jobs start immediately;
// the HTTP server starts with Server.Start.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	c, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	store, err := InitializeStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	_, publisher, err := InitializeEventSystem(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	journal := eventlog.NewService(store.EventLog)
	hub := sse.NewHub()
	hub.Start()
	if err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:        publisher,
		EventLogService: journal,
		SSEHub:          hub,
	}); err != nil {
		hub.Stop()
		_ = publisher.Shutdown(ctx)
		store.Close()
		return nil, err
	}

	confirms := confirm.NewStore(cfg.ConfirmCapacity, cfg.ConfirmTimeout, nil)
	mgr := farm.NewManager(store.Farm, c, confirms, NewCooldowns(cfg, c), publisher, farm.Config{
		Location: cfg.Location(),
	})

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Activity:       journal,
		Events:         hub,
	}, store.Farm, c, mgr)

	workers, sched := startJobs(cfg, journal)

	return &App{
		Config:    cfg,
		Catalog:   c,
		Storage:   store,
		Publisher: publisher,
		Journal:   journal,
		Events:    hub,
		Manager:   mgr,
		Server:    srv,
		Workers:   workers,
		Scheduler: sched,
	}, nil
}

// startJobs runs periodic maintenance on a small worker pool
func startJobs(cfg *config.Config, journal eventlog.Service) (*worker.Pool, *scheduler.Scheduler) {
	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = config.DefaultWorkerCount
	}
	pool := worker.NewPool(workerCount, DefaultWorkerQueueSize, DefaultJobTimeout)
	pool.Start()
	sched := scheduler.New(pool)

	if cfg.JournalRetention <= 0 {
		slog.Info(LogMsgJournalCleanupOff)
		return pool, sched
	}

	interval := cfg.JournalCleanupInterval
	if interval <= 0 {
		interval = config.DefaultJournalCleanupInterval
	}
	sched.Schedule(JobNameJournalCleanup, interval, eventlog.NewCleanupJob(journal, cfg.JournalRetention))
	slog.Info(LogMsgJobScheduled,
		"job", JobNameJournalCleanup,
		"interval", interval,
		"retention", cfg.JournalRetention)

	return pool, sched
}

// Shutdown stops the app in dependency order
func (a *App) Shutdown(ctx context.Context) {
	GracefulShutdown(ctx, ShutdownComponents{
		SSEHub:             a.Events,
		Server:             a.Server,
		Scheduler:          a.Scheduler,
		Workers:            a.Workers,
		ResilientPublisher: a.Publisher,
		Storage:            a.Storage,
	})
}
