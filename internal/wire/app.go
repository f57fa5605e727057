package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/alanyang/hemotask/internal/adapter/memory"
	pgdb "github.com/alanyang/hemotask/internal/adapter/postgres"
	pgaudit "github.com/alanyang/hemotask/internal/adapter/postgres/audit"
	pgeventbus "github.com/alanyang/hemotask/internal/adapter/postgres/eventbus"
	pglocker "github.com/alanyang/hemotask/internal/adapter/postgres/locker"
	pgtask "github.com/alanyang/hemotask/internal/adapter/postgres/task"
	pgtech "github.com/alanyang/hemotask/internal/adapter/postgres/technician"
	promadapter "github.com/alanyang/hemotask/internal/adapter/prometheus"
	redisadapter "github.com/alanyang/hemotask/internal/adapter/redis"
	portcache "github.com/alanyang/hemotask/internal/port/cache"

	auditsvc "github.com/alanyang/hemotask/internal/service/audit"
	selectorsvc "github.com/alanyang/hemotask/internal/service/selector"
	tasksvc "github.com/alanyang/hemotask/internal/service/task"
	techsvc "github.com/alanyang/hemotask/internal/service/technician"

	"github.com/alanyang/hemotask/internal/transport"
	mcptransport "github.com/alanyang/hemotask/internal/transport/mcp"
)

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	Pool      *pgxpool.Pool
	Redis     *goredis.Client
	Server    *http.Server
	TaskSvc   *tasksvc.Service
	MCPServer *mcptransport.Server
	Sweeper   *Sweeper
}

// Close releases the pool and the Redis client.
func (a *App) Close() {
	if a.Redis != nil {
		a.Redis.Close() //nolint:errcheck
	}
	a.Pool.Close()
}

// Build is the composition root: the only place concrete types are wired to their
// interface dependencies.
func Build(ctx context.Context, cfg Config) (*App, error) {
	// ── Database ─────────────────────────────────────────────────────────────
	pool, err := pgdb.Connect(ctx, cfg.DatabaseURL, pgdb.Options{MaxConns: cfg.DBMaxConns, Migrate: true})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// ── Cache ────────────────────────────────────────────────────────────────
	var (
		cache       portcache.Cache
		redisClient *goredis.Client
	)
	if cfg.RedisURL != "" {
		redisClient, err = redisadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		cache = redisadapter.NewCache(redisClient)
	} else {
		slog.Warn("REDIS_URL not set, idempotency cache is process-local")
		mem := memory.NewCache()
		go purgeLoop(ctx, mem, cfg.IdempotencyTTL)
		cache = mem
	}

	// ── Metrics ──────────────────────────────────────────────────────────────
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := promadapter.NewRecorder(registry)

	// ── Adapters ─────────────────────────────────────────────────────────────
	techRepo := pgtech.New(pool)
	taskRepo := pgtask.New(pool)
	auditRepo := pgaudit.New(pool)
	eventBus := pgeventbus.New(pool)
	locker := pglocker.New(pool)

	// ── Services ─────────────────────────────────────────────────────────────
	selector := selectorsvc.NewService(recorder)
	techSvcInstance := techsvc.NewService(techRepo, auditRepo, eventBus)
	auditSvcInstance := auditsvc.NewService(auditRepo)

	reg := mcptransport.NewSessionRegistry()

	taskSvcInstance := tasksvc.NewService(
		taskRepo,
		techRepo,
		auditRepo,
		eventBus,
		selector,
		reg, // implements port/notifier.TechnicianNotifier
		locker,
		cfg.MaxActiveTasks,
	)

	mcpServer := mcptransport.New(reg, techSvcInstance, taskSvcInstance, selector)

	// ── Transport ─────────────────────────────────────────────────────────────
	router := transport.NewRouter(
		ctx,
		techSvcInstance,
		taskSvcInstance,
		auditSvcInstance,
		selector,
		mcpServer,
		eventBus,
		transport.RouterConfig{
			Cache:          cache,
			IdempotencyTTL: cfg.IdempotencyTTL,
			Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		},
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// ── Dispatch sweeper ─────────────────────────────────────────────────────
	sweeper := NewSweeper(taskSvcInstance.SweepPending, cfg.SweepInterval, cfg.SweepDebounce)
	if err := sweeper.Start(ctx, eventBus); err != nil {
		slog.Error("sweeper disabled", "error", err)
	}

	slog.Info("application wired", "port", cfg.Port, "max_active_tasks", cfg.MaxActiveTasks)

	return &App{
		Pool:      pool,
		Redis:     redisClient,
		Server:    server,
		TaskSvc:   taskSvcInstance,
		MCPServer: mcpServer,
		Sweeper:   sweeper,
	}, nil
}

// purgeLoop evicts expired entries from the in-process cache once per ttl.
func purgeLoop(ctx context.Context, c *memory.Cache, ttl time.Duration) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Purge(); n > 0 {
				slog.Debug("purged idempotency entries", "count", n)
			}
		}
	}
}
