package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-hydration-scheduler/internal/config"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/handler"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/health"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/audio"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/backend"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/firerecorder"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/hostwindow"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/notifier"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/infra/repository"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/observability/middleware"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/cooldown"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/dispatch"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/goal"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/matcher"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/scheduler"
	"github.com/KasumiMercury/primind-hydration-scheduler/internal/service/snapshot"
)

// Version is set via ldflags at build time
var Version = "dev"

const moduleName = logging.Module("hydration-scheduler")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	schedulerMetrics, err := metrics.NewSchedulerMetrics()
	if err != nil {
		slog.Error("failed to initialize scheduler metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	fireRecorder, err := firerecorder.NewRecorder(ctx, firerecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize fire recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := fireRecorder.Flush(flushCtx); err != nil {
			slog.Warn("failed to flush fire recorder", slog.String("error", err.Error()))
		}
		if err := fireRecorder.Close(); err != nil {
			slog.Warn("failed to close fire recorder", slog.String("error", err.Error()))
		}
	}()

	gateway, cleanup, err := initGateway(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize push gateway", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("push gateway cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	var redisClient *redis.Client
	if cfg.UsesRedis() {
		redisClient, err = connectRedis(ctx, cfg.Redis)
		if err != nil {
			return 1
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()
	}

	var (
		dedupStore  domain.DedupStore
		storePinger health.Pinger
	)
	switch cfg.Dedup.Backend {
	case config.DedupBackendRedis:
		dedupStore = repository.NewRedisDedupStore(redisClient)
	case config.DedupBackendSQLite:
		sqliteStore, err := repository.OpenSQLiteDedupStore(ctx, cfg.Dedup.SQLitePath)
		if err != nil {
			slog.Error("failed to open sqlite dedup store",
				slog.String("path", cfg.Dedup.SQLitePath),
				slog.String("error", err.Error()),
			)
			return 1
		}
		defer func() {
			if err := sqliteStore.Close(); err != nil {
				slog.Warn("failed to close sqlite dedup store", slog.String("error", err.Error()))
			}
		}()
		dedupStore = sqliteStore
		storePinger = sqliteStore
	default:
		slog.Warn("using in-memory dedup store, cool-downs reset on restart")
		dedupStore = repository.NewMemoryDedupStore()
	}

	backendClient := backend.NewClient(cfg.BackendURL, cfg.UserID)
	snapshotSource := snapshot.NewSource(backendClient, cfg.Scheduler.SnapshotTTL)

	notificationPort := notifier.NewPort(
		gateway,
		cfg.UserID,
		domain.ParsePermission(cfg.Notification.Permission),
		domain.ParsePermission(cfg.Notification.PromptResponse),
		cfg.Notification.Vibration,
	)
	player := audio.NewPlayer(gateway, cfg.UserID, audio.ParseSound(cfg.Notification.Sound), cfg.Notification.SoundLength)

	var host domain.HostWindow = hostwindow.NewLogFocuser(cfg.UserID)
	if cfg.Notification.FocusViaRedis && redisClient != nil {
		host = hostwindow.NewRedisFocuser(redisClient, cfg.UserID)
	}

	dispatcher := dispatch.NewDispatcher(notificationPort, player, host, cfg.Notification.Icon, cfg.Notification.Vibration)

	hourlyTrigger, err := goal.NewTrigger(cfg.Scheduler.HourlySchedule)
	if err != nil {
		slog.Error("invalid hourly schedule", slog.String("error", err.Error()))
		return 1
	}

	sched := scheduler.NewScheduler(
		snapshotSource,
		dispatcher,
		cooldown.NewGate(dedupStore),
		matcher.NewMatcher(),
		goal.NewPlanner(cfg.Scheduler.MinIntakePerHour),
		hourlyTrigger,
		fireRecorder,
		schedulerMetrics,
		scheduler.Options{
			TickInterval:      cfg.Scheduler.TickInterval,
			GoalUpdateTimeout: cfg.Scheduler.GoalUpdateTimeout,
			Location:          cfg.Scheduler.Location,
		},
	)

	schedulerHandler := handler.NewSchedulerHandler(sched, notificationPort)
	notificationHandler := handler.NewNotificationHandler(notificationPort)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      moduleName,
		TracerName:  "github.com/KasumiMercury/primind-hydration-scheduler/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin(httpMetrics))

	healthChecker := health.NewChecker(redisClient, storePinger, sched, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())
	healthChecker.Mount(r)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/scheduler/status", schedulerHandler.HandleStatus)
		v1.POST("/scheduler/evaluate", schedulerHandler.HandleEvaluate)
		v1.POST("/notifications/:tag/click", notificationHandler.HandleClick)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	schedCtx, schedCancel := context.WithCancel(logging.WithModule(ctx, moduleName))
	defer schedCancel()

	var schedWG sync.WaitGroup
	schedWG.Go(func() {
		sched.Run(schedCtx)
	})

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("user_id", cfg.UserID),
			slog.String("dedup_backend", cfg.Dedup.Backend),
			slog.Duration("tick_interval", cfg.Scheduler.TickInterval),
			slog.String("hourly_schedule", cfg.Scheduler.HourlySchedule),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			exitCode = 1
		}

	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server exited with error", slog.String("error", err.Error()))
			exitCode = 1
		}
	}

	// Stop ticking and let in-flight goal updates finish.
	schedCancel()
	schedWG.Wait()

	slog.Info("server exited properly")
	return exitCode
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = redisClient.Close()
		return nil, err
	}

	slog.Info("redis connected",
		slog.String("addr", cfg.Addr),
	)

	return redisClient, nil
}
