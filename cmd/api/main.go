package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitconnect-backend/internal/adapters"
	"fitconnect-backend/internal/adapters/storage"
	"fitconnect-backend/internal/agents"
	"fitconnect-backend/internal/auth"
	"fitconnect-backend/internal/email"
	"fitconnect-backend/internal/events"
	apphttp "fitconnect-backend/internal/http"
	"fitconnect-backend/internal/http/router"
	"fitconnect-backend/internal/matching"
	"fitconnect-backend/internal/notification"
	"fitconnect-backend/internal/professionals"
	"fitconnect-backend/internal/requests"
	"fitconnect-backend/internal/scheduler"
	"fitconnect-backend/migrations"
	"fitconnect-backend/platform/config"
	"fitconnect-backend/platform/db"
	"fitconnect-backend/platform/logger"
	"fitconnect-backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting api", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS, ".")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()
	sender := email.NewSender(cfg)

	// Object storage for professional credential documents. nil when MinIO
	// is not configured; document endpoints then reject uploads.
	objectStorage, err := storage.NewMinIOStorage(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize object storage", "error", err)
		panic("failed to initialize object storage: " + err.Error())
	}
	if objectStorage.Enabled() {
		log.Info("object storage initialized", "bucket", cfg.GetMinioBucketProfessionalDocuments())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; document uploads disabled")
	}

	// LLM capability adapters. Both degrade to unavailable without an API key.
	analyzer, err := agents.NewProfileAnalyzer(cfg)
	if err != nil {
		log.Error("failed to initialize profile analyzer", "error", err)
		panic("failed to initialize profile analyzer: " + err.Error())
	}
	ranker, err := agents.NewProfessionalMatcher(cfg)
	if err != nil {
		log.Error("failed to initialize professional matcher", "error", err)
		panic("failed to initialize professional matcher: " + err.Error())
	}
	if !analyzer.Available() {
		log.Warn("OPENAI_API_KEY not configured; screening and matching run degraded")
	}

	// Task queue client for asynchronous screening runs.
	schedClient, closeScheduler := initScreeningScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
		schedClient.SubscribeRegistrations(eventBus, log)
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing).
	notification.NewSubscriber(sender, log).Register(eventBus)

	professionalsModule := professionals.NewModule(pool, professionals.Deps{
		Summarizer: analyzer,
		Extractor:  analyzer,
		Storage:    objectStorage,
		Enqueuer:   schedClient,
	}, eventBus, val, log)

	profileCreator := adapters.NewProfileCreatorAdapter(professionalsModule.Service())
	authModule := auth.NewModule(pool, profileCreator, cfg, eventBus, val, log)

	matchingService := matching.NewService(professionalsModule.Service(), ranker, log)

	requestsModule := requests.NewModule(pool, requests.Deps{
		Matcher:       adapters.NewMatchFinderAdapter(matchingService),
		Professionals: adapters.NewProfessionalDirectoryAdapter(professionalsModule.Service()),
		Users:         adapters.NewUserDirectoryAdapter(authModule.Repository()),
	}, eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			professionalsModule,
			requestsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initScreeningScheduler builds the asynq client when Redis is configured.
// Without it, screening only runs via the synchronous admin endpoint.
func initScreeningScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; asynchronous screening disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
