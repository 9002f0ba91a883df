package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitconnect-backend/internal/adapters/storage"
	"fitconnect-backend/internal/agents"
	"fitconnect-backend/internal/events"
	professionalsrepo "fitconnect-backend/internal/professionals/repository"
	professionalssvc "fitconnect-backend/internal/professionals/service"
	"fitconnect-backend/internal/scheduler"
	"fitconnect-backend/platform/config"
	"fitconnect-backend/platform/db"
	"fitconnect-backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)

	analyzer, err := agents.NewProfileAnalyzer(cfg)
	if err != nil {
		log.Error("failed to initialize profile analyzer", "error", err)
		panic("failed to initialize profile analyzer: " + err.Error())
	}
	if !analyzer.Available() {
		log.Warn("OPENAI_API_KEY not configured; screening runs degraded")
	}

	objectStorage, err := storage.NewMinIOStorage(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize object storage", "error", err)
		panic("failed to initialize object storage: " + err.Error())
	}

	repo := professionalsrepo.New(pool)
	screening := professionalssvc.New(repo, analyzer, analyzer, objectStorage, eventBus, log)

	worker, err := scheduler.NewWorker(cfg, screening, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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
