package scheduler

import (
	"context"
	"fmt"

	professionals "fitconnect-backend/internal/professionals/service"
	"fitconnect-backend/platform/config"
	"fitconnect-backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	screening *professionals.Service
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, screening *professionals.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		screening: screening,
		log:       log,
	}

	mux.HandleFunc(TaskProfessionalScreening, w.handleProfessionalScreening)

	return w, nil
}

func (w *Worker) handleProfessionalScreening(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseProfessionalScreeningPayload(task)
	if err != nil {
		return err
	}

	professionalID, err := uuid.Parse(payload.ProfessionalID)
	if err != nil {
		return err
	}

	w.log.Info("processing screening task", "professional_id", payload.ProfessionalID)
	return w.screening.Screen(ctx, professionalID)
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
