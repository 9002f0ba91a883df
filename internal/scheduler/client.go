// Package scheduler provides the asynq task queue: the client enqueues
// screening runs from the API process and the worker executes them.
package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"

	"fitconnect-backend/internal/events"
	"fitconnect-backend/platform/apperr"
	"fitconnect-backend/platform/config"
	"fitconnect-backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueScreening schedules an asynchronous screening run. Implements the
// professionals context's ScreeningEnqueuer port. Without a configured
// queue the caller gets an error rather than a task that will never run.
func (c *Client) EnqueueScreening(ctx context.Context, professionalID uuid.UUID) error {
	if c == nil || c.client == nil {
		return apperr.Unavailable("screening queue is not configured")
	}

	task, err := NewProfessionalScreeningTask(ProfessionalScreeningPayload{
		ProfessionalID: professionalID.String(),
	})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// SubscribeRegistrations enqueues a screening run whenever a professional
// completes registration.
func (c *Client) SubscribeRegistrations(bus events.Bus, log *logger.Logger) {
	bus.Subscribe(events.ProfessionalRegistered{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.ProfessionalRegistered)
		if !ok {
			return fmt.Errorf("unexpected event type %T", event)
		}
		id, err := uuid.Parse(e.ProfessionalID)
		if err != nil {
			return fmt.Errorf("parse professional id: %w", err)
		}
		if err := c.EnqueueScreening(ctx, id); err != nil {
			log.Error("enqueue screening", "professional_id", e.ProfessionalID, "error", err.Error())
			return err
		}
		return nil
	}))
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
