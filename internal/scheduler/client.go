// Package scheduler enqueues and processes background tasks over asynq.
package scheduler

import (
	"context"
	"fmt"

	"storefront_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	client *asynq.Client
	queue  string
}

// ConfirmationScheduler enqueues order confirmation deliveries. The checkout
// flow depends on this interface, not on asynq.
type ConfirmationScheduler interface {
	EnqueueOrderConfirmation(ctx context.Context, payload OrderConfirmationPayload) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
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

// EnqueueOrderConfirmation queues a confirmation email for delivery with
// retries. The order is already verified; retrying here can never double
// charge anyone.
func (c *Client) EnqueueOrderConfirmation(ctx context.Context, payload OrderConfirmationPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewOrderConfirmationTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(5))
	return err
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
