package scheduler

import (
	"context"
	"errors"
	"fmt"

	"moving_quote_backend/platform/config"
	"moving_quote_backend/platform/redisconn"

	"github.com/hibiken/asynq"
)

const offerMaxRetry = 5

// OfferNotifier hands a submitted offer over for follow-up.
type OfferNotifier interface {
	NotifyOfferSubmitted(ctx context.Context, payload OfferSubmittedPayload) error
}

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
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

// NotifyOfferSubmitted enqueues the confirmation e-mail. A duplicate of an
// already queued task is not an error.
func (c *Client) NotifyOfferSubmitted(ctx context.Context, payload OfferSubmittedPayload) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewOfferSubmittedTask(payload)
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(offerMaxRetry),
		asynq.TaskID(offerTaskID(payload)),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("enqueue offer task: %w", err)
	}
	return nil
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redisconn.Options(redisURL, tlsInsecure)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
