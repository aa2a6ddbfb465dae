package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

// Client enqueues conversion tasks. It satisfies converter.Dispatcher.
type Client struct {
	client *asynq.Client
	logger logger.Logger
}

func NewClient(opt asynq.RedisClientOpt, log logger.Logger) *Client {
	return &Client{client: asynq.NewClient(opt), logger: log}
}

func (c *Client) Dispatch(ctx context.Context, jobID string) error {
	task, err := NewConvertTask(jobID)
	if err != nil {
		return err
	}

	info, err := c.client.Enqueue(task,
		asynq.Queue(QueueConvert),
		asynq.MaxRetry(0),
		asynq.Retention(taskRetention),
	)
	if err != nil {
		return fmt.Errorf("enqueue task: %w", err)
	}
	c.logger.Debug(ctx, "Enqueued task %s for job %s", info.ID, jobID)
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
