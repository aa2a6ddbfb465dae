package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/nguyentantai21042004/slidecast/internal/jobstore"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

// Runner executes a previously created job
type Runner interface {
	Run(ctx context.Context, jobID string) (*jobstore.Record, error)
}

// Worker processes conversion tasks
type Worker struct {
	runner Runner
	logger logger.Logger
}

func NewWorker(runner Runner, log logger.Logger) *Worker {
	return &Worker{runner: runner, logger: log}
}

// ProcessTask handles one deck:convert task
func (w *Worker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	jobID, err := parseConvertTask(t)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	ctx = logger.WithJobID(ctx, jobID)
	w.logger.Info(ctx, "Starting queued job %s", jobID)

	rec, err := w.runner.Run(ctx, jobID)
	if err != nil {
		return fmt.Errorf("job %s: %v: %w", jobID, err, asynq.SkipRetry)
	}
	w.logger.Info(ctx, "Queued job %s finished: %s", jobID, rec.Status)
	return nil
}

// NewServer builds the asynq server that consumes the convert queue
func NewServer(opt asynq.RedisClientOpt, concurrency int, log logger.Logger) *asynq.Server {
	if concurrency < 1 {
		concurrency = 1
	}
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueueConvert: 1,
		},
		Logger: newAsynqLogger(log),
	})
}

// NewMux routes convert tasks to w
func NewMux(w *Worker) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeConvert, w.ProcessTask)
	return mux
}
