package converter

import (
	"context"

	"github.com/nguyentantai21042004/slidecast/internal/jobstore"
)

// Input describes a deck to convert
type Input struct {
	// ID names the job when it is a UUID not already in use, such as the
	// upload name; otherwise a fresh one is generated
	ID     string
	Source string
	Voice  string
	// Keep copies the source into the job root instead of moving it
	Keep bool
}

// Service owns the lifecycle of conversion jobs
type Service interface {
	// Convert creates a job and runs it to completion
	Convert(ctx context.Context, in Input) (*jobstore.Record, error)
	// Submit creates a job and hands it to the dispatcher
	Submit(ctx context.Context, in Input) (*jobstore.Record, error)
	// Run executes a job previously created by Submit
	Run(ctx context.Context, jobID string) (*jobstore.Record, error)
	Get(ctx context.Context, jobID string) (*jobstore.Record, error)
}

// Dispatcher schedules a created job for execution elsewhere
type Dispatcher interface {
	Dispatch(ctx context.Context, jobID string) error
}
