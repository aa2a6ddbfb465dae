// Package queue carries conversion jobs between the HTTP server and workers
// over asynq.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskTypeConvert = "deck:convert"
	QueueConvert    = "convert"

	// matches the job store TTL
	taskRetention = 24 * time.Hour
)

type convertPayload struct {
	JobID string `json:"jobId"`
}

// NewConvertTask builds the task that runs a created job
func NewConvertTask(jobID string) (*asynq.Task, error) {
	data, err := json.Marshal(convertPayload{JobID: jobID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeConvert, data), nil
}

func parseConvertTask(t *asynq.Task) (string, error) {
	var p convertPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return "", fmt.Errorf("failed to unmarshal task payload: %w", err)
	}
	if p.JobID == "" {
		return "", fmt.Errorf("task payload has no job id")
	}
	return p.JobID, nil
}
