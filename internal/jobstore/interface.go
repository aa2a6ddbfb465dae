package jobstore

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

var ErrNotFound = errors.New("job not found")

// ErrorInfo is the client-facing description of a failed job
type ErrorInfo struct {
	Message    string `json:"message"`
	Kind       string `json:"kind,omitempty"`
	Stage      string `json:"stage,omitempty"`
	SlideIndex *int   `json:"slideIndex,omitempty"`
	Cause      string `json:"cause,omitempty"`
}

// Record is the persisted view of a job
type Record struct {
	ID        string        `json:"id"`
	Deck      string        `json:"deck"`
	Voice     string        `json:"voice"`
	Status    model.Status  `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Result    *model.Result `json:"result,omitempty"`
	Error     *ErrorInfo    `json:"error,omitempty"`
}

// Store keeps job records for status queries
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	SetStatus(ctx context.Context, id string, status model.Status) error
}
