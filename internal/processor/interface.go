package processor

import (
	"context"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

// Processor runs a job through extraction, planning, per-slide synthesis and
// rendering, and assembly
type Processor interface {
	Process(ctx context.Context, job *model.Job) (*model.Result, error)
}

// Observer is told about every status transition of a job
type Observer interface {
	OnStatus(ctx context.Context, job *model.Job, status model.Status)
}
