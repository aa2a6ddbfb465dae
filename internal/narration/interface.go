package narration

import (
	"context"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

// Planner produces one narration entry per slide, in slide order
type Planner interface {
	Plan(ctx context.Context, slides []model.Slide) ([]model.NarrationEntry, error)
}
