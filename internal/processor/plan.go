package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

func (p *implProcessor) plan(ctx context.Context, slides []model.Slide) ([]model.NarrationEntry, error) {
	start := time.Now()

	entries, err := p.planner.Plan(ctx, slides)
	if err != nil {
		return nil, model.NewError(model.KindPlanning, model.StatusPlanning, err)
	}
	if len(entries) != len(slides) {
		return nil, model.NewError(model.KindPlanning, model.StatusPlanning,
			fmt.Errorf("plan has %d entries for %d slides", len(entries), len(slides)))
	}

	placeholders := 0
	for _, e := range entries {
		if e.Placeholder {
			placeholders++
		}
	}
	p.logger.Info(ctx, "Narration planned in %v (%d placeholders)", time.Since(start).Round(time.Millisecond), placeholders)
	return entries, nil
}
