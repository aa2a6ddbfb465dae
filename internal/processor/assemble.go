package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

// assemble concatenates the clips strictly in slide order
func (p *implProcessor) assemble(ctx context.Context, job *model.Job, details []model.SlideDetail) (time.Duration, error) {
	start := time.Now()

	clips := make([]string, len(details))
	for i, d := range details {
		clips[i] = d.Clip
	}

	actx, cancel := withTimeout(ctx, p.cfg.Timeouts.Assembly)
	defer cancel()
	if err := p.encoder.Concat(actx, clips, job.FinalPath()); err != nil {
		return 0, model.NewError(model.KindAssembly, model.StatusAssembling, err)
	}

	duration := p.probe(ctx, job.FinalPath())
	p.logger.Info(ctx, "Assembled %d clips in %v", len(clips), time.Since(start).Round(time.Millisecond))
	return duration, nil
}
