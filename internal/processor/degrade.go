package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/model"
)

// shouldDegrade reports whether a failed slide may be replaced by a
// placeholder. Cancellation of the job or of the slide group never degrades.
func (p *implProcessor) shouldDegrade(parent, group context.Context) bool {
	return p.cfg.Failure.Policy == config.PolicyDegrade && parent.Err() == nil && group.Err() == nil
}

// degrade renders the slide image over a fixed tone. If that fails too the
// original cause is returned.
func (p *implProcessor) degrade(ctx context.Context, job *model.Job, slide model.Slide, entry model.NarrationEntry, cause error) (*model.SlideDetail, error) {
	p.logger.Warn(ctx, "[%d] Slide failed, substituting placeholder: %v", slide.Index, cause)
	audio, clip := p.slidePaths(job, slide.Index)

	tctx, cancel := withTimeout(ctx, p.cfg.Timeouts.Encode)
	err := p.encoder.Tone(tctx, p.cfg.Failure.ToneFrequency, p.cfg.Failure.ToneSeconds, audio)
	cancel()
	if err == nil {
		err = p.render(ctx, slide, audio, clip)
	}
	if err != nil {
		p.logger.Error(ctx, "[%d] Placeholder failed: %v", slide.Index, err)
		p.discardSlide(ctx, audio, clip)
		return nil, cause
	}

	return &model.SlideDetail{
		Index:       slide.Index,
		Image:       slide.Image,
		Content:     entry.Content,
		Style:       entry.Style,
		Audio:       audio,
		Clip:        clip,
		DurationMs:  p.probe(ctx, clip).Milliseconds(),
		Placeholder: entry.Placeholder,
		Degraded:    true,
		Reason:      reason(cause),
	}, nil
}

func reason(err error) string {
	var pe *model.PipelineError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s: %v", pe.Kind, pe.Err)
	}
	return err.Error()
}
