package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/model"
	"github.com/nguyentantai21042004/slidecast/internal/speech"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// slideSlots is the number of slides in flight, at least one
func slideSlots(n int) int64 {
	if n < 1 {
		return 1
	}
	return int64(n)
}

// processSlides synthesizes and renders slides concurrently. Results land in a
// buffer indexed by slide, so completion order never leaks into the output.
func (p *implProcessor) processSlides(ctx context.Context, job *model.Job, slides []model.Slide, plan []model.NarrationEntry) ([]model.SlideDetail, error) {
	for _, dir := range []string{job.AudioDir(), job.ClipsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, model.NewError(model.KindRender, model.StatusProcessing, fmt.Errorf("create %s: %w", dir, err))
		}
	}

	results := make([]*model.SlideDetail, len(slides))
	sem := semaphore.NewWeighted(slideSlots(p.cfg.Performance.SlideConcurrency))
	g, gctx := errgroup.WithContext(ctx)

	for i, slide := range slides {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		entry := plan[i]

		g.Go(func() error {
			defer sem.Release(1)

			detail, err := p.processSlide(gctx, job, slide, entry)
			if err != nil && p.shouldDegrade(ctx, gctx) {
				detail, err = p.degrade(gctx, job, slide, entry, err)
			}
			if err != nil {
				return err
			}
			results[slide.Index] = detail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, model.NewError(model.KindRender, model.StatusProcessing, err)
	}

	details := make([]model.SlideDetail, len(results))
	for i, d := range results {
		if d == nil {
			return nil, &model.PipelineError{
				Kind:       model.KindAssembly,
				Stage:      model.StatusAssembling,
				SlideIndex: i,
				Err:        model.ErrMissingClip,
			}
		}
		details[i] = *d
	}
	return details, nil
}

func (p *implProcessor) slidePaths(job *model.Job, index int) (audio, clip string) {
	audio = filepath.Join(job.AudioDir(), fmt.Sprintf("page_%d.%s", index, p.cfg.FFmpeg.AudioFormat))
	clip = filepath.Join(job.ClipsDir(), fmt.Sprintf("page_%d.mp4", index))
	return audio, clip
}

// processSlide runs speech then render for one slide. On failure the slide's
// own files are removed before the error is returned.
func (p *implProcessor) processSlide(ctx context.Context, job *model.Job, slide model.Slide, entry model.NarrationEntry) (*model.SlideDetail, error) {
	start := time.Now()
	audio, clip := p.slidePaths(job, slide.Index)

	if err := p.synthesize(ctx, job, slide, entry, audio); err != nil {
		p.discardSlide(ctx, audio, clip)
		return nil, model.NewSlideError(model.KindSynthesis, slide.Index, err)
	}

	if err := p.render(ctx, slide, audio, clip); err != nil {
		p.discardSlide(ctx, audio, clip)
		return nil, model.NewSlideError(model.KindRender, slide.Index, err)
	}

	detail := &model.SlideDetail{
		Index:       slide.Index,
		Image:       slide.Image,
		Content:     entry.Content,
		Style:       entry.Style,
		Audio:       audio,
		Clip:        clip,
		DurationMs:  p.probe(ctx, clip).Milliseconds(),
		Placeholder: entry.Placeholder,
	}

	p.logger.Info(ctx, "[%d] Slide rendered in %v (%dms)", slide.Index, time.Since(start).Round(time.Millisecond), detail.DurationMs)
	return detail, nil
}

// synthesize produces the slide's audio asset: speech call, then container wrap
func (p *implProcessor) synthesize(ctx context.Context, job *model.Job, slide model.Slide, entry model.NarrationEntry, audio string) error {
	sctx, cancel := withTimeout(ctx, p.cfg.Timeouts.Speech)
	pcm, err := p.synth.Synthesize(sctx, speech.Request{
		Text:  entry.Content,
		Style: entry.Style,
		Voice: job.Voice,
	})
	cancel()
	if err != nil {
		return fmt.Errorf("speech: %w", err)
	}

	ectx, cancel := withTimeout(ctx, p.cfg.Timeouts.Encode)
	defer cancel()
	if err := p.encoder.WrapPCM(ectx, pcm, audio); err != nil {
		return fmt.Errorf("wrap audio: %w", err)
	}
	return nil
}

func (p *implProcessor) render(ctx context.Context, slide model.Slide, audio, clip string) error {
	rctx, cancel := withTimeout(ctx, p.cfg.Timeouts.Encode)
	defer cancel()
	return p.encoder.RenderClip(rctx, slide.Image, audio, clip)
}

// probe reports a media duration, or zero when it cannot be measured
func (p *implProcessor) probe(ctx context.Context, path string) time.Duration {
	pctx, cancel := withTimeout(ctx, p.cfg.Timeouts.Encode)
	defer cancel()

	d, err := p.encoder.Duration(pctx, path)
	if err != nil {
		p.logger.Warn(ctx, "Failed to probe duration of %s: %v", path, err)
		return 0
	}
	return d
}
