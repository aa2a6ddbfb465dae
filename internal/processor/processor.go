package processor

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/model"
)

// Process orchestrates the entire deck-to-video pipeline
func (p *implProcessor) Process(ctx context.Context, job *model.Job) (*model.Result, error) {
	ctx = logger.WithJobID(ctx, job.ID)
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting deck conversion: %s (voice %s)", job.Source, job.Voice)
	p.logger.Info(ctx, "========================================")

	if err := os.MkdirAll(job.Root, 0755); err != nil {
		return nil, p.fail(ctx, job, model.NewError(model.KindInput, model.StatusReceived, fmt.Errorf("create job root: %w", err)))
	}

	// Step 1: Extract slide images
	p.transition(ctx, job, model.StatusExtracting)
	slides, err := p.extract(ctx, job)
	if err != nil {
		return nil, p.fail(ctx, job, err)
	}

	// Step 2: Plan narration for every slide before any synthesis starts
	p.transition(ctx, job, model.StatusPlanning)
	plan, err := p.plan(ctx, slides)
	if err != nil {
		return nil, p.fail(ctx, job, err)
	}

	// Step 3: Synthesize and render each slide
	p.transition(ctx, job, model.StatusProcessing)
	details, err := p.processSlides(ctx, job, slides, plan)
	if err != nil {
		return nil, p.fail(ctx, job, err)
	}

	// Step 4: Concatenate the clips in slide order
	p.transition(ctx, job, model.StatusAssembling)
	duration, err := p.assemble(ctx, job, details)
	if err != nil {
		return nil, p.fail(ctx, job, err)
	}

	result := &model.Result{
		JobID:      job.ID,
		VideoPath:  job.FinalPath(),
		DurationMs: duration.Milliseconds(),
		Slides:     details,
	}
	for _, d := range details {
		if d.Degraded {
			result.Degraded = true
		}
	}

	p.transition(ctx, job, model.StatusDone)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Conversion completed successfully!")
	p.logger.Info(ctx, "Output video: %s (%d slides, %v)", result.VideoPath, len(details), duration)
	if result.Degraded {
		p.logger.Warn(ctx, "Output contains degraded slides")
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")

	return result, nil
}

func (p *implProcessor) transition(ctx context.Context, job *model.Job, status model.Status) {
	p.logger.Debug(ctx, "Job %s -> %s", job.ID, status)
	p.observer.OnStatus(ctx, job, status)
}

// fail marks the job failed and makes sure no final video is left behind
func (p *implProcessor) fail(ctx context.Context, job *model.Job, err error) error {
	p.removeFile(ctx, job.FinalPath())
	p.logger.Error(ctx, "Conversion failed: %v", err)
	p.transition(ctx, job, model.StatusFailed)
	return err
}

// withTimeout bounds one external call; d <= 0 means no bound
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
