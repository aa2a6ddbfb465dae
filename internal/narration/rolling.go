package narration

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/slidecast/internal/model"
	"github.com/nguyentantai21042004/slidecast/pkg/jsonutil"
	"google.golang.org/genai"
)

// Plan narrates slides one call at a time. A slide whose call fails gets the
// placeholder; the plan only fails when no slide could be narrated.
func (p *rollingPlanner) Plan(ctx context.Context, slides []model.Slide) ([]model.NarrationEntry, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}

	out := make([]model.NarrationEntry, 0, len(slides))
	var lastErr error
	narrated := 0

	for i, s := range slides {
		entry, err := p.planOne(ctx, i, slides, out)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.logger.Warn(ctx, "Slide %d analysis failed, using placeholder: %v", s.Index, err)
			lastErr = err
			entry = p.placeholder(s.Index)
		} else if !entry.Placeholder {
			narrated++
		}
		out = append(out, entry)
	}

	if narrated == 0 && lastErr != nil {
		return nil, fmt.Errorf("every slide failed analysis: %w", lastErr)
	}
	return out, nil
}

func (p *rollingPlanner) planOne(ctx context.Context, i int, slides []model.Slide, done []model.NarrationEntry) (model.NarrationEntry, error) {
	s := slides[i]
	img, err := imagePart(s)
	if err != nil {
		return model.NarrationEntry{}, err
	}

	prompt := rollingPrompt(p.opts.Instruction, i, len(slides), p.window(done))
	text, err := p.generate(ctx, []*genai.Part{genai.NewPartFromText(prompt), img})
	if err != nil {
		return model.NarrationEntry{}, err
	}

	raw, err := jsonutil.DecodeObject[rawEntry](text)
	if err != nil {
		return model.NarrationEntry{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return p.entry(s.Index, raw), nil
}

// window returns the trailing narrations used as context, skipping placeholders
func (p *rollingPlanner) window(done []model.NarrationEntry) []model.NarrationEntry {
	var ctxEntries []model.NarrationEntry
	for i := len(done) - 1; i >= 0 && len(ctxEntries) < p.opts.ContextWindow; i-- {
		if done[i].Placeholder {
			continue
		}
		ctxEntries = append([]model.NarrationEntry{done[i]}, ctxEntries...)
	}
	return ctxEntries
}
