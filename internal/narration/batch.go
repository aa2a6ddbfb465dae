package narration

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nguyentantai21042004/slidecast/internal/gemini"
	"github.com/nguyentantai21042004/slidecast/internal/model"
	"github.com/nguyentantai21042004/slidecast/pkg/jsonutil"
	"google.golang.org/genai"
)

// Plan issues one analysis call carrying every slide image
func (p *batchPlanner) Plan(ctx context.Context, slides []model.Slide) ([]model.NarrationEntry, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}

	parts := []*genai.Part{genai.NewPartFromText(batchPrompt(p.opts.Instruction, len(slides)))}
	for _, s := range slides {
		part, err := imagePart(s)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	text, err := p.generate(ctx, parts)
	if err != nil {
		return nil, err
	}

	raw, err := jsonutil.DecodeArray[rawEntry](text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return p.align(ctx, raw, slides), nil
}

// generate runs one analysis call under the configured timeout and returns its text
func (p *planner) generate(ctx context.Context, parts []*genai.Part) (string, error) {
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	p.logger.Info(ctx, "Calling %s with %d parts", p.opts.Model, len(parts))

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := p.gen.GenerateContent(ctx, p.opts.Model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("analysis call: %w", err)
	}

	text := gemini.ResponseText(resp)
	p.logger.Info(ctx, "Analysis completed in %v (%d chars)", time.Since(start).Round(time.Millisecond), len(text))
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}
	return text, nil
}

func imagePart(s model.Slide) (*genai.Part, error) {
	data, err := os.ReadFile(s.Image)
	if err != nil {
		return nil, fmt.Errorf("read slide %d image: %w", s.Index, err)
	}
	return genai.NewPartFromBytes(data, mimetype.Detect(data).String()), nil
}
