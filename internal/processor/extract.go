package processor

import (
	"context"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

// extract turns the deck into slides. Any failure, including an empty deck,
// leaves no images directory behind.
func (p *implProcessor) extract(ctx context.Context, job *model.Job) ([]model.Slide, error) {
	images, err := p.source.Extract(ctx, job.Source, job.ImagesDir())
	if err != nil {
		p.removeDir(ctx, job.ImagesDir())
		return nil, model.NewError(model.KindInput, model.StatusExtracting, err)
	}
	if len(images) == 0 {
		p.removeDir(ctx, job.ImagesDir())
		return nil, model.NewError(model.KindInput, model.StatusExtracting, model.ErrEmptyDeck)
	}

	slides := make([]model.Slide, len(images))
	for i, img := range images {
		slides[i] = model.Slide{Index: i, Image: img}
	}

	p.logger.Info(ctx, "Deck has %d slides", len(slides))
	return slides, nil
}
