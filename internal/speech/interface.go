package speech

import (
	"context"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

// Request is one narration track to synthesize
type Request struct {
	Text  string
	Style string
	Voice string
}

// Synthesizer turns narration text into raw PCM samples
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (model.PCM, error)
}
