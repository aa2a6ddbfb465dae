package processor

import (
	"context"

	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/deck"
	"github.com/nguyentantai21042004/slidecast/internal/encoder"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/model"
	"github.com/nguyentantai21042004/slidecast/internal/narration"
	"github.com/nguyentantai21042004/slidecast/internal/speech"
)

// Deps are the collaborators a Processor drives
type Deps struct {
	Source   deck.Source
	Planner  narration.Planner
	Synth    speech.Synthesizer
	Encoder  encoder.Encoder
	Observer Observer
}

type implProcessor struct {
	cfg      *config.Config
	source   deck.Source
	planner  narration.Planner
	synth    speech.Synthesizer
	encoder  encoder.Encoder
	observer Observer
	logger   logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	obs := deps.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	return &implProcessor{
		cfg:      cfg,
		source:   deps.Source,
		planner:  deps.Planner,
		synth:    deps.Synth,
		encoder:  deps.Encoder,
		observer: obs,
		logger:   log,
	}
}

type nopObserver struct{}

func (nopObserver) OnStatus(context.Context, *model.Job, model.Status) {}
