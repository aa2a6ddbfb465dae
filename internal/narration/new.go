package narration

import (
	"errors"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/gemini"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

var (
	ErrNoSlides          = errors.New("no slides to narrate")
	ErrMalformedResponse = errors.New("malformed analysis response")
)

// Options configures a Planner
type Options struct {
	Model            string
	Instruction      string
	PlaceholderText  string
	PlaceholderStyle string
	DefaultStyle     string
	ContextWindow    int
	Timeout          time.Duration
}

// OptionsFrom builds planner options from the loaded config
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Model:            cfg.Gemini.AnalysisModel,
		Instruction:      cfg.Narration.Instruction,
		PlaceholderText:  cfg.Narration.PlaceholderText,
		PlaceholderStyle: cfg.Narration.PlaceholderStyle,
		DefaultStyle:     cfg.Narration.DefaultStyle,
		ContextWindow:    cfg.Narration.ContextWindow,
		Timeout:          cfg.Timeouts.Analysis,
	}
}

type planner struct {
	gen    gemini.Generator
	opts   Options
	logger logger.Logger
}

type batchPlanner struct{ planner }

type rollingPlanner struct{ planner }

// NewBatch creates a Planner that narrates the whole deck in a single call
func NewBatch(gen gemini.Generator, opts Options, log logger.Logger) Planner {
	return &batchPlanner{planner{gen: gen, opts: withDefaults(opts), logger: log}}
}

// NewRolling creates a Planner that narrates one slide per call, carrying
// the previous narrations as context
func NewRolling(gen gemini.Generator, opts Options, log logger.Logger) Planner {
	return &rollingPlanner{planner{gen: gen, opts: withDefaults(opts), logger: log}}
}

// New picks the planner for the configured narration mode
func New(mode string, gen gemini.Generator, opts Options, log logger.Logger) Planner {
	if mode == config.NarrationRolling {
		return NewRolling(gen, opts, log)
	}
	return NewBatch(gen, opts, log)
}

func withDefaults(opts Options) Options {
	if opts.Instruction == "" {
		opts.Instruction = defaultInstruction
	}
	if opts.ContextWindow < 0 {
		opts.ContextWindow = 0
	}
	return opts
}
