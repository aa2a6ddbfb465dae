package speech

import (
	"github.com/nguyentantai21042004/slidecast/internal/gemini"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

const defaultSampleRate = 24000

type implSynthesizer struct {
	gen          gemini.Generator
	model        string
	defaultVoice string
	logger       logger.Logger
}

// New creates a Synthesizer backed by a Gemini text-to-speech model
func New(gen gemini.Generator, model, defaultVoice string, log logger.Logger) Synthesizer {
	return &implSynthesizer{
		gen:          gen,
		model:        model,
		defaultVoice: defaultVoice,
		logger:       log,
	}
}
