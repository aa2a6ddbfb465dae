package deck

import (
	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/pkg/executor"
)

type implSource struct {
	cfg      config.DeckConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Source that understands .pptx archives and .pdf documents
func New(cfg config.DeckConfig, exec executor.Executor, log logger.Logger) Source {
	return &implSource{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
