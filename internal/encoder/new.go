package encoder

import (
	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/pkg/executor"
)

type implEncoder struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates an ffmpeg-backed Encoder
func New(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Encoder {
	return &implEncoder{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
