package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

// Options configures a Watcher
type Options struct {
	Dir           string
	MaxConcurrent int
	// Settle is how long to wait after a create event before reading the
	// file. Zero means 500ms.
	Settle time.Duration
}

// New watches opts.Dir and runs handler for each dropped deck, at most
// opts.MaxConcurrent at a time
func New(opts Options, handler EventHandler, log logger.Logger) (Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(opts.Dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.Settle <= 0 {
		opts.Settle = 500 * time.Millisecond
	}

	return &implWatcher{
		inputDir:      opts.Dir,
		handler:       handler,
		logger:        log,
		watcher:       fw,
		maxConcurrent: opts.MaxConcurrent,
		semaphore:     make(chan struct{}, opts.MaxConcurrent),
		settle:        opts.Settle,
	}, nil
}
