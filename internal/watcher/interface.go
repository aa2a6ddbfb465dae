package watcher

import "context"

// Watcher hands every deck that appears in a directory to an EventHandler
type Watcher interface {
	// Start blocks until ctx is cancelled and in-flight handlers have returned
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is called once per new deck, on its own goroutine
type EventHandler func(ctx context.Context, deckPath string) error
