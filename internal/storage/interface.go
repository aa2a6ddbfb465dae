package storage

import "context"

// Publisher makes a finished video reachable outside the host
type Publisher interface {
	// Publish uploads the file at localPath for jobID and returns its URL
	Publish(ctx context.Context, jobID, localPath string) (string, error)
}
