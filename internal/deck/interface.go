package deck

import "context"

// Source turns a deck file into ordered slide images
type Source interface {
	// Extract writes one normalized PNG per slide into outDir and returns
	// their absolute paths in slide order. Every PNG of a deck has the same
	// size. outDir is created if absent.
	Extract(ctx context.Context, src, outDir string) ([]string, error)
}
