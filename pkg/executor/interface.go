package executor

import "context"

// Executor runs the external tools the pipeline shells out to (ffmpeg,
// ffprobe, pdftoppm). Output is stdout; a failure carries the tail of stderr.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir runs name with dir as its working directory, for tools
	// that write relative output paths
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
