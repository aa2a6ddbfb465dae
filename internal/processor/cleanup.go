package processor

import (
	"context"
	"os"
)

// discardSlide removes whatever a failed slide managed to write
func (p *implProcessor) discardSlide(ctx context.Context, audio, clip string) {
	p.removeFile(ctx, audio)
	p.removeFile(ctx, clip)
}

// removeFile removes a file, logs warning if fails
func (p *implProcessor) removeFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn(ctx, "Failed to cleanup file %s: %v", filePath, err)
		}
		return
	}
	p.logger.Debug(ctx, "Cleaned up file: %s", filePath)
}

// removeDir removes a directory tree, logs warning if fails
func (p *implProcessor) removeDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup dir %s: %v", dir, err)
	}
}
