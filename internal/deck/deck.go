package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

// Extract dispatches on the file extension
func (s *implSource) Extract(ctx context.Context, src, outDir string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(src))
	if !IsDeckFile(src) {
		return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, ext)
	}

	if _, err := os.Stat(src); err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}

	outDir, err := filepath.Abs(outDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var images []string
	switch ext {
	case ".pptx":
		images, err = s.extractPPTX(ctx, src, outDir)
	case ".pdf":
		images, err = s.extractPDF(ctx, src, outDir)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Extracted %d slide images from %s", len(images), filepath.Base(src))
	return images, nil
}

// IsDeckFile reports whether path has an extension Extract understands
func IsDeckFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pptx", ".pdf":
		return true
	}
	return false
}

func pageName(outDir string, index int) string {
	return filepath.Join(outDir, fmt.Sprintf("page_%d.png", index))
}
