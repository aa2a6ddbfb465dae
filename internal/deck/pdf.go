package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// extractPDF rasterizes every page into a scratch directory, then
// normalizes the pages into outDir in page order.
func (s *implSource) extractPDF(ctx context.Context, src, outDir string) ([]string, error) {
	scratch, err := os.MkdirTemp(filepath.Dir(outDir), ".pdf-pages-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			s.logger.Warn(ctx, "Failed to remove scratch dir %s: %v", scratch, err)
		}
	}()

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return nil, fmt.Errorf("resolve deck path: %w", err)
	}

	// pages are written as page-N.png inside scratch
	args := []string{
		"-png",
		"-r", strconv.Itoa(s.cfg.DPI),
		absSrc,
		"page",
	}
	if _, err := s.executor.ExecuteInDir(ctx, scratch, s.cfg.PDFRasterizer, args...); err != nil {
		return nil, fmt.Errorf("rasterize pdf: %w", err)
	}

	pages, err := rasterizedPages(scratch)
	if err != nil {
		return nil, err
	}

	fw := &frameWriter{maxWidth: s.cfg.MaxWidth}
	images := make([]string, 0, len(pages))
	for i, page := range pages {
		data, err := os.ReadFile(page)
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", i+1, err)
		}
		dst := pageName(outDir, i)
		if err := fw.write(data, dst); err != nil {
			return nil, fmt.Errorf("normalize page %d: %w", i+1, err)
		}
		images = append(images, dst)
	}
	return images, nil
}

// rasterizedPages lists page-N.png files ordered by N; the rasterizer
// zero-pads N depending on the page count.
func rasterizedPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	type page struct {
		num  int
		path string
	}
	var pages []page
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "page-") || filepath.Ext(name) != ".png" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "page-"), ".png"))
		if err != nil {
			continue
		}
		pages = append(pages, page{num: n, path: filepath.Join(dir, name)})
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].num < pages[j].num })

	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.path
	}
	return paths, nil
}
