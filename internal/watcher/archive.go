package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/converter"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

// ConvertAndArchive returns an EventHandler that converts a dropped deck
// and moves it to archiveDir once the video is done. Failed decks stay in
// the inbox.
func ConvertAndArchive(svc converter.Service, archiveDir, voice string, log logger.Logger) EventHandler {
	return func(ctx context.Context, filePath string) error {
		rec, err := svc.Convert(ctx, converter.Input{Source: filePath, Voice: voice, Keep: true})
		if err != nil {
			return err
		}
		ctx = logger.WithJobID(ctx, rec.ID)
		log.Info(ctx, "Video ready: %s", rec.Result.VideoPath)

		if err := archive(filePath, archiveDir); err != nil {
			log.Warn(ctx, "Failed to archive %s: %v", filePath, err)
		}
		return nil
	}
}

// archive moves src into dir, adding a timestamp when the name is taken
func archive(src, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if _, err := os.Stat(dst); err == nil {
		ext := filepath.Ext(src)
		stem := filepath.Base(src[:len(src)-len(ext)])
		dst = filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, time.Now().Format("20060102_150405"), ext))
	}
	return os.Rename(src, dst)
}
