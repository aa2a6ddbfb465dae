package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/slidecast/internal/watcher"
	"github.com/spf13/cobra"
)

var watchVoiceFlag string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert every deck dropped into the inbox directory",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchVoiceFlag, "voice", "v", "", "Prebuilt voice for every deck (default: gemini.default_voice)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()
	cfg, log := a.cfg, a.log

	if err := ensureDirectories(cfg.Paths.Inbox, cfg.Paths.Archived); err != nil {
		return err
	}

	handler := watcher.ConvertAndArchive(a.service, cfg.Paths.Archived, watchVoiceFlag, log)
	w, err := watcher.New(watcher.Options{
		Dir:           cfg.Paths.Inbox,
		MaxConcurrent: cfg.Performance.MaxConcurrent,
	}, handler, log)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Slidecast watcher is ready!")
	log.Info(ctx, "Inbox: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Output: %s", cfg.Paths.Work)
	log.Info(ctx, "Archive: %s", cfg.Paths.Archived)
	log.Info(ctx, "Narration: %s mode, %s", cfg.Narration.Mode, cfg.Gemini.AnalysisModel)
	log.Info(ctx, "Speech: %s", cfg.Gemini.TTSModel)
	log.Info(ctx, "Concurrent: %d decks, %d slides per deck", cfg.Performance.MaxConcurrent, cfg.Performance.SlideConcurrency)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info(context.Background(), "Slidecast watcher stopped")
	return nil
}
