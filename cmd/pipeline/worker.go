package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/slidecast/internal/queue"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume queued conversions from Redis",
	Args:  cobra.NoArgs,
	RunE:  runWorker,
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()
	cfg, log := a.cfg, a.log

	if !cfg.Redis.Enabled() {
		return fmt.Errorf("worker needs redis.addr")
	}

	srv := queue.NewServer(redisOpt(cfg), cfg.Performance.MaxConcurrent, log)
	if err := srv.Start(queue.NewMux(queue.NewWorker(a.service, log))); err != nil {
		return fmt.Errorf("start queue worker: %w", err)
	}
	log.Info(ctx, "Worker consuming %q with concurrency %d", queue.QueueConvert, cfg.Performance.MaxConcurrent)

	<-ctx.Done()
	log.Info(cmd.Context(), "Shutting down worker...")
	srv.Shutdown()
	return nil
}
