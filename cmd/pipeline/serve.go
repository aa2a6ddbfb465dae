package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nguyentantai21042004/slidecast/internal/handler"
	"github.com/nguyentantai21042004/slidecast/internal/queue"
	"github.com/spf13/cobra"
)

var withWorkerFlag bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP conversion API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&withWorkerFlag, "with-worker", false, "Also consume the conversion queue in this process")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()
	cfg, log := a.cfg, a.log

	h := handler.New(cfg, a.service, validator.New(), log)
	server := handler.NewApp(h)

	if withWorkerFlag {
		if !cfg.Redis.Enabled() {
			return fmt.Errorf("--with-worker needs redis.addr")
		}
		srv := queue.NewServer(redisOpt(cfg), cfg.Performance.MaxConcurrent, log)
		if err := srv.Start(queue.NewMux(queue.NewWorker(a.service, log))); err != nil {
			return fmt.Errorf("start queue worker: %w", err)
		}
		defer srv.Shutdown()
	}

	go func() {
		<-ctx.Done()
		log.Info(context.Background(), "Shutting down server...")
		if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error(context.Background(), "Server shutdown error: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info(ctx, "Server starting on %s (env %s, queue %v)", addr, cfg.Server.Env, a.queue != nil)
	if err := server.Listen(addr); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
