package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/hibiken/asynq"
	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/converter"
	"github.com/nguyentantai21042004/slidecast/internal/deck"
	"github.com/nguyentantai21042004/slidecast/internal/encoder"
	"github.com/nguyentantai21042004/slidecast/internal/gemini"
	"github.com/nguyentantai21042004/slidecast/internal/jobstore"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/narration"
	"github.com/nguyentantai21042004/slidecast/internal/processor"
	"github.com/nguyentantai21042004/slidecast/internal/queue"
	"github.com/nguyentantai21042004/slidecast/internal/speech"
	"github.com/nguyentantai21042004/slidecast/internal/storage"
	"github.com/nguyentantai21042004/slidecast/pkg/executor"
	"github.com/redis/go-redis/v9"
)

// app holds everything a command needs once configuration is loaded
type app struct {
	cfg     *config.Config
	log     logger.Logger
	service converter.Service
	queue   *queue.Client
	closers []func() error
}

// newApp loads configuration and wires the pipeline. When enqueue is set and
// Redis is configured, submitted jobs go through the asynq queue.
func newApp(ctx context.Context, enqueue bool) (*app, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Debug(ctx, "System: %s/%s, %d CPU cores", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	if err := ensureDirectories(cfg.Paths.Work, cfg.Paths.Uploads); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}

	gen, err := gemini.New(gemini.Options{APIKeys: cfg.Gemini.APIKeys, BaseURL: cfg.Gemini.BaseURL}, log)
	if err != nil {
		return nil, err
	}
	exec := executor.New()

	store := jobstore.NewMemory()
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn(ctx, "Redis not available: %v", err)
		}
		store = jobstore.NewRedis(rdb)
		a.closers = append(a.closers, rdb.Close)
	}

	proc := processor.New(cfg, processor.Deps{
		Source:   deck.New(cfg.Deck, exec, log),
		Planner:  narration.New(cfg.Narration.Mode, gen, narration.OptionsFrom(cfg), log),
		Synth:    speech.New(gen, cfg.Gemini.TTSModel, cfg.Gemini.DefaultVoice, log),
		Encoder:  encoder.New(cfg.FFmpeg, exec, log),
		Observer: converter.StatusRecorder(store, log),
	}, log)

	deps := converter.Deps{Processor: proc, Store: store}
	if cfg.Storage.Enabled() {
		pub, err := storage.NewS3(ctx, cfg.Storage, log)
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		deps.Publisher = pub
	}
	if enqueue && cfg.Redis.Enabled() {
		a.queue = queue.NewClient(redisOpt(cfg), log)
		a.closers = append(a.closers, a.queue.Close)
		deps.Dispatcher = a.queue
	}

	a.service = converter.New(cfg, deps, log)
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn(context.Background(), "Close: %v", err)
		}
	}
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
