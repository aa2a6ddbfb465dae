package queue

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

// asynqLogger routes asynq's own logging through logger.Logger
type asynqLogger struct {
	logger logger.Logger
}

func newAsynqLogger(log logger.Logger) *asynqLogger {
	return &asynqLogger{logger: log}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(context.Background(), "asynq: %s", fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(context.Background(), "asynq: %s", fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(context.Background(), "asynq: %s", fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(context.Background(), "asynq: %s", fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(context.Background(), "asynq: %s", fmt.Sprint(args...))
	os.Exit(1)
}
