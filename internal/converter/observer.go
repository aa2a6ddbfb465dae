package converter

import (
	"context"

	"github.com/nguyentantai21042004/slidecast/internal/jobstore"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/model"
	"github.com/nguyentantai21042004/slidecast/internal/processor"
)

type statusRecorder struct {
	store  jobstore.Store
	logger logger.Logger
}

// StatusRecorder returns a processor.Observer that mirrors every transition
// into the job store. Terminal states are written by the Service together
// with the result, so they are skipped here.
func StatusRecorder(store jobstore.Store, log logger.Logger) processor.Observer {
	return &statusRecorder{store: store, logger: log}
}

func (r *statusRecorder) OnStatus(ctx context.Context, job *model.Job, status model.Status) {
	if status.Terminal() {
		return
	}
	if err := r.store.SetStatus(context.WithoutCancel(ctx), job.ID, status); err != nil {
		r.logger.Warn(ctx, "Failed to record status %s: %v", status, err)
	}
}
