package converter

import (
	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/jobstore"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/processor"
	"github.com/nguyentantai21042004/slidecast/internal/storage"
	"golang.org/x/sync/semaphore"
)

// Deps are the collaborators a Service needs. Publisher and Dispatcher are optional.
type Deps struct {
	Processor  processor.Processor
	Store      jobstore.Store
	Publisher  storage.Publisher
	Dispatcher Dispatcher
}

type implService struct {
	cfg        *config.Config
	proc       processor.Processor
	store      jobstore.Store
	publisher  storage.Publisher
	dispatcher Dispatcher
	slots      *semaphore.Weighted
	logger     logger.Logger
}

// New creates a new Service. At most performance.max_concurrent jobs run at once.
func New(cfg *config.Config, deps Deps, log logger.Logger) Service {
	n := int64(cfg.Performance.MaxConcurrent)
	if n < 1 {
		n = 1
	}
	return &implService{
		cfg:        cfg,
		proc:       deps.Processor,
		store:      deps.Store,
		publisher:  deps.Publisher,
		dispatcher: deps.Dispatcher,
		slots:      semaphore.NewWeighted(n),
		logger:     log,
	}
}

