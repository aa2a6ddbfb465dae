package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/slidecast/internal/deck"
	"github.com/nguyentantai21042004/slidecast/internal/jobstore"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/internal/model"
	"github.com/nguyentantai21042004/slidecast/internal/speech"
)

const rootSuffix = "_processed"

func (s *implService) Convert(ctx context.Context, in Input) (*jobstore.Record, error) {
	job, rec, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, job, rec)
}

func (s *implService) Submit(ctx context.Context, in Input) (*jobstore.Record, error) {
	job, rec, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}

	if s.dispatcher == nil {
		go func() {
			bg := logger.WithJobID(context.WithoutCancel(ctx), job.ID)
			if _, err := s.execute(bg, job, rec); err != nil {
				s.logger.Error(bg, "Background conversion failed: %v", err)
			}
		}()
		return rec, nil
	}

	if err := s.dispatcher.Dispatch(ctx, job.ID); err != nil {
		rec.Status = model.StatusFailed
		rec.Error = &jobstore.ErrorInfo{Message: "The job could not be queued"}
		if !s.cfg.Server.Production() {
			rec.Error.Cause = err.Error()
		}
		s.save(ctx, rec)
		return nil, fmt.Errorf("dispatch job %s: %w", job.ID, err)
	}
	s.logger.Info(ctx, "Queued job %s", job.ID)
	return rec, nil
}

func (s *implService) Run(ctx context.Context, jobID string) (*jobstore.Record, error) {
	rec, err := s.store.Get(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("load job %s: %w", jobID, err)
	}
	if rec.Status != model.StatusReceived {
		return rec, fmt.Errorf("job %s is already %s", jobID, rec.Status)
	}

	job := &model.Job{
		ID:        rec.ID,
		Root:      s.root(rec.ID),
		Source:    rec.Deck,
		Voice:     rec.Voice,
		CreatedAt: rec.CreatedAt,
	}
	return s.execute(ctx, job, rec)
}

func (s *implService) Get(ctx context.Context, jobID string) (*jobstore.Record, error) {
	return s.store.Get(ctx, jobID)
}

func (s *implService) root(id string) string {
	return filepath.Join(s.cfg.Paths.Work, id+rootSuffix)
}

// create validates the input, lays out the job root and records the job as received
func (s *implService) create(ctx context.Context, in Input) (*model.Job, *jobstore.Record, error) {
	if !deck.IsDeckFile(in.Source) {
		return nil, nil, inputError(fmt.Errorf("%w: %s", model.ErrUnsupportedFormat, filepath.Ext(in.Source)))
	}
	if _, err := os.Stat(in.Source); err != nil {
		return nil, nil, inputError(fmt.Errorf("read deck: %w", err))
	}
	voice, err := speech.ResolveVoice(in.Voice, s.cfg.Gemini.DefaultVoice)
	if err != nil {
		return nil, nil, inputError(err)
	}

	id := s.jobID(ctx, in.ID)
	root := s.root(id)
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, nil, fmt.Errorf("create job root: %w", err)
	}

	dst := filepath.Join(root, "source"+strings.ToLower(filepath.Ext(in.Source)))
	if err := placeSource(in.Source, dst, in.Keep); err != nil {
		os.RemoveAll(root)
		return nil, nil, fmt.Errorf("place deck: %w", err)
	}

	job := &model.Job{
		ID:        id,
		Root:      root,
		Source:    dst,
		Voice:     voice,
		CreatedAt: time.Now(),
	}
	rec := &jobstore.Record{
		ID:        id,
		Deck:      dst,
		Voice:     voice,
		Status:    model.StatusReceived,
		CreatedAt: job.CreatedAt,
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return nil, nil, fmt.Errorf("save job: %w", err)
	}

	s.logger.Info(logger.WithJobID(ctx, id), "Created job for %s (voice %s)", filepath.Base(in.Source), voice)
	return job, rec, nil
}

// jobID reuses want when it is a UUID without a job root yet
func (s *implService) jobID(ctx context.Context, want string) string {
	if want == "" {
		return uuid.NewString()
	}
	if parsed, err := uuid.Parse(want); err != nil || parsed.String() != want {
		s.logger.Warn(ctx, "Ignoring job id %q, not a canonical uuid", want)
		return uuid.NewString()
	}
	if _, err := os.Stat(s.root(want)); err == nil {
		s.logger.Warn(ctx, "Job id %s already in use, generating a new one", want)
		return uuid.NewString()
	}
	return want
}

// execute runs the pipeline once a job slot is free and stores the outcome
func (s *implService) execute(ctx context.Context, job *model.Job, rec *jobstore.Record) (*jobstore.Record, error) {
	ctx = logger.WithJobID(ctx, job.ID)

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.slots.Release(1)

	result, err := s.proc.Process(ctx, job)
	if err != nil {
		rec.Status = model.StatusFailed
		rec.Error = Describe(err, s.cfg.Server.Production())
		s.save(ctx, rec)
		return rec, err
	}

	s.finish(ctx, job, result)
	rec.Status = model.StatusDone
	rec.Result = result
	s.save(ctx, rec)
	return rec, nil
}

// finish writes the optional script, publishes the video and turns local
// paths into URLs clients can fetch
func (s *implService) finish(ctx context.Context, job *model.Job, result *model.Result) {
	if s.cfg.Output.ScriptDocx {
		if err := writeScript(job, result); err != nil {
			s.logger.Warn(ctx, "Failed to write narration script: %v", err)
		} else {
			result.ScriptPath = job.ScriptPath()
		}
	}

	result.VideoURL = s.publicURL(result.VideoPath)
	if s.publisher != nil {
		url, err := s.publisher.Publish(ctx, job.ID, result.VideoPath)
		if err != nil {
			s.logger.Warn(ctx, "Failed to publish video, serving local copy: %v", err)
		} else {
			result.VideoURL = url
		}
	}

	for i := range result.Slides {
		d := &result.Slides[i]
		d.Image = s.publicURL(d.Image)
		d.Audio = s.publicURL(d.Audio)
		d.Clip = s.publicURL(d.Clip)
	}
}

// publicURL maps a file under paths.work to its static route
func (s *implService) publicURL(p string) string {
	if p == "" {
		return ""
	}
	rel, err := filepath.Rel(s.cfg.Paths.Work, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return strings.TrimSuffix(s.cfg.Server.PublicPrefix, "/") + "/" + filepath.ToSlash(rel)
}

// save persists the record even when the job context is already cancelled
func (s *implService) save(ctx context.Context, rec *jobstore.Record) {
	if err := s.store.Save(context.WithoutCancel(ctx), rec); err != nil {
		s.logger.Error(ctx, "Failed to save job %s: %v", rec.ID, err)
	}
}

func inputError(err error) error {
	return model.NewError(model.KindInput, model.StatusReceived, err)
}
