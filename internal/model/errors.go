package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a job failed
type ErrorKind string

const (
	KindInput     ErrorKind = "input_error"
	KindPlanning  ErrorKind = "planning_failure"
	KindSynthesis ErrorKind = "synthesis_failure"
	KindRender    ErrorKind = "render_failure"
	KindAssembly  ErrorKind = "assembly_failure"
)

var (
	ErrEmptyDeck         = errors.New("deck contains no slide images")
	ErrUnsupportedFormat = errors.New("unsupported deck format")
	ErrMissingClip       = errors.New("clip missing for slide")
)

// NoSlide marks errors that do not belong to a single slide
const NoSlide = -1

// PipelineError is the terminal error of a failed job
type PipelineError struct {
	Kind       ErrorKind
	Stage      Status
	SlideIndex int
	Err        error
}

func (e *PipelineError) Error() string {
	if e.SlideIndex >= 0 {
		return fmt.Sprintf("%s at %s (slide %d): %v", e.Kind, e.Stage, e.SlideIndex, e.Err)
	}
	return fmt.Sprintf("%s at %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewError builds a job-level PipelineError
func NewError(kind ErrorKind, stage Status, err error) *PipelineError {
	return &PipelineError{Kind: kind, Stage: stage, SlideIndex: NoSlide, Err: err}
}

// NewSlideError builds a PipelineError tied to one slide
func NewSlideError(kind ErrorKind, index int, err error) *PipelineError {
	return &PipelineError{Kind: kind, Stage: StatusProcessing, SlideIndex: index, Err: err}
}

// KindOf returns the failure kind carried by err, or "" when err is not a PipelineError
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// SlideIndexOf returns the failing slide index carried by err, or NoSlide
func SlideIndexOf(err error) int {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.SlideIndex
	}
	return NoSlide
}

// StageOf returns the stage a PipelineError happened in
func StageOf(err error) Status {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Stage
	}
	return ""
}
