package model

import (
	"path/filepath"
	"time"
)

// Status is the lifecycle state of a conversion job
type Status string

const (
	StatusReceived   Status = "received"
	StatusExtracting Status = "extracting"
	StatusPlanning   Status = "planning"
	StatusProcessing Status = "processing"
	StatusAssembling Status = "assembling"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transition can happen
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

const (
	ImagesDirName  = "images"
	AudioDirName   = "audio"
	ClipsDirName   = "clips"
	FinalVideoName = "final_video.mp4"
	ScriptName     = "script.docx"
)

// Job is one conversion request. It owns everything under Root.
type Job struct {
	ID        string    `json:"id"`
	Root      string    `json:"root"`
	Source    string    `json:"source"`
	Voice     string    `json:"voice"`
	CreatedAt time.Time `json:"createdAt"`
}

func (j *Job) ImagesDir() string { return filepath.Join(j.Root, ImagesDirName) }
func (j *Job) AudioDir() string  { return filepath.Join(j.Root, AudioDirName) }
func (j *Job) ClipsDir() string  { return filepath.Join(j.Root, ClipsDirName) }
func (j *Job) FinalPath() string { return filepath.Join(j.Root, FinalVideoName) }
func (j *Job) ScriptPath() string {
	return filepath.Join(j.Root, ScriptName)
}
