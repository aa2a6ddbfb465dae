package model

import "time"

// Slide is one position in the deck, identified by its zero-based index
type Slide struct {
	Index int
	Image string
}

// NarrationEntry is the planned narration for one slide
type NarrationEntry struct {
	Index       int    `json:"index"`
	Content     string `json:"content"`
	Style       string `json:"tts_prompt"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// PCM is raw headerless signed 16-bit little-endian audio
type PCM struct {
	Data       []byte
	SampleRate int
	Channels   int
}

// Duration returns the playback length implied by the sample count
func (p PCM) Duration() time.Duration {
	if p.SampleRate <= 0 || p.Channels <= 0 {
		return 0
	}
	samples := len(p.Data) / (2 * p.Channels)
	return time.Duration(samples) * time.Second / time.Duration(p.SampleRate)
}

// SlideDetail is the per-slide audit record exposed once a job is done
type SlideDetail struct {
	Index       int    `json:"index"`
	Image       string `json:"image"`
	Content     string `json:"content"`
	Style       string `json:"tts_prompt"`
	Audio       string `json:"audio"`
	Clip        string `json:"clip"`
	DurationMs  int64  `json:"durationMs"`
	Placeholder bool   `json:"placeholder,omitempty"`
	Degraded    bool   `json:"degraded,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// Result is the outcome of a successful pipeline run
type Result struct {
	JobID      string        `json:"jobId"`
	VideoPath  string        `json:"videoPath"`
	VideoURL   string        `json:"videoUrl,omitempty"`
	ScriptPath string        `json:"scriptPath,omitempty"`
	DurationMs int64         `json:"durationMs"`
	Degraded   bool          `json:"degraded,omitempty"`
	Slides     []SlideDetail `json:"details"`
}
