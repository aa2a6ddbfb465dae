package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/config"
	"github.com/nguyentantai21042004/slidecast/internal/model"
	"github.com/nguyentantai21042004/slidecast/internal/speech"
)

type fakeSource struct {
	count int
	err   error
}

func (f *fakeSource) Extract(ctx context.Context, src, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	images := make([]string, f.count)
	for i := range images {
		images[i] = filepath.Join(outDir, fmt.Sprintf("page_%d.png", i))
		if err := os.WriteFile(images[i], []byte("png"), 0644); err != nil {
			return nil, err
		}
	}
	return images, nil
}

type fakePlanner struct {
	err   error
	calls int
}

func (f *fakePlanner) Plan(ctx context.Context, slides []model.Slide) ([]model.NarrationEntry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.NarrationEntry, len(slides))
	for i, s := range slides {
		out[i] = model.NarrationEntry{Index: s.Index, Content: fmt.Sprintf("narration %d", s.Index), Style: "calm"}
	}
	return out, nil
}

// fakeSynth returns 100ms of audio per slide, tagged with the slide number
// in the first byte. behave may override a call by slide index.
type fakeSynth struct {
	mu       sync.Mutex
	inFlight int
	maxSeen  int
	behave   func(ctx context.Context, index int) error
}

func (f *fakeSynth) Synthesize(ctx context.Context, req speech.Request) (model.PCM, error) {
	var index int
	fmt.Sscanf(req.Text, "narration %d", &index)

	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.behave != nil {
		if err := f.behave(ctx, index); err != nil {
			return model.PCM{}, err
		}
	}
	// 100ms + index*10ms of 24kHz mono audio
	samples := 2400 + index*240
	return model.PCM{Data: make([]byte, samples*2), SampleRate: 24000, Channels: 1}, nil
}

type fakeEncoder struct {
	mu        sync.Mutex
	durations map[string]time.Duration
	concat    []string
	tones     int
	renderErr map[int]error
	concatErr error
	toneErr   error
}

func newFakeEncoder() *fakeEncoder {
	return &fakeEncoder{durations: make(map[string]time.Duration), renderErr: make(map[int]error)}
}

func (f *fakeEncoder) WrapPCM(ctx context.Context, pcm model.PCM, dst string) error {
	if err := os.WriteFile(dst, pcm.Data, 0644); err != nil {
		return err
	}
	f.mu.Lock()
	f.durations[dst] = pcm.Duration()
	f.mu.Unlock()
	return nil
}

func (f *fakeEncoder) RenderClip(ctx context.Context, image, audio, dst string) error {
	var index int
	fmt.Sscanf(filepath.Base(dst), "page_%d.mp4", &index)
	if err := f.renderErr[index]; err != nil {
		// leave a partial clip behind, as a crashed ffmpeg would
		os.WriteFile(dst, []byte("partial"), 0644)
		return err
	}
	if err := os.WriteFile(dst, []byte("clip:"+image), 0644); err != nil {
		return err
	}
	f.mu.Lock()
	f.durations[dst] = f.durations[audio]
	f.mu.Unlock()
	return nil
}

func (f *fakeEncoder) Concat(ctx context.Context, clips []string, dst string) error {
	f.mu.Lock()
	f.concat = append([]string(nil), clips...)
	f.mu.Unlock()
	if f.concatErr != nil {
		return f.concatErr
	}

	var total time.Duration
	for _, c := range clips {
		total += f.durations[c]
	}
	if err := os.WriteFile(dst, []byte(strings.Join(clips, "\n")), 0644); err != nil {
		return err
	}
	f.mu.Lock()
	f.durations[dst] = total
	f.mu.Unlock()
	return nil
}

func (f *fakeEncoder) Tone(ctx context.Context, frequency int, seconds float64, dst string) error {
	f.mu.Lock()
	f.tones++
	f.mu.Unlock()
	if f.toneErr != nil {
		return f.toneErr
	}
	if err := os.WriteFile(dst, []byte("tone"), 0644); err != nil {
		return err
	}
	f.mu.Lock()
	f.durations[dst] = time.Duration(seconds * float64(time.Second))
	f.mu.Unlock()
	return nil
}

func (f *fakeEncoder) Duration(ctx context.Context, path string) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.durations[path]
	if !ok {
		return 0, errors.New("no such file")
	}
	return d, nil
}

type recordingObserver struct {
	mu       sync.Mutex
	statuses []model.Status
}

func (r *recordingObserver) OnStatus(ctx context.Context, job *model.Job, status model.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Gemini: config.GeminiConfig{APIKeys: []string{"k"}},
		Paths:  config.PathsConfig{Work: "unused"},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	cfg.Performance.SlideConcurrency = 3
	cfg.Timeouts.Speech = 2 * time.Second
	cfg.Timeouts.Encode = 2 * time.Second
	return cfg
}
