package encoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

// toneSampleRate matches the speech output so placeholder and narrated
// clips share one audio layout
const toneSampleRate = 24000

var ErrNoSamples = errors.New("no audio samples")

// WrapPCM stages the samples in a temp file next to dst and converts them.
// The temp file is removed on every exit path.
func (e *implEncoder) WrapPCM(ctx context.Context, pcm model.PCM, dst string) error {
	if len(pcm.Data) == 0 {
		return ErrNoSamples
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".pcm-*.raw")
	if err != nil {
		return fmt.Errorf("create temp pcm: %w", err)
	}
	defer e.removeTemp(ctx, tmp.Name())

	if _, err := tmp.Write(pcm.Data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp pcm: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp pcm: %w", err)
	}

	channels := pcm.Channels
	if channels <= 0 {
		channels = 1
	}

	// -f s16le: headerless signed 16-bit little-endian input
	// -ar / -ac: must match what the speech service produced
	args := []string{
		"-y",
		"-f", "s16le",
		"-ar", strconv.Itoa(pcm.SampleRate),
		"-ac", strconv.Itoa(channels),
		"-i", tmp.Name(),
		"-b:a", e.cfg.AudioBitrate,
		dst,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.Binary, args...); err != nil {
		return fmt.Errorf("ffmpeg wrap pcm: %w", err)
	}
	return nil
}

// Tone renders a sine wave of the given length
func (e *implEncoder) Tone(ctx context.Context, frequency int, seconds float64, dst string) error {
	source := fmt.Sprintf("sine=frequency=%d:sample_rate=%d:duration=%s",
		frequency, toneSampleRate, strconv.FormatFloat(seconds, 'f', -1, 64))

	args := []string{
		"-y",
		"-f", "lavfi",
		"-i", source,
		"-ac", "1",
		"-b:a", e.cfg.AudioBitrate,
		dst,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.Binary, args...); err != nil {
		return fmt.Errorf("ffmpeg tone: %w", err)
	}
	return nil
}

func (e *implEncoder) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		e.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}
