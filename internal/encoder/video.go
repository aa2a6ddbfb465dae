package encoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var ErrNoClips = errors.New("no clips to concatenate")

// RenderClip holds image as the only frame source until audio ends. The
// output is cut at the measured audio length because -shortest alone lets a
// looped still run past the audio by several frames.
func (e *implEncoder) RenderClip(ctx context.Context, image, audio, dst string) error {
	length, err := e.Duration(ctx, audio)
	if err != nil {
		e.logger.Warn(ctx, "Audio length of %s unknown, relying on -shortest: %v", filepath.Base(audio), err)
		length = 0
	}

	// -loop 1: repeat the still image indefinitely
	// -shortest: stop when the audio stream ends
	// -t: hard stop at the audio length
	// -movflags +faststart: moov atom first for streaming
	args := []string{
		"-y",
		"-loop", "1",
		"-i", image,
		"-i", audio,
		"-c:v", e.cfg.VideoCodec,
	}
	args = append(args, e.stillImageArgs()...)
	args = append(args,
		"-c:a", e.cfg.AudioCodec,
		"-b:a", e.cfg.AudioBitrate,
		"-r", strconv.Itoa(e.cfg.FrameRate),
		"-pix_fmt", e.cfg.PixelFormat,
		"-shortest",
	)
	if length > 0 {
		args = append(args, "-t", seconds(length))
	}
	args = append(args, "-movflags", "+faststart", dst)

	if _, err := e.executor.Execute(ctx, e.cfg.Binary, args...); err != nil {
		return fmt.Errorf("ffmpeg render clip: %w", err)
	}
	return nil
}

// Concat writes a concat demuxer list and re-encodes the joined clips onto
// one constant frame rate timeline. A partial dst is removed on failure.
func (e *implEncoder) Concat(ctx context.Context, clips []string, dst string) error {
	if len(clips) == 0 {
		return ErrNoClips
	}

	list, err := e.writeList(dst, clips)
	if err != nil {
		return err
	}
	defer e.removeTemp(ctx, list)

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0", // absolute paths in the list
		"-i", list,
		"-c:v", e.cfg.VideoCodec,
		"-preset", e.cfg.Preset,
		"-c:a", e.cfg.AudioCodec,
		"-b:a", e.cfg.AudioBitrate,
		"-pix_fmt", e.cfg.PixelFormat,
		"-r", strconv.Itoa(e.cfg.FrameRate),
		"-fps_mode", "cfr",
		"-movflags", "+faststart",
		dst,
	}

	if _, err := e.executor.Execute(ctx, e.cfg.Binary, args...); err != nil {
		e.removeTemp(ctx, dst)
		return fmt.Errorf("ffmpeg concat: %w", err)
	}
	return nil
}

func (e *implEncoder) writeList(dst string, clips []string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(dst), "clips-*.txt")
	if err != nil {
		return "", fmt.Errorf("create concat list: %w", err)
	}

	var sb strings.Builder
	for _, clip := range clips {
		abs, err := filepath.Abs(clip)
		if err != nil {
			f.Close()
			os.Remove(f.Name())
			return "", fmt.Errorf("resolve clip %s: %w", clip, err)
		}
		fmt.Fprintf(&sb, "file '%s'\n", quote(abs))
	}

	if _, err := f.WriteString(sb.String()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write concat list: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close concat list: %w", err)
	}
	return f.Name(), nil
}

func (e *implEncoder) stillImageArgs() []string {
	args := []string{"-preset", e.cfg.Preset}
	if e.cfg.VideoCodec == "libx264" {
		args = append(args, "-tune", "stillimage")
	}
	return args
}

// seconds formats d for ffmpeg time options, microsecond precision
func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 6, 64)
}

// quote escapes a path for a single-quoted concat list entry
func quote(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}
