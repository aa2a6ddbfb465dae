package encoder

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"github.com/nguyentantai21042004/slidecast/pkg/executor"
)

// frameTolerance is one frame at the 25fps test rate
const frameTolerance = 40 * time.Millisecond

func requireFFmpeg(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not installed", bin)
		}
	}
	out, err := executor.New().Execute(context.Background(), "ffmpeg", "-hide_banner", "-encoders")
	if err != nil {
		t.Skipf("list ffmpeg encoders: %v", err)
	}
	for _, enc := range []string{"libx264", "libmp3lame", "aac"} {
		if !strings.Contains(out, enc) {
			t.Skipf("ffmpeg built without %s", enc)
		}
	}
}

func writeSlide(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: 80, B: uint8(y * 5), A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func absDiff(a, b time.Duration) time.Duration {
	if a > b {
		return a - b
	}
	return b - a
}

func TestClipAndFinalDurationsFollowAudio(t *testing.T) {
	requireFFmpeg(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dir := t.TempDir()
	enc := New(testConfig(), executor.New(), logger.Nop())

	slide := filepath.Join(dir, "page_0.png")
	writeSlide(t, slide)

	lengths := []float64{1.0, 1.5}
	var clips []string
	var total time.Duration
	for i, secs := range lengths {
		audio := filepath.Join(dir, fmt.Sprintf("tone_%d.mp3", i))
		clip := filepath.Join(dir, fmt.Sprintf("clip_%d.mp4", i))

		if err := enc.Tone(ctx, 440, secs, audio); err != nil {
			t.Fatalf("Tone() error = %v", err)
		}
		if err := enc.RenderClip(ctx, slide, audio, clip); err != nil {
			t.Fatalf("RenderClip() error = %v", err)
		}

		audioLen, err := enc.Duration(ctx, audio)
		if err != nil {
			t.Fatalf("Duration(audio) error = %v", err)
		}
		clipLen, err := enc.Duration(ctx, clip)
		if err != nil {
			t.Fatalf("Duration(clip) error = %v", err)
		}
		if d := absDiff(clipLen, audioLen); d > frameTolerance {
			t.Errorf("clip %d length %v, audio %v: off by %v", i, clipLen, audioLen, d)
		}

		clips = append(clips, clip)
		total += clipLen
	}

	final := filepath.Join(dir, "final_video.mp4")
	if err := enc.Concat(ctx, clips, final); err != nil {
		t.Fatalf("Concat() error = %v", err)
	}
	finalLen, err := enc.Duration(ctx, final)
	if err != nil {
		t.Fatalf("Duration(final) error = %v", err)
	}
	if d := absDiff(finalLen, total); d > frameTolerance*time.Duration(len(clips)) {
		t.Errorf("final length %v, sum of clips %v: off by %v", finalLen, total, d)
	}
}
