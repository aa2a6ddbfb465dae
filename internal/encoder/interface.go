package encoder

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/model"
)

// Encoder wraps the ffmpeg operations the pipeline needs. Every method either
// leaves a complete output file at dst or returns an error.
type Encoder interface {
	// WrapPCM writes raw samples into a standard audio container
	WrapPCM(ctx context.Context, pcm model.PCM, dst string) error
	// RenderClip loops image for exactly the length of audio
	RenderClip(ctx context.Context, image, audio, dst string) error
	// Concat re-encodes clips, in the given order, into one constant frame rate video
	Concat(ctx context.Context, clips []string, dst string) error
	// Tone writes a fixed sine tone, used as placeholder narration
	Tone(ctx context.Context, frequency int, seconds float64, dst string) error
	// Duration probes a media file
	Duration(ctx context.Context, path string) (time.Duration, error)
}
