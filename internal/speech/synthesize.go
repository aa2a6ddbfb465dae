package speech

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/gemini"
	"github.com/nguyentantai21042004/slidecast/internal/model"
	"google.golang.org/genai"
)

// Synthesize makes one speech call and returns the samples as delivered
func (s *implSynthesizer) Synthesize(ctx context.Context, req Request) (model.PCM, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return model.PCM{}, ErrEmptyText
	}
	voice, err := ResolveVoice(req.Voice, s.defaultVoice)
	if err != nil {
		return model.PCM{}, err
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: voice},
			},
		},
	}

	start := time.Now()
	resp, err := s.gen.GenerateContent(ctx, s.model, genai.Text(prompt(text, req.Style)), cfg)
	if err != nil {
		return model.PCM{}, providerError(err)
	}

	blob := gemini.InlineData(resp)
	if blob == nil {
		return model.PCM{}, noAudioError(resp)
	}

	pcm := model.PCM{
		Data:       blob.Data,
		SampleRate: sampleRate(blob.MIMEType),
		Channels:   1,
	}
	s.logger.Debug(ctx, "Synthesized %v of audio with %s in %v", pcm.Duration().Round(time.Millisecond), voice, time.Since(start).Round(time.Millisecond))
	return pcm, nil
}

// prompt leads with the delivery instruction, the form the speech model follows
func prompt(text, style string) string {
	style = strings.TrimSpace(style)
	if style == "" {
		return text
	}
	return strings.TrimRight(style, ".:; ") + ":\n" + text
}

// sampleRate reads rate= from a MIME type like audio/L16;codec=pcm;rate=24000
func sampleRate(mime string) int {
	for _, param := range strings.Split(mime, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(k, "rate") {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultSampleRate
}
