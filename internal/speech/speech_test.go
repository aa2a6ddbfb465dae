package speech

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nguyentantai21042004/slidecast/internal/gemini"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	resp   *genai.GenerateContentResponse
	err    error
	text   string
	config *genai.GenerateContentConfig
	calls  int
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.text = contents[0].Parts[0].Text
	f.config = config
	return f.resp, f.err
}

func audioResponse(mime string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mime, Data: data}}}},
		}},
	}
}

func TestSynthesize(t *testing.T) {
	gen := &fakeGenerator{resp: audioResponse("audio/L16;codec=pcm;rate=24000", make([]byte, 48000))}
	s := New(gen, "tts-model", "Aoede", logger.Nop())

	pcm, err := s.Synthesize(context.Background(), Request{Text: " Welcome back. ", Style: "Warm and upbeat.", Voice: "kore"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if pcm.SampleRate != 24000 || pcm.Channels != 1 || len(pcm.Data) != 48000 {
		t.Errorf("pcm = rate %d, channels %d, %d bytes", pcm.SampleRate, pcm.Channels, len(pcm.Data))
	}
	if gen.text != "Warm and upbeat:\nWelcome back." {
		t.Errorf("prompt = %q", gen.text)
	}
	if got := gen.config.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName; got != "Kore" {
		t.Errorf("voice = %q, want Kore", got)
	}
	if len(gen.config.ResponseModalities) != 1 || gen.config.ResponseModalities[0] != "AUDIO" {
		t.Errorf("modalities = %v", gen.config.ResponseModalities)
	}
}

func TestSynthesizeDefaultVoice(t *testing.T) {
	gen := &fakeGenerator{resp: audioResponse("audio/L16;rate=16000", []byte{0, 0})}
	pcm, err := New(gen, "tts-model", "Aoede", logger.Nop()).Synthesize(context.Background(), Request{Text: "hi"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if got := gen.config.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName; got != "Aoede" {
		t.Errorf("voice = %q, want Aoede", got)
	}
	if pcm.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", pcm.SampleRate)
	}
	if gen.text != "hi" {
		t.Errorf("prompt without style = %q, want plain text", gen.text)
	}
}

func TestSynthesizeRejections(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		gen       *fakeGenerator
		wantIs    error
		wantCalls int
	}{
		{"empty text", Request{Text: "   "}, &fakeGenerator{}, ErrEmptyText, 0},
		{"unknown voice", Request{Text: "hi", Voice: "Robot"}, &fakeGenerator{}, ErrUnknownVoice, 0},
		{"no audio part", Request{Text: "hi"}, &fakeGenerator{resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
		}}, ErrNoAudio, 1},
		{"deadline", Request{Text: "hi"}, &fakeGenerator{err: context.DeadlineExceeded}, context.DeadlineExceeded, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.gen, "tts-model", "Aoede", logger.Nop()).Synthesize(context.Background(), tt.req)
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("Synthesize() error = %v, want %v", err, tt.wantIs)
			}
			if tt.gen.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", tt.gen.calls, tt.wantCalls)
			}
		})
	}
}

func TestSynthesizeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"code":500,"message":"internal error encountered","status":"INTERNAL"}}`)
	}))
	defer srv.Close()

	client, err := gemini.New(gemini.Options{APIKeys: []string{"k"}, BaseURL: srv.URL}, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}

	_, err = New(client, "tts-model", "Aoede", logger.Nop()).Synthesize(context.Background(), Request{Text: "hi"})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("Synthesize() error = %v, want *ProviderError", err)
	}
	if pe.Status != 500 || pe.Payload != "INTERNAL: internal error encountered" {
		t.Errorf("ProviderError = %+v", pe)
	}
}

func TestResolveVoice(t *testing.T) {
	tests := []struct {
		voice    string
		fallback string
		want     string
		wantErr  bool
	}{
		{"", "Aoede", "Aoede", false},
		{"puck", "Aoede", "Puck", false},
		{" Charon ", "Aoede", "Charon", false},
		{"Nova", "Aoede", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.voice+"/"+tt.fallback, func(t *testing.T) {
			got, err := ResolveVoice(tt.voice, tt.fallback)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveVoice() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveVoice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSampleRate(t *testing.T) {
	tests := map[string]int{
		"audio/L16;codec=pcm;rate=24000": 24000,
		"audio/L16; rate=44100":          44100,
		"audio/pcm":                      24000,
		"audio/L16;rate=abc":             24000,
		"":                               24000,
	}
	for mime, want := range tests {
		if got := sampleRate(mime); got != want {
			t.Errorf("sampleRate(%q) = %d, want %d", mime, got, want)
		}
	}
}
