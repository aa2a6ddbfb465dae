package speech

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

var (
	ErrEmptyText    = errors.New("narration text is empty")
	ErrUnknownVoice = errors.New("unknown voice")
	ErrNoAudio      = errors.New("speech response carried no audio")
)

// ProviderError is a rejection from the speech service
type ProviderError struct {
	Status  int
	Payload string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("speech provider returned %d: %s", e.Status, e.Payload)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// providerError attaches the provider status and payload when err came from the API
func providerError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		payload := apiErr.Message
		if apiErr.Status != "" {
			payload = apiErr.Status + ": " + payload
		}
		return &ProviderError{Status: apiErr.Code, Payload: payload, Err: err}
	}
	return err
}

func noAudioError(resp *genai.GenerateContentResponse) error {
	payload := "no candidates"
	if resp != nil && len(resp.Candidates) > 0 {
		payload = "finish reason " + string(resp.Candidates[0].FinishReason)
	}
	if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		payload = "blocked: " + string(resp.PromptFeedback.BlockReason)
	}
	return &ProviderError{Status: http.StatusOK, Payload: payload, Err: ErrNoAudio}
}
