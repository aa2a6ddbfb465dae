package gemini

import (
	"context"

	"google.golang.org/genai"
)

// Generator is the subset of the genai models service used by the pipeline
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}
