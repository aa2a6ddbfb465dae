package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/slidecast/internal/logger"
	"google.golang.org/genai"
)

// Options configures a rotating client
type Options struct {
	APIKeys []string
	// BaseURL overrides the API endpoint, used against local fakes
	BaseURL string
}

// Client is a Generator that spreads calls across several API keys and
// moves on to the next key when one is rate limited.
type Client struct {
	keys    []string
	baseURL string
	logger  logger.Logger

	mu      sync.Mutex
	current int
	clients map[int]*genai.Client
}

// New creates a rotating client. At least one key is required.
func New(opts Options, log logger.Logger) (*Client, error) {
	if len(opts.APIKeys) == 0 {
		return nil, errors.New("gemini: at least one API key is required")
	}
	return &Client{
		keys:    opts.APIKeys,
		baseURL: opts.BaseURL,
		logger:  log,
		clients: make(map[int]*genai.Client),
	}, nil
}

// GenerateContent calls the models service, rotating keys on 429 / quota errors.
func (c *Client) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for range len(c.keys) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		idx, client, err := c.acquire(ctx)
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateFrom(idx)
			continue
		}

		start := time.Now()
		resp, err := client.Models.GenerateContent(ctx, model, contents, config)
		if err != nil {
			if IsRateLimited(err) {
				c.logger.Warn(ctx, "Key %d rate limited on %s, rotating...", idx+1, model)
				c.rotateFrom(idx)
				lastErr = err
				continue
			}
			return nil, err
		}

		c.logger.Debug(ctx, "%s answered in %v", model, time.Since(start).Round(time.Millisecond))
		return resp, nil
	}

	return nil, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *Client) acquire(ctx context.Context) (int, *genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.current
	if client, ok := c.clients[idx]; ok {
		return idx, client, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  c.keys[idx],
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return idx, nil, err
	}
	c.clients[idx] = client
	return idx, client, nil
}

// rotateFrom advances past idx unless another caller already did
func (c *Client) rotateFrom(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == idx {
		c.current = (c.current + 1) % len(c.keys)
	}
}

// IsRateLimited reports whether err is a quota or rate-limit rejection
func IsRateLimited(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED"
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// ResponseText concatenates the text parts of the first candidate
func ResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// InlineData returns the first inline blob of the first candidate
func InlineData(resp *genai.GenerateContentResponse) *genai.Blob {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData
		}
	}
	return nil
}
