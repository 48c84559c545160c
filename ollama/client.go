package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.1:latest"
)

type Client struct {
	client  *api.Client
	model   string
	baseURL string
}

// NewClient creates a client for a local Ollama server. httpClient carries
// the request timeout; nil uses http.DefaultClient.
func NewClient(baseURL, model string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &Client{
		client:  api.NewClient(parsedURL, httpClient),
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Options are sampling parameters passed through to the model.
type Options struct {
	Temperature float64
}

// Chat sends a non-streaming chat request and returns the full answer.
// An empty model uses the client's default.
func (c *Client) Chat(ctx context.Context, model string, messages []api.Message, opts Options) (string, error) {
	if model == "" {
		model = c.model
	}
	req := &api.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   func(b bool) *bool { return &b }(false),
		Options: map[string]any{
			"temperature": opts.Temperature,
		},
	}

	// Accumulate in case the server still sends the reply in parts.
	var content strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	return content.String(), nil
}

func (c *Client) GetModel() string {
	return c.model
}

func (c *Client) BaseURL() string {
	return c.baseURL
}
