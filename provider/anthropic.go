package provider

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"idea2grow/config"
)

const (
	DefaultAnthropicBaseURL = "https://api.anthropic.com"
	anthropicMaxTokens      = 4096 // Required by the messages API
)

// AnthropicBackend uses Anthropic's messages API. No grounding.
type AnthropicBackend struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicBackend creates an Anthropic backend.
func NewAnthropicBackend(cfg Config) (*AnthropicBackend, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultAnthropicBaseURL
	}
	modelName := anthropic.ModelClaudeSonnet4_5_20250929
	if cfg.Model != "" {
		modelName = anthropic.Model(cfg.Model)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(newHTTPClient(cfg)),
		option.WithMaxRetries(0),
	)

	return &AnthropicBackend{
		client: client,
		model:  modelName,
	}, nil
}

func (b *AnthropicBackend) Name() string { return string(ProviderTypeAnthropic) }

func (b *AnthropicBackend) RequiresCredential() bool { return true }

func (b *AnthropicBackend) Model() string { return string(b.model) }

// Generate implements Backend.
func (b *AnthropicBackend) Generate(ctx context.Context, req Request) (*Response, error) {
	modelName := b.model
	if req.Model != "" {
		modelName = anthropic.Model(req.Model)
	}

	messages, system := ConvertToAnthropicMessages(req.SystemInstruction, req.Messages)
	params := anthropic.MessageNewParams{
		Model:       modelName,
		Messages:    messages,
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(req.Temperature),
	}
	if len(system) > 0 {
		params.System = system
	}

	config.Log.Debug().Str("model", string(modelName)).Int("messages", len(messages)).Msg("anthropic: create message")

	msg, err := b.client.Messages.New(ctx, params, option.WithAPIKey(req.APIKey))
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(tb.Text)
		}
	}
	return &Response{Text: text.String()}, nil
}
