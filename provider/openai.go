package provider

import (
	"context"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"idea2grow/config"
)

const (
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
)

// OpenAIBackend uses OpenAI's chat completions API. It does not ground
// answers, so responses never carry sources.
type OpenAIBackend struct {
	client openai.Client
	name   string
	model  string
}

// NewOpenAIBackend creates an OpenAI backend.
func NewOpenAIBackend(cfg Config) (*OpenAIBackend, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultOpenAIModel
	}
	return newOpenAICompatible(string(ProviderTypeOpenAI), baseURL, modelName, newHTTPClient(cfg)), nil
}

func newOpenAICompatible(name, baseURL, modelName string, httpClient *http.Client) *OpenAIBackend {
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)
	return &OpenAIBackend{
		client: client,
		name:   name,
		model:  modelName,
	}
}

func (b *OpenAIBackend) Name() string { return b.name }

func (b *OpenAIBackend) RequiresCredential() bool { return true }

func (b *OpenAIBackend) Model() string { return b.model }

// Generate implements Backend.
func (b *OpenAIBackend) Generate(ctx context.Context, req Request) (*Response, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = b.model
	}

	params := openai.ChatCompletionNewParams{
		Messages:    ConvertToOpenAIMessages(req.SystemInstruction, req.Messages),
		Model:       openai.ChatModel(modelName),
		Temperature: openai.Float(req.Temperature),
	}

	config.Log.Debug().Str("backend", b.name).Str("model", modelName).Int("messages", len(params.Messages)).Msg("openai: chat completion")

	completion, err := b.client.Chat.Completions.New(ctx, params, option.WithAPIKey(req.APIKey))
	if err != nil {
		return nil, err
	}

	resp := &Response{}
	if len(completion.Choices) > 0 {
		resp.Text = completion.Choices[0].Message.Content
	}
	return resp, nil
}
