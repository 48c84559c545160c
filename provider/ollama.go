package provider

import (
	"context"
	"fmt"

	"idea2grow/config"
	"idea2grow/ollama"
)

// OllamaBackend talks to a local Ollama server. It needs no credential and
// does not ground answers.
type OllamaBackend struct {
	client *ollama.Client
}

// NewOllamaBackend creates an Ollama backend. An empty BaseURL selects
// http://localhost:11434.
func NewOllamaBackend(cfg Config) (*OllamaBackend, error) {
	client, err := ollama.NewClient(cfg.BaseURL, cfg.Model, newHTTPClient(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	return &OllamaBackend{client: client}, nil
}

func (b *OllamaBackend) Name() string { return string(ProviderTypeOllama) }

func (b *OllamaBackend) RequiresCredential() bool { return false }

func (b *OllamaBackend) Model() string { return b.client.GetModel() }

// Generate implements Backend.
func (b *OllamaBackend) Generate(ctx context.Context, req Request) (*Response, error) {
	messages := ConvertToOllamaMessages(req.SystemInstruction, req.Messages)

	config.Log.Debug().Str("url", b.client.BaseURL()).Str("model", b.Model()).Int("messages", len(messages)).Msg("ollama: chat")

	text, err := b.client.Chat(ctx, req.Model, messages, ollama.Options{Temperature: req.Temperature})
	if err != nil {
		return nil, err
	}
	return &Response{Text: text}, nil
}
