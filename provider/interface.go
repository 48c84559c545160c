// Package provider turns a prompt plus conversation history into a grounded
// answer.
//
// The Gateway is the single entry point used by the conversation: it resolves
// the credential, frames the request, calls a Backend and classifies any
// failure into a *CompletionError. Backends are thin adapters over one vendor
// SDK each:
//
//   - GeminiBackend: google.golang.org/genai, Google Search grounding (default)
//   - OpenAIBackend: openai-go (also used for OpenRouter)
//   - AnthropicBackend: anthropic-sdk-go
//   - OllamaBackend: local Ollama server, no credential
//
// # Usage
//
//	backend, err := provider.NewBackend(provider.Config{
//	    Type:    provider.ProviderTypeGemini,
//	    Timeout: 60 * time.Second,
//	})
//	if err != nil {
//	    // handle error
//	}
//	gw := provider.NewGateway(backend, cfg.CredentialStore, provider.GatewayOptions{
//	    ProviderID:        "gemini",
//	    SystemInstruction: cfg.Prompts.SystemInstruction,
//	})
//	completion, err := gw.Complete(ctx, "Trending business ideas for 2026", nil)
package provider

import (
	"context"
	"net/http"
	"time"

	"idea2grow/model"
)

// ProviderType identifies the backend implementation.
type ProviderType string

const (
	ProviderTypeGemini     ProviderType = "gemini"
	ProviderTypeOpenAI     ProviderType = "openai"
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeAnthropic  ProviderType = "anthropic"
	ProviderTypeOllama     ProviderType = "ollama"
)

// Config holds backend construction settings.
type Config struct {
	Type    ProviderType
	BaseURL string // Empty selects the vendor default
	Model   string // Empty selects the backend default
	Timeout time.Duration

	// HTTPClient overrides the client built from Timeout. Tests use it to
	// point backends at an httptest server.
	HTTPClient *http.Client
}

// Request is one fully framed completion call.
type Request struct {
	Model             string
	Messages          []model.HistoryEntry // Prior turns followed by the new user prompt
	SystemInstruction string
	GroundingEnabled  bool
	Temperature       float64
	ThinkingBudget    int
	APIKey            string // Empty for backends that need no credential
}

// Response is the backend's answer. Grounding is nil when the backend did not
// search or does not support grounding.
type Response struct {
	Text      string
	Grounding *GroundingMetadata
}

// GroundingMetadata mirrors the search metadata attached to a grounded
// answer. Every level is optional.
type GroundingMetadata struct {
	Chunks []GroundingChunk
}

// GroundingChunk is one retrieved item. Web is nil for non-web chunks.
type GroundingChunk struct {
	Web *WebSource
}

// WebSource is a web page backing part of an answer.
type WebSource struct {
	URI   string
	Title string
}

// Backend sends one non-streaming generation request to a vendor API.
type Backend interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider ID, e.g. "gemini".
	Name() string

	// Model returns the model used when Request.Model is empty.
	Model() string

	// RequiresCredential reports whether Generate needs Request.APIKey.
	RequiresCredential() bool
}

// newHTTPClient returns cfg.HTTPClient or a client with cfg.Timeout applied.
func newHTTPClient(cfg Config) *http.Client {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	return &http.Client{Timeout: cfg.Timeout}
}
