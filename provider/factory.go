package provider

import (
	"fmt"
	"strings"
)

// NewBackend creates a backend based on configuration.
//
// Supported provider types:
//   - ProviderTypeGemini: Gemini API with Google Search grounding
//   - ProviderTypeOpenAI: OpenAI chat completions
//   - ProviderTypeOpenRouter: OpenRouter (OpenAI-compatible)
//   - ProviderTypeAnthropic: Anthropic messages API
//   - ProviderTypeOllama: local Ollama server
//
// Returns an error for unknown types or when the backend constructor fails
// (e.g. an unparseable Ollama URL).
func NewBackend(cfg Config) (Backend, error) {
	switch cfg.Type {
	case ProviderTypeGemini:
		return NewGeminiBackend(cfg)
	case ProviderTypeOpenAI:
		return NewOpenAIBackend(cfg)
	case ProviderTypeOpenRouter:
		return NewOpenRouterBackend(cfg)
	case ProviderTypeAnthropic:
		return NewAnthropicBackend(cfg)
	case ProviderTypeOllama:
		return NewOllamaBackend(cfg)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// MapProviderIDToType converts a config provider ID to a ProviderType.
// IDs are matched case-insensitively.
// Unknown IDs are passed through and rejected by NewBackend.
func MapProviderIDToType(id string) ProviderType {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "gemini":
		return ProviderTypeGemini
	case "openai":
		return ProviderTypeOpenAI
	case "openrouter":
		return ProviderTypeOpenRouter
	case "anthropic":
		return ProviderTypeAnthropic
	case "ollama":
		return ProviderTypeOllama
	default:
		return ProviderType(id)
	}
}

// IsKnownProvider reports whether id names a supported provider.
func IsKnownProvider(id string) bool {
	switch MapProviderIDToType(id) {
	case ProviderTypeGemini, ProviderTypeOpenAI, ProviderTypeOpenRouter, ProviderTypeAnthropic, ProviderTypeOllama:
		return true
	}
	return false
}
