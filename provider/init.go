package provider

import (
	"fmt"

	"idea2grow/config"
)

// InitializeGateway builds the backend selected in cfg and wraps it in a
// Gateway that reads keys from cfg.CredentialStore.
//
// A missing API key is not an error here: it surfaces as a configuration
// failure on the first Complete, so the UI can start and show it.
func InitializeGateway(cfg *config.Config) (*Gateway, error) {
	providerType := MapProviderIDToType(cfg.Provider)

	backend, err := NewBackend(Config{
		Type:    providerType,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %q: %w", cfg.Provider, err)
	}

	var creds CredentialProvider
	if cfg.CredentialStore != nil {
		creds = cfg.CredentialStore
	}

	config.Log.Info().
		Str("provider", backend.Name()).
		Str("type", string(providerType)).
		Dur("timeout", cfg.RequestTimeout).
		Msg("provider initialized")

	return NewGateway(backend, creds, GatewayOptions{
		ProviderID:        backend.Name(),
		Model:             cfg.Model,
		SystemInstruction: cfg.Prompts.SystemInstruction,
		Temperature:       cfg.Temperature,
		ThinkingBudget:    DefaultThinkingBudget,
	}), nil
}
