package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"idea2grow/config"
	"idea2grow/model"
)

// FallbackText is returned when the backend answers with no text.
const FallbackText = "I'm sorry, I couldn't generate a response."

const (
	DefaultTemperature    = 0.4
	DefaultThinkingBudget = 0
)

// CredentialProvider resolves the API key for a provider ID. An empty
// result means no key is configured. config.CredentialStore implements it.
type CredentialProvider interface {
	APIKey(providerID string) string
}

// GatewayOptions carries the request framing settings.
type GatewayOptions struct {
	ProviderID        string // Credential lookup key; defaults to the backend name
	Model             string
	SystemInstruction string
	Temperature       float64 // Zero selects DefaultTemperature
	ThinkingBudget    int
	DisableGrounding  bool
}

// Gateway performs one completion per call. It holds no conversation state
// and is safe for concurrent use if the backend is.
type Gateway struct {
	backend Backend
	creds   CredentialProvider
	opts    GatewayOptions
}

// NewGateway creates a gateway over backend.
func NewGateway(backend Backend, creds CredentialProvider, opts GatewayOptions) *Gateway {
	if opts.ProviderID == "" {
		opts.ProviderID = backend.Name()
	}
	if opts.Temperature == 0 {
		opts.Temperature = DefaultTemperature
	}
	return &Gateway{
		backend: backend,
		creds:   creds,
		opts:    opts,
	}
}

// ProviderID returns the provider the gateway resolves credentials for.
func (g *Gateway) ProviderID() string {
	return g.opts.ProviderID
}

// Model returns the configured model, or the backend default.
func (g *Gateway) Model() string {
	if g.opts.Model != "" {
		return g.opts.Model
	}
	return g.backend.Model()
}

// Complete implements model.Completer. Every returned error is a
// *CompletionError.
func (g *Gateway) Complete(ctx context.Context, prompt string, history []model.HistoryEntry) (model.Completion, error) {
	apiKey, err := g.resolveKey()
	if err != nil {
		config.Log.Warn().Str("provider", g.opts.ProviderID).Err(err).Msg("gateway: credential check failed")
		return model.Completion{}, err
	}

	req := g.buildRequest(prompt, history, apiKey)

	start := time.Now()
	resp, err := g.backend.Generate(ctx, req)
	if err != nil {
		classified := Classify(err)
		config.Log.Error().
			Str("provider", g.opts.ProviderID).
			Str("kind", KindOf(classified).String()).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("gateway: generation failed")
		return model.Completion{}, classified
	}

	completion := model.Completion{Text: FallbackText}
	if resp != nil {
		if strings.TrimSpace(resp.Text) != "" {
			completion.Text = resp.Text
		}
		completion.Sources = ExtractCitations(resp.Grounding)
	}

	config.Log.Debug().
		Str("provider", g.opts.ProviderID).
		Dur("elapsed", time.Since(start)).
		Int("chars", len(completion.Text)).
		Int("sources", len(completion.Sources)).
		Msg("gateway: generation complete")

	return completion, nil
}

func (g *Gateway) resolveKey() (string, error) {
	if !g.backend.RequiresCredential() {
		return "", nil
	}

	var key string
	if g.creds != nil {
		key = strings.TrimSpace(g.creds.APIKey(g.opts.ProviderID))
	}

	envVar := config.EnvVarName(g.opts.ProviderID)
	switch err := ValidateAPIKey(key); {
	case err == nil:
		return key, nil
	case errors.Is(err, ErrMissingAPIKey):
		ce := configurationError(msgMissingCredential, envVar, g.opts.ProviderID)
		ce.Err = err
		return "", ce
	default:
		ce := configurationError(msgInvalidCredential, envVar, g.opts.ProviderID)
		ce.Err = err
		return "", ce
	}
}

func (g *Gateway) buildRequest(prompt string, history []model.HistoryEntry, apiKey string) Request {
	messages := make([]model.HistoryEntry, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, model.HistoryEntry{Role: model.RoleUser, Content: prompt})

	return Request{
		Model:             g.opts.Model,
		Messages:          messages,
		SystemInstruction: g.opts.SystemInstruction,
		GroundingEnabled:  !g.opts.DisableGrounding,
		Temperature:       g.opts.Temperature,
		ThinkingBudget:    g.opts.ThinkingBudget,
		APIKey:            apiKey,
	}
}
