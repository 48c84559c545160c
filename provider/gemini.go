package provider

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"idea2grow/config"
)

const (
	DefaultGeminiModel   = "gemini-3-flash-preview"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/"
)

// GeminiBackend calls the Gemini generateContent API with optional Google
// Search grounding.
type GeminiBackend struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

// NewGeminiBackend creates a Gemini backend. An empty baseURL or model
// selects the public endpoint and DefaultGeminiModel.
func NewGeminiBackend(cfg Config) (*GeminiBackend, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiBackend{
		httpClient: newHTTPClient(cfg),
		baseURL:    baseURL,
		model:      modelName,
	}, nil
}

func (b *GeminiBackend) Name() string { return string(ProviderTypeGemini) }

func (b *GeminiBackend) RequiresCredential() bool { return true }

// Model returns the default model used when a request names none.
func (b *GeminiBackend) Model() string { return b.model }

// Generate implements Backend. The SDK client is built per call because the
// API key travels with the request.
func (b *GeminiBackend) Generate(ctx context.Context, req Request) (*Response, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     req.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: b.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: b.baseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelName := req.Model
	if modelName == "" {
		modelName = b.model
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(int32(req.ThinkingBudget)),
		},
	}
	if req.SystemInstruction != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.GroundingEnabled {
		genCfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	config.Log.Debug().
		Str("model", modelName).
		Int("contents", len(req.Messages)).
		Bool("grounding", req.GroundingEnabled).
		Msg("gemini: generateContent")

	resp, err := client.Models.GenerateContent(ctx, modelName, ConvertToGeminiContents(req.Messages), genCfg)
	if err != nil {
		return nil, err
	}

	return &Response{
		Text:      resp.Text(),
		Grounding: convertGeminiGrounding(resp),
	}, nil
}

// convertGeminiGrounding copies the first candidate's web grounding chunks.
func convertGeminiGrounding(resp *genai.GenerateContentResponse) *GroundingMetadata {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	gm := resp.Candidates[0].GroundingMetadata
	if gm == nil {
		return nil
	}

	meta := &GroundingMetadata{Chunks: make([]GroundingChunk, 0, len(gm.GroundingChunks))}
	for _, chunk := range gm.GroundingChunks {
		if chunk == nil {
			continue
		}
		var web *WebSource
		if chunk.Web != nil {
			web = &WebSource{URI: chunk.Web.URI, Title: chunk.Web.Title}
		}
		meta.Chunks = append(meta.Chunks, GroundingChunk{Web: web})
	}
	return meta
}
