package testutil

import (
	"idea2grow/model"
	"idea2grow/provider"
)

// ValidGeminiKey passes provider.ValidateAPIKey.
const ValidGeminiKey = "AIzaSyTestKey0123456789abcdef"

// GeminiCredentials returns a credential source holding ValidGeminiKey.
func GeminiCredentials() StaticCredentials {
	return StaticCredentials{"gemini": ValidGeminiKey}
}

// TestHistory returns a short two-turn exchange.
func TestHistory() []model.HistoryEntry {
	return []model.HistoryEntry{
		{Role: model.RoleUser, Content: "Hi"},
		{Role: model.RoleModel, Content: "Hello! How can I help you grow today?"},
	}
}

// DuplicateGrounding returns metadata with a repeated URI, a chunk without a
// URI and a chunk without a title.
func DuplicateGrounding() *provider.GroundingMetadata {
	return &provider.GroundingMetadata{
		Chunks: []provider.GroundingChunk{
			{Web: &provider.WebSource{URI: "a", Title: "A"}},
			{Web: &provider.WebSource{URI: "a", Title: "A2"}},
			{Web: &provider.WebSource{URI: "", Title: "B"}},
			{Web: &provider.WebSource{URI: "c", Title: ""}},
		},
	}
}

// TrendingIdeasResponse is a grounded answer with markup and one source.
func TrendingIdeasResponse() *provider.Response {
	return &provider.Response{
		Text: "**Top idea:** AI tutoring\n* Low cost\n* High demand",
		Grounding: &provider.GroundingMetadata{
			Chunks: []provider.GroundingChunk{
				{Web: &provider.WebSource{URI: "https://idea2grow.com/x", Title: "Idea2Grow"}},
			},
		},
	}
}
