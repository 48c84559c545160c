package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"idea2grow/model"
)

// ConvertToGeminiContents maps history entries to Gemini contents. Gemini
// only knows "user" and "model"; system entries travel as the system
// instruction and are skipped here.
func ConvertToGeminiContents(messages []model.HistoryEntry) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleUser:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		case model.RoleModel:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		}
	}
	return contents
}

// ConvertToOpenAIMessages maps history entries to chat completion messages,
// with the system instruction first when present.
func ConvertToOpenAIMessages(system string, messages []model.HistoryEntry) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if system != "" {
		result = append(result, openai.SystemMessage(system))
	}
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleUser:
			result = append(result, openai.UserMessage(msg.Content))
		case model.RoleModel:
			result = append(result, openai.AssistantMessage(msg.Content))
		case model.RoleSystem:
			result = append(result, openai.SystemMessage(msg.Content))
		}
	}
	return result
}

// ConvertToAnthropicMessages maps history entries to Anthropic messages.
// Anthropic takes system text as a separate parameter, returned second.
func ConvertToAnthropicMessages(system string, messages []model.HistoryEntry) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var systemBlocks []anthropic.TextBlockParam
	if system != "" {
		systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: system})
	}

	result := make([]anthropic.MessageParam, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleUser:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case model.RoleModel:
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		case model.RoleSystem:
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: msg.Content})
		}
	}
	return result, systemBlocks
}

// ConvertToOllamaMessages maps history entries to Ollama messages.
func ConvertToOllamaMessages(system string, messages []model.HistoryEntry) []api.Message {
	result := make([]api.Message, 0, len(messages)+1)
	if system != "" {
		result = append(result, api.Message{Role: "system", Content: system})
	}
	for _, msg := range messages {
		result = append(result, api.Message{
			Role:    ollamaRole(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}

func ollamaRole(r model.Role) string {
	if r == model.RoleModel {
		return "assistant"
	}
	return string(r)
}
