package provider

const (
	DefaultOpenRouterModel   = "google/gemini-2.5-flash"
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// NewOpenRouterBackend creates an OpenAI-compatible backend pointed at
// OpenRouter. Credentials are looked up under the "openrouter" ID.
func NewOpenRouterBackend(cfg Config) (*OpenAIBackend, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenRouterBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultOpenRouterModel
	}
	return newOpenAICompatible(string(ProviderTypeOpenRouter), baseURL, modelName, newHTTPClient(cfg)), nil
}
