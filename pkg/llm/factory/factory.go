package factory

import (
	"fmt"

	"insightsmith-be/pkg/llm"
	"insightsmith-be/pkg/llm/ollama"
	"insightsmith-be/pkg/llm/openai"
)

// NewLLMProvider builds the configured provider. "rules" returns nil: the
// composer then runs fully rule-based with no external model.
func NewLLMProvider(providerType, modelName, ollamaBaseURL, openaiBaseURL, openaiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "openai":
		if openaiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return openai.NewOpenAIProvider(openaiKey, openaiBaseURL, modelName), nil
	case "rules", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
