package factory

import (
	"fmt"

	"rams-generator-be/pkg/llm"
	"rams-generator-be/pkg/llm/ollama"
	"rams-generator-be/pkg/llm/openai"
)

func NewProvider(providerType, modelName, baseURL, apiKey string) (llm.Provider, error) {
	switch providerType {
	case "openai":
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
