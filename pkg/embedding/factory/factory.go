package factory

import (
	"fmt"

	"ai-foodchat-be/pkg/embedding"
	"ai-foodchat-be/pkg/embedding/jina"
)

// NewProvider selects the embedding backend. All backends emit vectors
// compatible with the 768-dim recipe_embeddings column.
func NewProvider(providerType, apiKey, baseURL, model string) (embedding.EmbeddingProvider, error) {
	switch providerType {
	case "gemini":
		return embedding.NewGeminiProvider(apiKey), nil
	case "ollama":
		return embedding.NewOllamaProvider(baseURL, model), nil
	case "jina":
		return jina.NewJinaProvider(apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
