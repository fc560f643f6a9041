package llm

import (
	"strings"
)

// ollamaKey stands in for the API key Ollama ignores but the client sends.
const ollamaKey = "ollama"

// NewOllamaClient talks to Ollama through its OpenAI-compatible /v1 API.
func NewOllamaClient(model, embeddingModel, baseURL string, maxTokens int) *OpenAIClient {
	return NewOpenAIClient(ollamaKey, model, embeddingModel, ollamaBaseURL(baseURL), maxTokens)
}

func ollamaBaseURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(baseURL, "/v1") {
		baseURL += "/v1"
	}
	return baseURL
}
