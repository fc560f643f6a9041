package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/orggraph/internal/config"
)

// NewClient builds the generator and, where the provider has one, the
// embedder for cfg. Claude has no embedding API, so its embedder is nil.
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, EmbedderClient, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	switch provider {
	case "openai":
		c := NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.EmbeddingModel, cfg.BaseURL, cfg.MaxTokens)
		return c, c, nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.EmbeddingModel, cfg.MaxTokens)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil

	case "claude", "anthropic":
		c := NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens)
		return c, nil, nil

	case "ollama", "":
		c := NewOllamaClient(cfg.Model, cfg.EmbeddingModel, cfg.BaseURL, cfg.MaxTokens)
		return c, c, nil

	default:
		return nil, nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
