package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiEmbeddingModel = "text-embedding-004"

type GeminiClient struct {
	client         *genai.Client
	model          string
	embeddingModel string
	maxTokens      int32
}

func NewGeminiClient(ctx context.Context, apiKey, model, embeddingModel string, maxTokens int) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if embeddingModel == "" {
		embeddingModel = defaultGeminiEmbeddingModel
	}
	return &GeminiClient{
		client:         client,
		model:          model,
		embeddingModel: embeddingModel,
		maxTokens:      int32(maxTokens),
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	if c.maxTokens > 0 {
		model.SetMaxOutputTokens(c.maxTokens)
	}
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				return string(txt), nil
			}
		}
	}
	return "", fmt.Errorf("gemini: no response candidates or content")
}

func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := c.client.EmbeddingModel(c.embeddingModel).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if res.Embedding != nil {
		return res.Embedding.Values, nil
	}
	return nil, fmt.Errorf("gemini: no embedding values")
}

func (c *GeminiClient) Close() error { return c.client.Close() }
