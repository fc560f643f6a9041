package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

type ClaudeClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

func NewClaudeClient(apiKey, model, baseURL string, maxTokens int) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	return &ClaudeClient{
		client:    anthropic.NewClient(apiKey, opts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(prompt),
				},
			},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("claude: %w", err)
	}

	for _, part := range resp.Content {
		if part.Text != nil {
			return *part.Text, nil
		}
	}
	return "", fmt.Errorf("claude: no response content")
}
