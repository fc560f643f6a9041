package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/orggraph/internal/config"
)

type MockLLM struct {
	Response      string
	ResponseQueue []string
	Err           error
	Prompts       []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

func TestReranker_ParsesOrder(t *testing.T) {
	m := &MockLLM{Response: "2, 0, 1"}
	got, err := NewSimpleLLMReranker(m).Rank(context.Background(), "payroll", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, got)
	assert.Contains(t, m.Prompts[0], "Query: payroll")
	assert.Contains(t, m.Prompts[0], "[2] c")
}

func TestReranker_RepairsReply(t *testing.T) {
	m := &MockLLM{Response: "Sure! 3, 3, 9, 1"}
	got, err := NewSimpleLLMReranker(m).Rank(context.Background(), "q", []string{"a", "b", "c", "d"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 0, 2}, got)
}

func TestReranker_FallsBackOnError(t *testing.T) {
	m := &MockLLM{Err: errors.New("rate limited")}
	got, err := NewSimpleLLMReranker(m).Rank(context.Background(), "q", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, got)
}

func TestReranker_TrivialInputs(t *testing.T) {
	m := &MockLLM{}
	r := NewSimpleLLMReranker(m)
	got, err := r.Rank(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = r.Rank(context.Background(), "q", []string{strings.Repeat("x", 500)})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, got)
	assert.Empty(t, m.Prompts)
}

func TestOllamaBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:11434/v1", ollamaBaseURL(""))
	assert.Equal(t, "http://host:11434/v1", ollamaBaseURL("http://host:11434/"))
	assert.Equal(t, "http://host:11434/v1", ollamaBaseURL("http://host:11434/v1"))
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	gen, emb, err := NewClient(ctx, config.LLMConfig{Provider: "OpenAI", Model: "gpt-4o-mini", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, gen)
	assert.NotNil(t, emb)

	gen, emb, err = NewClient(ctx, config.LLMConfig{Provider: "claude", Model: "claude-3-5-haiku-latest", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, gen)
	assert.Nil(t, emb)

	gen, _, err = NewClient(ctx, config.LLMConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.Equal(t, "llama3", gen.(*OpenAIClient).model)

	_, _, err = NewClient(ctx, config.LLMConfig{Provider: "watson"})
	assert.ErrorContains(t, err, "unsupported llm provider: watson")
}

func TestParseJSON(t *testing.T) {
	type label struct {
		Name string `json:"name"`
	}
	got, err := ParseJSON[label]("Sure! ```json\n{\"name\": \"Payments\"}\n``` Hope that helps.")
	require.NoError(t, err)
	assert.Equal(t, "Payments", got.Name)

	_, err = ParseJSON[label]("no object here")
	assert.ErrorIs(t, err, ErrNoJSON)

	_, err = ParseJSON[label]("{\"name\": }")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoJSON)
}
