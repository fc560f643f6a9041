package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/orggraph/internal/core/community"
	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/llm"
)

// memberChunk is how many member lines go into one summarization prompt.
// Larger communities are summarized chunk by chunk and the partial
// summaries summarized again.
const memberChunk = 20

// CommunityLabel is a model-written name for a detected community.
type CommunityLabel struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DescribeCommunity names c from its members' names and descriptions.
func (a *Assistant) DescribeCommunity(ctx context.Context, v View, c community.Summary) (CommunityLabel, error) {
	var lines []string
	v.Read(func(s *graph.Store) {
		for _, id := range c.MemberIDs {
			e, err := s.GetEntity(id)
			if err != nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s (%s): %s", e.Name, e.Type, e.Description))
		}
	})
	if len(lines) == 0 {
		return CommunityLabel{}, fmt.Errorf("assistant: community has no members left: %w", graph.ErrNotFound)
	}

	summary, err := a.summarize(ctx, lines)
	if err != nil {
		return CommunityLabel{}, err
	}
	reply, err := a.LLM.Generate(ctx, fmt.Sprintf(`These entities form one cluster in an organization graph:
%s
Give the cluster a short name (at most five words) and a one-sentence description.
Respond with JSON only: {"name": "...", "description": "..."}`, summary))
	if err != nil {
		return CommunityLabel{}, fmt.Errorf("assistant: name community: %w", err)
	}
	label, err := llm.ParseJSON[CommunityLabel](reply)
	if err != nil || label.Name == "" {
		a.Log.Debug("unstructured community label", "reply", reply, "error", err)
		return CommunityLabel{Name: firstLine(reply), Description: summary}, nil
	}
	return label, nil
}

// summarize reduces lines to one paragraph. A chunk whose summarization
// fails is dropped; only when every chunk fails is the error returned.
func (a *Assistant) summarize(ctx context.Context, lines []string) (string, error) {
	if len(lines) <= memberChunk {
		return strings.Join(lines, "\n"), nil
	}
	var parts []string
	var lastErr error
	for i := 0; i < len(lines); i += memberChunk {
		chunk := lines[i:min(i+memberChunk, len(lines))]
		reply, err := a.LLM.Generate(ctx, fmt.Sprintf(`Summarize what these organization entities have in common in two sentences:
%s`, strings.Join(chunk, "\n")))
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			continue
		}
		parts = append(parts, fmt.Sprintf("Part %d: %s", len(parts)+1, strings.TrimSpace(reply)))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("assistant: summarize community: %w", lastErr)
	}
	return a.summarize(ctx, parts)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(s, `"' `)
}
