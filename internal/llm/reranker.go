package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// maxRerankDocLength truncates each document in the ranking prompt.
const maxRerankDocLength = 200

type SimpleLLMReranker struct {
	LLM LLMClient
}

func NewSimpleLLMReranker(client LLMClient) *SimpleLLMReranker {
	return &SimpleLLMReranker{LLM: client}
}

// Rank asks the model for an ordering. The result is always a permutation of
// the document indices: unknown or repeated indices in the reply are dropped
// and anything the model left out follows in original order. A failed call
// yields the original order.
func (r *SimpleLLMReranker) Rank(ctx context.Context, query string, docs []string) ([]int, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if len(docs) == 1 {
		return []int{0}, nil
	}

	var docList strings.Builder
	for i, d := range docs {
		content := d
		if len(content) > maxRerankDocLength {
			content = content[:maxRerankDocLength] + "..."
		}
		fmt.Fprintf(&docList, "[%d] %s\n", i, content)
	}

	prompt := fmt.Sprintf(`You are a search relevance optimization system.
Query: %s

Documents:
%s
Rank the documents above based on their relevance to the query.
Output ONLY the indices of the documents in order of relevance, separated by commas.
Example: 0, 2, 1
Do not output any other text.`, query, docList.String())

	resp, err := r.LLM.Generate(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return complete(nil, len(docs)), nil
	}
	return complete(parseIndices(resp), len(docs)), nil
}

var indexPattern = regexp.MustCompile(`\d+`)

func parseIndices(s string) []int {
	var indices []int
	for _, m := range indexPattern.FindAllString(s, -1) {
		if i, err := strconv.Atoi(m); err == nil {
			indices = append(indices, i)
		}
	}
	return indices
}

// complete turns a partial ranking of n documents into a permutation.
func complete(ranked []int, n int) []int {
	seen := make([]bool, n)
	out := make([]int, 0, n)
	for _, i := range ranked {
		if i >= 0 && i < n && !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	for i := 0; i < n; i++ {
		if !seen[i] {
			out = append(out, i)
		}
	}
	return out
}
