// Package assistant answers natural-language questions about an
// organization graph. It grounds the model on facts read from the store and
// instructs it to answer from those facts only.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/agenthands/orggraph/internal/core/graph"
	"github.com/agenthands/orggraph/internal/core/model"
	"github.com/agenthands/orggraph/internal/llm"
	"github.com/agenthands/orggraph/internal/logger"
)

// ErrEmptyQuestion is returned for blank questions.
var ErrEmptyQuestion = errors.New("assistant: empty question")

const (
	maxCandidates    = 8
	maxFocus         = 3
	maxRelationships = 15
	maxAttributes    = 12
	blastDepth       = 2
	rankedCount      = 5
	// semanticPool is how many of the most central entities are embedded
	// when the question names none.
	semanticPool = 20

	fullNameScore = 100
)

// View grants read access to a store. Implementations serialize fn against
// writers; the assistant never holds a view across a model call.
type View interface {
	Read(fn func(s *graph.Store))
}

// Answer is the reply to one question.
type Answer struct {
	Answer   string   `json:"answer"`
	Entities []string `json:"entities"`
	Facts    []string `json:"facts"`
}

type Assistant struct {
	LLM      llm.LLMClient
	Reranker llm.RerankerClient
	// Embedder is optional. When set, questions that name no entity are
	// matched by embedding similarity against the most central entities.
	Embedder llm.EmbedderClient
	Log      *logger.Logger
}

func New(client llm.LLMClient, log *logger.Logger) *Assistant {
	if log == nil {
		log = logger.Nop()
	}
	return &Assistant{LLM: client, Reranker: llm.NewSimpleLLMReranker(client), Log: log}
}

// Ask picks the entities the question is about, gathers their facts and
// asks the model to answer from them.
func (a *Assistant) Ask(ctx context.Context, v View, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, ErrEmptyQuestion
	}

	var cands []model.Entity
	v.Read(func(s *graph.Store) { cands = candidates(s, question) })
	if len(cands) == 0 && a.Embedder != nil {
		var err error
		if cands, err = a.similar(ctx, v, question); err != nil {
			return Answer{}, err
		}
	}

	focus, err := a.rerank(ctx, question, cands)
	if err != nil {
		return Answer{}, err
	}

	ids := make([]string, len(focus))
	for i, e := range focus {
		ids[i] = e.ID
	}
	var facts []string
	v.Read(func(s *graph.Store) { facts = gather(s, question, ids) })

	a.Log.Debug("assistant context", "candidates", len(cands), "focus", ids, "facts", len(facts))
	reply, err := a.LLM.Generate(ctx, prompt(question, facts))
	if err != nil {
		return Answer{}, fmt.Errorf("assistant: %w", err)
	}
	return Answer{Answer: strings.TrimSpace(reply), Entities: ids, Facts: facts}, nil
}

func (a *Assistant) rerank(ctx context.Context, question string, cands []model.Entity) ([]model.Entity, error) {
	if len(cands) <= 1 || a.Reranker == nil {
		return head(cands, maxFocus), nil
	}
	docs := make([]string, len(cands))
	for i, e := range cands {
		docs[i] = fmt.Sprintf("%s (%s): %s", e.Name, e.Type, e.Description)
	}
	order, err := a.Reranker.Rank(ctx, question, docs)
	if err != nil {
		return nil, fmt.Errorf("assistant: rerank: %w", err)
	}
	out := make([]model.Entity, 0, maxFocus)
	for _, i := range order {
		if i >= 0 && i < len(cands) {
			out = append(out, cands[i])
		}
		if len(out) == maxFocus {
			break
		}
	}
	return out, nil
}

// similar orders the semanticPool most central entities by cosine
// similarity of their embedding to the question's.
func (a *Assistant) similar(ctx context.Context, v View, question string) ([]model.Entity, error) {
	var pool []model.Entity
	v.Read(func(s *graph.Store) {
		for _, r := range s.PageRank(semanticPool) {
			if e, err := s.GetEntity(r.ID); err == nil {
				pool = append(pool, e)
			}
		}
	})
	if len(pool) == 0 {
		return nil, nil
	}

	q, err := a.Embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("assistant: embed question: %w", err)
	}
	sims := make([]float64, len(pool))
	for i, e := range pool {
		vec, err := a.Embedder.Embed(ctx, e.Name+": "+e.Description)
		if err != nil {
			return nil, fmt.Errorf("assistant: embed %s: %w", e.ID, err)
		}
		sims[i] = cosine(q, vec)
	}

	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return sims[order[i]] > sims[order[j]] })
	out := make([]model.Entity, 0, min(len(pool), maxCandidates))
	for _, i := range order[:min(len(order), maxCandidates)] {
		out = append(out, pool[i])
	}
	a.Log.Debug("semantic candidates", "pool", len(pool), "best", out[0].ID, "similarity", sims[order[0]])
	return out, nil
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func head(es []model.Entity, n int) []model.Entity {
	if len(es) > n {
		return es[:n]
	}
	return es
}

var stopwords = map[string]bool{
	"the": true, "and": true, "who": true, "what": true, "which": true, "are": true,
	"does": true, "for": true, "with": true, "that": true, "this": true, "how": true,
	"many": true, "from": true, "into": true, "our": true, "has": true, "have": true,
	"its": true, "their": true, "there": true, "about": true, "when": true, "where": true,
}

func terms(s string) []string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	var out []string
	for _, w := range words {
		if len(w) >= 3 && !stopwords[w] {
			out = append(out, w)
		}
	}
	return out
}

// candidates scores every entity by how much of its name the question
// mentions. When any entity is named in full only full-name matches are
// kept. Ties keep insertion order.
func candidates(s *graph.Store, question string) []model.Entity {
	q := strings.ToLower(question)
	qt := terms(question)
	type scored struct {
		e     model.Entity
		score int
	}
	var hits []scored
	s.EachEntity(func(e model.Entity) bool {
		name := strings.ToLower(e.Name)
		score := 0
		if len(name) >= 3 && strings.Contains(q, name) {
			score = fullNameScore + len(name)
		} else {
			nt := terms(e.Name)
			for _, t := range qt {
				for _, n := range nt {
					if t == n {
						score += 10
					}
				}
			}
		}
		if score > 0 {
			hits = append(hits, scored{e, score})
		}
		return true
	})
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > 0 && hits[0].score >= fullNameScore {
		n := 0
		for n < len(hits) && hits[n].score >= fullNameScore {
			n++
		}
		hits = hits[:n]
	}

	out := make([]model.Entity, 0, min(len(hits), maxCandidates))
	for _, h := range hits {
		if len(out) == maxCandidates {
			break
		}
		out = append(out, h.e)
	}
	return out
}

func gather(s *graph.Store, question string, ids []string) []string {
	st := s.Statistics()
	facts := []string{fmt.Sprintf("The graph holds %d entities and %d relationships.", st.EntityCount, st.RelationshipCount)}
	for _, t := range model.EntityTypes {
		if n := st.CountsByType[t]; n > 0 {
			facts = append(facts, fmt.Sprintf("There are %d %s entities.", n, t))
		}
	}

	q := strings.ToLower(question)
	if strings.Contains(q, "central") || strings.Contains(q, "important") || strings.Contains(q, "critical") {
		for i, r := range s.PageRank(rankedCount) {
			facts = append(facts, fmt.Sprintf("PageRank #%d: %s (score %.4f).", i+1, r.Name, r.Score))
		}
	}

	for _, id := range ids {
		e, err := s.GetEntity(id)
		if err != nil {
			continue
		}
		facts = append(facts, describe(e))
		facts = append(facts, links(s, e)...)
		if br, err := s.BlastRadius(id, blastDepth); err == nil {
			for d := 1; d <= blastDepth; d++ {
				if len(br[d]) > 0 {
					facts = append(facts, fmt.Sprintf("%s reaches %d entities within %d hop(s): %s.", e.Name, len(br[d]), d, countByType(br[d])))
				}
			}
		}
	}
	return facts
}

func describe(e model.Entity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %q (id %s)", e.Type, e.Name, e.ID)
	if e.Description != "" {
		fmt.Fprintf(&b, ": %s", e.Description)
	}
	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxAttributes {
		keys = keys[:maxAttributes]
	}
	for i, k := range keys {
		sep := "; "
		if i == 0 {
			sep = ". Attributes: "
		}
		fmt.Fprintf(&b, "%s%s=%s", sep, k, e.Attributes[k])
	}
	b.WriteString(".")
	return b.String()
}

func links(s *graph.Store, e model.Entity) []string {
	var out []string
	for i, r := range s.GetRelationships(e.ID, graph.Both, "") {
		if i == maxRelationships {
			break
		}
		other, err := s.GetEntity(r.Other(e.ID))
		if err != nil {
			continue
		}
		if r.SourceID == e.ID {
			out = append(out, fmt.Sprintf("%s %s %s %q.", e.Name, r.Type, other.Type, other.Name))
		} else {
			out = append(out, fmt.Sprintf("%s %q %s %s.", other.Type, other.Name, r.Type, e.Name))
		}
	}
	return out
}

func countByType(es []model.Entity) string {
	counts := make(map[model.EntityType]int)
	for _, e := range es {
		counts[e.Type]++
	}
	var parts []string
	for _, t := range model.EntityTypes {
		if n := counts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, t))
		}
	}
	return strings.Join(parts, ", ")
}

func prompt(question string, facts []string) string {
	var b strings.Builder
	b.WriteString("You answer questions about an organization using only the facts below.\n")
	b.WriteString("If the facts do not contain the answer, say that the graph does not say.\n\nFacts:\n")
	for _, f := range facts {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nQuestion: %s\nAnswer:", question)
	return b.String()
}
