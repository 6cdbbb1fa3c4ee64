package query

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/pkg/llm"
	"ai-foodchat-be/pkg/llm/jsonx"
)

// Transformer rewrites conversational requests into standalone search
// queries, resolving pronouns against recent history.
type Transformer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewTransformer(llmProvider llm.LLMProvider, logger *log.Logger) *Transformer {
	return &Transformer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

type transformResult struct {
	Query string `json:"query"`
}

// Transform returns the rewritten query. On any failure the raw utterance
// is returned so retrieval still runs.
func (t *Transformer) Transform(ctx context.Context, history []llm.Message, utterance string) string {
	prompt := fmt.Sprintf(constant.QueryTransformPrompt, renderHistory(history), utterance)

	response, err := t.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		t.logger.Printf("[WARN] Query transform failed, using raw utterance: %v", err)
		return utterance
	}

	var result transformResult
	if err := jsonx.Unmarshal(response, &result); err != nil {
		t.logger.Printf("[WARN] Query transform returned invalid JSON: %v", err)
		return utterance
	}

	query := strings.TrimSpace(result.Query)
	if isDegenerate(query) {
		t.logger.Printf("[WARN] Query transform produced a degenerate query %q, using raw utterance", query)
		return utterance
	}

	t.logger.Printf("[DEBUG] Query transform: %q -> %q", utterance, query)
	return query
}

// stopwords that carry no retrieval signal on their own.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "for": true, "i": true,
	"in": true, "it": true, "me": true, "of": true, "or": true,
	"please": true, "show": true, "some": true, "something": true,
	"that": true, "the": true, "to": true, "want": true, "with": true,
}

// isDegenerate reports whether the rewritten query is empty or made of
// stopwords only; retrieval must never receive such a query.
func isDegenerate(query string) bool {
	if query == "" {
		return true
	}
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if !stopwords[strings.Trim(word, ".,!?")] {
			return false
		}
	}
	return true
}

func renderHistory(history []llm.Message) string {
	if len(history) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for _, msg := range history {
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return b.String()
}
