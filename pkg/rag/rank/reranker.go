package rank

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/pkg/llm"
	"ai-foodchat-be/pkg/llm/jsonx"
)

// ScoredRecipe pairs a recipe with its rerank score (0..10).
type ScoredRecipe struct {
	Recipe *entity.Recipe
	Score  int
}

// Reranker asks the LLM to score retrieval candidates against the request
// and reorders them. Failures degrade to score 0 so the similarity order
// survives via the stable sort.
type Reranker struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
	batchSize   int
}

func NewReranker(llmProvider llm.LLMProvider, logger *log.Logger, batchSize int) *Reranker {
	if batchSize <= 0 {
		batchSize = constant.RerankBatchSize
	}
	return &Reranker{
		llmProvider: llmProvider,
		logger:      logger,
		batchSize:   batchSize,
	}
}

type scoreItem struct {
	Id    string `json:"id"`
	Score int    `json:"score"`
}

type scoreResponse struct {
	Scores []scoreItem `json:"scores"`
}

// Rerank scores all candidates and returns them ordered by score, highest
// first. The sort is stable: ties keep the incoming similarity order.
func (r *Reranker) Rerank(ctx context.Context, request string, recipes []*entity.Recipe) []ScoredRecipe {
	scored := make([]ScoredRecipe, len(recipes))
	for i, recipe := range recipes {
		scored[i] = ScoredRecipe{Recipe: recipe}
	}

	for start := 0; start < len(recipes); start += r.batchSize {
		end := start + r.batchSize
		if end > len(recipes) {
			end = len(recipes)
		}
		r.scoreBatch(ctx, request, scored[start:end])
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// scoreBatch mutates the scores in place. A failed batch keeps score 0.
func (r *Reranker) scoreBatch(ctx context.Context, request string, batch []ScoredRecipe) {
	prompt := fmt.Sprintf(constant.RerankScoringPrompt, request, renderBatch(batch))

	response, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		r.logger.Printf("[WARN] Rerank batch failed, keeping similarity order: %v", err)
		return
	}

	var parsed scoreResponse
	if err := jsonx.Unmarshal(response, &parsed); err != nil {
		r.logger.Printf("[WARN] Rerank batch returned invalid JSON: %v", err)
		return
	}

	byId := make(map[string]int, len(parsed.Scores))
	for _, item := range parsed.Scores {
		byId[item.Id] = clampScore(item.Score)
	}

	for i := range batch {
		if score, ok := byId[batch[i].Recipe.Id.String()]; ok {
			batch[i].Score = score
		} else {
			r.logger.Printf("[DEBUG] Rerank missing score for %q, defaulting to 0", batch[i].Recipe.Name)
		}
	}
}

func renderBatch(batch []ScoredRecipe) string {
	var b strings.Builder
	for _, item := range batch {
		recipe := item.Recipe
		b.WriteString(fmt.Sprintf("- id: %s\n  name: %s\n", recipe.Id, recipe.Name))
		if recipe.Description != "" {
			b.WriteString(fmt.Sprintf("  description: %s\n", recipe.Description))
		}
		if len(recipe.Tags) > 0 {
			b.WriteString(fmt.Sprintf("  tags: %s\n", strings.Join(recipe.Tags, ", ")))
		}
		if recipe.TotalMinutes > 0 {
			b.WriteString(fmt.Sprintf("  time: %d min\n", recipe.TotalMinutes))
		}
		if recipe.Nutrition != (entity.Nutrition{}) {
			n := recipe.Nutrition
			b.WriteString(fmt.Sprintf("  macros: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat\n",
				n.Calories, n.ProteinG, n.CarbsG, n.FatG))
		}
	}
	return b.String()
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > constant.RerankScoreMax {
		return constant.RerankScoreMax
	}
	return score
}
