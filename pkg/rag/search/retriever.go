package search

import (
	"context"
	"fmt"
	"log"

	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/contract"
	"ai-foodchat-be/internal/repository/unitofwork"
	"ai-foodchat-be/pkg/embedding"
	"ai-foodchat-be/pkg/rag/constraint"

	"github.com/google/uuid"
)

// Retriever handles vector search, deduplication and constraint filtering
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	logger            *log.Logger
}

func NewRetriever(embeddingProvider embedding.EmbeddingProvider, logger *log.Logger) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

// Config encapsulates search parameters
type Config struct {
	DBThreshold    float64
	LogicThreshold float64
	TopK           int
	Overfetch      int
}

// DefaultConfig returns default search configuration
func DefaultConfig() Config {
	return Config{
		DBThreshold:    0.0,
		LogicThreshold: 0.35,
		TopK:           5,
		Overfetch:      3, // constraints are applied after the vector search
	}
}

// Execute runs vector search and returns hydrated, constraint-filtered
// recipes in similarity order. The search overfetches so post-filtering
// still has enough candidates to fill TopK.
func (r *Retriever) Execute(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	query string,
	cons constraint.Constraints,
	config Config,
) ([]*entity.Recipe, error) {

	embeddingRes, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	overfetch := config.Overfetch
	if overfetch <= 0 {
		overfetch = 1
	}
	fetchLimit := config.TopK * overfetch

	scoredResults, err := uow.RecipeEmbeddingRepository().SearchSimilarWithScore(
		ctx,
		embeddingRes.Embedding.Values,
		fetchLimit,
		config.DBThreshold,
	)
	if err != nil {
		r.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	r.logger.Printf("[DEBUG] Raw search results: %d embeddings", len(scoredResults))

	candidates := r.filterAndDeduplicateCandidates(scoredResults, config.LogicThreshold)

	r.logger.Printf("[DEBUG] Deduplicated candidates: %d recipes", len(candidates))

	recipes, err := r.hydrateCandidates(ctx, uow, candidates)
	if err != nil {
		return nil, err
	}

	filtered := make([]*entity.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		if cons.Matches(recipe) {
			filtered = append(filtered, recipe)
		} else {
			r.logger.Printf("[DEBUG] Candidate %q rejected by constraints", recipe.Name)
		}
	}

	if len(filtered) > config.TopK {
		filtered = filtered[:config.TopK]
	}

	return filtered, nil
}

func (r *Retriever) filterAndDeduplicateCandidates(
	results []*contract.ScoredRecipeEmbedding,
	threshold float64,
) []entity.RecipeCandidate {

	var candidates []entity.RecipeCandidate
	seen := make(map[uuid.UUID]bool)

	for i, res := range results {
		if res.Similarity < threshold {
			r.logger.Printf("[DEBUG] Candidate %d: Score=%.4f [FILTERED]", i+1, res.Similarity)
			continue
		}

		recipeId := res.Embedding.RecipeId
		if seen[recipeId] {
			continue
		}
		seen[recipeId] = true

		candidates = append(candidates, entity.RecipeCandidate{
			RecipeId:   recipeId,
			Document:   res.Embedding.Document,
			Similarity: res.Similarity,
		})
		r.logger.Printf("[DEBUG] Candidate %d: Score=%.4f [KEEP]", i+1, res.Similarity)
	}

	return candidates
}

// hydrateCandidates loads full recipes and preserves similarity order.
func (r *Retriever) hydrateCandidates(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	candidates []entity.RecipeCandidate,
) ([]*entity.Recipe, error) {

	if len(candidates) == 0 {
		return []*entity.Recipe{}, nil
	}

	ids := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.RecipeId
	}

	recipes, err := uow.RecipeRepository().FindByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Recipe, len(recipes))
	for _, recipe := range recipes {
		byId[recipe.Id] = recipe
	}

	ordered := make([]*entity.Recipe, 0, len(candidates))
	for _, c := range candidates {
		if recipe, ok := byId[c.RecipeId]; ok {
			ordered = append(ordered, recipe)
		} else {
			r.logger.Printf("[WARN] Embedding points to missing recipe %s", c.RecipeId)
		}
	}

	return ordered, nil
}
