package contract

import (
	"context"

	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredRecipeEmbedding wraps RecipeEmbedding with its similarity score
type ScoredRecipeEmbedding struct {
	Embedding  *entity.RecipeEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type RecipeEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.RecipeEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.RecipeEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByRecipeId(ctx context.Context, recipeId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RecipeEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RecipeEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns embeddings with their similarity scores, filtered by threshold
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredRecipeEmbedding, error)
}
