package implementation

import (
	"context"
	"errors"

	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/mapper"
	"ai-foodchat-be/internal/model"
	"ai-foodchat-be/internal/repository/contract"
	"ai-foodchat-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type RecipeEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RecipeEmbeddingMapper
}

func NewRecipeEmbeddingRepository(db *gorm.DB) contract.RecipeEmbeddingRepository {
	return &RecipeEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewRecipeEmbeddingMapper(),
	}
}

func (r *RecipeEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RecipeEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.RecipeEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *RecipeEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.RecipeEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	return r.db.WithContext(ctx).Create(models).Error
}

func (r *RecipeEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RecipeEmbedding{}, id).Error
}

func (r *RecipeEmbeddingRepositoryImpl) DeleteByRecipeId(ctx context.Context, recipeId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeId).Delete(&model.RecipeEmbedding{}).Error
}

func (r *RecipeEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RecipeEmbedding, error) {
	var m model.RecipeEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RecipeEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RecipeEmbedding, error) {
	var models []*model.RecipeEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.RecipeEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *RecipeEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.RecipeEmbedding{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

// SearchSimilarWithScore returns embeddings with similarity scores, filtered by threshold.
// Cosine distance in pgvector is 1 - cosine_similarity, so the select inverts it.
func (r *RecipeEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredRecipeEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.RecipeEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("recipe_embeddings").
		Select("recipe_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN recipes ON recipes.id = recipe_embeddings.recipe_id").
		Where("recipe_embeddings.deleted_at IS NULL").
		Where("recipes.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredRecipeEmbedding, len(results))
	for i, res := range results {
		e := r.mapper.ToEntity(&res.RecipeEmbedding)
		scored[i] = &contract.ScoredRecipeEmbedding{
			Embedding:  e,
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
