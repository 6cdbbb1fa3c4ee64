package entity

import (
	"time"

	"github.com/google/uuid"
)

type RecipeEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	RecipeId       uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// RecipeCandidate is a retrieval hit: the recipe id plus its cosine
// similarity against the query embedding.
type RecipeCandidate struct {
	RecipeId   uuid.UUID
	Document   string
	Similarity float64
}
