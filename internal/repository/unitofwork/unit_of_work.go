package unitofwork

import (
	"context"

	"ai-foodchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	RecipeRepository() contract.RecipeRepository
	RecipeEmbeddingRepository() contract.RecipeEmbeddingRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
