package contract

import (
	"context"

	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	Update(ctx context.Context, recipe *entity.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Recipe, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Recipe, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]*entity.Recipe, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
