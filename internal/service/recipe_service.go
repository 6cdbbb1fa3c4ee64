package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-foodchat-be/internal/dto"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/specification"
	"ai-foodchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IRecipeService interface {
	Create(ctx context.Context, request *dto.CreateRecipeRequest) (*dto.CreateRecipeResponse, error)
	GetById(ctx context.Context, id uuid.UUID) (*dto.GetRecipeResponse, error)
	Search(ctx context.Context, request *dto.SearchRecipesRequest) ([]*dto.GetRecipeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type recipeService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewRecipeService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IRecipeService {
	return &recipeService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

// Create persists the recipe and queues it for indexing. The embedding
// row appears asynchronously; until then the recipe is simply not
// retrievable.
func (rs *recipeService) Create(ctx context.Context, request *dto.CreateRecipeRequest) (*dto.CreateRecipeResponse, error) {
	uow := rs.uowFactory.NewUnitOfWork(ctx)

	recipe := entity.Recipe{
		Id:           uuid.New(),
		Name:         request.Name,
		Description:  request.Description,
		Cuisine:      request.Cuisine,
		Servings:     request.Servings,
		TotalMinutes: request.TotalMinutes,
		Ingredients:  ingredientsToEntity(request.Ingredients),
		Steps:        request.Steps,
		Nutrition:    nutritionToEntity(request.Nutrition),
		Tags:         request.Tags,
		CreatedAt:    time.Now(),
	}

	if err := uow.RecipeRepository().Create(ctx, &recipe); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(dto.PublishIndexRecipeMessage{RecipeId: recipe.Id})
	if err != nil {
		return nil, err
	}
	if err := rs.publisherService.Publish(ctx, payload); err != nil {
		return nil, err
	}

	return &dto.CreateRecipeResponse{Id: recipe.Id}, nil
}

func (rs *recipeService) GetById(ctx context.Context, id uuid.UUID) (*dto.GetRecipeResponse, error) {
	uow := rs.uowFactory.NewUnitOfWork(ctx)

	recipe, err := uow.RecipeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, fmt.Errorf("recipe not found")
	}

	return recipeToResponse(recipe), nil
}

func (rs *recipeService) Search(ctx context.Context, request *dto.SearchRecipesRequest) ([]*dto.GetRecipeResponse, error) {
	uow := rs.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if request.Name != "" {
		specs = append(specs, specification.ByNameLike{Name: request.Name})
	}
	if request.Cuisine != "" {
		specs = append(specs, specification.ByCuisine{Cuisine: request.Cuisine})
	}
	if request.Tag != "" {
		specs = append(specs, specification.ByTag{Tag: request.Tag})
	}
	if request.MaxMinutes > 0 {
		specs = append(specs, specification.ByMaxMinutes{Minutes: request.MaxMinutes})
	}

	limit := request.Limit
	if limit <= 0 {
		limit = 20
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)

	recipes, err := uow.RecipeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetRecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, recipeToResponse(recipe))
	}
	return response, nil
}

// Delete removes the recipe and its embedding rows in one transaction.
func (rs *recipeService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := rs.uowFactory.NewUnitOfWork(ctx)

	recipe, err := uow.RecipeRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if recipe == nil {
		return fmt.Errorf("recipe not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RecipeRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.RecipeEmbeddingRepository().DeleteByRecipeId(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func ingredientsToEntity(in []dto.IngredientDTO) []entity.Ingredient {
	out := make([]entity.Ingredient, len(in))
	for i, ing := range in {
		out[i] = entity.Ingredient{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit}
	}
	return out
}

func nutritionToEntity(in *dto.NutritionDTO) entity.Nutrition {
	if in == nil {
		return entity.Nutrition{}
	}
	return entity.Nutrition{
		Calories: in.Calories,
		ProteinG: in.ProteinG,
		CarbsG:   in.CarbsG,
		FatG:     in.FatG,
	}
}

func recipeToResponse(recipe *entity.Recipe) *dto.GetRecipeResponse {
	ingredients := make([]dto.IngredientDTO, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		ingredients[i] = dto.IngredientDTO{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit}
	}
	return &dto.GetRecipeResponse{
		Id:           recipe.Id,
		Name:         recipe.Name,
		Description:  recipe.Description,
		Cuisine:      recipe.Cuisine,
		Servings:     recipe.Servings,
		TotalMinutes: recipe.TotalMinutes,
		Ingredients:  ingredients,
		Steps:        recipe.Steps,
		Nutrition: dto.NutritionDTO{
			Calories: recipe.Nutrition.Calories,
			ProteinG: recipe.Nutrition.ProteinG,
			CarbsG:   recipe.Nutrition.CarbsG,
			FatG:     recipe.Nutrition.FatG,
		},
		Tags:      recipe.Tags,
		CreatedAt: recipe.CreatedAt,
	}
}
