package mapper

import (
	"encoding/json"
	"time"

	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RecipeMapper struct{}

func NewRecipeMapper() *RecipeMapper {
	return &RecipeMapper{}
}

func (m *RecipeMapper) ToEntity(r *model.Recipe) *entity.Recipe {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	var ingredients []entity.Ingredient
	if len(r.Ingredients) > 0 {
		_ = json.Unmarshal(r.Ingredients, &ingredients)
	}

	var steps []string
	if len(r.Steps) > 0 {
		_ = json.Unmarshal(r.Steps, &steps)
	}

	var nutrition entity.Nutrition
	if len(r.Nutrition) > 0 {
		_ = json.Unmarshal(r.Nutrition, &nutrition)
	}

	var tags []string
	if len(r.Tags) > 0 {
		_ = json.Unmarshal(r.Tags, &tags)
	}

	return &entity.Recipe{
		Id:           r.Id,
		Name:         r.Name,
		Description:  r.Description,
		Cuisine:      r.Cuisine,
		Servings:     r.Servings,
		TotalMinutes: r.TotalMinutes,
		Ingredients:  ingredients,
		Steps:        steps,
		Nutrition:    nutrition,
		Tags:         tags,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    r.DeletedAt.Valid,
	}
}

func (m *RecipeMapper) ToModel(r *entity.Recipe) *model.Recipe {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Recipe{
		Id:           r.Id,
		Name:         r.Name,
		Description:  r.Description,
		Cuisine:      r.Cuisine,
		Servings:     r.Servings,
		TotalMinutes: r.TotalMinutes,
		Ingredients:  marshalJSON(r.Ingredients),
		Steps:        marshalJSON(r.Steps),
		Nutrition:    marshalJSON(r.Nutrition),
		Tags:         marshalJSON(r.Tags),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *RecipeMapper) ToEntities(recipes []*model.Recipe) []*entity.Recipe {
	entities := make([]*entity.Recipe, len(recipes))
	for i, r := range recipes {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func marshalJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
