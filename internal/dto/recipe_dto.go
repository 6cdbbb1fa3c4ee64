package dto

import (
	"time"

	"github.com/google/uuid"
)

type IngredientDTO struct {
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type NutritionDTO struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type CreateRecipeRequest struct {
	Name         string          `json:"name" validate:"required"`
	Description  string          `json:"description"`
	Cuisine      string          `json:"cuisine"`
	Servings     int             `json:"servings" validate:"gte=0"`
	TotalMinutes int             `json:"total_minutes" validate:"gte=0"`
	Ingredients  []IngredientDTO `json:"ingredients" validate:"required,min=1,dive"`
	Steps        []string        `json:"steps" validate:"required,min=1"`
	Nutrition    *NutritionDTO   `json:"nutrition"`
	Tags         []string        `json:"tags"`
}

type CreateRecipeResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetRecipeResponse struct {
	Id           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Cuisine      string          `json:"cuisine,omitempty"`
	Servings     int             `json:"servings"`
	TotalMinutes int             `json:"total_minutes"`
	Ingredients  []IngredientDTO `json:"ingredients"`
	Steps        []string        `json:"steps"`
	Nutrition    NutritionDTO    `json:"nutrition"`
	Tags         []string        `json:"tags,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SearchRecipesRequest filters are query parameters; all optional.
type SearchRecipesRequest struct {
	Name       string `query:"name"`
	Cuisine    string `query:"cuisine"`
	Tag        string `query:"tag"`
	MaxMinutes int    `query:"max_minutes"`
	Limit      int    `query:"limit" validate:"gte=0,lte=100"`
}

// PublishIndexRecipeMessage is the payload on the recipe-ingested topic.
type PublishIndexRecipeMessage struct {
	RecipeId uuid.UUID `json:"recipe_id"`
}
