package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID       `json:"id"`
	Role      string          `json:"role"`
	Chat      string          `json:"chat"`
	Intent    string          `json:"intent,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Recipes   []RecipeCardDTO `json:"recipes,omitempty"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Chat          string    `json:"chat" validate:"required"`
	ImageRef      string    `json:"image_ref,omitempty" validate:"omitempty,max=512"`
}

type SendChatResponseChat struct {
	Id        uuid.UUID       `json:"id"`
	Chat      string          `json:"chat"`
	Role      string          `json:"role"`
	Intent    string          `json:"intent,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Recipes   []RecipeCardDTO `json:"recipes,omitempty"`
	// True when the reply is a nutrition-only projection of a recipe.
	ShowNutritionOnly bool `json:"show_nutrition_only,omitempty"`
}

type SendChatResponse struct {
	ChatSessionId    uuid.UUID             `json:"chat_session_id"`
	ChatSessionTitle string                `json:"title"`
	Sent             *SendChatResponseChat `json:"sent"`
	Reply            *SendChatResponseChat `json:"reply"`
}

type DeleteSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}

// RecipeCardDTO is a recipe as rendered in a chat turn. Id is a recipe
// uuid string, or a "mod:" id for modified recipes that only live in the
// conversation.
type RecipeCardDTO struct {
	Id           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Cuisine      string          `json:"cuisine,omitempty"`
	Servings     int             `json:"servings,omitempty"`
	TotalMinutes int             `json:"total_minutes,omitempty"`
	Ingredients  []IngredientDTO `json:"ingredients,omitempty"`
	Steps        []string        `json:"steps,omitempty"`
	Nutrition    *NutritionDTO   `json:"nutrition,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
}
