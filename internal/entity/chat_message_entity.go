package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn of a conversation. Assistant turns that showed
// recipe cards carry them in Recipes so later turns can refer back to them.
type ChatMessage struct {
	Id            uuid.UUID
	Chat          string
	ImageRef      string
	Role          string
	Intent        string
	Recipes       []RecipeView
	ChatSessionId uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}

// RecipeView is a recipe as shown to the user. Id is either a persisted
// recipe uuid or an ephemeral "mod:<session>:<seq>" id for modified recipes
// that only exist inside the conversation.
type RecipeView struct {
	Id           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Cuisine      string       `json:"cuisine,omitempty"`
	Servings     int          `json:"servings"`
	TotalMinutes int          `json:"total_minutes"`
	Ingredients  []Ingredient `json:"ingredients"`
	Steps        []string     `json:"steps"`
	Nutrition    Nutrition    `json:"nutrition"`
	Tags         []string     `json:"tags,omitempty"`
}
