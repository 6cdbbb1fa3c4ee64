package service

import (
	"strings"
	"testing"

	"ai-foodchat-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short text kept verbatim", "quick vegan dinner ideas", "quick vegan dinner ideas"},
		{"empty text gets a placeholder", "", "Unnamed session"},
		{"long text truncated with ellipsis", strings.Repeat("a", 80), strings.Repeat("a", 60) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sessionTitle(tt.text))
		})
	}
}

func TestViewToCardDTO(t *testing.T) {
	view := entity.RecipeView{
		Id:           "mod:abc:1",
		Name:         "Spicy Miso Ramen",
		Servings:     2,
		TotalMinutes: 40,
		Ingredients:  []entity.Ingredient{{Name: "miso paste", Quantity: "3", Unit: "tbsp"}},
		Steps:        []string{"Simmer the broth."},
		Nutrition:    entity.Nutrition{Calories: 520, ProteinG: 21},
	}

	card := viewToCardDTO(view)

	assert.Equal(t, "mod:abc:1", card.Id)
	assert.Equal(t, "Spicy Miso Ramen", card.Name)
	require.Len(t, card.Ingredients, 1)
	assert.Equal(t, "miso paste", card.Ingredients[0].Name)
	require.NotNil(t, card.Nutrition)
	assert.Equal(t, 520.0, card.Nutrition.Calories)
}

func TestViewToCardDTOOmitsZeroNutrition(t *testing.T) {
	card := viewToCardDTO(entity.RecipeView{Id: "x", Name: "Greek Salad"})

	assert.Nil(t, card.Nutrition, "zero nutrition should serialize as absent, not as zeros")
}

func TestViewsToCardDTOsEmpty(t *testing.T) {
	assert.Nil(t, viewsToCardDTOs(nil))
	assert.Nil(t, viewsToCardDTOs([]entity.RecipeView{}))
}
