package service

import (
	"testing"

	"ai-foodchat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecipeDocument(t *testing.T) {
	recipe := &entity.Recipe{
		Id:           uuid.New(),
		Name:         "Miso Ramen",
		Description:  "A comforting noodle soup.",
		Cuisine:      "Japanese",
		TotalMinutes: 40,
		Tags:         []string{"soup", "noodles"},
		Ingredients: []entity.Ingredient{
			{Name: "ramen noodles", Quantity: "200", Unit: "g"},
			{Name: "miso paste", Quantity: "3", Unit: "tbsp"},
		},
		Steps: []string{
			"Simmer the broth.",
			"Whisk in the miso.",
			"Cook the noodles.",
			"Plate and garnish with scallions.",
		},
	}

	document := BuildRecipeDocument(recipe)

	assert.Contains(t, document, "Recipe: Miso Ramen")
	assert.Contains(t, document, "Cuisine: Japanese")
	assert.Contains(t, document, "Tags: soup, noodles")
	assert.Contains(t, document, "Ingredients: ramen noodles, miso paste")
	assert.Contains(t, document, "Total time: 40 minutes")

	assert.Contains(t, document, "Whisk in the miso.")
	assert.NotContains(t, document, "Plate and garnish", "only the first three steps belong in the document")
}

func TestBuildRecipeDocumentSparseRecipe(t *testing.T) {
	recipe := &entity.Recipe{
		Id:   uuid.New(),
		Name: "Toast",
	}

	document := BuildRecipeDocument(recipe)

	require.Equal(t, "Recipe: Toast", document)
}

func TestBuildRecipeDocumentIsDeterministic(t *testing.T) {
	recipe := &entity.Recipe{
		Id:          uuid.New(),
		Name:        "Greek Salad",
		Ingredients: []entity.Ingredient{{Name: "cucumber"}, {Name: "feta"}},
		Steps:       []string{"Chop everything.", "Toss with olive oil."},
	}

	require.Equal(t, BuildRecipeDocument(recipe), BuildRecipeDocument(recipe))
}
