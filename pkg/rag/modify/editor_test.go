package modify

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/pkg/llm"
)

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func baseRecipe() entity.RecipeView {
	return entity.RecipeView{
		Id:       "8d5f0e9c-0000-0000-0000-000000000001",
		Name:     "Miso Ramen",
		Cuisine:  "Japanese",
		Servings: 2,
		Ingredients: []entity.Ingredient{
			{Name: "ramen noodles", Quantity: "200", Unit: "g"},
			{Name: "miso paste", Quantity: "3", Unit: "tbsp"},
		},
		Steps: []string{"Simmer the broth.", "Cook the noodles."},
	}
}

func newTestEditor(provider llm.LLMProvider) *Editor {
	return NewEditor(provider, log.New(io.Discard, "", 0))
}

func TestApplyClearsModelAssignedId(t *testing.T) {
	provider := &fakeLLM{response: `{
		"id": "made-up-by-the-model",
		"name": "Spicy Miso Ramen",
		"servings": 2,
		"ingredients": [{"name": "ramen noodles", "quantity": "200", "unit": "g"}],
		"steps": ["Simmer the broth with chili."]
	}`}

	modified, err := newTestEditor(provider).Apply(context.Background(), baseRecipe(), "make it spicy")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if modified.Id != "" {
		t.Errorf("id = %q, want empty until the session assigns one", modified.Id)
	}
	if modified.Name != "Spicy Miso Ramen" {
		t.Errorf("name = %q, want Spicy Miso Ramen", modified.Name)
	}
}

func TestApplyInheritsBaseFields(t *testing.T) {
	provider := &fakeLLM{response: `{
		"name": "",
		"ingredients": [{"name": "rice noodles", "quantity": "200", "unit": "g"}],
		"steps": ["Cook the rice noodles."]
	}`}

	modified, err := newTestEditor(provider).Apply(context.Background(), baseRecipe(), "use rice noodles")
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if modified.Name != "Miso Ramen" {
		t.Errorf("name = %q, want inherited Miso Ramen", modified.Name)
	}
	if modified.Servings != 2 {
		t.Errorf("servings = %d, want inherited 2", modified.Servings)
	}
	if modified.Cuisine != "Japanese" {
		t.Errorf("cuisine = %q, want inherited Japanese", modified.Cuisine)
	}
}

func TestApplyRejectsIncompleteRecipe(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"missing steps", `{"name": "Spicy Miso Ramen", "ingredients": [{"name": "noodles"}], "steps": []}`},
		{"missing ingredients", `{"name": "Spicy Miso Ramen", "ingredients": [], "steps": ["Simmer."]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestEditor(&fakeLLM{response: tt.response}).
				Apply(context.Background(), baseRecipe(), "make it spicy")

			if err == nil {
				t.Fatal("expected an error for an incomplete modification")
			}
		})
	}
}

func TestApplyProviderError(t *testing.T) {
	_, err := newTestEditor(&fakeLLM{err: errors.New("upstream timeout")}).
		Apply(context.Background(), baseRecipe(), "make it spicy")

	if err == nil {
		t.Fatal("expected an error when generation fails")
	}
}

func TestApplyInvalidJSON(t *testing.T) {
	_, err := newTestEditor(&fakeLLM{response: "sure, just add chili oil"}).
		Apply(context.Background(), baseRecipe(), "make it spicy")

	if err == nil {
		t.Fatal("expected an error for a non-JSON response")
	}
}
