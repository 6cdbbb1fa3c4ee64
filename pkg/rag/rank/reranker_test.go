package rank

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/pkg/llm"

	"github.com/google/uuid"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.calls++
	return f.response, f.err
}

func testRecipes(names ...string) []*entity.Recipe {
	recipes := make([]*entity.Recipe, len(names))
	for i, name := range names {
		recipes[i] = &entity.Recipe{Id: uuid.New(), Name: name}
	}
	return recipes
}

func newTestReranker(provider llm.LLMProvider, batchSize int) *Reranker {
	return NewReranker(provider, log.New(io.Discard, "", 0), batchSize)
}

func TestRerankOrdersByScore(t *testing.T) {
	recipes := testRecipes("Greek Salad", "Miso Ramen", "Beef Tacos")
	response := fmt.Sprintf(
		`{"scores": [{"id": "%s", "score": 3}, {"id": "%s", "score": 9}, {"id": "%s", "score": 6}]}`,
		recipes[0].Id, recipes[1].Id, recipes[2].Id,
	)

	scored := newTestReranker(&fakeLLM{response: response}, 0).
		Rerank(context.Background(), "japanese soup", recipes)

	wantOrder := []string{"Miso Ramen", "Beef Tacos", "Greek Salad"}
	for i, want := range wantOrder {
		if scored[i].Recipe.Name != want {
			t.Errorf("position %d = %q, want %q", i, scored[i].Recipe.Name, want)
		}
	}
	if scored[0].Score != 9 {
		t.Errorf("top score = %d, want 9", scored[0].Score)
	}
}

func TestRerankClampsScores(t *testing.T) {
	recipes := testRecipes("Greek Salad", "Miso Ramen")
	response := fmt.Sprintf(
		`{"scores": [{"id": "%s", "score": 99}, {"id": "%s", "score": -4}]}`,
		recipes[0].Id, recipes[1].Id,
	)

	scored := newTestReranker(&fakeLLM{response: response}, 0).
		Rerank(context.Background(), "salad", recipes)

	if scored[0].Score != 10 {
		t.Errorf("top score = %d, want clamped to 10", scored[0].Score)
	}
	if scored[1].Score != 0 {
		t.Errorf("bottom score = %d, want clamped to 0", scored[1].Score)
	}
}

func TestRerankFailureKeepsSimilarityOrder(t *testing.T) {
	recipes := testRecipes("Greek Salad", "Miso Ramen", "Beef Tacos")

	tests := []struct {
		name     string
		provider *fakeLLM
	}{
		{"provider error", &fakeLLM{err: errors.New("upstream timeout")}},
		{"invalid json", &fakeLLM{response: "these all look tasty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scored := newTestReranker(tt.provider, 0).
				Rerank(context.Background(), "anything", recipes)

			for i, recipe := range recipes {
				if scored[i].Recipe.Name != recipe.Name {
					t.Errorf("position %d = %q, want %q", i, scored[i].Recipe.Name, recipe.Name)
				}
				if scored[i].Score != 0 {
					t.Errorf("score = %d, want 0", scored[i].Score)
				}
			}
		})
	}
}

func TestRerankMissingScoreDefaultsToZero(t *testing.T) {
	recipes := testRecipes("Greek Salad", "Miso Ramen")
	response := fmt.Sprintf(`{"scores": [{"id": "%s", "score": 7}]}`, recipes[1].Id)

	scored := newTestReranker(&fakeLLM{response: response}, 0).
		Rerank(context.Background(), "ramen", recipes)

	if scored[0].Recipe.Name != "Miso Ramen" || scored[0].Score != 7 {
		t.Errorf("top = %q/%d, want Miso Ramen/7", scored[0].Recipe.Name, scored[0].Score)
	}
	if scored[1].Score != 0 {
		t.Errorf("unscored recipe score = %d, want 0", scored[1].Score)
	}
}

func TestRenderBatchProjection(t *testing.T) {
	recipe := &entity.Recipe{
		Id:           uuid.New(),
		Name:         "Miso Ramen",
		Description:  "A comforting noodle soup.",
		Tags:         []string{"soup", "noodles"},
		TotalMinutes: 40,
		Nutrition:    entity.Nutrition{Calories: 520, ProteinG: 21, CarbsG: 68, FatG: 14},
	}

	rendered := renderBatch([]ScoredRecipe{{Recipe: recipe}})

	for _, want := range []string{
		"name: Miso Ramen",
		"tags: soup, noodles",
		"time: 40 min",
		"macros: 520 kcal, 21g protein, 68g carbs, 14g fat",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("projection missing %q:\n%s", want, rendered)
		}
	}
}

func TestRerankBatches(t *testing.T) {
	recipes := testRecipes("A", "B", "C", "D", "E")
	provider := &fakeLLM{err: errors.New("upstream timeout")}

	newTestReranker(provider, 2).Rerank(context.Background(), "anything", recipes)

	if provider.calls != 3 {
		t.Errorf("batch calls = %d, want 3", provider.calls)
	}
}
