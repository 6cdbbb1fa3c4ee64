package constraint

import (
	"context"
	"errors"
	"io"
	"log"
	"reflect"
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

func newTestParser(provider llm.LLMProvider) *Parser {
	return NewParser(provider, log.New(io.Discard, "", 0))
}

func TestParseNormalizes(t *testing.T) {
	parser := newTestParser(&fakeLLM{
		response: `{"diet": " Vegan ", "max_minutes": 30, "include_ingredients": [" Tofu ", ""], "exclude_ingredients": ["Peanuts"], "cuisine": " thai ", "count": 25}`,
	})

	c := parser.Parse(context.Background(), "quick vegan thai, no peanuts")

	if c.Diet != "vegan" {
		t.Errorf("diet = %q, want vegan", c.Diet)
	}
	if c.MaxMinutes != 30 {
		t.Errorf("max_minutes = %d, want 30", c.MaxMinutes)
	}
	if len(c.IncludeIngredients) != 1 || c.IncludeIngredients[0] != "tofu" {
		t.Errorf("include = %v, want [tofu]", c.IncludeIngredients)
	}
	if len(c.ExcludeIngredients) != 1 || c.ExcludeIngredients[0] != "peanuts" {
		t.Errorf("exclude = %v, want [peanuts]", c.ExcludeIngredients)
	}
	if c.Cuisine != "thai" {
		t.Errorf("cuisine = %q, want thai", c.Cuisine)
	}
	// The display cap is the generator's job; the parser reports what
	// the user actually asked for.
	if c.Count != 25 {
		t.Errorf("count = %d, want 25 uncapped", c.Count)
	}
}

func TestParseRejectsUnknownDiet(t *testing.T) {
	parser := newTestParser(&fakeLLM{response: `{"diet": "keto", "max_minutes": -5, "count": -2}`})

	c := parser.Parse(context.Background(), "keto dinner")

	if c.Diet != DietUnspecified {
		t.Errorf("diet = %q, want %q", c.Diet, DietUnspecified)
	}
	if c.MaxMinutes != 0 {
		t.Errorf("max_minutes = %d, want 0", c.MaxMinutes)
	}
	if c.Count != 0 {
		t.Errorf("count = %d, want 0", c.Count)
	}
}

func TestParseFailuresAreUnconstrained(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeLLM
	}{
		{"provider error", &fakeLLM{err: errors.New("upstream timeout")}},
		{"invalid json", &fakeLLM{response: "sure, here are some constraints"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestParser(tt.provider).Parse(context.Background(), "anything quick")

			if !reflect.DeepEqual(c, Unconstrained()) {
				t.Errorf("got %+v, want unconstrained", c)
			}
			if c.IsConstrained() {
				t.Error("unconstrained result reports IsConstrained")
			}
		})
	}
}

func TestMatches(t *testing.T) {
	recipe := &entity.Recipe{
		Name:         "Chickpea Coconut Curry",
		Cuisine:      "Indian",
		TotalMinutes: 35,
		Tags:         []string{"Vegan", "Gluten-Free"},
		Ingredients: []entity.Ingredient{
			{Name: "Chickpeas"},
			{Name: "Coconut Milk"},
		},
	}

	tests := []struct {
		name string
		cons Constraints
		want bool
	}{
		{"unconstrained", Unconstrained(), true},
		{"diet tag matches case-insensitively", Constraints{Diet: "vegan"}, true},
		{"underscore diet matches hyphen tag", Constraints{Diet: "gluten_free"}, true},
		{"missing diet tag rejects", Constraints{Diet: "vegetarian"}, false},
		{"within time budget", Constraints{Diet: DietUnspecified, MaxMinutes: 40}, true},
		{"over time budget", Constraints{Diet: DietUnspecified, MaxMinutes: 30}, false},
		{"cuisine matches case-insensitively", Constraints{Cuisine: "indian"}, true},
		{"wrong cuisine rejects", Constraints{Cuisine: "thai"}, false},
		{"excluded ingredient substring rejects", Constraints{ExcludeIngredients: []string{"coconut"}}, false},
		{"absent exclusion passes", Constraints{ExcludeIngredients: []string{"peanut"}}, true},
		{"include ingredients never reject", Constraints{IncludeIngredients: []string{"paneer"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cons.Matches(recipe); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}

	if Unconstrained().Matches(nil) {
		t.Error("nil recipe should never match")
	}
}

func TestIsConstrained(t *testing.T) {
	tests := []struct {
		name string
		cons Constraints
		want bool
	}{
		{"empty", Constraints{}, false},
		{"unspecified diet", Unconstrained(), false},
		{"diet", Constraints{Diet: "vegan"}, true},
		{"max minutes", Constraints{MaxMinutes: 20}, true},
		{"cuisine", Constraints{Cuisine: "thai"}, true},
		{"exclusions", Constraints{ExcludeIngredients: []string{"peanuts"}}, true},
		{"only includes", Constraints{IncludeIngredients: []string{"tofu"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cons.IsConstrained(); got != tt.want {
				t.Errorf("IsConstrained = %v, want %v", got, tt.want)
			}
		})
	}
}
