package router

import (
	"testing"

	"ai-foodchat-be/internal/entity"
)

func shownFixture() []entity.RecipeView {
	return []entity.RecipeView{
		{Id: "r1", Name: "Spaghetti Carbonara"},
		{Id: "r2", Name: "Chicken Tikka Masala"},
		{Id: "r3", Name: "Miso Ramen"},
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name      string
		shown     []entity.RecipeView
		target    string
		utterance string
		wantId    string
		wantOk    bool
	}{
		{
			name:      "classifier target wins",
			shown:     shownFixture(),
			target:    "miso ramen",
			utterance: "show me the first one",
			wantId:    "r3",
			wantOk:    true,
		},
		{
			name:      "partial target name",
			shown:     shownFixture(),
			target:    "tikka",
			utterance: "tell me more",
			wantId:    "r2",
			wantOk:    true,
		},
		{
			name:      "ordinal first",
			shown:     shownFixture(),
			target:    "",
			utterance: "show me the first one",
			wantId:    "r1",
			wantOk:    true,
		},
		{
			name:      "ordinal second",
			shown:     shownFixture(),
			target:    "",
			utterance: "what about the second one",
			wantId:    "r2",
			wantOk:    true,
		},
		{
			name:      "ordinal last",
			shown:     shownFixture(),
			target:    "",
			utterance: "the last one please",
			wantId:    "r3",
			wantOk:    true,
		},
		{
			name:      "ordinal out of range falls through to first shown",
			shown:     shownFixture(),
			target:    "",
			utterance: "show the ninth one",
			wantId:    "r1",
			wantOk:    true,
		},
		{
			name:      "name mentioned in utterance",
			shown:     shownFixture(),
			target:    "",
			utterance: "can I see the chicken tikka masala again",
			wantId:    "r2",
			wantOk:    true,
		},
		{
			name:      "no signal defaults to most recent",
			shown:     shownFixture(),
			target:    "",
			utterance: "show me that recipe",
			wantId:    "r1",
			wantOk:    true,
		},
		{
			name:      "nothing shown",
			shown:     nil,
			target:    "carbonara",
			utterance: "show it",
			wantOk:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveTarget(tt.shown, tt.target, tt.utterance)
			if ok != tt.wantOk {
				t.Fatalf("ResolveTarget() ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && got.Id != tt.wantId {
				t.Errorf("ResolveTarget() = %s, want %s", got.Id, tt.wantId)
			}
		})
	}
}
