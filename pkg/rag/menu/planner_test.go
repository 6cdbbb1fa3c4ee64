package menu

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/pkg/llm"
	"ai-foodchat-be/pkg/rag/constraint"
	"ai-foodchat-be/pkg/rag/search"

	"github.com/google/uuid"
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

func newTestPlanner(provider llm.LLMProvider) *Planner {
	logger := log.New(io.Discard, "", 0)
	return NewPlanner(provider, search.NewRetriever(nil, logger), logger)
}

func TestParseSlotsDefaults(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeLLM
	}{
		{"provider error", &fakeLLM{err: errors.New("upstream timeout")}},
		{"invalid json", &fakeLLM{response: "monday through friday"}},
		{"empty lists", &fakeLLM{response: `{"days": [], "meals": [], "use_history": false}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, useHistory := newTestPlanner(tt.provider).
				ParseSlots(context.Background(), "plan my week")

			if len(slots) != 5 {
				t.Fatalf("slots = %d, want 5 weekday dinners", len(slots))
			}
			if slots[0].Day != "monday" || slots[0].Meal != "dinner" {
				t.Errorf("first slot = %+v, want monday dinner", slots[0])
			}
			if slots[4].Day != "friday" {
				t.Errorf("last slot day = %q, want friday", slots[4].Day)
			}
			if useHistory {
				t.Error("useHistory = true, want false by default")
			}
		})
	}
}

func TestParseSlotsFiltersInvalidEntries(t *testing.T) {
	provider := &fakeLLM{
		response: `{"days": ["Saturday", "Funday", "saturday"], "meals": ["brunch", "Lunch", "dinner"], "use_history": false}`,
	}

	slots, _ := newTestPlanner(provider).ParseSlots(context.Background(), "weekend meals")

	if len(slots) != 2 {
		t.Fatalf("slots = %d, want saturday lunch and dinner", len(slots))
	}
	if slots[0].Day != "saturday" || slots[0].Meal != "lunch" {
		t.Errorf("first slot = %+v, want saturday lunch", slots[0])
	}
	if slots[1].Meal != "dinner" {
		t.Errorf("second slot meal = %q, want dinner", slots[1].Meal)
	}
}

func TestParseSlotsUseHistory(t *testing.T) {
	provider := &fakeLLM{
		response: `{"days": ["monday", "tuesday"], "meals": ["dinner"], "use_history": true}`,
	}

	slots, useHistory := newTestPlanner(provider).
		ParseSlots(context.Background(), "plan dinners from the recipes we discussed")

	if len(slots) != 2 {
		t.Fatalf("slots = %d, want 2", len(slots))
	}
	if !useHistory {
		t.Error("useHistory = false, want true")
	}
}

func TestBuildSeedsFromHistory(t *testing.T) {
	provider := &fakeLLM{
		response: `{"days": ["monday", "tuesday"], "meals": ["dinner"], "use_history": true}`,
	}

	ramen := &entity.Recipe{Id: uuid.New(), Name: "Miso Ramen", TotalMinutes: 40}
	salad := &entity.Recipe{Id: uuid.New(), Name: "Greek Salad", TotalMinutes: 15}
	// Duplicate entries must not consume a slot.
	history := []*entity.Recipe{ramen, ramen, salad}

	plan := newTestPlanner(provider).Build(
		context.Background(), nil, "plan dinners from the recipes we discussed",
		constraint.Unconstrained(), search.Config{}, history,
	)

	if len(plan.Assignments) != 2 {
		t.Fatalf("assignments = %d, want 2", len(plan.Assignments))
	}
	if plan.Assignments[0].Recipe == nil || plan.Assignments[0].Recipe.Name != "Miso Ramen" {
		t.Errorf("monday = %+v, want Miso Ramen", plan.Assignments[0].Recipe)
	}
	if plan.Assignments[1].Recipe == nil || plan.Assignments[1].Recipe.Name != "Greek Salad" {
		t.Errorf("tuesday = %+v, want Greek Salad", plan.Assignments[1].Recipe)
	}
}

func TestPickUnusedSkipsAssignedRecipes(t *testing.T) {
	ramen := &entity.Recipe{Id: uuid.New(), Name: "Miso Ramen"}
	salad := &entity.Recipe{Id: uuid.New(), Name: "Greek Salad"}

	used := map[string]bool{ramen.Id.String(): true}

	picked := pickUnused([]*entity.Recipe{ramen, salad}, used)
	if picked == nil || picked.Name != "Greek Salad" {
		t.Errorf("picked = %+v, want Greek Salad", picked)
	}

	// Every candidate used: repeat rather than leave the slot empty.
	repeat := pickUnused([]*entity.Recipe{ramen}, used)
	if repeat == nil || repeat.Name != "Miso Ramen" {
		t.Errorf("repeat pick = %+v, want Miso Ramen", repeat)
	}

	if pickUnused(nil, used) != nil {
		t.Error("no candidates should pick nil")
	}
}

func TestRender(t *testing.T) {
	ramen := &entity.Recipe{Id: uuid.New(), Name: "Miso Ramen", TotalMinutes: 40}

	plan := Plan{Assignments: []Assignment{
		{Slot: Slot{Day: "monday", Meal: "dinner"}, Recipe: ramen},
		{Slot: Slot{Day: "tuesday", Meal: "dinner"}, Recipe: nil},
	}}

	rendered := Render(plan)

	if !strings.Contains(rendered, "Monday dinner: Miso Ramen (40 min)") {
		t.Errorf("rendered plan missing assignment line:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Tuesday dinner: no match found") {
		t.Errorf("rendered plan missing empty-slot line:\n%s", rendered)
	}
}

func TestRenderEmptyPlan(t *testing.T) {
	rendered := Render(Plan{})

	if !strings.Contains(rendered, "couldn't work out") {
		t.Errorf("rendered = %q, want the clarification message", rendered)
	}
}
