package menu

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/unitofwork"
	"ai-foodchat-be/pkg/llm"
	"ai-foodchat-be/pkg/llm/jsonx"
	"ai-foodchat-be/pkg/rag/constraint"
	"ai-foodchat-be/pkg/rag/search"

	"golang.org/x/sync/errgroup"
)

// Slot is one day/meal cell of a menu plan.
type Slot struct {
	Day  string
	Meal string
}

// Assignment binds a slot to the recipe chosen for it. Recipe is nil when
// retrieval for the slot came up empty.
type Assignment struct {
	Slot   Slot
	Recipe *entity.Recipe
}

// Plan is a complete menu: one assignment per requested slot, in
// day-then-meal order.
type Plan struct {
	Assignments []Assignment
}

// Planner builds menu plans by running one retrieval per slot, in
// parallel, then assigning recipes so no recipe repeats within the plan.
type Planner struct {
	llmProvider llm.LLMProvider
	retriever   *search.Retriever
	logger      *log.Logger
}

func NewPlanner(llmProvider llm.LLMProvider, retriever *search.Retriever, logger *log.Logger) *Planner {
	return &Planner{
		llmProvider: llmProvider,
		retriever:   retriever,
		logger:      logger,
	}
}

type slotParseResult struct {
	Days       []string `json:"days"`
	Meals      []string `json:"meals"`
	UseHistory bool     `json:"use_history"`
}

// ParseSlots extracts the requested days and meals, plus whether the user
// wants recipes already discussed reused. Unstated or unparseable requests
// get the weekday-dinner default.
func (p *Planner) ParseSlots(ctx context.Context, request string) ([]Slot, bool) {
	days := constant.DefaultMenuDays
	meals := constant.DefaultMenuMeals
	useHistory := false

	prompt := fmt.Sprintf(constant.MenuPlanParsePrompt, request)
	response, err := p.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		p.logger.Printf("[WARN] Menu slot parse failed, using defaults: %v", err)
	} else {
		var parsed slotParseResult
		if err := jsonx.Unmarshal(response, &parsed); err != nil {
			p.logger.Printf("[WARN] Menu slot parse returned invalid JSON: %v", err)
		} else {
			if valid := filterValid(parsed.Days, constant.DaysOfWeek); len(valid) > 0 {
				days = valid
			}
			if valid := filterValid(parsed.Meals, constant.MealTypes); len(valid) > 0 {
				meals = valid
			}
			useHistory = parsed.UseHistory
		}
	}

	var slots []Slot
	for _, day := range days {
		for _, meal := range meals {
			slots = append(slots, Slot{Day: day, Meal: meal})
		}
	}
	return slots, useHistory
}

// Build fills every slot. When the user asked to reuse recipes from the
// conversation, history seeds the first slots (at most MaxRecipesDisplay);
// the rest are filled by retrieval. Slot retrievals run in parallel with a
// bounded group; a failed slot stays empty rather than failing the plan.
func (p *Planner) Build(
	ctx context.Context,
	uowFactory unitofwork.RepositoryFactory,
	request string,
	cons constraint.Constraints,
	searchCfg search.Config,
	history []*entity.Recipe,
) Plan {
	slots, useHistory := p.ParseSlots(ctx, request)

	used := make(map[string]bool)
	assignments := make([]Assignment, len(slots))

	if useHistory {
		seeds := dedupeRecipes(history, constant.MaxRecipesDisplay)
		for i := range slots {
			if i >= len(seeds) {
				break
			}
			used[seeds[i].Id.String()] = true
			assignments[i] = Assignment{Slot: slots[i], Recipe: seeds[i]}
		}
	}

	candidates := make([][]*entity.Recipe, len(slots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(constant.MenuMaxParallelSlots)

	for i, slot := range slots {
		if assignments[i].Recipe != nil {
			continue
		}
		g.Go(func() error {
			query := slotQuery(slot, cons)
			uow := uowFactory.NewUnitOfWork(gctx)
			recipes, err := p.retriever.Execute(gctx, uow, query, cons, searchCfg)
			if err != nil {
				p.logger.Printf("[WARN] Slot %s/%s retrieval failed: %v", slot.Day, slot.Meal, err)
				return nil
			}
			candidates[i] = recipes
			return nil
		})
	}
	_ = g.Wait()

	// Sequential assignment keeps slot order deterministic and avoids
	// repeating a recipe across the week.
	for i, slot := range slots {
		if assignments[i].Recipe != nil {
			continue
		}
		assignments[i] = Assignment{Slot: slot, Recipe: pickUnused(candidates[i], used)}
	}

	return Plan{Assignments: assignments}
}

// Render produces the user-facing plan text. Purely deterministic.
func Render(plan Plan) string {
	if len(plan.Assignments) == 0 {
		return "I couldn't work out which days or meals to plan. Tell me something like \"plan my dinners for next week\"."
	}

	var b strings.Builder
	b.WriteString("Here's your menu plan:\n")
	for _, a := range plan.Assignments {
		day := strings.ToUpper(a.Slot.Day[:1]) + a.Slot.Day[1:]
		if a.Recipe != nil {
			b.WriteString(fmt.Sprintf("- %s %s: %s", day, a.Slot.Meal, a.Recipe.Name))
			if a.Recipe.TotalMinutes > 0 {
				b.WriteString(fmt.Sprintf(" (%d min)", a.Recipe.TotalMinutes))
			}
			b.WriteString("\n")
		} else {
			b.WriteString(fmt.Sprintf("- %s %s: no match found\n", day, a.Slot.Meal))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func slotQuery(slot Slot, cons constraint.Constraints) string {
	hint := cons.Cuisine
	if hint == "" && cons.Diet != "" && cons.Diet != constraint.DietUnspecified {
		hint = strings.ReplaceAll(cons.Diet, "_", " ")
	}
	if hint == "" {
		hint = "easy"
	}
	return fmt.Sprintf(constant.MenuSlotQueryTemplate, hint, slot.Meal)
}

func pickUnused(recipes []*entity.Recipe, used map[string]bool) *entity.Recipe {
	for _, recipe := range recipes {
		id := recipe.Id.String()
		if !used[id] {
			used[id] = true
			return recipe
		}
	}
	// Every candidate already appears in the plan; repeat rather than
	// leave the slot empty.
	if len(recipes) > 0 {
		return recipes[0]
	}
	return nil
}

func dedupeRecipes(recipes []*entity.Recipe, limit int) []*entity.Recipe {
	seen := make(map[string]bool)
	var out []*entity.Recipe
	for _, recipe := range recipes {
		id := recipe.Id.String()
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, recipe)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func filterValid(items, allowed []string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = true
	}
	var out []string
	seen := make(map[string]bool)
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if allowedSet[it] && !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}
