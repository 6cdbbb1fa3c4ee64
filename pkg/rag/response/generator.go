package response

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/pkg/llm"
)

// Generator produces user-facing replies grounded in retrieved recipes.
// Every reply mentions only recipes handed to it; the LLM adds phrasing,
// never content.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// SuggestResult is the generated suggestion reply plus the cards it showed.
type SuggestResult struct {
	Reply string
	Shown []entity.RecipeView
}

// Suggest presents ranked candidates. requestedCount comes from the parsed
// constraints (0 = unstated); asking for more than the display cap trims
// to the cap with a notice, and fewer hits than requested gets a shortfall
// notice.
func (g *Generator) Suggest(
	ctx context.Context,
	request string,
	candidates []entity.RecipeView,
	requestedCount int,
) SuggestResult {

	wanted := requestedCount
	capped := false
	if wanted <= 0 {
		wanted = constant.DefaultRecipeCount
	}
	if wanted > constant.MaxRecipesDisplay {
		wanted = constant.MaxRecipesDisplay
		capped = true
	}

	if len(candidates) == 0 {
		return SuggestResult{
			Reply: "I couldn't find any recipes matching that. Could you loosen a constraint or try a different dish?",
		}
	}

	shown := candidates
	if len(shown) > wanted {
		shown = shown[:wanted]
	}

	reply := g.phraseSuggestions(ctx, request, shown)

	var notices []string
	if capped {
		notices = append(notices, fmt.Sprintf(constant.RecipeCapNotice, constant.MaxRecipesDisplay))
	}
	if requestedCount > 0 && len(shown) < wanted {
		notices = append(notices, fmt.Sprintf(constant.RecipeShortfallNotice, len(shown)))
	}
	if len(notices) > 0 {
		reply = reply + "\n\n" + strings.Join(notices, " ")
	}

	g.logger.Printf("[GENERATION] Suggested %d/%d recipes (capped=%v)", len(shown), len(candidates), capped)

	return SuggestResult{Reply: reply, Shown: shown}
}

// phraseSuggestions lets the LLM word the list. If it fails or drifts from
// the candidates, the deterministic rendering is used instead.
func (g *Generator) phraseSuggestions(ctx context.Context, request string, shown []entity.RecipeView) string {
	var prompt strings.Builder
	prompt.WriteString(constant.SuggestionSystemPrompt)
	for i, view := range shown {
		prompt.WriteString(fmt.Sprintf("\n%d. %s", i+1, view.Name))
		if view.Description != "" {
			prompt.WriteString(" - " + view.Description)
		}
		if view.TotalMinutes > 0 {
			prompt.WriteString(fmt.Sprintf(" (%d min)", view.TotalMinutes))
		}
	}
	prompt.WriteString("\n\n=== REQUEST ===\n")
	prompt.WriteString(request)

	reply, err := g.llmProvider.Generate(ctx, prompt.String(), llm.WithTemperature(0.7))
	if err != nil {
		g.logger.Printf("[WARN] Suggestion phrasing failed, using plain list: %v", err)
		return renderPlainList(shown)
	}

	for _, view := range shown {
		if !strings.Contains(strings.ToLower(reply), strings.ToLower(view.Name)) {
			g.logger.Printf("[WARN] LLM reply dropped %q, using plain list", view.Name)
			return renderPlainList(shown)
		}
	}

	return reply
}

// Answer responds to a question about one already-shown recipe.
func (g *Generator) Answer(ctx context.Context, question string, view entity.RecipeView) string {
	var prompt strings.Builder
	prompt.WriteString(constant.AnswerQuestionSystemPrompt)
	prompt.WriteString(FormatCard(view))
	prompt.WriteString("\n\n=== QUESTION ===\n")
	prompt.WriteString(question)

	reply, err := g.llmProvider.Generate(ctx, prompt.String(), llm.WithTemperature(0.3))
	if err != nil {
		g.logger.Printf("[ERROR] Answer generation failed: %v", err)
		return "Sorry, I couldn't put together an answer just now. Please try again."
	}
	return reply
}

func renderPlainList(shown []entity.RecipeView) string {
	var b strings.Builder
	b.WriteString("Here's what I found:\n")
	for i, view := range shown {
		b.WriteString(fmt.Sprintf("%d. %s", i+1, view.Name))
		if view.Description != "" {
			b.WriteString(" - " + view.Description)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
