package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/pkg/llm"
	"ai-foodchat-be/pkg/llm/jsonx"
)

// Result is the classifier output for one user turn.
type Result struct {
	Intent       string  `json:"intent"`
	Confidence   float64 `json:"confidence"`
	TargetRecipe string  `json:"target_recipe"`
	Reason       string  `json:"reason"`
}

// Classifier labels each user turn with one of the chat intents.
// The LLM proposes a label; deterministic rules then override it where the
// conversation state makes the label impossible.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// contextDependent intents require at least one recipe already shown.
// ingredients is absent: "I have chicken and rice" opens a conversation.
var contextDependent = map[string]bool{
	constant.IntentShowRecipe:     true,
	constant.IntentAnswerQuestion: true,
	constant.IntentModification:   true,
	constant.IntentNutrition:      true,
}

var knownIntents = map[string]bool{
	constant.IntentShowRecipe:     true,
	constant.IntentAnswerQuestion: true,
	constant.IntentModification:   true,
	constant.IntentNewRequest:     true,
	constant.IntentWeeklyMenu:     true,
	constant.IntentNutrition:      true,
	constant.IntentIngredients:    true,
}

// Classify never fails the turn: anything the model cannot label cleanly
// becomes a new_request.
func (c *Classifier) Classify(
	ctx context.Context,
	history []llm.Message,
	shown []entity.RecipeView,
	utterance string,
	lastIntent string,
) Result {
	prompt := c.buildPrompt(history, shown, utterance)

	response, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		// Classification is an idempotent read; retry once before
		// falling back.
		c.logger.Printf("[WARN] Intent classification failed, retrying once: %v", err)
		response, err = c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	}
	if err != nil {
		c.logger.Printf("[WARN] Intent classification failed: %v", err)
		return fallbackResult("llm error")
	}

	var result Result
	if err := jsonx.Unmarshal(response, &result); err != nil {
		c.logger.Printf("[WARN] Intent response was not valid JSON: %v", err)
		return fallbackResult("unparseable response")
	}

	result.Intent = strings.ToLower(strings.TrimSpace(result.Intent))
	if !knownIntents[result.Intent] {
		c.logger.Printf("[WARN] Unknown intent label %q, treating as new_request", result.Intent)
		return fallbackResult("unknown label")
	}

	if result.Confidence <= 0 {
		c.logger.Printf("[DEBUG] Intent %q has zero confidence, demoting to new_request", result.Intent)
		return fallbackResult("zero confidence")
	}

	return c.applyOverrides(result, shown, utterance, lastIntent)
}

// applyOverrides enforces the rules the LLM cannot be trusted with, in
// fixed precedence: explicit display request, then pagination, then the
// no-context demotion, then change-cue promotion.
func (c *Classifier) applyOverrides(result Result, shown []entity.RecipeView, utterance string, lastIntent string) Result {
	// "Show me the recipe/card" wins over whatever the model labelled.
	if result.Intent != constant.IntentShowRecipe && hasDisplayCue(utterance) {
		c.logger.Printf("[DEBUG] Display phrase overrides %q with show_recipe", result.Intent)
		result.Intent = constant.IntentShowRecipe
	}

	// "More"/"others"/"another one" right after a suggestion or card is
	// pagination, never a modification of what was shown.
	if result.Intent != constant.IntentShowRecipe && hasPaginationCue(utterance) &&
		(lastIntent == constant.IntentNewRequest || lastIntent == constant.IntentShowRecipe) {
		c.logger.Printf("[DEBUG] Pagination phrase overrides %q with new_request", result.Intent)
		result.Intent = constant.IntentNewRequest
		result.TargetRecipe = ""
		result.Reason = "pagination after a suggestion"
		return result
	}

	// Context-dependent intents are impossible before any card was shown.
	if contextDependent[result.Intent] && len(shown) == 0 {
		c.logger.Printf("[DEBUG] Intent %q demoted: no recipes shown yet", result.Intent)
		result.Intent = constant.IntentNewRequest
		result.TargetRecipe = ""
		result.Reason = "no recipes shown yet"
		return result
	}

	// A change verb aimed at a recipe we actually showed wins over
	// new_request even if the model went the other way.
	if result.Intent == constant.IntentNewRequest && len(shown) > 0 {
		if name, ok := mentionsShownRecipe(shown, utterance); ok && hasChangeCue(utterance) {
			c.logger.Printf("[DEBUG] Promoting new_request to modification (targets %q)", name)
			result.Intent = constant.IntentModification
			result.TargetRecipe = name
		}
	}

	return result
}

func (c *Classifier) buildPrompt(history []llm.Message, shown []entity.RecipeView, utterance string) string {
	var hist strings.Builder
	if len(history) == 0 {
		hist.WriteString("(none)")
	}
	for _, msg := range history {
		hist.WriteString(msg.Role)
		hist.WriteString(": ")
		hist.WriteString(msg.Content)
		hist.WriteString("\n")
	}

	var names strings.Builder
	if len(shown) == 0 {
		names.WriteString("(none)")
	}
	for i, view := range shown {
		names.WriteString(fmt.Sprintf("%d. %s\n", i+1, view.Name))
	}

	return fmt.Sprintf(constant.IntentClassificationPrompt, hist.String(), names.String(), utterance)
}

// fallbackResult reclassifies as new_request with zero confidence so
// downstream never sees a label it cannot dispatch.
func fallbackResult(reason string) Result {
	return Result{
		Intent:     constant.IntentNewRequest,
		Confidence: 0,
		Reason:     "fallback: " + reason,
	}
}

func mentionsShownRecipe(shown []entity.RecipeView, utterance string) (string, bool) {
	lower := strings.ToLower(utterance)
	for _, view := range shown {
		name := strings.ToLower(view.Name)
		if name != "" && strings.Contains(lower, name) {
			return view.Name, true
		}
	}
	return "", false
}

var displayCues = []string{
	"show me the recipe", "show the recipe", "show me the card",
	"show the card", "show me the full recipe", "show that recipe",
}

func hasDisplayCue(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, cue := range displayCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

var paginationCues = []string{
	"another one", "other ones", "any others", "more recipes",
	"more options", "more suggestions", "show me more", "something else",
	"what else",
}

func hasPaginationCue(utterance string) bool {
	lower := strings.TrimSpace(strings.ToLower(utterance))
	if lower == "more" || lower == "others" {
		return true
	}
	for _, cue := range paginationCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

var changeCues = []string{
	"make it", "make the", "without", "instead of", "swap", "replace",
	"substitute", "less ", "more ", "double", "halve", "vegetarian version",
	"vegan version",
}

func hasChangeCue(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, cue := range changeCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
