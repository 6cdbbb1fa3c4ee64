package modify

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/pkg/llm"
	"ai-foodchat-be/pkg/llm/jsonx"
	"ai-foodchat-be/pkg/rag/response"
)

// Editor applies a requested change to an already-shown recipe. The result
// is an ephemeral card; nothing here writes to the recipes table.
type Editor struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewEditor(llmProvider llm.LLMProvider, logger *log.Logger) *Editor {
	return &Editor{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Apply returns the modified recipe. The returned view has no id; the
// caller assigns one from the session's ephemeral namespace.
func (e *Editor) Apply(ctx context.Context, base entity.RecipeView, request string) (entity.RecipeView, error) {
	var prompt strings.Builder
	prompt.WriteString(constant.ModificationSystemPrompt)
	prompt.WriteString(response.FormatCard(base))
	prompt.WriteString("\n\n=== REQUESTED CHANGE ===\n")
	prompt.WriteString(request)

	raw, err := e.llmProvider.Generate(ctx, prompt.String(), llm.WithTemperature(0.3))
	if err != nil {
		return entity.RecipeView{}, fmt.Errorf("modification generation failed: %w", err)
	}

	var modified entity.RecipeView
	if err := jsonx.Unmarshal(raw, &modified); err != nil {
		return entity.RecipeView{}, fmt.Errorf("modification returned invalid recipe: %w", err)
	}

	if strings.TrimSpace(modified.Name) == "" {
		modified.Name = base.Name
	}
	if len(modified.Ingredients) == 0 || len(modified.Steps) == 0 {
		return entity.RecipeView{}, fmt.Errorf("modification dropped ingredients or steps")
	}

	// Ephemeral: id is assigned by the session, never by the model.
	modified.Id = ""
	if modified.Servings == 0 {
		modified.Servings = base.Servings
	}
	if modified.Cuisine == "" {
		modified.Cuisine = base.Cuisine
	}

	e.logger.Printf("[DEBUG] Modified %q -> %q", base.Name, modified.Name)
	return modified, nil
}
