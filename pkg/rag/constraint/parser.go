package constraint

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

const DietUnspecified = "unspecified"

// Constraints are the structured filters extracted from a request.
// Zero values mean "not stated".
type Constraints struct {
	Diet               string   `json:"diet"`
	MaxMinutes         int      `json:"max_minutes"`
	IncludeIngredients []string `json:"include_ingredients"`
	ExcludeIngredients []string `json:"exclude_ingredients"`
	Cuisine            string   `json:"cuisine"`
	Count              int      `json:"count"`
}

// Parser extracts Constraints from free-form requests
type Parser struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewParser(llmProvider llm.LLMProvider, logger *log.Logger) *Parser {
	return &Parser{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Parse never fails the turn: on any LLM or parse error it returns
// unconstrained Constraints and logs the cause.
func (p *Parser) Parse(ctx context.Context, request string) Constraints {
	prompt := fmt.Sprintf(constant.ConstraintParsePrompt, request)

	response, err := p.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		p.logger.Printf("[WARN] Constraint parse failed, proceeding unconstrained: %v", err)
		return Unconstrained()
	}

	var c Constraints
	if err := jsonx.Unmarshal(response, &c); err != nil {
		p.logger.Printf("[WARN] Constraint parse returned invalid JSON: %v", err)
		return Unconstrained()
	}

	return normalize(c)
}

func Unconstrained() Constraints {
	return Constraints{Diet: DietUnspecified}
}

func normalize(c Constraints) Constraints {
	c.Diet = strings.ToLower(strings.TrimSpace(c.Diet))
	switch c.Diet {
	case "vegetarian", "vegan", "gluten_free", "dairy_free":
		// known diets
	default:
		c.Diet = DietUnspecified
	}

	if c.MaxMinutes < 0 {
		c.MaxMinutes = 0
	}
	if c.Count < 0 {
		c.Count = 0
	}
	// Count stays uncapped here; the generator owns the display cap so
	// it can tell the user the request was trimmed.
	c.Cuisine = strings.TrimSpace(c.Cuisine)
	c.IncludeIngredients = lowerAll(c.IncludeIngredients)
	c.ExcludeIngredients = lowerAll(c.ExcludeIngredients)
	return c
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if it != "" {
			out = append(out, it)
		}
	}
	return out
}

// Matches applies the hard filters to a recipe. Diet and cuisine match on
// tags/cuisine, time on TotalMinutes, excludes on ingredient names.
// Include-ingredients are a soft preference and do not reject here.
func (c Constraints) Matches(r *entity.Recipe) bool {
	if r == nil {
		return false
	}

	if c.Diet != "" && c.Diet != DietUnspecified && !hasTag(r.Tags, c.Diet) {
		return false
	}

	if c.MaxMinutes > 0 && r.TotalMinutes > c.MaxMinutes {
		return false
	}

	if c.Cuisine != "" && !strings.EqualFold(r.Cuisine, c.Cuisine) {
		return false
	}

	for _, excluded := range c.ExcludeIngredients {
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing.Name), excluded) {
				return false
			}
		}
	}

	return true
}

// IsConstrained reports whether any hard filter is active.
func (c Constraints) IsConstrained() bool {
	return (c.Diet != "" && c.Diet != DietUnspecified) ||
		c.MaxMinutes > 0 ||
		c.Cuisine != "" ||
		len(c.ExcludeIngredients) > 0
}

func hasTag(tags []string, want string) bool {
	want = strings.ReplaceAll(want, "_", "-")
	for _, tag := range tags {
		tag = strings.ToLower(strings.ReplaceAll(tag, "_", "-"))
		if tag == want {
			return true
		}
	}
	return false
}
