package response

import (
	"fmt"
	"strings"

	"ai-foodchat-be/internal/entity"
)

// FormatCard renders the full recipe card. show_recipe replies use this
// directly; the LLM never rewrites card contents.
func FormatCard(view entity.RecipeView) string {
	var b strings.Builder

	b.WriteString("## " + view.Name + "\n")
	if view.Description != "" {
		b.WriteString(view.Description + "\n")
	}

	var meta []string
	if view.Servings > 0 {
		meta = append(meta, fmt.Sprintf("Serves %d", view.Servings))
	}
	if view.TotalMinutes > 0 {
		meta = append(meta, fmt.Sprintf("%d min", view.TotalMinutes))
	}
	if view.Cuisine != "" {
		meta = append(meta, view.Cuisine)
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " | ") + "\n")
	}

	b.WriteString("\n" + FormatIngredients(view))
	b.WriteString("\n### Steps\n")
	for i, step := range view.Steps {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}

	b.WriteString("\n" + FormatNutrition(view))

	return strings.TrimRight(b.String(), "\n")
}

// FormatIngredients renders only the ingredient block.
func FormatIngredients(view entity.RecipeView) string {
	var b strings.Builder
	b.WriteString("### Ingredients\n")
	if len(view.Ingredients) == 0 {
		b.WriteString("(not listed)\n")
		return b.String()
	}
	for _, ing := range view.Ingredients {
		line := "- "
		if ing.Quantity != "" {
			line += ing.Quantity
			if ing.Unit != "" {
				line += " " + ing.Unit
			}
			line += " "
		}
		line += ing.Name
		b.WriteString(line + "\n")
	}
	return b.String()
}

// FormatNutrition renders only the nutrition block, per serving.
func FormatNutrition(view entity.RecipeView) string {
	n := view.Nutrition
	if n.Calories == 0 && n.ProteinG == 0 && n.CarbsG == 0 && n.FatG == 0 {
		return "### Nutrition\n(not available)\n"
	}
	return fmt.Sprintf(
		"### Nutrition (per serving)\n- Calories: %.0f kcal\n- Protein: %.1f g\n- Carbs: %.1f g\n- Fat: %.1f g\n",
		n.Calories, n.ProteinG, n.CarbsG, n.FatG,
	)
}
