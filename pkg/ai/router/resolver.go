package router

import (
	"strings"

	"ai-foodchat-be/internal/entity"
)

// ordinalWords maps spoken ordinals to positions in the last shown list.
var ordinalWords = []struct {
	word string
	idx  int
}{
	{"first", 1}, {"second", 2}, {"third", 3}, {"fourth", 4}, {"fifth", 5},
	{"sixth", 6}, {"seventh", 7}, {"eighth", 8}, {"ninth", 9}, {"tenth", 10},
	{"last", -1},
}

// ResolveTarget picks the recipe a turn refers to. shown is the recipe
// history, most recent first, so shown[0] is the newest card and ordinals
// index into the most recent list.
//
// Resolution order: classifier target name, ordinal in the utterance, name
// mentioned in the utterance, then the most recent card.
func ResolveTarget(shown []entity.RecipeView, target, utterance string) (entity.RecipeView, bool) {
	if len(shown) == 0 {
		return entity.RecipeView{}, false
	}

	if target != "" {
		if view, ok := matchByName(shown, target); ok {
			return view, true
		}
	}

	if idx := findOrdinal(utterance); idx != 0 {
		if idx == -1 {
			return shown[len(shown)-1], true
		}
		if idx <= len(shown) {
			return shown[idx-1], true
		}
	}

	if view, ok := matchByName(shown, utterance); ok {
		return view, true
	}

	return shown[0], true
}

func matchByName(shown []entity.RecipeView, text string) (entity.RecipeView, bool) {
	lower := strings.ToLower(text)
	for _, view := range shown {
		name := strings.ToLower(view.Name)
		if name == "" {
			continue
		}
		if strings.Contains(lower, name) || strings.Contains(name, strings.TrimSpace(lower)) {
			return view, true
		}
	}
	return entity.RecipeView{}, false
}

func findOrdinal(utterance string) int {
	lower := strings.ToLower(utterance)
	for _, o := range ordinalWords {
		if strings.Contains(lower, o.word+" one") || strings.Contains(lower, "the "+o.word) {
			return o.idx
		}
	}
	return 0
}
