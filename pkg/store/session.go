package store

import (
	"fmt"
	"strings"

	"ai-foodchat-be/internal/entity"
)

// Session is the ephemeral per-conversation state kept in memory.
// Modified recipes never touch the recipes table; they live here under
// ids of the form "mod:<session>:<seq>" until the session expires.
type Session struct {
	ID         string `json:"id"` // ChatSessionID
	LastQuery  string `json:"last_query"`
	LastIntent string `json:"last_intent"`

	ModSeq          int                          `json:"mod_seq"`
	ModifiedRecipes map[string]entity.RecipeView `json:"modified_recipes"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:              id,
		ModifiedRecipes: map[string]entity.RecipeView{},
	}
}

// PutModified assigns the next ephemeral id to the view, stores it and
// returns the id.
func (s *Session) PutModified(view entity.RecipeView) string {
	s.ModSeq++
	id := fmt.Sprintf("mod:%s:%d", s.ID, s.ModSeq)
	view.Id = id
	if s.ModifiedRecipes == nil {
		s.ModifiedRecipes = map[string]entity.RecipeView{}
	}
	s.ModifiedRecipes[id] = view
	return id
}

func (s *Session) GetModified(id string) (entity.RecipeView, bool) {
	v, ok := s.ModifiedRecipes[id]
	return v, ok
}

// IsModifiedId reports whether the id belongs to the ephemeral namespace.
func IsModifiedId(id string) bool {
	return strings.HasPrefix(id, "mod:")
}
