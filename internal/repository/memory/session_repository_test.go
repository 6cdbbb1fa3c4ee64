package memory

import (
	"testing"
	"time"

	"ai-foodchat-be/internal/entity"
)

func TestGetOrCreateReturnsSameInstance(t *testing.T) {
	repo := NewSessionRepository(time.Minute)

	first := repo.GetOrCreate("session-1")
	first.LastQuery = "vegan ramen"

	second := repo.GetOrCreate("session-1")
	if second.LastQuery != "vegan ramen" {
		t.Errorf("LastQuery = %q, want the state from the first call", second.LastQuery)
	}
	if first != second {
		t.Error("GetOrCreate returned a different instance for the same id")
	}
}

func TestGetMissingSession(t *testing.T) {
	repo := NewSessionRepository(time.Minute)

	if _, ok := repo.Get("nope"); ok {
		t.Error("Get returned a session that was never created")
	}
}

func TestDeleteDropsEphemeralState(t *testing.T) {
	repo := NewSessionRepository(time.Minute)

	session := repo.GetOrCreate("session-1")
	session.PutModified(entity.RecipeView{Name: "Spicy Miso Ramen"})
	repo.Save(session)

	repo.Delete("session-1")

	if _, ok := repo.Get("session-1"); ok {
		t.Error("session survived Delete")
	}

	fresh := repo.GetOrCreate("session-1")
	if len(fresh.ModifiedRecipes) != 0 {
		t.Errorf("fresh session has %d modified recipes, want 0", len(fresh.ModifiedRecipes))
	}
}

func TestSessionExpires(t *testing.T) {
	repo := NewSessionRepository(20 * time.Millisecond)

	repo.GetOrCreate("session-1")
	time.Sleep(50 * time.Millisecond)

	if _, ok := repo.Get("session-1"); ok {
		t.Error("session survived its TTL")
	}
}
