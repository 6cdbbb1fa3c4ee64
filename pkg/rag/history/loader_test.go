package history

import (
	"context"
	"errors"
	"testing"

	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/contract"
	"ai-foodchat-be/internal/repository/specification"
	"ai-foodchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type fakeMessageRepo struct {
	contract.ChatMessageRepository
	messages []*entity.ChatMessage
	err      error
}

func (f *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return f.messages, f.err
}

type fakeUow struct {
	unitofwork.UnitOfWork
	messages contract.ChatMessageRepository
}

func (f *fakeUow) ChatMessageRepository() contract.ChatMessageRepository {
	return f.messages
}

type fakeFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newTestLoader(messages []*entity.ChatMessage, err error) *Loader {
	repo := &fakeMessageRepo{messages: messages, err: err}
	return NewLoader(&fakeFactory{uow: &fakeUow{messages: repo}}, 10)
}

func modelTurn(chat string, recipes ...entity.RecipeView) *entity.ChatMessage {
	return &entity.ChatMessage{
		Id:      uuid.New(),
		Chat:    chat,
		Role:    constant.ChatMessageRoleModel,
		Recipes: recipes,
	}
}

func TestLoadConversationHistoryMapsRoles(t *testing.T) {
	// Repository order is most recent first; the loader reverses it.
	loader := newTestLoader([]*entity.ChatMessage{
		modelTurn("Here is Miso Ramen."),
		{Id: uuid.New(), Chat: "show me a ramen recipe", Role: constant.ChatMessageRoleUser},
	}, nil)

	messages, err := loader.LoadConversationHistory(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("LoadConversationHistory: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	if messages[0].Role != "user" || messages[0].Content != "show me a ramen recipe" {
		t.Errorf("first turn = %+v, want the user's request", messages[0])
	}
	if messages[1].Role != "assistant" {
		t.Errorf("second turn role = %q, want assistant", messages[1].Role)
	}
}

func TestLoadRecipeHistoryDeduplicates(t *testing.T) {
	ramen := entity.RecipeView{Id: uuid.NewString(), Name: "Miso Ramen"}
	salad := entity.RecipeView{Id: uuid.NewString(), Name: "Greek Salad"}

	loader := newTestLoader([]*entity.ChatMessage{
		modelTurn("Here it is again.", ramen),
		modelTurn("Two ideas for you.", salad, ramen),
	}, nil)

	views, err := loader.LoadRecipeHistory(context.Background(), uuid.New(), 0)
	if err != nil {
		t.Fatalf("LoadRecipeHistory: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("len(views) = %d, want 2", len(views))
	}
	if views[0].Id != ramen.Id || views[1].Id != salad.Id {
		t.Errorf("views = [%s, %s], want [%s, %s]", views[0].Name, views[1].Name, ramen.Name, salad.Name)
	}
}

func TestLoadRecipeHistoryBounded(t *testing.T) {
	turns := make([]*entity.ChatMessage, 5)
	for i := range turns {
		turns[i] = modelTurn("A suggestion.",
			entity.RecipeView{Id: uuid.NewString(), Name: "Recipe A"},
			entity.RecipeView{Id: uuid.NewString(), Name: "Recipe B"},
		)
	}

	loader := newTestLoader(turns, nil)

	views, err := loader.LoadRecipeHistory(context.Background(), uuid.New(), 4)
	if err != nil {
		t.Fatalf("LoadRecipeHistory: %v", err)
	}

	if len(views) != 4 {
		t.Errorf("len(views) = %d, want 4", len(views))
	}
}

func TestLoadRecipeHistoryRepositoryError(t *testing.T) {
	loader := newTestLoader(nil, errors.New("connection refused"))

	if _, err := loader.LoadRecipeHistory(context.Background(), uuid.New(), 0); err == nil {
		t.Fatal("expected repository error to propagate")
	}
}
