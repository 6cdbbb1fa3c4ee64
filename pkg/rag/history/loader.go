package history

import (
	"context"

	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/specification"
	"ai-foodchat-be/internal/repository/unitofwork"
	"ai-foodchat-be/pkg/llm"

	"github.com/google/uuid"
)

// Loader reads conversation memory: the turn transcript for LLM context
// and the recipe cards shown so far.
type Loader struct {
	uowFactory unitofwork.RepositoryFactory
	window     int
}

func NewLoader(uowFactory unitofwork.RepositoryFactory, window int) *Loader {
	if window <= 0 {
		window = 10
	}
	return &Loader{
		uowFactory: uowFactory,
		window:     window,
	}
}

// LoadConversationHistory loads the most recent turns, oldest first,
// mapped to provider-agnostic roles.
func (l *Loader) LoadConversationHistory(ctx context.Context, sessionId uuid.UUID) ([]llm.Message, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)

	chats, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	if len(chats) > l.window {
		chats = chats[:l.window]
	}

	messages := make([]llm.Message, 0, len(chats))
	for i := len(chats) - 1; i >= 0; i-- {
		chat := chats[i]

		role := "user"
		if chat.Role == constant.ChatMessageRoleModel {
			role = "assistant"
		}
		messages = append(messages, llm.Message{
			Role:    role,
			Content: chat.Chat,
		})
	}

	return messages, nil
}

// LoadRecipeHistory returns at most maxRecipes recipe cards shown in the
// session, most recent first, deduplicated by id (first occurrence wins,
// so a recipe shown twice keeps its most recent card). maxRecipes <= 0
// means no bound.
func (l *Loader) LoadRecipeHistory(ctx context.Context, sessionId uuid.UUID, maxRecipes int) ([]entity.RecipeView, error) {
	uow := l.uowFactory.NewUnitOfWork(ctx)

	chats, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.ByRole{Role: constant.ChatMessageRoleModel},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var views []entity.RecipeView
	seen := make(map[string]bool)
	for _, chat := range chats {
		for _, view := range chat.Recipes {
			if view.Id == "" || seen[view.Id] {
				continue
			}
			seen[view.Id] = true
			views = append(views, view)
			if maxRecipes > 0 && len(views) >= maxRecipes {
				return views, nil
			}
		}
	}

	return views, nil
}
