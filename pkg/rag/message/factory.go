package message

import (
	"context"
	"time"

	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Factory handles chat message creation and persistence
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// CreateUserMessage creates a chat message from user input. imageRef is
// stored verbatim; nothing downstream interprets it yet.
func (f *Factory) CreateUserMessage(sessionId uuid.UUID, chat, imageRef string, now time.Time) entity.ChatMessage {
	return entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          chat,
		ImageRef:      imageRef,
		Role:          constant.ChatMessageRoleUser,
		ChatSessionId: sessionId,
		CreatedAt:     now,
	}
}

// CreateModelMessage creates the assistant reply. Recipes carries the cards
// shown this turn so later turns can resolve references to them.
// The +1s keeps reply ordering deterministic when both rows share a clock tick.
func (f *Factory) CreateModelMessage(sessionId uuid.UUID, content, intent string, recipes []entity.RecipeView, now time.Time) entity.ChatMessage {
	return entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          content,
		Role:          constant.ChatMessageRoleModel,
		Intent:        intent,
		Recipes:       recipes,
		ChatSessionId: sessionId,
		CreatedAt:     now.Add(1 * time.Second),
	}
}

// Save persists a message within the caller's unit of work.
func (f *Factory) Save(ctx context.Context, uow unitofwork.UnitOfWork, message entity.ChatMessage) error {
	return uow.ChatMessageRepository().Create(ctx, &message)
}
