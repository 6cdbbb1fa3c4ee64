package service

import (
	"context"
	"time"

	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/specification"
	"ai-foodchat-be/internal/repository/unitofwork"
	"ai-foodchat-be/pkg/llm"
	"ai-foodchat-be/pkg/rag/history"
	"ai-foodchat-be/pkg/rag/message"

	"github.com/google/uuid"
)

// IMemoryService is the conversation memory surface: turn recording and
// the read paths the RAG pipeline builds context from.
type IMemoryService interface {
	RecordUserMessage(ctx context.Context, sessionId uuid.UUID, text, imageRef string) (*entity.ChatMessage, error)
	RecordAssistantResponse(ctx context.Context, sessionId uuid.UUID, text, intent string, recipes []entity.RecipeView) (*entity.ChatMessage, error)
	ContextForPrompt(ctx context.Context, sessionId uuid.UUID) ([]llm.Message, error)
	RecipesFromHistory(ctx context.Context, sessionId uuid.UUID, maxRecipes int) ([]entity.RecipeView, error)
}

type memoryService struct {
	uowFactory     unitofwork.RepositoryFactory
	messageFactory *message.Factory
	historyLoader  *history.Loader
}

func NewMemoryService(
	uowFactory unitofwork.RepositoryFactory,
	messageFactory *message.Factory,
	historyLoader *history.Loader,
) IMemoryService {
	return &memoryService{
		uowFactory:     uowFactory,
		messageFactory: messageFactory,
		historyLoader:  historyLoader,
	}
}

// RecordUserMessage persists a user turn, creating the session first when
// it does not exist yet.
func (ms *memoryService) RecordUserMessage(ctx context.Context, sessionId uuid.UUID, text, imageRef string) (*entity.ChatMessage, error) {
	uow := ms.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := ms.ensureSession(ctx, uow, sessionId, text, now); err != nil {
		return nil, err
	}

	msg := ms.messageFactory.CreateUserMessage(sessionId, text, imageRef, now)
	if err := ms.messageFactory.Save(ctx, uow, msg); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (ms *memoryService) RecordAssistantResponse(ctx context.Context, sessionId uuid.UUID, text, intent string, recipes []entity.RecipeView) (*entity.ChatMessage, error) {
	uow := ms.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	msg := ms.messageFactory.CreateModelMessage(sessionId, text, intent, recipes, now)
	if err := ms.messageFactory.Save(ctx, uow, msg); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ContextForPrompt returns the windowed transcript, oldest first. It never
// touches the write path, so readers do not contend with turn recording.
func (ms *memoryService) ContextForPrompt(ctx context.Context, sessionId uuid.UUID) ([]llm.Message, error) {
	return ms.historyLoader.LoadConversationHistory(ctx, sessionId)
}

// RecipesFromHistory returns at most maxRecipes shown recipe cards, most
// recent first, deduplicated by id.
func (ms *memoryService) RecipesFromHistory(ctx context.Context, sessionId uuid.UUID, maxRecipes int) ([]entity.RecipeView, error) {
	return ms.historyLoader.LoadRecipeHistory(ctx, sessionId, maxRecipes)
}

func (ms *memoryService) ensureSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, firstText string, now time.Time) error {
	existing, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	session := entity.ChatSession{
		Id:        sessionId,
		Title:     sessionTitle(firstText),
		CreatedAt: now,
	}
	return uow.ChatSessionRepository().Create(ctx, &session)
}

// sessionTitle derives a short title from the opening message.
func sessionTitle(text string) string {
	const maxTitle = 60
	if text == "" {
		return "Unnamed session"
	}
	runes := []rune(text)
	if len(runes) > maxTitle {
		return string(runes[:maxTitle]) + "..."
	}
	return text
}
