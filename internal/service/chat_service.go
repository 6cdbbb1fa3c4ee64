package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ai-foodchat-be/internal/config"
	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/internal/dto"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/memory"
	"ai-foodchat-be/internal/repository/specification"
	"ai-foodchat-be/internal/repository/unitofwork"
	"ai-foodchat-be/pkg/ai/router"
	"ai-foodchat-be/pkg/embedding"
	"ai-foodchat-be/pkg/llm"
	"ai-foodchat-be/pkg/rag/constraint"
	"ai-foodchat-be/pkg/rag/history"
	"ai-foodchat-be/pkg/rag/intent"
	"ai-foodchat-be/pkg/rag/menu"
	"ai-foodchat-be/pkg/rag/message"
	"ai-foodchat-be/pkg/rag/modify"
	"ai-foodchat-be/pkg/rag/query"
	"ai-foodchat-be/pkg/rag/rank"
	"ai-foodchat-be/pkg/rag/response"
	"ai-foodchat-be/pkg/rag/search"

	"github.com/google/uuid"
)

const sessionLockStripes = 64

type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	DeleteSession(ctx context.Context, request *dto.DeleteSessionRequest) error
}

// chatService owns the turn lifecycle: persist the user message, run the
// agent, persist the reply. Turns within one session serialize on a
// striped lock; different sessions run concurrently.
type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	memoryService IMemoryService
	sessionRepo   *memory.SessionRepository
	agent         *router.Router
	llmLogger     *log.Logger

	sessionLocks [sessionLockStripes]sync.Mutex
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	sessionRepo *memory.SessionRepository,
	chatCfg config.ChatConfig,
) IChatService {

	llmLogger := initLLMLogger()

	retriever := search.NewRetriever(embeddingProvider, llmLogger)
	searchCfg := search.Config{
		DBThreshold:    0.0,
		LogicThreshold: chatCfg.SimilarityCutoff,
		TopK:           chatCfg.RetrievalTopK,
		Overfetch:      chatCfg.OverfetchFactor,
	}

	agent := router.NewRouter(
		intent.NewClassifier(llmProvider, llmLogger),
		query.NewTransformer(llmProvider, llmLogger),
		constraint.NewParser(llmProvider, llmLogger),
		retriever,
		rank.NewReranker(llmProvider, llmLogger, chatCfg.RerankBatchSize),
		response.NewGenerator(llmProvider, llmLogger),
		modify.NewEditor(llmProvider, llmLogger),
		menu.NewPlanner(llmProvider, retriever, llmLogger),
		sessionRepo,
		uowFactory,
		searchCfg,
		llmLogger,
	)

	messageFactory := message.NewFactory()
	historyLoader := history.NewLoader(uowFactory, chatCfg.HistoryWindow)

	return &chatService{
		uowFactory:    uowFactory,
		memoryService: NewMemoryService(uowFactory, messageFactory, historyLoader),
		sessionRepo:   sessionRepo,
		agent:         agent,
		llmLogger:     llmLogger,
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (cs *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	chatSession := entity.ChatSession{
		Id:        uuid.New(),
		Title:     "Unnamed session",
		CreatedAt: now,
	}

	greeting := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          "Hi! Tell me what you feel like eating and I'll find you something.",
		Role:          constant.ChatMessageRoleModel,
		ChatSessionId: chatSession.Id,
		CreatedAt:     now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, &greeting); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: chatSession.Id}, nil
}

func (cs *chatService) GetAllSessions(ctx context.Context) ([]*dto.GetAllSessionsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return response, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("session not found")
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetChatHistoryResponse, 0, len(chatMessages))
	for _, msg := range chatMessages {
		resp = append(resp, &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Chat:      msg.Chat,
			Intent:    msg.Intent,
			CreatedAt: msg.CreatedAt,
			Recipes:   viewsToCardDTOs(msg.Recipes),
		})
	}
	return resp, nil
}

// SendChat runs one turn. The user message is committed before the agent
// runs, so an agent failure never loses what the user said; the reply row
// then records either the answer or the outage acknowledgment.
func (cs *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	lock := cs.lockFor(request.ChatSessionId)
	lock.Lock()
	defer lock.Unlock()

	userMessage, err := cs.memoryService.RecordUserMessage(ctx, request.ChatSessionId, request.Chat, request.ImageRef)
	if err != nil {
		return nil, fmt.Errorf("failed to record message: %w", err)
	}

	hist, err := cs.memoryService.ContextForPrompt(ctx, request.ChatSessionId)
	if err != nil {
		cs.llmLogger.Printf("[WARN] Failed to load history, continuing stateless: %v", err)
		hist = nil
	}
	shown, err := cs.memoryService.RecipesFromHistory(ctx, request.ChatSessionId, constant.MaxHistoryRecipes)
	if err != nil {
		cs.llmLogger.Printf("[WARN] Failed to load recipe history, continuing stateless: %v", err)
		shown = nil
	}

	readUow := cs.uowFactory.NewUnitOfWork(ctx)
	result, err := cs.agent.Execute(ctx, readUow, request.ChatSessionId, request.Chat, hist, shown)
	if err != nil {
		cs.llmLogger.Printf("[ERROR] Agent turn failed: %v", err)
		result = &router.ExecuteResult{
			Reply:  "Sorry, I'm having trouble answering right now. Please try again in a moment.",
			Intent: constant.IntentNewRequest,
		}
	}

	modelMessage, err := cs.memoryService.RecordAssistantResponse(ctx, request.ChatSessionId, result.Reply, result.Intent, result.Recipes)
	if err != nil {
		return nil, fmt.Errorf("failed to record reply: %w", err)
	}

	title := ""
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: request.ChatSessionId}); err == nil && sess != nil {
		title = sess.Title
	}

	return &dto.SendChatResponse{
		ChatSessionId:    request.ChatSessionId,
		ChatSessionTitle: title,
		Sent: &dto.SendChatResponseChat{
			Id:        userMessage.Id,
			Chat:      userMessage.Chat,
			Role:      userMessage.Role,
			CreatedAt: userMessage.CreatedAt,
		},
		Reply: &dto.SendChatResponseChat{
			Id:                modelMessage.Id,
			Chat:              modelMessage.Chat,
			Role:              modelMessage.Role,
			Intent:            result.Intent,
			CreatedAt:         modelMessage.CreatedAt,
			Recipes:           viewsToCardDTOs(result.Recipes),
			ShowNutritionOnly: result.Intent == constant.IntentNutrition,
		},
	}, nil
}

func (cs *chatService) DeleteSession(ctx context.Context, request *dto.DeleteSessionRequest) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: request.ChatSessionId})
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("session not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Delete(ctx, request.ChatSessionId); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, request.ChatSessionId); err != nil {
		return err
	}

	cs.sessionRepo.Delete(request.ChatSessionId.String())

	return uow.Commit()
}

func (cs *chatService) lockFor(sessionId uuid.UUID) *sync.Mutex {
	h := fnv.New32a()
	h.Write(sessionId[:])
	return &cs.sessionLocks[h.Sum32()%sessionLockStripes]
}

func viewsToCardDTOs(views []entity.RecipeView) []dto.RecipeCardDTO {
	if len(views) == 0 {
		return nil
	}
	cards := make([]dto.RecipeCardDTO, len(views))
	for i, view := range views {
		cards[i] = viewToCardDTO(view)
	}
	return cards
}

func viewToCardDTO(view entity.RecipeView) dto.RecipeCardDTO {
	ingredients := make([]dto.IngredientDTO, len(view.Ingredients))
	for i, ing := range view.Ingredients {
		ingredients[i] = dto.IngredientDTO{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit}
	}

	var nutrition *dto.NutritionDTO
	if view.Nutrition != (entity.Nutrition{}) {
		nutrition = &dto.NutritionDTO{
			Calories: view.Nutrition.Calories,
			ProteinG: view.Nutrition.ProteinG,
			CarbsG:   view.Nutrition.CarbsG,
			FatG:     view.Nutrition.FatG,
		}
	}

	return dto.RecipeCardDTO{
		Id:           view.Id,
		Name:         view.Name,
		Description:  view.Description,
		Cuisine:      view.Cuisine,
		Servings:     view.Servings,
		TotalMinutes: view.TotalMinutes,
		Ingredients:  ingredients,
		Steps:        view.Steps,
		Nutrition:    nutrition,
		Tags:         view.Tags,
	}
}
