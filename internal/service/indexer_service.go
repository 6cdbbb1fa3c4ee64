package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-foodchat-be/internal/dto"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/specification"
	"ai-foodchat-be/internal/repository/unitofwork"
	"ai-foodchat-be/pkg/embedding"
	"ai-foodchat-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IIndexerService interface {
	Consume(ctx context.Context) error
}

// indexerService turns ingested recipes into searchable pgvector rows.
// It is the only writer of the recipe_embeddings table.
type indexerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IIndexerService {
	return &indexerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (is *indexerService) Consume(ctx context.Context) error {
	messages, err := is.pubSub.Subscribe(ctx, is.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			is.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (is *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexRecipeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal index message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Indexing recipe %s", payload.RecipeId)

	uow := is.uowFactory.NewUnitOfWork(ctx)

	recipe, err := uow.RecipeRepository().FindOne(ctx, specification.ByID{ID: payload.RecipeId})
	if err != nil {
		log.Printf("[ERROR] Failed to get recipe %s: %v", payload.RecipeId, err)
		msg.Nack()
		return
	}
	if recipe == nil {
		// Recipe deleted before the message was consumed.
		log.Printf("[WARN] Recipe not found, skipping: %s", payload.RecipeId)
		msg.Ack()
		return
	}

	document := BuildRecipeDocument(recipe)
	chunks := utils.SplitText(document, 1500, 200)

	var newEmbeddings []*entity.RecipeEmbedding
	for i, chunk := range chunks {
		res, err := is.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of recipe %s: %v", i, payload.RecipeId, err)
			msg.Nack()
			return
		}
		newEmbeddings = append(newEmbeddings, &entity.RecipeEmbedding{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			RecipeId:       recipe.Id,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.RecipeEmbeddingRepository().DeleteByRecipeId(ctx, recipe.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}
	if len(newEmbeddings) > 0 {
		if err := uow.RecipeEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			log.Printf("[ERROR] Failed to create embeddings: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Recipe indexed: %s (%d chunks)", payload.RecipeId, len(newEmbeddings))
	msg.Ack()
}

// BuildRecipeDocument renders the text the retriever searches against.
// The layout is fixed so re-indexing an unchanged recipe produces the
// same document.
func BuildRecipeDocument(recipe *entity.Recipe) string {
	var b strings.Builder

	b.WriteString("Recipe: " + recipe.Name + "\n")
	if recipe.Cuisine != "" {
		b.WriteString("Cuisine: " + recipe.Cuisine + "\n")
	}
	if recipe.Description != "" {
		b.WriteString(recipe.Description + "\n")
	}
	if len(recipe.Tags) > 0 {
		b.WriteString("Tags: " + strings.Join(recipe.Tags, ", ") + "\n")
	}

	if len(recipe.Ingredients) > 0 {
		names := make([]string, len(recipe.Ingredients))
		for i, ing := range recipe.Ingredients {
			names[i] = ing.Name
		}
		b.WriteString("Ingredients: " + strings.Join(names, ", ") + "\n")
	}

	// The opening steps carry the cooking technique; later steps are
	// mostly plating and rarely help retrieval.
	steps := recipe.Steps
	if len(steps) > 3 {
		steps = steps[:3]
	}
	for _, step := range steps {
		b.WriteString(step + "\n")
	}

	if recipe.TotalMinutes > 0 {
		b.WriteString(fmt.Sprintf("Total time: %d minutes\n", recipe.TotalMinutes))
	}

	return strings.TrimRight(b.String(), "\n")
}
