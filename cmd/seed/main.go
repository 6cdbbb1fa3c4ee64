package main

import (
	"context"
	"log"
	"time"

	"ai-foodchat-be/internal/config"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/specification"
	"ai-foodchat-be/internal/repository/unitofwork"
	"ai-foodchat-be/internal/service"
	"ai-foodchat-be/pkg/database"
	embeddingfactory "ai-foodchat-be/pkg/embedding/factory"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Seeds a handful of recipes with embeddings so the chat has something to
// retrieve on a fresh database. Safe to run twice: existing names are
// skipped.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	embeddingKey := cfg.Keys.GoogleGemini
	if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingKey = cfg.Keys.Jina
	}
	embeddingProvider, err := embeddingfactory.NewProvider(
		cfg.Ai.EmbeddingProvider,
		embeddingKey,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaModel,
	)
	if err != nil {
		log.Fatalf("Failed to initialize embedding provider: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()

	created, skipped, failed := 0, 0, 0
	for _, recipe := range sampleRecipes() {
		uow := uowFactory.NewUnitOfWork(ctx)

		existing, err := uow.RecipeRepository().FindOne(ctx, specification.ByNameLike{Name: recipe.Name})
		if err != nil {
			color.Red("✗ %s: lookup failed: %v", recipe.Name, err)
			failed++
			continue
		}
		if existing != nil {
			color.Yellow("- %s: already seeded, skipping", recipe.Name)
			skipped++
			continue
		}

		document := service.BuildRecipeDocument(&recipe)
		res, err := embeddingProvider.Generate(document, "RETRIEVAL_DOCUMENT")
		if err != nil {
			color.Red("✗ %s: embedding failed: %v", recipe.Name, err)
			failed++
			continue
		}

		if err := uow.Begin(ctx); err != nil {
			color.Red("✗ %s: begin failed: %v", recipe.Name, err)
			failed++
			continue
		}

		err = uow.RecipeRepository().Create(ctx, &recipe)
		if err == nil {
			err = uow.RecipeEmbeddingRepository().Create(ctx, &entity.RecipeEmbedding{
				Id:             uuid.New(),
				Document:       document,
				EmbeddingValue: res.Embedding.Values,
				RecipeId:       recipe.Id,
				CreatedAt:      time.Now(),
			})
		}
		if err == nil {
			err = uow.Commit()
		}
		if err != nil {
			uow.Rollback()
			color.Red("✗ %s: %v", recipe.Name, err)
			failed++
			continue
		}

		color.Green("✓ %s", recipe.Name)
		created++
	}

	color.Cyan("Done: %d created, %d skipped, %d failed", created, skipped, failed)
}

func sampleRecipes() []entity.Recipe {
	now := time.Now()
	return []entity.Recipe{
		{
			Id:           uuid.New(),
			Name:         "Spaghetti Carbonara",
			Description:  "Roman pasta with eggs, pecorino and guanciale.",
			Cuisine:      "italian",
			Servings:     4,
			TotalMinutes: 25,
			Ingredients: []entity.Ingredient{
				{Name: "spaghetti", Quantity: "400", Unit: "g"},
				{Name: "guanciale", Quantity: "150", Unit: "g"},
				{Name: "eggs", Quantity: "4"},
				{Name: "pecorino romano", Quantity: "80", Unit: "g"},
				{Name: "black pepper", Quantity: "1", Unit: "tsp"},
			},
			Steps: []string{
				"Boil the spaghetti in well-salted water.",
				"Render the guanciale in a cold pan until crisp.",
				"Whisk eggs with pecorino and plenty of pepper.",
				"Toss pasta with guanciale off the heat, then fold in the egg mixture.",
			},
			Nutrition: entity.Nutrition{Calories: 610, ProteinG: 26, CarbsG: 72, FatG: 24},
			Tags:      []string{"pasta", "quick"},
			CreatedAt: now,
		},
		{
			Id:           uuid.New(),
			Name:         "Chickpea Coconut Curry",
			Description:  "Creamy one-pot curry with chickpeas, tomato and spinach.",
			Cuisine:      "indian",
			Servings:     4,
			TotalMinutes: 35,
			Ingredients: []entity.Ingredient{
				{Name: "chickpeas", Quantity: "800", Unit: "g"},
				{Name: "coconut milk", Quantity: "400", Unit: "ml"},
				{Name: "onion", Quantity: "1"},
				{Name: "garlic", Quantity: "3", Unit: "cloves"},
				{Name: "curry powder", Quantity: "2", Unit: "tbsp"},
				{Name: "spinach", Quantity: "200", Unit: "g"},
			},
			Steps: []string{
				"Soften the onion and garlic with the curry powder.",
				"Add chickpeas, tomato and coconut milk; simmer 20 minutes.",
				"Stir in spinach until wilted and season.",
			},
			Nutrition: entity.Nutrition{Calories: 480, ProteinG: 16, CarbsG: 52, FatG: 24},
			Tags:      []string{"vegan", "vegetarian", "gluten_free", "dairy_free", "one-pot"},
			CreatedAt: now,
		},
		{
			Id:           uuid.New(),
			Name:         "Miso Ramen",
			Description:  "Comforting noodle soup with miso broth and soft egg.",
			Cuisine:      "japanese",
			Servings:     2,
			TotalMinutes: 45,
			Ingredients: []entity.Ingredient{
				{Name: "ramen noodles", Quantity: "200", Unit: "g"},
				{Name: "miso paste", Quantity: "3", Unit: "tbsp"},
				{Name: "chicken stock", Quantity: "1", Unit: "l"},
				{Name: "eggs", Quantity: "2"},
				{Name: "spring onion", Quantity: "2"},
			},
			Steps: []string{
				"Simmer the stock and whisk in the miso.",
				"Soft-boil the eggs for six and a half minutes.",
				"Cook noodles, assemble bowls and top with egg and spring onion.",
			},
			Nutrition: entity.Nutrition{Calories: 520, ProteinG: 24, CarbsG: 68, FatG: 16},
			Tags:      []string{"soup", "noodles"},
			CreatedAt: now,
		},
		{
			Id:           uuid.New(),
			Name:         "Greek Salad",
			Description:  "Tomato, cucumber, olives and feta with oregano.",
			Cuisine:      "greek",
			Servings:     2,
			TotalMinutes: 15,
			Ingredients: []entity.Ingredient{
				{Name: "tomatoes", Quantity: "4"},
				{Name: "cucumber", Quantity: "1"},
				{Name: "red onion", Quantity: "0.5"},
				{Name: "kalamata olives", Quantity: "100", Unit: "g"},
				{Name: "feta", Quantity: "150", Unit: "g"},
				{Name: "olive oil", Quantity: "3", Unit: "tbsp"},
			},
			Steps: []string{
				"Cut the vegetables into chunky pieces.",
				"Combine with olives, top with feta, dress with oil and oregano.",
			},
			Nutrition: entity.Nutrition{Calories: 380, ProteinG: 12, CarbsG: 14, FatG: 31},
			Tags:      []string{"vegetarian", "gluten_free", "salad", "quick", "no-cook"},
			CreatedAt: now,
		},
		{
			Id:           uuid.New(),
			Name:         "Beef Tacos",
			Description:  "Weeknight tacos with spiced beef, salsa and lime.",
			Cuisine:      "mexican",
			Servings:     4,
			TotalMinutes: 30,
			Ingredients: []entity.Ingredient{
				{Name: "ground beef", Quantity: "500", Unit: "g"},
				{Name: "corn tortillas", Quantity: "12"},
				{Name: "cumin", Quantity: "2", Unit: "tsp"},
				{Name: "smoked paprika", Quantity: "1", Unit: "tsp"},
				{Name: "lime", Quantity: "2"},
				{Name: "coriander", Quantity: "1", Unit: "bunch"},
			},
			Steps: []string{
				"Brown the beef with the spices.",
				"Warm the tortillas in a dry pan.",
				"Fill, top with salsa and coriander, squeeze over lime.",
			},
			Nutrition: entity.Nutrition{Calories: 540, ProteinG: 31, CarbsG: 46, FatG: 25},
			Tags:      []string{"quick", "dairy_free"},
			CreatedAt: now,
		},
		{
			Id:           uuid.New(),
			Name:         "Mushroom Risotto",
			Description:  "Slow-stirred arborio rice with porcini and parmesan.",
			Cuisine:      "italian",
			Servings:     4,
			TotalMinutes: 50,
			Ingredients: []entity.Ingredient{
				{Name: "arborio rice", Quantity: "320", Unit: "g"},
				{Name: "mixed mushrooms", Quantity: "400", Unit: "g"},
				{Name: "dried porcini", Quantity: "20", Unit: "g"},
				{Name: "vegetable stock", Quantity: "1.2", Unit: "l"},
				{Name: "white wine", Quantity: "100", Unit: "ml"},
				{Name: "parmesan", Quantity: "60", Unit: "g"},
			},
			Steps: []string{
				"Soak the porcini and fry the fresh mushrooms hard.",
				"Toast the rice, deglaze with wine.",
				"Add stock a ladle at a time, stirring, about 18 minutes.",
				"Beat in butter and parmesan off the heat.",
			},
			Nutrition: entity.Nutrition{Calories: 490, ProteinG: 14, CarbsG: 70, FatG: 15},
			Tags:      []string{"vegetarian", "gluten_free"},
			CreatedAt: now,
		},
	}
}
