package router

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/internal/repository/memory"
	"ai-foodchat-be/internal/repository/unitofwork"
	"ai-foodchat-be/pkg/llm"
	"ai-foodchat-be/pkg/rag/constraint"
	"ai-foodchat-be/pkg/rag/intent"
	"ai-foodchat-be/pkg/rag/menu"
	"ai-foodchat-be/pkg/rag/modify"
	"ai-foodchat-be/pkg/rag/query"
	"ai-foodchat-be/pkg/rag/rank"
	"ai-foodchat-be/pkg/rag/response"
	"ai-foodchat-be/pkg/rag/search"
	"ai-foodchat-be/pkg/store"

	"github.com/google/uuid"
)

// ExecuteResult is the unified result of handling one user turn.
type ExecuteResult struct {
	Reply   string
	Intent  string
	Recipes []entity.RecipeView // cards shown this turn, persisted with the reply
}

// Router classifies each turn and dispatches to the matching handler.
type Router struct {
	classifier  *intent.Classifier
	transformer *query.Transformer
	consParser  *constraint.Parser
	retriever   *search.Retriever
	reranker    *rank.Reranker
	generator   *response.Generator
	editor      *modify.Editor
	planner     *menu.Planner
	sessionRepo *memory.SessionRepository
	uowFactory  unitofwork.RepositoryFactory
	searchCfg   search.Config
	logger      *log.Logger
}

func NewRouter(
	classifier *intent.Classifier,
	transformer *query.Transformer,
	consParser *constraint.Parser,
	retriever *search.Retriever,
	reranker *rank.Reranker,
	generator *response.Generator,
	editor *modify.Editor,
	planner *menu.Planner,
	sessionRepo *memory.SessionRepository,
	uowFactory unitofwork.RepositoryFactory,
	searchCfg search.Config,
	logger *log.Logger,
) *Router {
	return &Router{
		classifier:  classifier,
		transformer: transformer,
		consParser:  consParser,
		retriever:   retriever,
		reranker:    reranker,
		generator:   generator,
		editor:      editor,
		planner:     planner,
		sessionRepo: sessionRepo,
		uowFactory:  uowFactory,
		searchCfg:   searchCfg,
		logger:      logger,
	}
}

// Execute handles one user turn. shown is the session's recipe history,
// most recent first; history is the turn transcript for LLM context.
func (r *Router) Execute(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	sessionId uuid.UUID,
	utterance string,
	history []llm.Message,
	shown []entity.RecipeView,
) (*ExecuteResult, error) {

	session := r.sessionRepo.GetOrCreate(sessionId.String())
	shown = mergeModified(shown, session)

	classified := r.classifier.Classify(ctx, history, shown, utterance, session.LastIntent)
	r.logger.Printf("[ROUTER] Intent: %s (confidence %.2f) target=%q",
		classified.Intent, classified.Confidence, classified.TargetRecipe)

	var result *ExecuteResult
	var err error

	switch classified.Intent {
	case constant.IntentShowRecipe:
		result, err = r.handleShowRecipe(ctx, uow, session, history, classified, shown, utterance)
	case constant.IntentAnswerQuestion:
		result, err = r.handleAnswerQuestion(ctx, uow, session, history, classified, shown, utterance)
	case constant.IntentIngredients:
		result, err = r.handleIngredients(ctx, uow, session, history, utterance)
	case constant.IntentNutrition:
		result, err = r.handleNutrition(ctx, uow, session, history, classified, shown, utterance)
	case constant.IntentModification:
		result, err = r.handleModification(ctx, uow, session, history, classified, shown, utterance)
	case constant.IntentWeeklyMenu:
		result, err = r.handleWeeklyMenu(ctx, utterance, shown)
	default:
		result, err = r.handleNewRequest(ctx, uow, session, history, utterance)
	}
	if err != nil {
		return nil, err
	}

	session.LastIntent = classified.Intent
	r.sessionRepo.Save(session)

	result.Intent = classified.Intent
	return result, nil
}

func (r *Router) handleNewRequest(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *store.Session,
	history []llm.Message,
	utterance string,
) (*ExecuteResult, error) {

	cons := r.consParser.Parse(ctx, utterance)
	searchQuery := r.transformer.Transform(ctx, history, utterance)
	return r.runSearch(ctx, uow, session, utterance, searchQuery, cons)
}

// handleIngredients runs the same retrieval pipeline as a new request,
// seeded from the ingredient list the user gave instead of the rewritten
// utterance.
func (r *Router) handleIngredients(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *store.Session,
	history []llm.Message,
	utterance string,
) (*ExecuteResult, error) {

	cons := r.consParser.Parse(ctx, utterance)
	searchQuery := ingredientSeed(cons.IncludeIngredients)
	if searchQuery == "" {
		searchQuery = r.transformer.Transform(ctx, history, utterance)
	}
	return r.runSearch(ctx, uow, session, utterance, searchQuery, cons)
}

// runSearch is the retrieval half shared by new_request and ingredients:
// retrieve, rerank, phrase suggestions.
func (r *Router) runSearch(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *store.Session,
	utterance string,
	searchQuery string,
	cons constraint.Constraints,
) (*ExecuteResult, error) {

	session.LastQuery = searchQuery
	r.logger.Printf("[SEARCH] query=%q constrained=%v count=%d",
		searchQuery, cons.IsConstrained(), cons.Count)

	cfg := r.searchCfg
	if want := cons.Count; want > 0 {
		// User asked for more than the default window; widen retrieval,
		// but never past what can be displayed.
		if want > constant.MaxRecipesDisplay {
			want = constant.MaxRecipesDisplay
		}
		if want > cfg.TopK {
			cfg.TopK = want
		}
	}

	recipes, err := r.retriever.Execute(ctx, uow, searchQuery, cons, cfg)
	if err != nil {
		// Retrieval is idempotent; one retry covers transient vector
		// store or embedding hiccups.
		r.logger.Printf("[WARN] Retrieval failed, retrying once: %v", err)
		recipes, err = r.retriever.Execute(ctx, uow, searchQuery, cons, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	ranked := r.reranker.Rerank(ctx, searchQuery, recipes)

	views := make([]entity.RecipeView, len(ranked))
	for i, s := range ranked {
		views[i] = ToView(s.Recipe)
	}

	suggestion := r.generator.Suggest(ctx, utterance, views, cons.Count)

	return &ExecuteResult{
		Reply:   suggestion.Reply,
		Recipes: suggestion.Shown,
	}, nil
}

func (r *Router) handleShowRecipe(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *store.Session,
	history []llm.Message,
	classified intent.Result,
	shown []entity.RecipeView,
	utterance string,
) (*ExecuteResult, error) {

	view, ok := ResolveTarget(shown, classified.TargetRecipe, utterance)
	if !ok {
		return r.fallbackToNewRequest(ctx, uow, session, history, utterance)
	}
	return &ExecuteResult{
		Reply:   response.FormatCard(view),
		Recipes: []entity.RecipeView{view},
	}, nil
}

func (r *Router) handleAnswerQuestion(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *store.Session,
	history []llm.Message,
	classified intent.Result,
	shown []entity.RecipeView,
	utterance string,
) (*ExecuteResult, error) {

	view, ok := ResolveTarget(shown, classified.TargetRecipe, utterance)
	if !ok {
		return r.fallbackToNewRequest(ctx, uow, session, history, utterance)
	}
	return &ExecuteResult{
		Reply: r.generator.Answer(ctx, utterance, view),
	}, nil
}

func (r *Router) handleNutrition(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *store.Session,
	history []llm.Message,
	classified intent.Result,
	shown []entity.RecipeView,
	utterance string,
) (*ExecuteResult, error) {

	view, ok := ResolveTarget(shown, classified.TargetRecipe, utterance)
	if !ok {
		return r.fallbackToNewRequest(ctx, uow, session, history, utterance)
	}
	return &ExecuteResult{
		Reply: fmt.Sprintf("For %s:\n\n%s", view.Name, response.FormatNutrition(view)),
	}, nil
}

func (r *Router) handleModification(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *store.Session,
	history []llm.Message,
	classified intent.Result,
	shown []entity.RecipeView,
	utterance string,
) (*ExecuteResult, error) {

	base, ok := ResolveTarget(shown, classified.TargetRecipe, utterance)
	if !ok {
		return r.fallbackToNewRequest(ctx, uow, session, history, utterance)
	}

	modified, err := r.editor.Apply(ctx, base, utterance)
	if err != nil {
		r.logger.Printf("[ERROR] Modification failed: %v", err)
		return &ExecuteResult{
			Reply: "I couldn't apply that change cleanly. Could you describe it differently?",
		}, nil
	}

	id := session.PutModified(modified)
	modified.Id = id

	reply := fmt.Sprintf("Here's %s adjusted as requested:\n\n%s", base.Name, response.FormatCard(modified))
	return &ExecuteResult{
		Reply:   reply,
		Recipes: []entity.RecipeView{modified},
	}, nil
}

func (r *Router) handleWeeklyMenu(ctx context.Context, utterance string, shown []entity.RecipeView) (*ExecuteResult, error) {
	cons := r.consParser.Parse(ctx, utterance)
	plan := r.planner.Build(ctx, r.uowFactory, utterance, cons, r.searchCfg, historySeed(shown))

	views := make([]entity.RecipeView, 0, len(plan.Assignments))
	seen := make(map[string]bool)
	for _, a := range plan.Assignments {
		if a.Recipe == nil {
			continue
		}
		view := ToView(a.Recipe)
		if !seen[view.Id] {
			seen[view.Id] = true
			views = append(views, view)
		}
	}

	return &ExecuteResult{
		Reply:   menu.Render(plan),
		Recipes: views,
	}, nil
}

// fallbackToNewRequest handles context-dependent turns that arrive with no
// resolvable prior recipe: the turn runs as a fresh search and the reply
// says why.
func (r *Router) fallbackToNewRequest(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *store.Session,
	history []llm.Message,
	utterance string,
) (*ExecuteResult, error) {

	r.logger.Printf("[ROUTER] No prior recipe to work from, treating as new request")
	result, err := r.handleNewRequest(ctx, uow, session, history, utterance)
	if err != nil {
		return nil, err
	}
	result.Reply = "I couldn't find a recipe from our conversation to work from, so here are fresh suggestions instead.\n\n" + result.Reply
	return result, nil
}

func ingredientSeed(ingredients []string) string {
	if len(ingredients) == 0 {
		return ""
	}
	return "recipes using " + strings.Join(ingredients, ", ")
}

// mergeModified surfaces the session's ephemeral modified recipes ahead of
// the persisted history so "it" resolves to the latest card shown.
func mergeModified(shown []entity.RecipeView, session *store.Session) []entity.RecipeView {
	if len(session.ModifiedRecipes) == 0 {
		return shown
	}

	merged := make([]entity.RecipeView, 0, len(shown)+len(session.ModifiedRecipes))
	// Highest sequence first: the newest modification is the freshest card.
	for seq := session.ModSeq; seq >= 1; seq-- {
		id := fmt.Sprintf("mod:%s:%d", session.ID, seq)
		if view, ok := session.ModifiedRecipes[id]; ok {
			merged = append(merged, view)
		}
	}
	merged = append(merged, shown...)
	return merged
}

// historySeed converts shown cards back into recipes for menu seeding.
// Ephemeral modified recipes have no persisted id and are skipped.
func historySeed(shown []entity.RecipeView) []*entity.Recipe {
	var out []*entity.Recipe
	for _, view := range shown {
		id, err := uuid.Parse(view.Id)
		if err != nil {
			continue
		}
		out = append(out, &entity.Recipe{
			Id:           id,
			Name:         view.Name,
			Description:  view.Description,
			Cuisine:      view.Cuisine,
			Servings:     view.Servings,
			TotalMinutes: view.TotalMinutes,
			Ingredients:  view.Ingredients,
			Steps:        view.Steps,
			Nutrition:    view.Nutrition,
			Tags:         view.Tags,
		})
	}
	return out
}

// ToView converts a persisted recipe into its chat card form.
func ToView(recipe *entity.Recipe) entity.RecipeView {
	return entity.RecipeView{
		Id:           recipe.Id.String(),
		Name:         recipe.Name,
		Description:  recipe.Description,
		Cuisine:      recipe.Cuisine,
		Servings:     recipe.Servings,
		TotalMinutes: recipe.TotalMinutes,
		Ingredients:  recipe.Ingredients,
		Steps:        recipe.Steps,
		Nutrition:    recipe.Nutrition,
		Tags:         recipe.Tags,
	}
}
