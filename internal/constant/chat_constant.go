package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// Intent labels produced by the classifier. Anything else maps to IntentNewRequest.
	IntentShowRecipe     = "show_recipe"
	IntentAnswerQuestion = "answer_question"
	IntentModification   = "modification"
	IntentNewRequest     = "new_request"
	IntentWeeklyMenu     = "weekly_menu"
	IntentNutrition      = "nutrition"
	IntentIngredients    = "ingredients"

	// Retrieval / presentation limits
	MaxRecipesDisplay    = 10
	DefaultRecipeCount   = 3
	MaxHistoryRecipes    = 20
	RetrievalOverfetch   = 3
	RerankBatchSize      = 20
	RerankScoreMax       = 10

	// Ollama Configuration
	OllamaDefaultBaseURL = "http://localhost:11434"
	OllamaDefaultModel   = "llama3.1:8b"
	OllamaChatEndpoint   = "/api/chat"

	OllamaRoleAssistant = "assistant"
	OllamaRoleUser      = "user"

	// INTENT CLASSIFICATION (Clean Output)
	IntentClassificationPrompt = `Classify user intent for this cooking assistant message.

HISTORY: %s
RECIPES ALREADY SHOWN: %s
NEW MESSAGE: "%s"

Types:
- show_recipe: Wants the full card of a recipe already mentioned ("show me the second one")
- answer_question: Question about an already-shown recipe ("how long does it bake?")
- modification: Wants an already-shown recipe changed ("make it vegetarian")
- new_request: Wants new recipe suggestions, or anything else
- weekly_menu: Wants a meal plan over days ("plan my dinners for the week")
- nutrition: Asks for nutrition facts of a shown recipe
- ingredients: Lists ingredients they have and wants recipes made from them ("I have chicken and rice")

Rules:
- When no recipes have been shown yet, show_recipe/answer_question/modification/nutrition are impossible.
- Mentions of a dish by name with no prior card → new_request.
- Uncertain → new_request.

JSON only:
{"intent": "type", "confidence": 0.0-1.0, "target_recipe": "name-or-empty", "reason": "brief"}`

	// QUERY TRANSFORM
	QueryTransformPrompt = `Rewrite the user's request as a short search query for a recipe database.

HISTORY: %s
REQUEST: "%s"

Rules:
- Resolve pronouns and references using the history.
- Keep dish type, cuisine, dietary constraints, key ingredients.
- Drop greetings, politeness, meta-talk.
- Output 3-12 words, no punctuation beyond spaces.

JSON only:
{"query": "rewritten search query"}`

	// RELEVANCE SCORING (Results Only)
	RerankScoringPrompt = `Score how well each recipe matches the user's request.

Request: %s

Recipes:
%s

Score each (0-10):
- 9-10: Exactly what was asked for
- 7-8: Strong match, minor mismatch
- 5-6: Same dish family, different constraints
- 3-4: Shares ingredients only
- 0-2: Unrelated

JSON only:
{"scores": [{"id": "recipe-id", "score": N}]}`

	// CONSTRAINT EXTRACTION
	ConstraintParsePrompt = `Extract structured cooking constraints from the request.

REQUEST: "%s"

JSON only:
{"diet": "vegetarian|vegan|gluten_free|dairy_free|unspecified",
 "max_minutes": 0,
 "include_ingredients": [],
 "exclude_ingredients": [],
 "cuisine": "",
 "count": 0}

Use 0 / empty / "unspecified" for anything the request does not state. "count" is how many recipes the user asked for, 0 when unstated.`

	// GROUNDED GENERATION
	SuggestionSystemPrompt = `### SYSTEM INSTRUCTIONS
Role: Cooking Assistant
Task: Present the candidate recipes below as suggestions for the user's request.

### CRITICAL RULES (MUST FOLLOW)
1. GROUNDING:
   - Only mention recipes from the CANDIDATES block. Never invent a recipe.
   - Keep each recipe's name exactly as written.
2. SELECTION:
   - Present them in the given order. Do not reorder.
3. STYLE:
   - One short intro sentence, then a numbered list: name plus a one-line hook.
   - No meta-talk ("Here is the answer...").

=== CANDIDATES ===
`

	AnswerQuestionSystemPrompt = `### SYSTEM INSTRUCTIONS
Role: Cooking Assistant
Task: Answer the user's question using ONLY the recipe below.

### CRITICAL RULES (MUST FOLLOW)
1. ACCURACY:
   - If the recipe contains the answer, give it directly.
   - If it does not, say "That recipe doesn't say." and stop.
2. SCOPE:
   - Do not suggest other recipes. Do not restate the whole recipe.
3. STYLE:
   - 1-3 sentences, conversational.

=== RECIPE ===
`

	ModificationSystemPrompt = `### SYSTEM INSTRUCTIONS
Role: Recipe Editor
Task: Apply the requested change to the recipe below and return the full modified recipe.

### CRITICAL RULES (MUST FOLLOW)
1. Keep everything the change does not touch exactly as it is.
2. Adjust ingredients, steps and nutrition consistently with the change.
3. Rename the recipe only if the change makes the old name wrong.

JSON only, same shape as the input recipe:
{"name": "", "description": "", "servings": 0, "total_minutes": 0,
 "ingredients": [{"name": "", "quantity": "", "unit": ""}],
 "steps": [""],
 "nutrition": {"calories": 0, "protein_g": 0, "carbs_g": 0, "fat_g": 0},
 "tags": []}

=== RECIPE ===
`

	MenuSlotQueryTemplate = "%s %s recipe" // meal, cuisine/constraint hint

	// Notices appended to generated replies
	RecipeCapNotice       = "I'm showing the %d best matches; tell me if you want more."
	RecipeShortfallNotice = "I only found %d recipes matching everything you asked for."
)
