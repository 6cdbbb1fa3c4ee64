package constant

// Canonical menu vocabulary. Planner slots are validated against these.
var (
	DaysOfWeek = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	MealTypes  = []string{"breakfast", "lunch", "dinner"}

	// Used when the request names no days or meals.
	DefaultMenuDays  = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	DefaultMenuMeals = []string{"dinner"}
)

const (
	MenuPlanParsePrompt = `Extract which days and meals the user wants planned.

REQUEST: "%s"

Valid days: monday..sunday. Valid meals: breakfast, lunch, dinner.

JSON only:
{"days": [], "meals": [], "use_history": false}

Empty arrays when the request does not say. use_history is true only when
the user asks to reuse recipes already discussed in this conversation.`

	MenuMaxParallelSlots = 4
)
