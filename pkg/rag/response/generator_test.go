package response

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"ai-foodchat-be/internal/constant"
	"ai-foodchat-be/internal/entity"
	"ai-foodchat-be/pkg/llm"
)

type fakeLLM struct {
	response string
	err      error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func newTestGenerator(provider llm.LLMProvider) *Generator {
	return NewGenerator(provider, log.New(io.Discard, "", 0))
}

func candidateViews(n int) []entity.RecipeView {
	views := make([]entity.RecipeView, n)
	for i := range views {
		views[i] = entity.RecipeView{
			Id:   fmt.Sprintf("recipe-%d", i+1),
			Name: fmt.Sprintf("Dish %d", i+1),
		}
	}
	return views
}

func TestSuggestNoCandidates(t *testing.T) {
	result := newTestGenerator(&fakeLLM{}).
		Suggest(context.Background(), "something vegan", nil, 0)

	if !strings.Contains(result.Reply, "couldn't find") {
		t.Errorf("reply = %q, want a no-results message", result.Reply)
	}
	if len(result.Shown) != 0 {
		t.Errorf("shown = %d recipes, want none", len(result.Shown))
	}
}

func TestSuggestDefaultCount(t *testing.T) {
	provider := &fakeLLM{err: errors.New("upstream timeout")}

	result := newTestGenerator(provider).
		Suggest(context.Background(), "pasta", candidateViews(7), 0)

	if len(result.Shown) != constant.DefaultRecipeCount {
		t.Errorf("shown = %d, want %d", len(result.Shown), constant.DefaultRecipeCount)
	}
}

func TestSuggestCapsRequestedCount(t *testing.T) {
	provider := &fakeLLM{err: errors.New("upstream timeout")}

	result := newTestGenerator(provider).
		Suggest(context.Background(), "pasta", candidateViews(15), 15)

	if len(result.Shown) != constant.MaxRecipesDisplay {
		t.Errorf("shown = %d, want %d", len(result.Shown), constant.MaxRecipesDisplay)
	}
	wantNotice := fmt.Sprintf(constant.RecipeCapNotice, constant.MaxRecipesDisplay)
	if !strings.Contains(result.Reply, wantNotice) {
		t.Errorf("reply %q missing cap notice", result.Reply)
	}
}

func TestSuggestShortfallNotice(t *testing.T) {
	provider := &fakeLLM{err: errors.New("upstream timeout")}

	result := newTestGenerator(provider).
		Suggest(context.Background(), "vegan under 20 minutes", candidateViews(2), 5)

	wantNotice := fmt.Sprintf(constant.RecipeShortfallNotice, 2)
	if !strings.Contains(result.Reply, wantNotice) {
		t.Errorf("reply %q missing shortfall notice", result.Reply)
	}
}

func TestSuggestShortfallNoticeWithoutConstraints(t *testing.T) {
	// "Give me 7 chicken recipes" with 4 hits states the shortfall even
	// when no hard filter thinned the pool.
	provider := &fakeLLM{err: errors.New("upstream timeout")}

	result := newTestGenerator(provider).
		Suggest(context.Background(), "give me 7 chicken recipes", candidateViews(4), 7)

	wantNotice := fmt.Sprintf(constant.RecipeShortfallNotice, 4)
	if !strings.Contains(result.Reply, wantNotice) {
		t.Errorf("reply %q missing shortfall notice", result.Reply)
	}
}

func TestSuggestUsesLLMReplyWhenGrounded(t *testing.T) {
	provider := &fakeLLM{response: "You could try Dish 1 or Dish 2 tonight!"}

	result := newTestGenerator(provider).
		Suggest(context.Background(), "dinner ideas", candidateViews(2), 2)

	if result.Reply != provider.response {
		t.Errorf("reply = %q, want the LLM phrasing", result.Reply)
	}
}

func TestSuggestDriftFallsBackToPlainList(t *testing.T) {
	// Reply mentions a recipe that was never shown and drops Dish 2.
	provider := &fakeLLM{response: "How about Dish 1 or a nice lasagna?"}

	result := newTestGenerator(provider).
		Suggest(context.Background(), "dinner ideas", candidateViews(2), 2)

	if !strings.Contains(result.Reply, "Here's what I found:") {
		t.Errorf("reply = %q, want the plain list fallback", result.Reply)
	}
	if !strings.Contains(result.Reply, "Dish 2") {
		t.Errorf("reply = %q, plain list missing a shown recipe", result.Reply)
	}
}

func TestAnswerProviderError(t *testing.T) {
	provider := &fakeLLM{err: errors.New("upstream timeout")}

	reply := newTestGenerator(provider).
		Answer(context.Background(), "can I freeze it?", entity.RecipeView{Name: "Miso Ramen"})

	if !strings.Contains(reply, "try again") {
		t.Errorf("reply = %q, want an apology", reply)
	}
}
