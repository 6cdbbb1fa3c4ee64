package query

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

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

func TestTransform(t *testing.T) {
	history := []llm.Message{
		{Role: "user", Content: "show me a ramen recipe"},
		{Role: "assistant", Content: "Here is Miso Ramen."},
	}

	tests := []struct {
		name      string
		provider  *fakeLLM
		utterance string
		want      string
	}{
		{
			name:      "rewritten query is used",
			provider:  &fakeLLM{response: `{"query": "vegetarian ramen recipe"}`},
			utterance: "a vegetarian version of that",
			want:      "vegetarian ramen recipe",
		},
		{
			name:      "query is trimmed",
			provider:  &fakeLLM{response: `{"query": "  quick pasta  "}`},
			utterance: "quick pasta",
			want:      "quick pasta",
		},
		{
			name:      "provider error keeps raw utterance",
			provider:  &fakeLLM{err: errors.New("upstream timeout")},
			utterance: "a vegetarian version of that",
			want:      "a vegetarian version of that",
		},
		{
			name:      "invalid json keeps raw utterance",
			provider:  &fakeLLM{response: "vegetarian ramen recipe"},
			utterance: "a vegetarian version of that",
			want:      "a vegetarian version of that",
		},
		{
			name:      "empty query keeps raw utterance",
			provider:  &fakeLLM{response: `{"query": "   "}`},
			utterance: "a vegetarian version of that",
			want:      "a vegetarian version of that",
		},
		{
			name:      "stopword-only query keeps raw utterance",
			provider:  &fakeLLM{response: `{"query": "show me something"}`},
			utterance: "I'm hungry, surprise me",
			want:      "I'm hungry, surprise me",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transformer := NewTransformer(tt.provider, log.New(io.Discard, "", 0))

			got := transformer.Transform(context.Background(), history, tt.utterance)

			if got != tt.want {
				t.Errorf("Transform = %q, want %q", got, tt.want)
			}
		})
	}
}
