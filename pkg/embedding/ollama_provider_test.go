package embedding

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("path = %q, want /api/embeddings", r.URL.Path)
		}
		var req ollamaEmbeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Prompt != "Recipe: Miso Ramen" {
			t.Errorf("prompt = %q", req.Prompt)
		}
		json.NewEncoder(w).Encode(ollamaEmbeddingResponse{Embedding: []float64{3, 4}})
	}))
	defer server.Close()

	provider := NewOllamaProvider(server.URL, "nomic-embed-text")

	res, err := provider.Generate("Recipe: Miso Ramen", "RETRIEVAL_DOCUMENT")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	values := res.Embedding.Values
	if len(values) != 2 {
		t.Fatalf("values = %v, want 2 dims", values)
	}
	// (3,4) normalizes to (0.6, 0.8).
	if math.Abs(float64(values[0])-0.6) > 1e-6 || math.Abs(float64(values[1])-0.8) > 1e-6 {
		t.Errorf("values = %v, want unit vector (0.6, 0.8)", values)
	}
}

func TestOllamaGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewOllamaProvider(server.URL, "nomic-embed-text").Generate("anything", "")
	if err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestNormalizeVectorZero(t *testing.T) {
	vec := []float32{0, 0, 0}
	if got := normalizeVector(vec); len(got) != 3 || got[0] != 0 {
		t.Errorf("normalizeVector(zero) = %v, want unchanged", got)
	}
}
