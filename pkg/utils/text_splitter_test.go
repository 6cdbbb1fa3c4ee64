package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortTextSingleChunk(t *testing.T) {
	chunks := SplitText("Recipe: Miso Ramen", 1500, 200)

	if len(chunks) != 1 || chunks[0] != "Recipe: Miso Ramen" {
		t.Errorf("chunks = %v, want the text unchanged", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 chars

	chunks := SplitText(text, 40, 10)

	if len(chunks) < 3 {
		t.Fatalf("chunks = %d, want at least 3", len(chunks))
	}
	for i, chunk := range chunks[:len(chunks)-1] {
		if len(chunk) != 40 {
			t.Errorf("chunk %d length = %d, want 40", i, len(chunk))
		}
	}
	// Each chunk starts where the previous one left off minus the overlap.
	if chunks[0][30:] != chunks[1][:10] {
		t.Error("chunks do not overlap")
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("x", 95)

	chunks := SplitText(text, 40, 10)

	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last) {
		t.Error("last chunk does not end the input")
	}

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}
	if total < len(text) {
		t.Errorf("chunks cover %d chars of %d", total, len(text))
	}
}

func TestSplitTextDegenerateOverlap(t *testing.T) {
	text := strings.Repeat("x", 100)

	// Overlap >= chunk size must still terminate.
	chunks := SplitText(text, 20, 20)

	if len(chunks) != 5 {
		t.Errorf("chunks = %d, want 5 non-overlapping chunks", len(chunks))
	}
}
