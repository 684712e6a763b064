package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("a short passage", 500, 50)
	if len(chunks) != 1 || chunks[0] != "a short passage" {
		t.Errorf("expected single chunk, got %v", chunks)
	}
}

func TestSplitTextEmptyInput(t *testing.T) {
	if chunks := SplitText("   ", 500, 50); chunks != nil {
		t.Errorf("expected nil for blank input, got %v", chunks)
	}
}

func TestSplitTextChunkSizeBound(t *testing.T) {
	text := strings.Repeat("inception dream layers ", 100)
	chunks := SplitText(text, 500, 50)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 500 {
			t.Errorf("chunk %d exceeds size: %d runes", i, len([]rune(c)))
		}
	}
}

func TestSplitTextNoWordCut(t *testing.T) {
	text := strings.Repeat("director ", 200)
	for i, c := range SplitText(text, 100, 20) {
		for _, word := range strings.Fields(c) {
			if word != "director" {
				t.Errorf("chunk %d contains a cut word %q", i, word)
			}
		}
	}
}

func TestSplitTextOverlapGreaterThanSize(t *testing.T) {
	text := strings.Repeat("x ", 300)
	// Degenerate overlap must not loop forever.
	chunks := SplitText(text, 50, 60)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
}

func TestFilterFragments(t *testing.T) {
	in := []string{"Inception was released in 2010.", "  ", "---", "===", "ok text here"}
	out := FilterFragments(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 kept fragments, got %d: %v", len(out), out)
	}
}
