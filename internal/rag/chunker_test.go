package rag

import (
	"strings"
	"testing"
)

func TestSplitTextChunkCountAndOrder(t *testing.T) {
	text := strings.Repeat("a", 1200)
	chunks := SplitText(text, 500)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 500 || len(chunks[1]) != 500 || len(chunks[2]) != 200 {
		t.Fatalf("unexpected chunk lengths: %d %d %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
	if strings.Join(chunks, "") != text {
		t.Fatalf("concatenated chunks do not reproduce input")
	}
}

func TestSplitTextExactMultiple(t *testing.T) {
	chunks := SplitText(strings.Repeat("x", 1000), 500)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
}

func TestSplitTextShorterThanChunkSize(t *testing.T) {
	chunks := SplitText("short report", 500)
	if len(chunks) != 1 || chunks[0] != "short report" {
		t.Fatalf("expected single verbatim chunk, got %v", chunks)
	}
}

func TestSplitTextEmptyInput(t *testing.T) {
	if chunks := SplitText("", 500); chunks != nil {
		t.Fatalf("expected nil for empty input, got %v", chunks)
	}
}

func TestSplitTextCountsRunesNotBytes(t *testing.T) {
	text := strings.Repeat("診", 7)
	chunks := SplitText(text, 3)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0] != strings.Repeat("診", 3) {
		t.Fatalf("chunk split mid-rune: %q", chunks[0])
	}
	if strings.Join(chunks, "") != text {
		t.Fatalf("multibyte input not reproduced")
	}
}

func TestSplitTextDefaultsChunkSize(t *testing.T) {
	text := strings.Repeat("b", DefaultChunkSize+1)
	chunks := SplitText(text, 0)
	if len(chunks) != 2 {
		t.Fatalf("expected default chunk size fallback, got %d chunks", len(chunks))
	}
}
