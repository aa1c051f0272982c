// Package memory is an in-process vector store with brute-force cosine
// search, used in tests as a stand-in for Qdrant.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"aarogya-ai/internal/vectorstore"
)

type entry struct {
	doc    vectorstore.Document
	vector []float32
}

type Store struct {
	mu        sync.RWMutex
	dimension int
	entries   map[string]entry
}

func NewStore() *Store {
	return &Store{entries: map[string]entry{}}
}

func (s *Store) EnsureCollection(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	return nil
}

func (s *Store) Upsert(_ context.Context, docs []vectorstore.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return errors.New("docs and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range docs {
		if s.dimension > 0 && len(vectors[i]) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
		s.entries[docs[i].ID] = entry{doc: docs[i], vector: vectors[i]}
	}
	return nil
}

func (s *Store) Search(_ context.Context, vector []float32, topK int, filter map[string]string) ([]vectorstore.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 5
	}

	type scored struct {
		doc   vectorstore.Document
		score float32
	}
	var candidates []scored
	for _, e := range s.entries {
		if !matches(e.doc.Metadata, filter) {
			continue
		}
		candidates = append(candidates, scored{doc: e.doc, score: cosine(e.vector, vector)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if topK > len(candidates) {
		topK = len(candidates)
	}
	docs := make([]vectorstore.Document, 0, topK)
	for i := 0; i < topK; i++ {
		docs = append(docs, candidates[i].doc)
	}
	return docs, nil
}

func matches(metadata, filter map[string]string) bool {
	for k, want := range filter {
		if metadata[k] != want {
			return false
		}
	}
	return true
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float32
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return dot / (sqrt32(normA) * sqrt32(normB))
}

func sqrt32(x float32) float32 {
	if x <= 0 {
		return 0
	}
	t := x
	for i := 0; i < 20; i++ {
		next := 0.5 * (t + x/t)
		if next == t {
			break
		}
		t = next
	}
	return t
}
