package rag

import (
	"context"
	"fmt"

	"aarogya-ai/internal/vectorstore"
)

// Retriever answers similarity queries scoped to a single owner. The owner
// filter is applied inside the vector engine, so chunks belonging to anyone
// else are never candidates.
type Retriever struct {
	store    vectorstore.Store
	embedder Embedder
}

func NewRetriever(store vectorstore.Store, embedder Embedder) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Retrieve returns at most topK chunk texts best-match-first. An empty
// result (no reports yet, or nothing matches under the owner filter) is
// not an error.
func (r *Retriever) Retrieve(ctx context.Context, query, ownerEmail string, topK int) ([]string, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query failed: %w", err)
	}

	docs, err := r.store.Search(ctx, vector, topK, map[string]string{
		MetaOwnerEmail: ownerEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.Text)
	}
	return texts, nil
}
