package vectorstore

import "context"

// Document is the unit stored and retrieved by the vector engine: the chunk
// text plus the scalar metadata it can be filtered on.
type Document struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// Store persists embedded documents and supports similarity search with an
// exact-match metadata predicate. Upsert is keyed by Document.ID: writing an
// existing id overwrites the prior content. Any substitute engine must
// support the metadata filter, or owner isolation breaks.
type Store interface {
	EnsureCollection(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, docs []Document, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]Document, error)
}
