package rag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"aarogya-ai/internal/vectorstore/memory"
)

// stubEmbedder maps text to a deterministic vector so identical text always
// lands on the same point.
type stubEmbedder struct {
	failing bool
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.failing {
		return nil, errors.New("embedding backend down")
	}
	var sum float32
	for _, r := range text {
		sum += float32(r % 97)
	}
	return []float32{1, sum, float32(len(text) % 13), 0.5}, nil
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, v)
	}
	return vectors, nil
}

func newTestIndexer(t *testing.T, chunkSize int) (*Indexer, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	if err := store.EnsureCollection(context.Background(), 4); err != nil {
		t.Fatalf("ensure collection: %v", err)
	}
	return NewIndexer(store, &stubEmbedder{}, chunkSize, zerolog.Nop()), store
}

func TestIndexReportChunkIDsAndMetadata(t *testing.T) {
	ctx := context.Background()
	indexer, store := newTestIndexer(t, 500)

	job := IndexJob{
		ReportID:   "42",
		OwnerEmail: "a@x.com",
		Title:      "Blood Panel",
		ReportType: "Lab",
		UploadDate: "2026-08-30T10:00:00Z",
		Text:       strings.Repeat("r", 1200),
	}
	if err := indexer.IndexReport(ctx, job); err != nil {
		t.Fatalf("index report: %v", err)
	}

	vector, _ := (&stubEmbedder{}).Embed(ctx, "r")
	docs, err := store.Search(ctx, vector, 10, map[string]string{MetaOwnerEmail: "a@x.com"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 indexed chunks, got %d", len(docs))
	}

	seen := map[string]bool{}
	for _, doc := range docs {
		seen[doc.ID] = true
		if doc.Metadata[MetaReportID] != "42" {
			t.Fatalf("chunk %s missing report id metadata", doc.ID)
		}
		if doc.Metadata[MetaTitle] != "Blood Panel" || doc.Metadata[MetaReportType] != "Lab" {
			t.Fatalf("chunk %s missing report metadata: %v", doc.ID, doc.Metadata)
		}
	}
	for _, id := range []string{"42_chunk_0", "42_chunk_1", "42_chunk_2"} {
		if !seen[id] {
			t.Fatalf("expected chunk id %s, got %v", id, seen)
		}
	}
}

func TestIndexReportReindexOverwrites(t *testing.T) {
	ctx := context.Background()
	indexer, store := newTestIndexer(t, 500)

	job := IndexJob{ReportID: "7", OwnerEmail: "a@x.com", Text: strings.Repeat("old", 400)}
	if err := indexer.IndexReport(ctx, job); err != nil {
		t.Fatalf("first index: %v", err)
	}
	job.Text = strings.Repeat("new", 400)
	if err := indexer.IndexReport(ctx, job); err != nil {
		t.Fatalf("second index: %v", err)
	}

	vector, _ := (&stubEmbedder{}).Embed(ctx, "new")
	docs, err := store.Search(ctx, vector, 10, map[string]string{MetaOwnerEmail: "a@x.com"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("re-index duplicated chunks: got %d", len(docs))
	}
	for _, doc := range docs {
		if strings.Contains(doc.Text, "old") {
			t.Fatalf("chunk %s still holds stale text", doc.ID)
		}
	}
}

func TestIndexReportEmptyTextIsNoOp(t *testing.T) {
	ctx := context.Background()
	indexer, store := newTestIndexer(t, 500)

	if err := indexer.IndexReport(ctx, IndexJob{ReportID: "9", OwnerEmail: "a@x.com"}); err != nil {
		t.Fatalf("empty job should not fail: %v", err)
	}
	docs, err := store.Search(ctx, []float32{1, 0, 0, 0}, 10, nil)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("empty job indexed %d chunks", len(docs))
	}
}

func TestIndexReportEmbeddingFailurePropagates(t *testing.T) {
	store := memory.NewStore()
	indexer := NewIndexer(store, &stubEmbedder{failing: true}, 500, zerolog.Nop())
	err := indexer.IndexReport(context.Background(), IndexJob{ReportID: "1", Text: "some text"})
	if err == nil {
		t.Fatalf("expected embedding failure to propagate")
	}
}

func TestChunkID(t *testing.T) {
	if got := ChunkID("15", 2); got != "15_chunk_2" {
		t.Fatalf("unexpected chunk id: %q", got)
	}
}
