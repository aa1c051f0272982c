package rag

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"aarogya-ai/internal/vectorstore"
)

// Metadata keys attached to every chunk in the vector store.
const (
	MetaReportID   = "report_id"
	MetaOwnerEmail = "owner_email"
	MetaTitle      = "title"
	MetaReportType = "report_type"
	MetaUploadDate = "upload_date"
)

// IndexJob is the unit of background indexing work carried over the broker.
// UploadDate is an ISO-8601 string so the metadata stays scalar.
type IndexJob struct {
	ReportID   string `json:"report_id"`
	OwnerEmail string `json:"owner_email"`
	Title      string `json:"title"`
	ReportType string `json:"report_type"`
	UploadDate string `json:"upload_date"`
	Text       string `json:"text"`
}

func (j IndexJob) metadata() map[string]string {
	return map[string]string{
		MetaReportID:   j.ReportID,
		MetaOwnerEmail: j.OwnerEmail,
		MetaTitle:      j.Title,
		MetaReportType: j.ReportType,
		MetaUploadDate: j.UploadDate,
	}
}

// Embedder converts text into vectors the store can index and search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Indexer chunks report text and upserts the chunks with their metadata
// into the vector store. Chunk ids are a deterministic function of the
// report id and chunk index, so re-indexing the same report overwrites
// prior chunks at colliding indices.
type Indexer struct {
	store     vectorstore.Store
	embedder  Embedder
	chunkSize int
	logger    zerolog.Logger
}

func NewIndexer(store vectorstore.Store, embedder Embedder, chunkSize int, logger zerolog.Logger) *Indexer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Indexer{
		store:     store,
		embedder:  embedder,
		chunkSize: chunkSize,
		logger:    logger,
	}
}

// ChunkID derives the stable identifier for one chunk of a report.
func ChunkID(reportID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", reportID, index)
}

// IndexReport indexes the job's text under its report id. A job with empty
// text is a no-op, not an error: there is nothing to search.
func (ix *Indexer) IndexReport(ctx context.Context, job IndexJob) error {
	chunks := SplitText(job.Text, ix.chunkSize)
	if len(chunks) == 0 {
		return nil
	}

	vectors, err := ix.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return fmt.Errorf("embed report %s failed: %w", job.ReportID, err)
	}

	meta := job.metadata()
	docs := make([]vectorstore.Document, len(chunks))
	for i := range chunks {
		docs[i] = vectorstore.Document{
			ID:       ChunkID(job.ReportID, i),
			Text:     chunks[i],
			Metadata: meta,
		}
	}
	if err := ix.store.Upsert(ctx, docs, vectors); err != nil {
		return fmt.Errorf("upsert report %s chunks failed: %w", job.ReportID, err)
	}

	ix.logger.Info().
		Str("report_id", job.ReportID).
		Int("chunks", len(chunks)).
		Msg("report indexed")
	return nil
}
