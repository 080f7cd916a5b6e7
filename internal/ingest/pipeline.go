// Package ingest implements the document ingestion pipeline: load a
// document's file, chunk it, embed the chunks, and upsert them into the
// owning project's vector collection, driving the document's processing
// status along PENDING -> PROCESSING -> {COMPLETED, FAILED}.
package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"project-rag/internal/chunker"
	"project-rag/internal/loader"
	"project-rag/internal/models"
	"project-rag/internal/vectorstore"
)

// Repository is the document/project state the pipeline reads and writes.
type Repository interface {
	Document(ctx context.Context, id int64) (*models.Document, error)
	SetStatus(ctx context.Context, id int64, from, to models.ProcessingStatus) error
	Complete(ctx context.Context, id int64, chunks int) error
	ClaimCollection(ctx context.Context, projectID int64, name string) (string, error)
}

// Index is the vector collection store the pipeline upserts into.
type Index interface {
	Upsert(ctx context.Context, collection string, entries []vectorstore.Entry) error
}

// Embedder converts chunk texts into vectors.
type Embedder interface {
	EmbedChunks(ctx context.Context, chunks []models.Chunk) ([][]float32, error)
}

// Pipeline orchestrates one document's ingestion. It holds no cross-document
// state; the caller's scheduler guarantees at most one run per document.
type Pipeline struct {
	repo     Repository
	index    Index
	embedder Embedder
	chunker  *chunker.Chunker
}

func NewPipeline(repo Repository, index Index, embedder Embedder, chunker *chunker.Chunker) *Pipeline {
	return &Pipeline{repo: repo, index: index, embedder: embedder, chunker: chunker}
}

// CollectionName derives a project's collection name from its id and the
// time of the first ingestion.
func CollectionName(projectID int64, now time.Time) string {
	return fmt.Sprintf("proj_%d_%d", projectID, now.Unix())
}

// Ingest runs the pipeline for one document. The PENDING -> PROCESSING
// transition is committed before any heavy work; on any later failure the
// document is moved to FAILED (best effort) and the original error is
// returned so the scheduler can log or retry per its own policy. Chunks
// upserted before a failure are not retracted.
func (p *Pipeline) Ingest(ctx context.Context, documentID int64) error {
	log.Info().Int64("document_id", documentID).Msg("Starting document processing")

	doc, err := p.repo.Document(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to load document %d: %w", documentID, err)
	}

	if err := p.repo.SetStatus(ctx, documentID, models.StatusPending, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to mark document %d processing: %w", documentID, err)
	}

	chunks, err := p.process(ctx, doc)
	if err == nil {
		if cerr := p.repo.Complete(ctx, documentID, chunks); cerr != nil {
			err = fmt.Errorf("failed to complete document %d: %w", documentID, cerr)
		}
	}
	if err != nil {
		if ferr := p.repo.SetStatus(ctx, documentID, models.StatusProcessing, models.StatusFailed); ferr != nil {
			log.Error().Err(ferr).Int64("document_id", documentID).Msg("Error marking document failed")
		}
		log.Error().Err(err).Int64("document_id", documentID).Msg("Error processing document")
		return err
	}

	log.Info().Int64("document_id", documentID).Int("chunks", chunks).Msg("Document processing completed")
	return nil
}

// process runs steps 2-5: load, chunk, resolve the collection, embed and
// upsert. It returns the number of chunks produced.
func (p *Pipeline) process(ctx context.Context, doc *models.Document) (int, error) {
	kind, err := loader.KindForPath(doc.FilePath)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	l, err := loader.ForKind(kind)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	pages, err := l.Load(doc.FilePath)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	chunks := p.chunker.Split(pages)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: document %d produced no chunks", ErrChunking, doc.ID)
	}

	collection := doc.Project.ChromaCollection
	if collection == "" {
		collection, err = p.repo.ClaimCollection(ctx, doc.ProjectID, CollectionName(doc.ProjectID, time.Now()))
		if err != nil {
			return 0, fmt.Errorf("failed to resolve collection for project %d: %w", doc.ProjectID, err)
		}
	}

	vectors, err := p.embedder.EmbedChunks(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	entries := make([]vectorstore.Entry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = vectorstore.Entry{
			ID:      fmt.Sprintf("doc%d_chunk%d", doc.ID, chunk.ChunkID),
			Content: chunk.Content,
			Metadata: map[string]string{
				"source":      doc.FileName,
				"document_id": strconv.FormatInt(doc.ID, 10),
				"page":        strconv.Itoa(chunk.PageNumber),
			},
			Embedding: vectors[i],
		}
	}

	if err := p.index.Upsert(ctx, collection, entries); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	return len(chunks), nil
}
