// Package vectorstore wraps chromem-go as the per-project vector collection
// store. Each collection lives in its own directory under the store root,
// created on first upsert.
package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"project-rag/internal/helper"
)

// ErrCollectionNotFound is returned when a similarity search targets a
// collection that was never created or holds no documents.
var ErrCollectionNotFound = errors.New("collection not found")

const compress = false

// Entry is one embedded chunk to upsert.
type Entry struct {
	ID        string
	Content   string
	Metadata  map[string]string
	Embedding []float32
}

// Result is one similarity search match.
type Result struct {
	Content    string
	Metadata   map[string]string
	Similarity float32
}

// Store encapsulates the chromem-go database operations.
type Store struct {
	db      *chromem.DB
	embedFn chromem.EmbeddingFunc
}

// NewStore opens (or creates) the persistent database under root. embedFn
// is used to embed query text at search time.
func NewStore(root string, embedFn chromem.EmbeddingFunc) (*Store, error) {
	if err := helper.CreateFolder(root); err != nil {
		return nil, err
	}
	db, err := chromem.NewPersistentDB(root, compress)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %v", err)
	}
	return &Store{db: db, embedFn: embedFn}, nil
}

// Upsert adds the entries to the named collection, creating the collection
// and its directory if they do not exist. Entries with an existing ID are
// replaced.
func (s *Store) Upsert(ctx context.Context, collectionName string, entries []Entry) error {
	c, err := s.db.GetOrCreateCollection(collectionName, nil, s.embedFn)
	if err != nil {
		return fmt.Errorf("failed to create/get collection: %v", err)
	}

	docs := make([]chromem.Document, len(entries))
	for i, e := range entries {
		docs[i] = chromem.Document{
			ID:        e.ID,
			Content:   e.Content,
			Metadata:  e.Metadata,
			Embedding: e.Embedding,
		}
	}

	log.Debug().Str("collection", collectionName).Int("documents", len(docs)).Msg("Adding documents to vector database")
	if err := c.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %v", err)
	}
	return nil
}

// Query runs a similarity search against the named collection. k is clamped
// to the collection size.
func (s *Store) Query(ctx context.Context, collectionName, queryText string, k int) ([]Result, error) {
	if queryText == "" {
		return nil, fmt.Errorf("query text must be provided")
	}
	c := s.db.GetCollection(collectionName, s.embedFn)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collectionName)
	}
	count := c.Count()
	if count == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrCollectionNotFound, collectionName)
	}
	if k > count {
		k = count
	}

	results, err := c.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryText: queryText,
		NResults:  k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{
			Content:    r.Content,
			Metadata:   r.Metadata,
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

// DeleteCollection removes a collection and its directory.
func (s *Store) DeleteCollection(collectionName string) error {
	if err := s.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("failed to drop collection: %v", err)
	}
	return nil
}
