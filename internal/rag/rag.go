// Package rag answers chat turns grounded in a project's vector collection:
// the newest question is rewritten against the conversation history, the
// collection is searched with the rewritten query, and the matches feed the
// model that generates the reply.
package rag

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"project-rag/internal/models"
)

// Response is the generated answer plus the distinct sources it drew from,
// in retrieval order.
type Response struct {
	Content string
	Sources []string
}

// RAG ties a reformulator, a retriever and an answer generator together for
// one chat turn. It persists nothing; message persistence belongs to the
// caller.
type RAG struct {
	reformulator Reformulator
	retriever    Retriever
	generator    AnswerGenerator
}

func NewRAG(reformulator Reformulator, retriever Retriever, generator AnswerGenerator) *RAG {
	return &RAG{reformulator: reformulator, retriever: retriever, generator: generator}
}

// Answer runs one turn. Any retrieval or generation failure propagates
// unchanged; the caller must not record an assistant message in that case.
func (r *RAG) Answer(ctx context.Context, history []models.Message, query string) (*Response, error) {
	standalone, err := r.reformulator.Reformulate(ctx, history, query)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("standalone", standalone).Msg("Reformulated query")

	chunks, err := r.retriever.Search(ctx, standalone)
	if err != nil {
		return nil, err
	}

	answer, err := r.generator.Generate(ctx, standalone, chunks, history)
	if err != nil {
		return nil, err
	}

	return &Response{Content: answer, Sources: distinctSources(chunks)}, nil
}

// distinctSources returns the chunk sources with duplicates removed,
// preserving retrieval order.
func distinctSources(chunks []models.SourceChunk) []string {
	seen := make(map[string]bool, len(chunks))
	var sources []string
	for _, chunk := range chunks {
		if chunk.Source == "" || seen[chunk.Source] {
			continue
		}
		seen[chunk.Source] = true
		sources = append(sources, chunk.Source)
	}
	return sources
}

// Service builds the per-collection RAG flow on demand, binding the shared
// vector store and model client to the requested collection.
type Service struct {
	searcher  Searcher
	completer Completer
	topK      int
}

func NewService(searcher Searcher, completer Completer, topK int) *Service {
	return &Service{searcher: searcher, completer: completer, topK: topK}
}

// Answer answers one chat turn against the named collection.
func (s *Service) Answer(ctx context.Context, collectionName string, history []models.Message, query string) (*Response, error) {
	if collectionName == "" {
		return nil, fmt.Errorf("%w: project has no collection", ErrNoIndex)
	}
	r := NewRAG(
		NewLLMReformulator(s.completer),
		NewVectorRetriever(s.searcher, collectionName, s.topK),
		NewLLMAnswerer(s.completer),
	)
	return r.Answer(ctx, history, query)
}
