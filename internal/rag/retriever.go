package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"project-rag/internal/models"
	"project-rag/internal/vectorstore"
)

// Retriever ranks chunks relevant to a query. Implementations other than
// the chromem-backed one (a different vector store, a test fake) satisfy
// the same contract.
type Retriever interface {
	Search(ctx context.Context, query string) ([]models.SourceChunk, error)
}

// Completer is the single chat-completion call the RAG flow needs; it is
// satisfied by llm.Client.
type Completer interface {
	Generate(ctx context.Context, messages []llms.MessageContent) (string, error)
}

// Reformulator rewrites the newest question into a standalone one using the
// prior conversation.
type Reformulator interface {
	Reformulate(ctx context.Context, history []models.Message, query string) (string, error)
}

// Searcher is the vector store surface VectorRetriever depends on; it is
// satisfied by vectorstore.Store.
type Searcher interface {
	Query(ctx context.Context, collection, query string, k int) ([]vectorstore.Result, error)
}

// VectorRetriever searches one named collection.
type VectorRetriever struct {
	searcher   Searcher
	collection string
	topK       int
}

func NewVectorRetriever(searcher Searcher, collection string, topK int) *VectorRetriever {
	if topK <= 0 {
		topK = models.DefaultTopK
	}
	return &VectorRetriever{searcher: searcher, collection: collection, topK: topK}
}

func (r *VectorRetriever) Search(ctx context.Context, query string) ([]models.SourceChunk, error) {
	results, err := r.searcher.Query(ctx, r.collection, query, r.topK)
	if err != nil {
		if errors.Is(err, vectorstore.ErrCollectionNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNoIndex, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrRetrieval, err)
	}

	chunks := make([]models.SourceChunk, len(results))
	for i, res := range results {
		chunks[i] = models.SourceChunk{
			Content: res.Content,
			Source:  res.Metadata["source"],
			Score:   res.Similarity,
		}
	}
	return chunks, nil
}

// LLMReformulator asks the model for a standalone question. When the
// history holds no prior user turn there is nothing to resolve, so the
// question passes through without a model call.
type LLMReformulator struct {
	completer Completer
}

func NewLLMReformulator(completer Completer) *LLMReformulator {
	return &LLMReformulator{completer: completer}
}

func (r *LLMReformulator) Reformulate(ctx context.Context, history []models.Message, query string) (string, error) {
	if !hasUserTurn(history) {
		return query, nil
	}

	var transcript strings.Builder
	for _, msg := range history {
		transcript.WriteString(string(msg.Role))
		transcript.WriteString(": ")
		transcript.WriteString(msg.Content)
		transcript.WriteString("\n")
	}

	prompt := fmt.Sprintf(models.ReformulatePromptTemplate, transcript.String(), query)
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	standalone, err := r.completer.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	standalone = strings.TrimSpace(standalone)
	if standalone == "" {
		return query, nil
	}
	return standalone, nil
}

func hasUserTurn(history []models.Message) bool {
	for _, msg := range history {
		if msg.Role == models.RoleUser {
			return true
		}
	}
	return false
}
