package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"project-rag/internal/config"
	"project-rag/internal/models"
)

// Embedder converts text into fixed-length vectors through a langchaingo
// embedding client.
type Embedder struct {
	impl *embeddings.EmbedderImpl
}

// NewEmbedder creates the embedder for the configured provider.
func NewEmbedder(llmConfig *config.LLMConfig) (*Embedder, error) {
	log.Debug().Interface("config", map[string]string{
		"provider":        llmConfig.Provider,
		"base_url":        llmConfig.BaseURL,
		"embedding_model": llmConfig.Model,
	}).Msg("Initializing embedder")

	var impl *embeddings.EmbedderImpl
	switch llmConfig.Provider {
	case "ollama", "":
		llm, err := ollama.New(
			ollama.WithServerURL(llmConfig.BaseURL),
			ollama.WithModel(llmConfig.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize ollama client: %w", err)
		}
		impl, err = embeddings.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedder: %w", err)
		}
	case "openai":
		llm, err := openai.New(
			openai.WithBaseURL(llmConfig.BaseURL),
			openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
			openai.WithModel(llmConfig.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize openai client: %w", err)
		}
		impl, err = embeddings.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedder: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", llmConfig.Provider)
	}

	return &Embedder{impl: impl}, nil
}

// EmbedTexts embeds a batch of texts, preserving order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors, err := e.impl.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding service returned %d vectors for %d texts", len(vectors), len(texts))
	}
	return vectors, nil
}

// EmbedQuery embeds a single query string.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.impl.EmbedQuery(ctx, text)
}

// EmbedChunks embeds the content of each chunk, preserving order.
func (e *Embedder) EmbedChunks(ctx context.Context, chunks []models.Chunk) ([][]float32, error) {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	return e.EmbedTexts(ctx, texts)
}

// Func adapts the embedder to the chromem embedding function contract.
func (e *Embedder) Func() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return e.impl.EmbedQuery(ctx, text)
	}
}
