package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"project-rag/internal/config"
)

// Client wraps a langchaingo chat model behind the single completion call
// the RAG flow needs.
type Client struct {
	model llms.Model
}

func NewClient(llmConfig *config.LLMConfig) (*Client, error) {
	var model llms.Model
	switch llmConfig.Provider {
	case "ollama", "":
		m, err := ollama.New(
			ollama.WithServerURL(llmConfig.BaseURL),
			ollama.WithModel(llmConfig.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize ollama client: %w", err)
		}
		model = m
	case "openai":
		m, err := openai.New(
			openai.WithBaseURL(llmConfig.BaseURL),
			openai.WithToken(strings.TrimPrefix(llmConfig.Key, "Bearer ")),
			openai.WithModel(llmConfig.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize openai client: %w", err)
		}
		model = m
	default:
		return nil, fmt.Errorf("unknown inference provider: %s", llmConfig.Provider)
	}
	return &Client{model: model}, nil
}

// Generate runs one chat completion and returns the first choice's text.
func (c *Client) Generate(ctx context.Context, messages []llms.MessageContent) (string, error) {
	log.Debug().Int("messages", len(messages)).Msg("Generating content")

	res, err := c.model.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return res.Choices[0].Content, nil
}
