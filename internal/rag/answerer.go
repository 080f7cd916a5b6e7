package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"project-rag/internal/models"
)

// AnswerGenerator produces an answer grounded in the retrieved chunks.
type AnswerGenerator interface {
	Generate(ctx context.Context, question string, chunks []models.SourceChunk, history []models.Message) (string, error)
}

// LLMAnswerer builds a prompt that places the retrieved chunks as grounding
// context ahead of the question, carrying the conversation history through
// as chat messages.
type LLMAnswerer struct {
	completer Completer
}

func NewLLMAnswerer(completer Completer) *LLMAnswerer {
	return &LLMAnswerer{completer: completer}
}

func (a *LLMAnswerer) Generate(ctx context.Context, question string, chunks []models.SourceChunk, history []models.Message) (string, error) {
	var contextText strings.Builder
	for _, chunk := range chunks {
		contextText.WriteString(chunk.Content)
		contextText.WriteString("\n\n")
	}

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: models.AnswerSystemPrompt}},
		},
	}
	for _, msg := range history {
		role, ok := chatRole(msg.Role)
		if !ok {
			continue
		}
		messages = append(messages, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextContent{Text: msg.Content}},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextContent{Text: fmt.Sprintf(models.AnswerPromptTemplate, contextText.String(), question)}},
	})

	answer, err := a.completer.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return answer, nil
}

func chatRole(role models.ChatRole) (llms.ChatMessageType, bool) {
	switch role {
	case models.RoleSystem:
		return llms.ChatMessageTypeSystem, true
	case models.RoleUser:
		return llms.ChatMessageTypeHuman, true
	case models.RoleAssistant:
		return llms.ChatMessageTypeAI, true
	default:
		return "", false
	}
}
