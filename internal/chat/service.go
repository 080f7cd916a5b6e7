// Package chat is the chat collaborator: it owns sessions and messages and
// wraps each user turn around the RAG orchestrator with the persistence
// ordering the contract requires.
package chat

import (
	"context"
	"fmt"

	"project-rag/internal/models"
	"project-rag/internal/rag"
)

// Repository is the session/message persistence the service depends on;
// satisfied by db.Store.
type Repository interface {
	Session(ctx context.Context, id int64) (*models.ChatSession, error)
	Messages(ctx context.Context, sessionID int64) ([]models.ChatMessage, error)
	AddMessage(ctx context.Context, message *models.ChatMessage) error
	CreateSession(ctx context.Context, session *models.ChatSession) error
}

// Answerer answers one chat turn; satisfied by rag.Service bound to a
// collection name.
type Answerer interface {
	Answer(ctx context.Context, collectionName string, history []models.Message, query string) (*rag.Response, error)
}

type Service struct {
	repo     Repository
	answerer Answerer
}

func NewService(repo Repository, answerer Answerer) *Service {
	return &Service{repo: repo, answerer: answerer}
}

func (s *Service) CreateSession(ctx context.Context, projectID int64, title string) (*models.ChatSession, error) {
	session := &models.ChatSession{ProjectID: projectID, Title: title}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// PostMessage handles one user turn: it persists the user's message, asks
// the RAG orchestrator for a reply, and persists the assistant's message
// only when the reply succeeded. On failure the user message remains and
// the error propagates; no assistant message is recorded.
func (s *Service) PostMessage(ctx context.Context, sessionID int64, content string) (*models.ChatMessage, *models.ChatMessage, error) {
	session, err := s.repo.Session(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find session %d: %w", sessionID, err)
	}
	if session.Project == nil {
		return nil, nil, fmt.Errorf("session %d has no project", sessionID)
	}

	prior, err := s.repo.Messages(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	history := make([]models.Message, len(prior))
	for i, msg := range prior {
		history[i] = models.Message{Role: msg.Role, Content: msg.Content}
	}

	userMsg := &models.ChatMessage{
		SessionID: sessionID,
		Role:      models.RoleUser,
		Content:   content,
	}
	if err := s.repo.AddMessage(ctx, userMsg); err != nil {
		return nil, nil, err
	}

	response, err := s.answerer.Answer(ctx, session.Project.ChromaCollection, history, content)
	if err != nil {
		return userMsg, nil, err
	}

	assistantMsg := &models.ChatMessage{
		SessionID: sessionID,
		Role:      models.RoleAssistant,
		Content:   response.Content,
	}
	if err := s.repo.AddMessage(ctx, assistantMsg); err != nil {
		return userMsg, nil, err
	}

	return userMsg, assistantMsg, nil
}
