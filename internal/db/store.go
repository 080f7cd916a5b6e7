package db

import (
	"context"

	"github.com/uptrace/bun"

	"project-rag/internal/models"
)

// Store adapts the bun database to the narrow repository surface the
// ingestion pipeline and chat service depend on.
type Store struct {
	db *bun.DB
}

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *bun.DB {
	return s.db
}

func (s *Store) Document(ctx context.Context, id int64) (*models.Document, error) {
	return GetDocument(ctx, s.db, id)
}

func (s *Store) SetStatus(ctx context.Context, id int64, from, to models.ProcessingStatus) error {
	return SetDocumentStatus(ctx, s.db, id, from, to)
}

func (s *Store) Complete(ctx context.Context, id int64, chunks int) error {
	return CompleteDocument(ctx, s.db, id, chunks)
}

func (s *Store) ClaimCollection(ctx context.Context, projectID int64, name string) (string, error) {
	return ClaimCollection(ctx, s.db, projectID, name)
}

func (s *Store) Session(ctx context.Context, id int64) (*models.ChatSession, error) {
	return GetSession(ctx, s.db, id)
}

func (s *Store) Messages(ctx context.Context, sessionID int64) ([]models.ChatMessage, error) {
	return ListMessages(ctx, s.db, sessionID)
}

func (s *Store) AddMessage(ctx context.Context, message *models.ChatMessage) error {
	return AddMessage(ctx, s.db, message)
}

func (s *Store) CreateSession(ctx context.Context, session *models.ChatSession) error {
	return CreateSession(ctx, s.db, session)
}
