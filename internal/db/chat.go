package db

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"project-rag/internal/models"
)

// CreateSession inserts a chat session, defaulting the title from the
// creation time when blank.
func CreateSession(ctx context.Context, db *bun.DB, session *models.ChatSession) error {
	if session.Title == "" {
		session.Title = models.DefaultSessionTitle(time.Now())
	}
	_, err := db.NewInsert().Model(session).Exec(ctx)
	return err
}

func GetSession(ctx context.Context, db *bun.DB, id int64) (*models.ChatSession, error) {
	session := new(models.ChatSession)
	err := db.NewSelect().Model(session).Relation("Project").Where("cs.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func ListSessions(ctx context.Context, db *bun.DB, projectID int64) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := db.NewSelect().
		Model(&sessions).
		Where("project_id = ?", projectID).
		OrderExpr("created_at DESC").
		Scan(ctx)
	return sessions, err
}

func AddMessage(ctx context.Context, db *bun.DB, message *models.ChatMessage) error {
	_, err := db.NewInsert().Model(message).Exec(ctx)
	return err
}

// ListMessages returns the session's messages in creation order.
func ListMessages(ctx context.Context, db *bun.DB, sessionID int64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := db.NewSelect().
		Model(&messages).
		Where("session_id = ?", sessionID).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)
	return messages, err
}
