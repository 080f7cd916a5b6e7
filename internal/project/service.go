// Package project is the project/document collaborator: it owns project
// and document rows, stores uploaded files, and hands freshly committed
// documents to the ingestion dispatcher.
package project

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"

	"project-rag/internal/db"
	"project-rag/internal/helper"
	"project-rag/internal/models"
)

// Enqueuer schedules an ingestion job; satisfied by worker.Dispatcher.
type Enqueuer interface {
	Enqueue(documentID int64)
}

// CollectionDeleter removes a project's vector collection; satisfied by
// vectorstore.Store.
type CollectionDeleter interface {
	DeleteCollection(name string) error
}

type Service struct {
	db        *bun.DB
	enqueuer  Enqueuer
	vectors   CollectionDeleter
	mediaRoot string
}

func NewService(database *bun.DB, enqueuer Enqueuer, vectors CollectionDeleter, mediaRoot string) *Service {
	return &Service{db: database, enqueuer: enqueuer, vectors: vectors, mediaRoot: mediaRoot}
}

func (s *Service) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	project := &models.Project{Name: name, Description: description}
	if err := db.CreateProject(ctx, s.db, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// UploadDocument stores the file under the media root and creates the
// document row PENDING. The ingestion job is enqueued only after the
// transaction commits.
func (s *Service) UploadDocument(ctx context.Context, projectID int64, fileName string, content []byte) (*models.Document, error) {
	dir := filepath.Join(s.mediaRoot, "projects", strconv.FormatInt(projectID, 10))
	if err := helper.CreateFolder(dir); err != nil {
		return nil, err
	}
	filePath := filepath.Join(dir, fileName)
	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store file %s: %w", filePath, err)
	}

	doc := &models.Document{
		ProjectID:        projectID,
		FileName:         fileName,
		FilePath:         filePath,
		ProcessingStatus: models.StatusPending,
	}
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := db.GetProject(ctx, tx, projectID); err != nil {
			return fmt.Errorf("failed to find project %d: %w", projectID, err)
		}
		return db.CreateDocument(ctx, tx, doc)
	})
	if err != nil {
		// the row never existed, so the stored file must not either
		if rerr := os.Remove(filePath); rerr != nil && !os.IsNotExist(rerr) {
			log.Warn().Err(rerr).Str("file", filePath).Msg("Error removing orphaned file")
		}
		return nil, err
	}

	s.enqueuer.Enqueue(doc.ID)
	return doc, nil
}

func (s *Service) ListDocuments(ctx context.Context, projectID int64) ([]models.Document, error) {
	return db.ListDocuments(ctx, s.db, projectID)
}

// DeleteProject removes the project row, its stored files and its vector
// collection.
func (s *Service) DeleteProject(ctx context.Context, projectID int64) error {
	project, err := db.GetProject(ctx, s.db, projectID)
	if err != nil {
		return err
	}
	if err := db.DeleteProject(ctx, s.db, projectID); err != nil {
		return err
	}
	if project.ChromaCollection != "" {
		if err := s.vectors.DeleteCollection(project.ChromaCollection); err != nil {
			log.Warn().Err(err).Str("collection", project.ChromaCollection).Msg("Error deleting project collection")
		}
	}
	dir := filepath.Join(s.mediaRoot, "projects", strconv.FormatInt(projectID, 10))
	if err := os.RemoveAll(dir); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Error deleting project files")
	}
	return nil
}

// DeleteDocument removes the document row and its file. Vectors already
// upserted for the document stay in the collection; the index is not purged
// per document.
func (s *Service) DeleteDocument(ctx context.Context, documentID int64) error {
	doc, err := db.GetDocument(ctx, s.db, documentID)
	if err != nil {
		return err
	}
	if err := db.DeleteDocument(ctx, s.db, documentID); err != nil {
		return err
	}
	if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", doc.FilePath).Msg("Error deleting document file")
	}
	return nil
}
