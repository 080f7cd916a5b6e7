package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"project-rag/internal/models"
)

func CreateDocument(ctx context.Context, db bun.IDB, doc *models.Document) error {
	_, err := db.NewInsert().Model(doc).Exec(ctx)
	return err
}

func GetDocument(ctx context.Context, db bun.IDB, id int64) (*models.Document, error) {
	doc := new(models.Document)
	err := db.NewSelect().Model(doc).Relation("Project").Where("d.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func ListDocuments(ctx context.Context, db *bun.DB, projectID int64) ([]models.Document, error) {
	var docs []models.Document
	err := db.NewSelect().
		Model(&docs).
		Where("project_id = ?", projectID).
		OrderExpr("created_at ASC").
		Scan(ctx)
	return docs, err
}

func DeleteDocument(ctx context.Context, db *bun.DB, id int64) error {
	_, err := db.NewDelete().Model((*models.Document)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// SetDocumentStatus moves a document from one processing status to another.
// The update is conditional on the expected current status, so an already
// advanced document is never moved backwards; that case is reported as an
// error.
func SetDocumentStatus(ctx context.Context, db bun.IDB, id int64, from, to models.ProcessingStatus) error {
	res, err := db.NewUpdate().
		Model((*models.Document)(nil)).
		Set("processing_status = ?", to).
		Set("updated_at = current_timestamp").
		Where("id = ? AND processing_status = ?", id, from).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("document %d is not %s", id, from)
	}
	return nil
}

// CompleteDocument records the chunk count and the COMPLETED status in a
// single update, so the count is never observable without the status.
func CompleteDocument(ctx context.Context, db bun.IDB, id int64, chunks int) error {
	res, err := db.NewUpdate().
		Model((*models.Document)(nil)).
		Set("processing_status = ?", models.StatusCompleted).
		Set("chunks_count = ?", chunks).
		Set("updated_at = current_timestamp").
		Where("id = ? AND processing_status = ?", id, models.StatusProcessing).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("document %d is not %s", id, models.StatusProcessing)
	}
	return nil
}
