package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"project-rag/internal/models"
)

func CreateProject(ctx context.Context, db *bun.DB, project *models.Project) error {
	_, err := db.NewInsert().Model(project).Exec(ctx)
	return err
}

func GetProject(ctx context.Context, db bun.IDB, id int64) (*models.Project, error) {
	project := new(models.Project)
	err := db.NewSelect().Model(project).Where("p.id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return project, nil
}

func ListProjects(ctx context.Context, db *bun.DB) ([]models.Project, error) {
	var projects []models.Project
	err := db.NewSelect().Model(&projects).OrderExpr("created_at DESC").Scan(ctx)
	return projects, err
}

func DeleteProject(ctx context.Context, db *bun.DB, id int64) error {
	_, err := db.NewDelete().Model((*models.Project)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}

// ClaimCollection assigns a collection name to the project with a single
// conditional update, so two concurrent first ingestions cannot both win.
// It returns the name that ended up on the project row, which is the
// caller's name only if the claim succeeded.
func ClaimCollection(ctx context.Context, db bun.IDB, projectID int64, name string) (string, error) {
	res, err := db.NewUpdate().
		Model((*models.Project)(nil)).
		Set("chroma_collection = ?", name).
		Set("updated_at = current_timestamp").
		Where("id = ? AND chroma_collection = ''", projectID).
		Exec(ctx)
	if err != nil {
		return "", err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if rows == 1 {
		return name, nil
	}

	// Lost the race or the collection was already set; read the winner.
	project, err := GetProject(ctx, db, projectID)
	if err != nil {
		return "", err
	}
	if project.ChromaCollection == "" {
		return "", fmt.Errorf("failed to claim collection for project %d", projectID)
	}
	return project.ChromaCollection, nil
}
