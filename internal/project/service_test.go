package project

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// downConnector refuses every connection, so any statement or transaction
// against the database fails.
type downConnector struct{}

func (downConnector) Connect(context.Context) (driver.Conn, error) {
	return nil, errors.New("database unavailable")
}

func (downConnector) Driver() driver.Driver { return nil }

type fakeEnqueuer struct {
	ids []int64
}

func (e *fakeEnqueuer) Enqueue(documentID int64) {
	e.ids = append(e.ids, documentID)
}

type fakeDeleter struct{}

func (fakeDeleter) DeleteCollection(string) error { return nil }

func TestUploadDocument_FailedTransactionLeavesNoFile(t *testing.T) {
	mediaRoot := t.TempDir()
	db := bun.NewDB(sql.OpenDB(downConnector{}), pgdialect.New())
	enqueuer := &fakeEnqueuer{}
	svc := NewService(db, enqueuer, fakeDeleter{}, mediaRoot)

	_, err := svc.UploadDocument(context.Background(), 1, "doc.txt", []byte("content"))
	require.Error(t, err)

	// the stored file is removed when the row was never committed
	_, statErr := os.Stat(filepath.Join(mediaRoot, "projects", "1", "doc.txt"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Empty(t, enqueuer.ids, "nothing to ingest without a committed row")
}
