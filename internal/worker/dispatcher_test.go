package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeIngestor struct {
	mu    sync.Mutex
	runs  map[int64]int
	fail  map[int64]bool
	calls int
}

func newFakeIngestor() *fakeIngestor {
	return &fakeIngestor{runs: make(map[int64]int), fail: make(map[int64]bool)}
}

func (f *fakeIngestor) Ingest(ctx context.Context, documentID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.runs[documentID]++
	if f.fail[documentID] {
		return errors.New("ingestion failed")
	}
	return nil
}

func TestDispatcher_RunsEachJobOnce(t *testing.T) {
	ingestor := newFakeIngestor()
	d := NewDispatcher(ingestor, 8)
	d.Start(context.Background(), 3)

	for id := int64(1); id <= 5; id++ {
		d.Enqueue(id)
	}
	d.Stop()

	assert.Equal(t, 5, ingestor.calls)
	for id := int64(1); id <= 5; id++ {
		assert.Equal(t, 1, ingestor.runs[id], "document %d", id)
	}
}

func TestDispatcher_FailedJobDoesNotStopWorkers(t *testing.T) {
	ingestor := newFakeIngestor()
	ingestor.fail[2] = true
	d := NewDispatcher(ingestor, 4)
	d.Start(context.Background(), 1)

	d.Enqueue(1)
	d.Enqueue(2)
	d.Enqueue(3)
	d.Stop()

	assert.Equal(t, 3, ingestor.calls)
	assert.Equal(t, 1, ingestor.runs[3], "jobs after a failure still run")
}

func TestDispatcher_StopIsIdempotent(t *testing.T) {
	d := NewDispatcher(newFakeIngestor(), 1)
	d.Start(context.Background(), 1)
	d.Stop()
	d.Stop()
}
