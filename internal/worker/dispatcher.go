// Package worker schedules ingestion jobs: one job per document, run by a
// fixed pool. Jobs are enqueued only after the document row is committed,
// so a worker never picks up a row it cannot see.
package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"project-rag/internal/helper"
)

// Ingestor runs one document's ingestion; satisfied by ingest.Pipeline.
type Ingestor interface {
	Ingest(ctx context.Context, documentID int64) error
}

// Dispatcher feeds document ids to a pool of ingestion workers. A job runs
// to completion or failure; there is no mid-flight cancellation and no
// automatic retry.
type Dispatcher struct {
	ingestor Ingestor
	jobs     chan int64
	wg       sync.WaitGroup
	once     sync.Once
}

func NewDispatcher(ingestor Ingestor, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Dispatcher{
		ingestor: ingestor,
		jobs:     make(chan int64, queueSize),
	}
}

// Start launches the worker pool. Workers drain the queue until Stop closes
// it.
func (d *Dispatcher) Start(ctx context.Context, workers int) {
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for documentID := range d.jobs {
				d.run(ctx, documentID)
			}
		}()
	}
}

func (d *Dispatcher) run(ctx context.Context, documentID int64) {
	jobID, err := helper.GenerateUUID()
	if err != nil {
		jobID = "unknown"
	}
	log.Info().Str("job_id", jobID).Int64("document_id", documentID).Msg("Running ingestion job")
	if err := d.ingestor.Ingest(ctx, documentID); err != nil {
		// The pipeline already moved the document to FAILED; retrying is a
		// new ingestion request.
		log.Error().Err(err).Str("job_id", jobID).Int64("document_id", documentID).Msg("Ingestion job failed")
		return
	}
	log.Info().Str("job_id", jobID).Int64("document_id", documentID).Msg("Ingestion job finished")
}

// Enqueue schedules one document for ingestion. Call only after the
// document row is durably committed.
func (d *Dispatcher) Enqueue(documentID int64) {
	d.jobs <- documentID
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		close(d.jobs)
	})
	d.wg.Wait()
}
