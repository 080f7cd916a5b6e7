package ingest

import "errors"

// Ingestion failure classes. The pipeline wraps the underlying cause, so
// callers can match the class with errors.Is and still read the cause.
var (
	// ErrLoad covers a missing or unreadable file and unsupported formats.
	ErrLoad = errors.New("load document")

	// ErrChunking covers splitter failures on malformed or empty content.
	ErrChunking = errors.New("chunk document")

	// ErrEmbedding covers embedding and vector-store upsert failures.
	ErrEmbedding = errors.New("embed document")
)
