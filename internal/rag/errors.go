package rag

import "errors"

// Query-time failure classes. These propagate to the chat-handling caller;
// the orchestrator never swallows them.
var (
	// ErrNoIndex means the project has no vector collection to search,
	// typically because no document was ever ingested.
	ErrNoIndex = errors.New("no document index")

	// ErrRetrieval covers similarity search failures.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrGeneration covers language model failures, including query
	// reformulation.
	ErrGeneration = errors.New("generation failed")
)
