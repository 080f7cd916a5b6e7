package models

// Chunk is an ephemeral slice of a document's text prepared for embedding.
// It is never persisted as a row; it lives between the chunker and the
// vector store upsert.
type Chunk struct {
	Content    string
	PageNumber int
	ChunkID    int
}

// SourceChunk is a retrieved chunk with its attribution metadata.
type SourceChunk struct {
	Content string
	Source  string
	Score   float32
}

// Message is one role/content pair of a conversation, the shape passed to
// the RAG orchestrator.
type Message struct {
	Role    ChatRole
	Content string
}
