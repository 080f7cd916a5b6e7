package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ProcessingStatus is the lifecycle state of a document's ingestion.
// Transitions are linear: PENDING -> PROCESSING -> {COMPLETED, FAILED}.
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "PENDING"
	StatusProcessing ProcessingStatus = "PROCESSING"
	StatusCompleted  ProcessingStatus = "COMPLETED"
	StatusFailed     ProcessingStatus = "FAILED"
)

// ChatRole is the author of a chat message.
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// Project organizes documents and owns at most one vector collection.
// ChromaCollection is empty until the first successful ingestion claims it;
// once set it never changes.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID               int64     `bun:"id,pk,autoincrement"`
	Name             string    `bun:"name,notnull"`
	Description      string    `bun:"description"`
	ChromaCollection string    `bun:"chroma_collection,notnull,default:''"`
	CreatedAt        time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Document is one uploaded file belonging to a project. ChunksCount is
// populated only when ProcessingStatus reaches COMPLETED.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`

	ID               int64            `bun:"id,pk,autoincrement"`
	ProjectID        int64            `bun:"project_id,notnull"`
	FileName         string           `bun:"file_name,notnull"`
	FilePath         string           `bun:"file_path,notnull"`
	ProcessingStatus ProcessingStatus `bun:"processing_status,notnull,default:'PENDING'"`
	ChunksCount      int              `bun:"chunks_count,notnull,default:0"`
	CreatedAt        time.Time        `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time        `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	Project *Project `bun:"rel:belongs-to,join:project_id=id"`
}

// ChatSession groups the messages of one conversation about a project.
type ChatSession struct {
	bun.BaseModel `bun:"table:chat_sessions,alias:cs"`

	ID        int64     `bun:"id,pk,autoincrement"`
	ProjectID int64     `bun:"project_id,notnull"`
	Title     string    `bun:"title,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	Project *Project `bun:"rel:belongs-to,join:project_id=id"`
}

// ChatMessage is one turn in a session, append-only, ordered by creation time.
type ChatMessage struct {
	bun.BaseModel `bun:"table:chat_messages,alias:cm"`

	ID        int64     `bun:"id,pk,autoincrement"`
	SessionID int64     `bun:"session_id,notnull"`
	Role      ChatRole  `bun:"role,notnull"`
	Content   string    `bun:"content,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// DefaultSessionTitle is the title given to a session created without one.
func DefaultSessionTitle(now time.Time) string {
	return "New chat " + now.Format("2006-01-02 15:04")
}
