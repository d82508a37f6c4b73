package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
)

// FileShareRepository defines the interface for shared file metadata
type FileShareRepository interface {
	// Upsert inserts a file record; a replay is ignored
	Upsert(ctx context.Context, rec *entities.FileShareRecord) error

	// FindByID retrieves a file record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.FileShareRecord, error)

	// SetDownloadCount stores the download counter, never lowering it.
	// Returns ErrRecordMissing when the row does not exist yet.
	SetDownloadCount(ctx context.Context, id uuid.UUID, count int) error

	// FindByInterviewID lists files shared during an interview
	FindByInterviewID(ctx context.Context, interviewID string) ([]*entities.FileShareRecord, error)
}

// FileStorage stores shared file payloads
type FileStorage interface {
	PutObject(ctx context.Context, key string, payload []byte, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
}
