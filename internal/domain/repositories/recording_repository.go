package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
)

// RecordingSessionRepository defines the interface for recording session data access
type RecordingSessionRepository interface {
	// Upsert inserts the session or advances a row that is still recording
	Upsert(ctx context.Context, rec *entities.RecordingSession) error

	// FindByID retrieves a session by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.RecordingSession, error)

	// FindByEgressID retrieves a session by capture backend ID
	FindByEgressID(ctx context.Context, egressID string) (*entities.RecordingSession, error)

	// SetEgressID binds the capture backend ID to a session
	SetEgressID(ctx context.Context, id uuid.UUID, egressID string) error

	// UpdateProgress stores processing progress
	UpdateProgress(ctx context.Context, id uuid.UUID, progress int) error

	// Complete marks the session completed with its file location
	Complete(ctx context.Context, id uuid.UUID, fileURL string) error

	// Fail marks the session failed with a reason
	Fail(ctx context.Context, id uuid.UUID, reason string) error
}
