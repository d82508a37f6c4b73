package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
)

// ChatMessageRepository defines the interface for chat log persistence
type ChatMessageRepository interface {
	// Upsert inserts the message or overwrites its mutable fields
	Upsert(ctx context.Context, msg *entities.ChatMessage) error

	// FindByID retrieves a message by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ChatMessage, error)

	// FindByRoomID retrieves the newest messages of a room in chronological order
	FindByRoomID(ctx context.Context, roomID string, limit int) ([]*entities.ChatMessage, error)
}
