package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/domain/repositories"
)

type chatMessageRepository struct {
	db *gorm.DB
}

// NewChatMessageRepository creates a new chat message repository
func NewChatMessageRepository(db *gorm.DB) repositories.ChatMessageRepository {
	return &chatMessageRepository{db: db}
}

// Upsert inserts a message, or updates the fields that may change after creation.
// Snapshots may arrive out of order, so an update only applies when its revision is newer.
func (r *chatMessageRepository) Upsert(ctx context.Context, msg *entities.ChatMessage) error {
	if msg == nil {
		return errors.New("message cannot be nil")
	}
	return upsertChatMessage(r.db.WithContext(ctx), msg).Error
}

func upsertChatMessage(db *gorm.DB, msg *entities.ChatMessage) *gorm.DB {
	return db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content", "edited", "edited_at", "reactions", "read_by", "revision"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "chat_messages.revision < excluded.revision"},
			}},
		}).
		Create(msg)
}

// FindByID retrieves a message by ID
func (r *chatMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ChatMessage, error) {
	var msg entities.ChatMessage
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// FindByRoomID retrieves the newest messages of a room, oldest first
func (r *chatMessageRepository) FindByRoomID(ctx context.Context, roomID string, limit int) ([]*entities.ChatMessage, error) {
	var messages []*entities.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
