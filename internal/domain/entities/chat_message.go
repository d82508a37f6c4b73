package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MessageType represents the kind of chat message
type MessageType string

const (
	MessageTypeText       MessageType = "text"
	MessageTypeFile       MessageType = "file"
	MessageTypeSystem     MessageType = "system"
	MessageTypeAIFeedback MessageType = "ai-feedback"
)

// Valid reports whether t is a known message type
func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeFile, MessageTypeSystem, MessageTypeAIFeedback:
		return true
	}
	return false
}

// Reaction is one user's emoji on a message
type Reaction struct {
	UserID    string    `json:"user_id"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is an ordered message inside a room
type ChatMessage struct {
	ID          uuid.UUID                     `json:"id" gorm:"type:uuid;primary_key"`
	RoomID      string                        `json:"room_id" gorm:"type:varchar(255);not null;index"`
	InterviewID string                        `json:"interview_id" gorm:"type:varchar(255);not null;index"`
	SenderID    string                        `json:"sender_id" gorm:"type:varchar(255);not null"`
	SenderName  string                        `json:"sender_name" gorm:"type:varchar(255)"`
	Type        MessageType                   `json:"message_type" gorm:"type:varchar(20);not null;default:'text'"`
	Content     string                        `json:"content" gorm:"type:text;not null"`
	ReplyTo     *uuid.UUID                    `json:"reply_to,omitempty" gorm:"type:uuid"`
	CreatedAt   time.Time                     `json:"created_at" gorm:"not null;index"`
	Edited      bool                          `json:"edited" gorm:"default:false"`
	EditedAt    *time.Time                    `json:"edited_at,omitempty"`
	Reactions   datatypes.JSONSlice[Reaction] `json:"reactions" gorm:"type:jsonb;default:'[]'"`
	ReadBy      datatypes.JSONSlice[string]   `json:"read_by" gorm:"type:jsonb;default:'[]'"`

	// Revision increases with every change so stale snapshots never overwrite newer ones
	Revision int `json:"revision" gorm:"not null;default:0"`
}

// TableName specifies the table name for ChatMessage
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// Clone returns a copy that shares no slices with the original
func (m ChatMessage) Clone() ChatMessage {
	out := m
	out.Reactions = append(datatypes.JSONSlice[Reaction]{}, m.Reactions...)
	out.ReadBy = append(datatypes.JSONSlice[string]{}, m.ReadBy...)
	if m.ReplyTo != nil {
		replyTo := *m.ReplyTo
		out.ReplyTo = &replyTo
	}
	if m.EditedAt != nil {
		editedAt := *m.EditedAt
		out.EditedAt = &editedAt
	}
	return out
}

// Edit replaces the content and marks the message as edited
func (m *ChatMessage) Edit(content string, now time.Time) {
	m.Content = content
	m.Edited = true
	m.EditedAt = &now
	m.Revision++
}

// ToggleReaction adds the reaction, or removes it when the user already left the same emoji.
// It returns true when the reaction is now present.
func (m *ChatMessage) ToggleReaction(userID, emoji string, now time.Time) bool {
	for i, r := range m.Reactions {
		if r.UserID == userID && r.Emoji == emoji {
			m.Reactions = append(m.Reactions[:i:i], m.Reactions[i+1:]...)
			m.Revision++
			return false
		}
	}
	m.Reactions = append(m.Reactions, Reaction{UserID: userID, Emoji: emoji, CreatedAt: now})
	m.Revision++
	return true
}

// MarkReadBy records a reader once. It returns false if already recorded.
func (m *ChatMessage) MarkReadBy(userID string) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return false
		}
	}
	m.ReadBy = append(m.ReadBy, userID)
	m.Revision++
	return true
}
