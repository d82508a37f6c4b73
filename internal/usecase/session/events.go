package session

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
)

// Outbound event names
const (
	EventConnected                = "connected"
	EventRoomJoined               = "room-joined"
	EventParticipantJoined        = "participant-joined"
	EventParticipantLeft          = "participant-left"
	EventParticipantDisconnected  = "participant-disconnected"
	EventOffer                    = "offer"
	EventAnswer                   = "answer"
	EventICECandidate             = "ice-candidate"
	EventNewMessage               = "new-message"
	EventMessageEdited            = "message-edited"
	EventMessageReaction          = "message-reaction"
	EventMessageRead              = "message-read"
	EventUserTyping               = "user-typing"
	EventFileShared               = "file-shared"
	EventFileData                 = "file-data"
	EventRecordingStarted         = "recording-started"
	EventRecordingStopped         = "recording-stopped"
	EventScreenShareStarted       = "screen-share-started"
	EventScreenShareStopped       = "screen-share-stopped"
	EventParticipantMediaChanged  = "participant-media-changed"
	EventConnectionQualityWarning = "connection-quality-warning"
	EventError                    = "error"
)

// SignalKind is one of the relayed negotiation messages
type SignalKind string

const (
	SignalOffer        SignalKind = EventOffer
	SignalAnswer       SignalKind = EventAnswer
	SignalICECandidate SignalKind = EventICECandidate
)

// Valid reports whether k can be relayed
func (k SignalKind) Valid() bool {
	switch k {
	case SignalOffer, SignalAnswer, SignalICECandidate:
		return true
	}
	return false
}

type ConnectedEvent struct {
	ConnectionID string    `json:"connection_id"`
	UserID       string    `json:"user_id"`
	ConnectedAt  time.Time `json:"connected_at"`
}

// RoomJoinedEvent is what a joiner receives
type RoomJoinedEvent struct {
	Room     entities.RoomSnapshot      `json:"room"`
	Messages []entities.ChatMessage     `json:"messages"`
	Files    []entities.FileShareRecord `json:"files"`
}

type ParticipantJoinedEvent struct {
	RoomID      string               `json:"room_id"`
	Participant entities.Participant `json:"participant"`
}

type ParticipantLeftEvent struct {
	RoomID          string `json:"room_id"`
	UserID          string `json:"user_id"`
	UserName        string `json:"user_name"`
	DurationSeconds int64  `json:"duration_seconds"`
}

type ParticipantDisconnectedEvent struct {
	RoomID          string `json:"room_id"`
	UserID          string `json:"user_id"`
	UserName        string `json:"user_name"`
	Reason          string `json:"reason"`
	DurationSeconds int64  `json:"duration_seconds"`
}

// SignalEvent is a relayed offer, answer or ICE candidate
type SignalEvent struct {
	RoomID     string          `json:"room_id"`
	FromUserID string          `json:"from_user_id"`
	Payload    json.RawMessage `json:"payload"`
}

type MessageEvent struct {
	RoomID  string               `json:"room_id"`
	Message entities.ChatMessage `json:"message"`
}

type MessageReactionEvent struct {
	RoomID    string              `json:"room_id"`
	MessageID uuid.UUID           `json:"message_id"`
	UserID    string              `json:"user_id"`
	Emoji     string              `json:"emoji"`
	Added     bool                `json:"added"`
	Reactions []entities.Reaction `json:"reactions"`
}

type MessageReadEvent struct {
	RoomID    string    `json:"room_id"`
	MessageID uuid.UUID `json:"message_id"`
	UserID    string    `json:"user_id"`
}

type UserTypingEvent struct {
	RoomID   string `json:"room_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	IsTyping bool   `json:"is_typing"`
}

type FileSharedEvent struct {
	RoomID       string                   `json:"room_id"`
	File         entities.FileShareRecord `json:"file"`
	UploaderName string                   `json:"uploader_name"`
}

// FileDataEvent carries the payload; []byte marshals as base64
type FileDataEvent struct {
	RoomID string                   `json:"room_id"`
	File   entities.FileShareRecord `json:"file"`
	Data   []byte                   `json:"data"`
}

type RecordingEvent struct {
	RoomID    string                    `json:"room_id"`
	Recording entities.RecordingSession `json:"recording"`
	ActorID   string                    `json:"actor_id"`
	ActorName string                    `json:"actor_name"`
}

type ScreenShareEvent struct {
	RoomID   string `json:"room_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

type MediaChangedEvent struct {
	RoomID string              `json:"room_id"`
	UserID string              `json:"user_id"`
	Media  entities.MediaState `json:"media_state"`
}

type QualityWarningEvent struct {
	RoomID   string                  `json:"room_id"`
	UserID   string                  `json:"user_id"`
	UserName string                  `json:"user_name"`
	Metrics  entities.QualityMetrics `json:"quality_metrics"`
}

// ErrorEvent is sent to the originating connection when an operation fails
type ErrorEvent struct {
	Message   string            `json:"message"`
	Code      string            `json:"code"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
