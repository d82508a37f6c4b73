package realtime

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
)

// Inbound event names
const (
	EventJoinRoom          = "join-room"
	EventLeaveRoom         = "leave-room"
	EventOffer             = "offer"
	EventAnswer            = "answer"
	EventICECandidate      = "ice-candidate"
	EventSendMessage       = "send-message"
	EventEditMessage       = "edit-message"
	EventReactMessage      = "react-message"
	EventMarkRead          = "mark-read"
	EventTypingStart       = "typing-start"
	EventTypingStop        = "typing-stop"
	EventShareFile         = "share-file"
	EventRequestFile       = "request-file"
	EventStartRecording    = "start-recording"
	EventStopRecording     = "stop-recording"
	EventStartScreenShare  = "start-screen-share"
	EventStopScreenShare   = "stop-screen-share"
	EventMediaState        = "media-state"
	EventConnectionQuality = "connection-quality"
)

// Message is one decoded, validated inbound payload
type Message interface {
	EventName() string
}

// JoinRoom represents the join-room payload
type JoinRoom struct {
	RoomID      string            `json:"room_id" validate:"required,max=255"`
	InterviewID string            `json:"interview_id" validate:"required,max=255"`
	UserInfo    entities.UserInfo `json:"user_info"`
}

// LeaveRoom represents the leave-room payload
type LeaveRoom struct {
	RoomID string `json:"room_id" validate:"required,max=255"`
}

// Signal is an offer, answer or ICE candidate; Kind comes from the envelope
type Signal struct {
	Kind         string          `json:"-"`
	RoomID       string          `json:"room_id" validate:"required,max=255"`
	TargetUserID string          `json:"target_user_id" validate:"required,max=255"`
	Payload      json.RawMessage `json:"payload" validate:"required"`
}

// SendMessage represents a new chat message, optionally replying to another
type SendMessage struct {
	RoomID      string  `json:"room_id" validate:"required,max=255"`
	Content     string  `json:"content" validate:"required,max=10000"`
	MessageType string  `json:"message_type" validate:"omitempty,oneof=text file system ai-feedback"`
	ReplyTo     *string `json:"reply_to,omitempty" validate:"omitempty,uuid"`
}

// EditMessage represents an edit of the sender's own message
type EditMessage struct {
	RoomID    string `json:"room_id" validate:"required,max=255"`
	MessageID string `json:"message_id" validate:"required,uuid"`
	Content   string `json:"content" validate:"required,max=10000"`
}

// ReactMessage represents a reaction toggle on a message
type ReactMessage struct {
	RoomID    string `json:"room_id" validate:"required,max=255"`
	MessageID string `json:"message_id" validate:"required,uuid"`
	Emoji     string `json:"emoji" validate:"required,max=32"`
}

// MarkRead represents a read receipt for one message
type MarkRead struct {
	RoomID    string `json:"room_id" validate:"required,max=255"`
	MessageID string `json:"message_id" validate:"required,uuid"`
}

// Typing is typing-start or typing-stop
type Typing struct {
	RoomID   string `json:"room_id" validate:"required,max=255"`
	IsTyping bool   `json:"-"`
}

// ShareFile carries the file as base64; Data holds the decoded bytes
type ShareFile struct {
	RoomID      string            `json:"room_id" validate:"required,max=255"`
	FileInfo    entities.FileInfo `json:"file_info"`
	Payload     string            `json:"payload"`
	Description string            `json:"description,omitempty" validate:"max=1000"`
	Data        []byte            `json:"-"`
}

// RequestFile represents a download request for a shared file
type RequestFile struct {
	RoomID string `json:"room_id" validate:"required,max=255"`
	FileID string `json:"file_id" validate:"required,uuid"`
}

// StartRecording represents the start-recording payload
type StartRecording struct {
	RoomID   string                      `json:"room_id" validate:"required,max=255"`
	Settings *entities.RecordingSettings `json:"recording_settings,omitempty"`
}

// StopRecording represents the stop-recording payload
type StopRecording struct {
	RoomID string `json:"room_id" validate:"required,max=255"`
}

// ScreenShare is start-screen-share or stop-screen-share
type ScreenShare struct {
	RoomID string `json:"room_id" validate:"required,max=255"`
	Start  bool   `json:"-"`
}

// MediaState represents the sender's audio and video toggles
type MediaState struct {
	RoomID       string `json:"room_id" validate:"required,max=255"`
	AudioEnabled bool   `json:"audio_enabled"`
	VideoEnabled bool   `json:"video_enabled"`
}

// ConnectionQuality represents a client-side connection sample
type ConnectionQuality struct {
	RoomID  string                  `json:"room_id" validate:"required,max=255"`
	Metrics entities.QualityMetrics `json:"quality_metrics"`
}

func (JoinRoom) EventName() string          { return EventJoinRoom }
func (LeaveRoom) EventName() string         { return EventLeaveRoom }
func (s Signal) EventName() string          { return s.Kind }
func (SendMessage) EventName() string       { return EventSendMessage }
func (EditMessage) EventName() string       { return EventEditMessage }
func (ReactMessage) EventName() string      { return EventReactMessage }
func (MarkRead) EventName() string          { return EventMarkRead }
func (ShareFile) EventName() string         { return EventShareFile }
func (RequestFile) EventName() string       { return EventRequestFile }
func (StartRecording) EventName() string    { return EventStartRecording }
func (StopRecording) EventName() string     { return EventStopRecording }
func (MediaState) EventName() string        { return EventMediaState }
func (ConnectionQuality) EventName() string { return EventConnectionQuality }

func (t Typing) EventName() string {
	if t.IsTyping {
		return EventTypingStart
	}
	return EventTypingStop
}

func (s ScreenShare) EventName() string {
	if s.Start {
		return EventStartScreenShare
	}
	return EventStopScreenShare
}

// MessageUUID returns the validated message id
func (e EditMessage) MessageUUID() uuid.UUID { return uuid.MustParse(e.MessageID) }

// MessageUUID returns the validated message id
func (r ReactMessage) MessageUUID() uuid.UUID { return uuid.MustParse(r.MessageID) }

// MessageUUID returns the validated message id
func (m MarkRead) MessageUUID() uuid.UUID { return uuid.MustParse(m.MessageID) }

// FileUUID returns the validated file id
func (r RequestFile) FileUUID() uuid.UUID { return uuid.MustParse(r.FileID) }

// ReplyToUUID returns the validated reply target, if any
func (s SendMessage) ReplyToUUID() *uuid.UUID {
	if s.ReplyTo == nil {
		return nil
	}
	id := uuid.MustParse(*s.ReplyTo)
	return &id
}
