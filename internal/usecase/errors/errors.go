package errors

import "errors"

// ErrInvalidInput is the generic cause for malformed operation input
var ErrInvalidInput = errors.New("invalid input")

// Session errors
var (
	ErrHubStopped          = errors.New("session hub stopped")
	ErrConnectionNotActive = errors.New("connection is no longer active")
	ErrPanicRecovered      = errors.New("handler panic recovered")
)

// Room errors
var (
	ErrRoomNotFound         = errors.New("room not found")
	ErrInterviewMismatch    = errors.New("room belongs to a different interview")
	ErrNotInterviewMember   = errors.New("user is not a participant of the interview")
	ErrNotParticipant       = errors.New("user is not a participant")
	ErrTargetUnavailable    = errors.New("target user is not connected")
	ErrTargetNotInRoom      = errors.New("target user is not in the room")
	ErrMissingPermission    = errors.New("missing permission")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotMessageSender     = errors.New("only the sender may edit a message")
	ErrScreenShareActive    = errors.New("screen share already active")
	ErrScreenShareNotActive = errors.New("screen share not active")
)

// File errors
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrFileTooLarge     = errors.New("file exceeds maximum size")
	ErrFileSizeMismatch = errors.New("declared size does not match payload")
	ErrPayloadMissing   = errors.New("file payload unavailable")
)

// Recording errors
var (
	ErrRecordingNotFound   = errors.New("recording not found")
	ErrRecordingInProgress = errors.New("recording already in progress")
	ErrRecordingNotStarted = errors.New("recording not started")
)

// Persistence errors
var (
	ErrQueueFull    = errors.New("persistence queue full")
	ErrQueueStopped = errors.New("persistence queue stopped")
)
