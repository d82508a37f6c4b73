package admin

import "encoding/json"

// BroadcastRequest represents the request to push an event to every room member
type BroadcastRequest struct {
	Event string          `json:"event" validate:"required,max=100"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// SendToUserRequest represents the request to push an event to one user's live connection
type SendToUserRequest struct {
	Event string          `json:"event" validate:"required,max=100"`
	Data  json.RawMessage `json:"data,omitempty"`
}
