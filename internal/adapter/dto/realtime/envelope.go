package realtime

import (
	"encoding/json"
	"time"
)

// Envelope is the JSON frame exchanged over the WebSocket
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// OutboundEnvelope is a frame written to the client
type OutboundEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// ErrorPayload is the data of an outbound error event
type ErrorPayload struct {
	Message   string            `json:"message"`
	Code      string            `json:"code"`
	Event     string            `json:"event,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
