package realtime

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
)

// ErrUnknownEvent is returned for an event name with no payload type
var ErrUnknownEvent = errors.New("unknown event")

// Validator validates decoded payload structs
type Validator interface {
	Validate(i interface{}) error
}

// Decode parses a frame into its concrete payload type and validates it.
// Failures are AppErrors ready to be sent back as an error event.
func Decode(frame []byte, v Validator) (Message, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, apperrors.ErrInvalidPayload(fmt.Errorf("malformed frame: %w", err))
	}

	msg, err := newMessage(env.Event)
	if err != nil {
		return nil, apperrors.ErrInvalidArgument("Unknown event").
			WithDetail("event", env.Event).
			WithCause(err)
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		env.Data = []byte("{}")
	}
	if err := json.Unmarshal(env.Data, msg); err != nil {
		return nil, apperrors.ErrInvalidPayload(err).WithDetail("event", env.Event)
	}
	if err := v.Validate(msg); err != nil {
		return nil, apperrors.ErrInvalidArgument(err.Error()).
			WithDetail("event", env.Event).
			WithCause(err)
	}

	if share, ok := msg.(*ShareFile); ok {
		data, err := base64.StdEncoding.DecodeString(share.Payload)
		if err != nil {
			return nil, apperrors.ErrInvalidPayload(fmt.Errorf("file payload is not base64: %w", err)).
				WithDetail("event", env.Event)
		}
		share.Data = data
		share.Payload = ""
	}

	return deref(msg), nil
}

// newMessage returns a pointer to the payload type of event
func newMessage(event string) (Message, error) {
	switch event {
	case EventJoinRoom:
		return &JoinRoom{}, nil
	case EventLeaveRoom:
		return &LeaveRoom{}, nil
	case EventOffer, EventAnswer, EventICECandidate:
		return &Signal{Kind: event}, nil
	case EventSendMessage:
		return &SendMessage{}, nil
	case EventEditMessage:
		return &EditMessage{}, nil
	case EventReactMessage:
		return &ReactMessage{}, nil
	case EventMarkRead:
		return &MarkRead{}, nil
	case EventTypingStart:
		return &Typing{IsTyping: true}, nil
	case EventTypingStop:
		return &Typing{}, nil
	case EventShareFile:
		return &ShareFile{}, nil
	case EventRequestFile:
		return &RequestFile{}, nil
	case EventStartRecording:
		return &StartRecording{}, nil
	case EventStopRecording:
		return &StopRecording{}, nil
	case EventStartScreenShare:
		return &ScreenShare{Start: true}, nil
	case EventStopScreenShare:
		return &ScreenShare{}, nil
	case EventMediaState:
		return &MediaState{}, nil
	case EventConnectionQuality:
		return &ConnectionQuality{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
}

// deref hands out values so callers switch on concrete types
func deref(msg Message) Message {
	switch m := msg.(type) {
	case *JoinRoom:
		return *m
	case *LeaveRoom:
		return *m
	case *Signal:
		return *m
	case *SendMessage:
		return *m
	case *EditMessage:
		return *m
	case *ReactMessage:
		return *m
	case *MarkRead:
		return *m
	case *Typing:
		return *m
	case *ShareFile:
		return *m
	case *RequestFile:
		return *m
	case *StartRecording:
		return *m
	case *StopRecording:
		return *m
	case *ScreenShare:
		return *m
	case *MediaState:
		return *m
	case *ConnectionQuality:
		return *m
	}
	return msg
}
