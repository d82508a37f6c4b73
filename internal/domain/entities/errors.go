package entities

import "errors"

// Domain errors
var (
	ErrInvalidMessageType = errors.New("invalid message type")
	ErrEmptyContent       = errors.New("message content is empty")
)
