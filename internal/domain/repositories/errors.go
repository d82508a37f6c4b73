package repositories

import "errors"

var (
	// ErrObjectNotFound is returned by FileStorage when a key has no payload
	ErrObjectNotFound = errors.New("object not found")

	// ErrRecordMissing is returned by partial updates when the row is not written yet
	ErrRecordMissing = errors.New("record not persisted yet")
)
