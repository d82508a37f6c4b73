package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"
)

// AppError is the structured error surfaced to clients, over HTTP or as a realtime error event
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause so errors.Is matches domain sentinels
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// WithCause attaches the underlying cause
func (e AppError) WithCause(err error) AppError {
	e.Raw = err
	return e
}

// FromError converts any error into an AppError, defaulting to internal
func FromError(err error) AppError {
	var appErr AppError
	if stdErrors.As(err, &appErr) {
		if appErr.Timestamp.IsZero() {
			appErr.Timestamp = time.Now().UTC()
		}
		return appErr
	}
	appErr = ErrInternal(err)
	appErr.Timestamp = time.Now().UTC()
	return appErr
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrInvalidPayload(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrPermissionDenied(action string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_PERMISSION_DENIED,
		Message:  fmt.Sprintf("Permission denied: %s", action),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrAuthorization(interviewID string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_AUTHORIZATION_FAILED,
		Message:  "User is not a participant of this interview",
	}.WithDetail("interview_id", interviewID)
}

// Room Errors
func ErrRoomNotFound(roomID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_ROOM_NOT_FOUND,
		Message:  "Room not found",
	}.WithDetail("room_id", roomID)
}

func ErrRoomInvalidState(roomID, message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_ROOM_INVALID_STATE,
		Message:  message,
	}.WithDetail("room_id", roomID)
}

func ErrTargetUnavailable(userID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_TARGET_UNAVAILABLE,
		Message:  "Target user is not connected",
	}.WithDetail("target_user_id", userID)
}

// File Errors
func ErrFileNotFound(fileID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_FILE_NOT_FOUND,
		Message:  "File not found",
	}.WithDetail("file_id", fileID)
}

func ErrFileTooLarge(size, limit int64) AppError {
	return AppError{
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     ErrorCode_FILE_TOO_LARGE,
		Message:  "File exceeds the maximum allowed size",
	}.WithDetail("size", fmt.Sprintf("%d", size)).
		WithDetail("max_size", fmt.Sprintf("%d", limit))
}

// Recording Errors
func ErrRecordingNotFound(roomID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_RECORDING_NOT_FOUND,
		Message:  "No active recording",
	}.WithDetail("room_id", roomID)
}

func ErrRecordingInProgress(roomID string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_RECORDING_IN_PROGRESS,
		Message:  "Recording already in progress",
	}.WithDetail("room_id", roomID)
}

func ErrRecordingStartFailed(roomID string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_RECORDING_START_FAILED,
		Message:  "Failed to start recording",
	}.WithDetail("room_id", roomID)
}

func ErrRecordingStopFailed(recordingID string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_RECORDING_STOP_FAILED,
		Message:  "Failed to stop recording",
	}.WithDetail("recording_id", recordingID)
}

// Integration Errors
func ErrTransientPersistence(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_TRANSIENT_PERSISTENCE,
		Message:  fmt.Sprintf("Durable write failed: %s", operation),
	}
}

func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}.WithDetail("query", query)
}
