package errors

// ErrorCode is the stable, client-facing identifier of an AppError.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_CONFLICT          ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1006

	// Authentication / authorization
	ErrorCode_AUTH_INVALID_TOKEN   ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED   ErrorCode = 2001
	ErrorCode_AUTHORIZATION_FAILED ErrorCode = 2002

	// Rooms and participants
	ErrorCode_ROOM_NOT_FOUND        ErrorCode = 3000
	ErrorCode_ROOM_INVALID_STATE    ErrorCode = 3001
	ErrorCode_PARTICIPANT_NOT_FOUND ErrorCode = 3002
	ErrorCode_TARGET_UNAVAILABLE    ErrorCode = 3003

	// Files
	ErrorCode_FILE_NOT_FOUND ErrorCode = 4000
	ErrorCode_FILE_TOO_LARGE ErrorCode = 4001

	// Recording
	ErrorCode_RECORDING_NOT_FOUND    ErrorCode = 5000
	ErrorCode_RECORDING_IN_PROGRESS  ErrorCode = 5001
	ErrorCode_RECORDING_START_FAILED ErrorCode = 5002
	ErrorCode_RECORDING_STOP_FAILED  ErrorCode = 5003

	// Integrations
	ErrorCode_TRANSIENT_PERSISTENCE      ErrorCode = 6000
	ErrorCode_INTEGRATION_LIVEKIT_FAILED ErrorCode = 6001
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 6002
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 6003
	ErrorCode_DB_QUERY_FAILED            ErrorCode = 6004
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_CONFLICT:                   "CONFLICT",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTHORIZATION_FAILED:       "AUTHORIZATION_FAILED",
	ErrorCode_ROOM_NOT_FOUND:             "ROOM_NOT_FOUND",
	ErrorCode_ROOM_INVALID_STATE:         "ROOM_INVALID_STATE",
	ErrorCode_PARTICIPANT_NOT_FOUND:      "PARTICIPANT_NOT_FOUND",
	ErrorCode_TARGET_UNAVAILABLE:         "TARGET_UNAVAILABLE",
	ErrorCode_FILE_NOT_FOUND:             "FILE_NOT_FOUND",
	ErrorCode_FILE_TOO_LARGE:             "FILE_TOO_LARGE",
	ErrorCode_RECORDING_NOT_FOUND:        "RECORDING_NOT_FOUND",
	ErrorCode_RECORDING_IN_PROGRESS:      "CONFLICT",
	ErrorCode_RECORDING_START_FAILED:     "RECORDING_START_FAILED",
	ErrorCode_RECORDING_STOP_FAILED:      "RECORDING_STOP_FAILED",
	ErrorCode_TRANSIENT_PERSISTENCE:      "TRANSIENT_PERSISTENCE",
	ErrorCode_INTEGRATION_LIVEKIT_FAILED: "INTEGRATION_LIVEKIT_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
}

// String returns the wire name of the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText encodes the code by name so JSON payloads carry a stable string.
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
