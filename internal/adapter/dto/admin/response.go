package admin

import "time"

// RoomResponse represents a live room in responses
type RoomResponse struct {
	ID               string                 `json:"id"`
	InterviewID      string                 `json:"interview_id"`
	ParticipantCount int                    `json:"participant_count"`
	Participants     []*ParticipantResponse `json:"participants"`
	Recording        *RecordingResponse     `json:"recording,omitempty"`
	MessageCount     int                    `json:"message_count"`
	FileCount        int                    `json:"file_count"`
	CreatedAt        time.Time              `json:"created_at"`
}

// ParticipantResponse represents a participant in responses
type ParticipantResponse struct {
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Role           string    `json:"role,omitempty"`
	Status         string    `json:"status"`
	JoinedAt       time.Time `json:"joined_at"`
	AudioEnabled   bool      `json:"audio_enabled"`
	VideoEnabled   bool      `json:"video_enabled"`
	ScreenSharing  bool      `json:"screen_sharing"`
	CanShareScreen bool      `json:"can_share_screen"`
	CanRecord      bool      `json:"can_control_recording"`
}

// RecordingResponse represents the room's active recording
type RecordingResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Format    string    `json:"format"`
	Quality   string    `json:"quality"`
	StartedBy string    `json:"started_by"`
	StartedAt time.Time `json:"started_at"`
}

// RoomListResponse represents the list of live rooms
type RoomListResponse struct {
	Rooms []*RoomResponse `json:"rooms"`
	Total int             `json:"total"`
}

// ParticipantCountResponse represents the total number of participants across rooms
type ParticipantCountResponse struct {
	Count int `json:"count"`
}

// BroadcastResponse reports how many connections received the event
type BroadcastResponse struct {
	RoomID    string `json:"room_id"`
	Event     string `json:"event"`
	Delivered int    `json:"delivered"`
}

// HealthResponse represents the liveness report
type HealthResponse struct {
	Status       string            `json:"status"`
	Environment  string            `json:"environment"`
	ActiveRooms  int               `json:"active_rooms"`
	Participants int               `json:"participants"`
	Connections  int               `json:"connections"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Time         time.Time         `json:"time"`
}
