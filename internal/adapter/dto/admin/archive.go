package admin

import "time"

// ChatMessageResponse represents a stored chat message
type ChatMessageResponse struct {
	ID         string              `json:"id"`
	RoomID     string              `json:"room_id"`
	SenderID   string              `json:"sender_id"`
	SenderName string              `json:"sender_name"`
	Type       string              `json:"message_type"`
	Content    string              `json:"content"`
	ReplyTo    string              `json:"reply_to,omitempty"`
	Edited     bool                `json:"edited"`
	EditedAt   *time.Time          `json:"edited_at,omitempty"`
	Reactions  map[string][]string `json:"reactions"`
	ReadBy     []string            `json:"read_by"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ChatHistoryResponse represents the stored history of a room
type ChatHistoryResponse struct {
	RoomID   string                 `json:"room_id"`
	Messages []*ChatMessageResponse `json:"messages"`
	Total    int                    `json:"total"`
}

// FileResponse represents stored metadata of a shared file
type FileResponse struct {
	ID            string    `json:"id"`
	RoomID        string    `json:"room_id"`
	UploaderID    string    `json:"uploader_id"`
	FileName      string    `json:"file_name"`
	Size          int64     `json:"size"`
	MimeType      string    `json:"mime_type"`
	Description   string    `json:"description,omitempty"`
	DownloadCount int       `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// FileListResponse represents the files shared during an interview
type FileListResponse struct {
	InterviewID string          `json:"interview_id"`
	Files       []*FileResponse `json:"files"`
	Total       int             `json:"total"`
}

// RecordingDetailResponse represents a stored recording session
type RecordingDetailResponse struct {
	ID             string     `json:"id"`
	RoomID         string     `json:"room_id"`
	InterviewID    string     `json:"interview_id"`
	FileName       string     `json:"file_name"`
	Format         string     `json:"format"`
	Quality        string     `json:"quality"`
	Status         string     `json:"status"`
	Progress       int        `json:"progress"`
	StartedBy      string     `json:"started_by"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	ParticipantIDs []string   `json:"participant_ids"`
	FileURL        string     `json:"file_url,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// MetricsSnapshotResponse represents one periodic health sample
type MetricsSnapshotResponse struct {
	ActiveRooms  int       `json:"active_rooms"`
	Participants int       `json:"participants"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// MetricsResponse represents health samples recorded since a point in time
type MetricsResponse struct {
	Since     time.Time                  `json:"since"`
	Snapshots []*MetricsSnapshotResponse `json:"snapshots"`
	Total     int                        `json:"total"`
}
