package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RecordingStatus represents the status of a recording
type RecordingStatus string

const (
	RecordingStatusRecording  RecordingStatus = "recording"
	RecordingStatusProcessing RecordingStatus = "processing"
	RecordingStatusCompleted  RecordingStatus = "completed"
	RecordingStatusFailed     RecordingStatus = "failed"
)

// RecordingSettings are the optional client-provided capture settings
type RecordingSettings struct {
	Format  string `json:"format,omitempty" validate:"omitempty,oneof=mp4 webm ogg"`
	Quality string `json:"quality,omitempty" validate:"omitempty,oneof=low medium high"`
}

// DefaultRecordingSettings returns mp4 at medium quality
func DefaultRecordingSettings() RecordingSettings {
	return RecordingSettings{Format: "mp4", Quality: "medium"}
}

// WithDefaults fills empty fields from DefaultRecordingSettings
func (s RecordingSettings) WithDefaults() RecordingSettings {
	def := DefaultRecordingSettings()
	if s.Format == "" {
		s.Format = def.Format
	}
	if s.Quality == "" {
		s.Quality = def.Quality
	}
	return s
}

// RecordingSession is a room recording from start until the capture backend finishes it
type RecordingSession struct {
	ID             uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key"`
	RoomID         string                      `json:"room_id" gorm:"type:varchar(255);not null;index"`
	InterviewID    string                      `json:"interview_id" gorm:"type:varchar(255);not null;index"`
	FileName       string                      `json:"file_name" gorm:"type:varchar(255);not null"`
	Format         string                      `json:"format" gorm:"type:varchar(20);not null;default:'mp4'"`
	Quality        string                      `json:"quality" gorm:"type:varchar(20);not null;default:'medium'"`
	StartedBy      string                      `json:"started_by" gorm:"type:varchar(255);not null"`
	StartedAt      time.Time                   `json:"started_at" gorm:"not null"`
	EndedAt        *time.Time                  `json:"ended_at,omitempty"`
	ParticipantIDs datatypes.JSONSlice[string] `json:"participant_ids" gorm:"type:jsonb;default:'[]'"`
	Status         RecordingStatus             `json:"status" gorm:"type:varchar(20);not null;default:'recording';index"`
	Progress       int                         `json:"progress" gorm:"not null;default:0"`
	EgressID       string                      `json:"egress_id,omitempty" gorm:"type:varchar(255);index"`
	FileURL        string                      `json:"file_url,omitempty" gorm:"type:text"`
	Error          string                      `json:"error,omitempty" gorm:"type:text"`
	UpdatedAt      time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (RecordingSession) TableName() string {
	return "recording_sessions"
}

// NewRecordingSession starts a session for the given room with a participant snapshot
func NewRecordingSession(room *Room, startedBy string, settings RecordingSettings, now time.Time) *RecordingSession {
	settings = settings.WithDefaults()
	ids := make([]string, 0, len(room.Participants))
	for id := range room.Participants {
		ids = append(ids, id)
	}
	return &RecordingSession{
		ID:             uuid.New(),
		RoomID:         room.ID,
		InterviewID:    room.InterviewID,
		FileName:       fmt.Sprintf("interview-%s-%d.%s", room.InterviewID, now.Unix(), settings.Format),
		Format:         settings.Format,
		Quality:        settings.Quality,
		StartedBy:      startedBy,
		StartedAt:      now,
		ParticipantIDs: ids,
		Status:         RecordingStatusRecording,
	}
}

// Clone returns a copy that shares no slices with the original
func (r RecordingSession) Clone() RecordingSession {
	out := r
	out.ParticipantIDs = append(datatypes.JSONSlice[string]{}, r.ParticipantIDs...)
	if r.EndedAt != nil {
		endedAt := *r.EndedAt
		out.EndedAt = &endedAt
	}
	return out
}

// IsCompleted checks if recording is completed
func (r *RecordingSession) IsCompleted() bool {
	return r.Status == RecordingStatusCompleted
}

// IsFinal reports whether no further transition is possible
func (r *RecordingSession) IsFinal() bool {
	return r.Status == RecordingStatusCompleted || r.Status == RecordingStatusFailed
}

// MarkAsProcessing moves the session out of the live room
func (r *RecordingSession) MarkAsProcessing(now time.Time) {
	r.Status = RecordingStatusProcessing
	r.EndedAt = &now
}

// UpdateProgress clamps progress to 0..100
func (r *RecordingSession) UpdateProgress(progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	r.Progress = progress
}

// MarkAsCompleted marks recording as completed
func (r *RecordingSession) MarkAsCompleted(fileURL string) {
	r.Status = RecordingStatusCompleted
	r.Progress = 100
	if fileURL != "" {
		r.FileURL = fileURL
	}
}

// MarkAsFailed marks recording as failed
func (r *RecordingSession) MarkAsFailed(errorMsg string) {
	r.Status = RecordingStatusFailed
	r.Error = errorMsg
}
