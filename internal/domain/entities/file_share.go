package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxFileSize is the largest payload a participant may share (10 MiB)
const MaxFileSize int64 = 10 * 1024 * 1024

// FileInfo is the client-declared metadata of a shared file
type FileInfo struct {
	Name     string `json:"name" validate:"required,max=255"`
	Size     int64  `json:"size" validate:"gte=0"`
	MimeType string `json:"mime_type" validate:"required,max=255"`
}

// FileShareRecord is the metadata of a file shared in a room
type FileShareRecord struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	RoomID        string    `json:"room_id" gorm:"type:varchar(255);not null;index"`
	InterviewID   string    `json:"interview_id" gorm:"type:varchar(255);not null;index"`
	UploaderID    string    `json:"uploader_id" gorm:"type:varchar(255);not null"`
	FileName      string    `json:"file_name" gorm:"type:varchar(255);not null"`
	Size          int64     `json:"size" gorm:"not null"`
	MimeType      string    `json:"mime_type" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text;not null;default:''"`
	StorageKey    string    `json:"-" gorm:"type:text;not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null"`
	DownloadCount int       `json:"download_count" gorm:"not null;default:0"`
}

// TableName specifies the table name for FileShareRecord
func (FileShareRecord) TableName() string {
	return "file_shares"
}

// NewFileShareRecord builds a record and derives its object storage key
func NewFileShareRecord(roomID, interviewID, uploaderID string, info FileInfo, description string, now time.Time) FileShareRecord {
	id := uuid.New()
	return FileShareRecord{
		ID:          id,
		RoomID:      roomID,
		InterviewID: interviewID,
		UploaderID:  uploaderID,
		FileName:    info.Name,
		Size:        info.Size,
		MimeType:    info.MimeType,
		Description: description,
		StorageKey:  fmt.Sprintf("interviews/%s/files/%s", interviewID, id.String()),
		CreatedAt:   now,
	}
}

// ExceedsMaxSize reports whether size is over MaxFileSize
func ExceedsMaxSize(size int64) bool {
	return size > MaxFileSize
}
