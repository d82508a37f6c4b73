package entities

import "time"

// InterviewRole is a user's role in one interview
type InterviewRole string

const (
	InterviewRoleInterviewer InterviewRole = "interviewer"
	InterviewRoleCandidate   InterviewRole = "candidate"
	InterviewRoleObserver    InterviewRole = "observer"
)

// InterviewParticipant is a membership row answering authorization queries
type InterviewParticipant struct {
	InterviewID         string        `json:"interview_id" gorm:"type:varchar(255);primaryKey"`
	UserID              string        `json:"user_id" gorm:"type:varchar(255);primaryKey"`
	Role                InterviewRole `json:"role" gorm:"type:varchar(20);not null;default:'candidate'"`
	CanControlRecording bool          `json:"can_control_recording" gorm:"not null;default:false"`
	CanShareScreen      bool          `json:"can_share_screen" gorm:"not null;default:true"`
	CanShareFiles       bool          `json:"can_share_files" gorm:"not null;default:true"`
	CreatedAt           time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for InterviewParticipant
func (InterviewParticipant) TableName() string {
	return "interview_participants"
}

// Permissions converts the row into the live permission set
func (p InterviewParticipant) Permissions() Permissions {
	return Permissions{
		CanControlRecording: p.CanControlRecording,
		CanShareScreen:      p.CanShareScreen,
		CanShareFiles:       p.CanShareFiles,
	}
}
