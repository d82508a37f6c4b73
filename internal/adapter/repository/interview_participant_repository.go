package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/domain/repositories"
)

type interviewParticipantRepository struct {
	db *gorm.DB
}

// NewInterviewParticipantRepository creates a new membership repository
func NewInterviewParticipantRepository(db *gorm.DB) repositories.InterviewParticipantRepository {
	return &interviewParticipantRepository{db: db}
}

// Find retrieves the membership row, or nil when absent
func (r *interviewParticipantRepository) Find(ctx context.Context, userID, interviewID string) (*entities.InterviewParticipant, error) {
	var row entities.InterviewParticipant
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND interview_id = ?", userID, interviewID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
