package repositories

import (
	"context"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
)

// InterviewParticipantRepository answers interview membership lookups
type InterviewParticipantRepository interface {
	// Find retrieves the membership row, or nil when the user is not a member
	Find(ctx context.Context, userID, interviewID string) (*entities.InterviewParticipant, error)
}
