package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/domain/repositories"
)

// recordingRepository handles recording session data operations
type recordingRepository struct {
	db *gorm.DB
}

// NewRecordingRepository creates a new recording session repository
func NewRecordingRepository(db *gorm.DB) repositories.RecordingSessionRepository {
	return &recordingRepository{db: db}
}

// Upsert inserts the session or overwrites the columns the hub owns.
// Only a row still recording is overwritten, so a late start never undoes a stop.
// Egress, progress and completion columns belong to the capture backend and are left alone.
func (r *recordingRepository) Upsert(ctx context.Context, rec *entities.RecordingSession) error {
	if rec == nil {
		return errors.New("recording cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "ended_at", "participant_ids", "updated_at"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "recording_sessions.status = ?", Vars: []interface{}{entities.RecordingStatusRecording}},
			}},
		}).
		Create(rec).Error
}

// FindByID retrieves a recording session by ID
func (r *recordingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.RecordingSession, error) {
	var rec entities.RecordingSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindByEgressID retrieves a recording session by LiveKit egress ID
func (r *recordingRepository) FindByEgressID(ctx context.Context, egressID string) (*entities.RecordingSession, error) {
	var rec entities.RecordingSession
	if err := r.db.WithContext(ctx).
		Where("egress_id = ?", egressID).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// SetEgressID binds the LiveKit egress to a session
func (r *recordingRepository) SetEgressID(ctx context.Context, id uuid.UUID, egressID string) error {
	return r.updates(ctx, id, map[string]interface{}{"egress_id": egressID})
}

// UpdateProgress stores processing progress
func (r *recordingRepository) UpdateProgress(ctx context.Context, id uuid.UUID, progress int) error {
	return r.updates(ctx, id, map[string]interface{}{"progress": progress})
}

// Complete marks the session as completed
func (r *recordingRepository) Complete(ctx context.Context, id uuid.UUID, fileURL string) error {
	return r.updates(ctx, id, map[string]interface{}{
		"status":   entities.RecordingStatusCompleted,
		"progress": 100,
		"file_url": fileURL,
	})
}

// Fail marks the session as failed
func (r *recordingRepository) Fail(ctx context.Context, id uuid.UUID, reason string) error {
	return r.updates(ctx, id, map[string]interface{}{
		"status": entities.RecordingStatusFailed,
		"error":  reason,
	})
}

func (r *recordingRepository) updates(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&entities.RecordingSession{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// the session row is written by another job and may not exist yet
		return repositories.ErrRecordMissing
	}
	return nil
}
