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

type fileShareRepository struct {
	db *gorm.DB
}

// NewFileShareRepository creates a new file share repository
func NewFileShareRepository(db *gorm.DB) repositories.FileShareRepository {
	return &fileShareRepository{db: db}
}

// Upsert inserts a file record; a replayed insert is ignored
func (r *fileShareRepository) Upsert(ctx context.Context, rec *entities.FileShareRecord) error {
	if rec == nil {
		return errors.New("file record cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(rec).Error
}

// FindByID retrieves a file record by ID
func (r *fileShareRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.FileShareRecord, error) {
	var rec entities.FileShareRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// SetDownloadCount raises the stored counter to count
func (r *fileShareRepository) SetDownloadCount(ctx context.Context, id uuid.UUID, count int) error {
	result := r.db.WithContext(ctx).
		Model(&entities.FileShareRecord{}).
		Where("id = ? AND download_count < ?", id, count).
		Update("download_count", count)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var exists int64
	if err := r.db.WithContext(ctx).
		Model(&entities.FileShareRecord{}).
		Where("id = ?", id).
		Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return repositories.ErrRecordMissing
	}
	return nil
}

// FindByInterviewID lists files of an interview, newest first
func (r *fileShareRepository) FindByInterviewID(ctx context.Context, interviewID string) ([]*entities.FileShareRecord, error) {
	var records []*entities.FileShareRecord
	if err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
