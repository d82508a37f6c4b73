package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/domain/repositories"
)

type metricsRepository struct {
	db *gorm.DB
}

// NewMetricsRepository creates a new metrics repository
func NewMetricsRepository(db *gorm.DB) repositories.MetricsRepository {
	return &metricsRepository{db: db}
}

func (r *metricsRepository) Create(ctx context.Context, snapshot *entities.MetricsSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *metricsRepository) FindSince(ctx context.Context, since time.Time) ([]*entities.MetricsSnapshot, error) {
	var snapshots []*entities.MetricsSnapshot
	if err := r.db.WithContext(ctx).
		Where("recorded_at >= ?", since).
		Order("recorded_at ASC").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
