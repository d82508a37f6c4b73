package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
)

// MetricsRepository stores periodic health aggregates
type MetricsRepository interface {
	Create(ctx context.Context, snapshot *entities.MetricsSnapshot) error
	FindSince(ctx context.Context, since time.Time) ([]*entities.MetricsSnapshot, error)
}
