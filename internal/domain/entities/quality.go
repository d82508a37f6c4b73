package entities

import (
	"time"

	"github.com/google/uuid"
)

// QualityMetrics is the last connection-quality sample a client reported.
// Latency and jitter are in milliseconds, packet loss in percent.
type QualityMetrics struct {
	Bandwidth  float64   `json:"bandwidth" validate:"gte=0"`
	Latency    float64   `json:"latency" validate:"gte=0"`
	Jitter     float64   `json:"jitter" validate:"gte=0"`
	PacketLoss float64   `json:"packet_loss" validate:"gte=0,lte=100"`
	ReportedAt time.Time `json:"reported_at"`
}

// QualityThresholds decide when a sample is degraded
type QualityThresholds struct {
	MaxPacketLoss float64
	MaxLatency    time.Duration
}

// DefaultQualityThresholds returns 5% packet loss and 500ms latency
func DefaultQualityThresholds() QualityThresholds {
	return QualityThresholds{
		MaxPacketLoss: 5,
		MaxLatency:    500 * time.Millisecond,
	}
}

// Degraded reports whether the sample exceeds either threshold
func (t QualityThresholds) Degraded(m QualityMetrics) bool {
	latencyMs := float64(t.MaxLatency) / float64(time.Millisecond)
	return m.PacketLoss > t.MaxPacketLoss || m.Latency > latencyMs
}

// MetricsSnapshot is the periodic process-wide aggregate
type MetricsSnapshot struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	ActiveRooms  int       `json:"active_rooms" gorm:"not null"`
	Participants int       `json:"participants" gorm:"not null"`
	RecordedAt   time.Time `json:"recorded_at" gorm:"not null;index"`
}

// TableName specifies the table name for MetricsSnapshot
func (MetricsSnapshot) TableName() string {
	return "room_metrics"
}
