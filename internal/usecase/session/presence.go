package session

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/interview-realtime/errors"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/interview-realtime/internal/usecase/errors"
)

// ReportQuality stores the sample on the participant and warns the other
// members when it crosses a threshold. It reports whether a warning was sent.
func (h *Hub) ReportQuality(ctx context.Context, userID, roomID string, metrics entities.QualityMetrics) (bool, error) {
	degraded := false
	err := h.exec(ctx, "connection-quality", func() error {
		room, p, err := h.member(roomID, userID, "connection-quality")
		if err != nil {
			return err
		}

		metrics.ReportedAt = h.now()
		p.Quality = metrics
		if !h.opts.Thresholds.Degraded(metrics) {
			return nil
		}

		degraded = true
		h.broadcast(room, userID, EventConnectionQualityWarning, QualityWarningEvent{
			RoomID:   room.ID,
			UserID:   userID,
			UserName: p.DisplayName(),
			Metrics:  metrics,
		})
		h.logger.Debug("📉 Degraded connection quality",
			zap.String("room_id", room.ID),
			zap.String("user_id", userID),
			zap.Float64("packet_loss", metrics.PacketLoss),
			zap.Float64("latency_ms", metrics.Latency),
		)
		return nil
	})
	return degraded, err
}

// StartScreenShare marks the user as sharing and tells the other members
func (h *Hub) StartScreenShare(ctx context.Context, userID, roomID string) error {
	return h.exec(ctx, "start-screen-share", func() error {
		room, p, err := h.member(roomID, userID, "start-screen-share")
		if err != nil {
			return err
		}
		if err := requirePermission(p, entities.PermissionShareScreen); err != nil {
			return err
		}
		if p.Media.ScreenSharing {
			return apperrors.ErrInvalidArgument("Screen share already active").
				WithCause(usecaseErrors.ErrScreenShareActive)
		}

		p.Media.ScreenSharing = true
		h.broadcast(room, userID, EventScreenShareStarted, ScreenShareEvent{
			RoomID:   room.ID,
			UserID:   userID,
			UserName: p.DisplayName(),
		})
		return nil
	})
}

// StopScreenShare clears the sharing flag and tells the other members
func (h *Hub) StopScreenShare(ctx context.Context, userID, roomID string) error {
	return h.exec(ctx, "stop-screen-share", func() error {
		room, p, err := h.member(roomID, userID, "stop-screen-share")
		if err != nil {
			return err
		}
		if !p.Media.ScreenSharing {
			return apperrors.ErrInvalidArgument("Screen share not active").
				WithCause(usecaseErrors.ErrScreenShareNotActive)
		}

		p.Media.ScreenSharing = false
		h.broadcast(room, userID, EventScreenShareStopped, ScreenShareEvent{
			RoomID:   room.ID,
			UserID:   userID,
			UserName: p.DisplayName(),
		})
		return nil
	})
}

// UpdateMedia records the user's audio and video state
func (h *Hub) UpdateMedia(ctx context.Context, userID, roomID string, audio, video bool) error {
	return h.exec(ctx, "media-state", func() error {
		room, p, err := h.member(roomID, userID, "media-state")
		if err != nil {
			return err
		}

		p.Media.AudioEnabled = audio
		p.Media.VideoEnabled = video
		h.broadcast(room, userID, EventParticipantMediaChanged, MediaChangedEvent{
			RoomID: room.ID,
			UserID: userID,
			Media:  p.Media,
		})
		return nil
	})
}

// HealthStats is the process-wide aggregate
type HealthStats struct {
	ActiveRooms  int `json:"active_rooms"`
	Participants int `json:"participants"`
	Connections  int `json:"connections"`
}

// Stats returns current room, participant and connection counts
func (h *Hub) Stats(ctx context.Context) (HealthStats, error) {
	var stats HealthStats
	err := h.exec(ctx, "stats", func() error {
		stats.ActiveRooms = len(h.rooms)
		for _, room := range h.rooms {
			stats.Participants += len(room.Participants)
		}
		stats.Connections = h.registry.Len()
		return nil
	})
	return stats, err
}
