package session

import (
	"context"

	"go.uber.org/zap"
)

// Disconnect reasons
const (
	ReasonClientClosed = "client_closed"
	ReasonNetworkError = "network_error"
	ReasonSlowConsumer = "slow_consumer"
	ReasonServerClose  = "server_shutdown"
)

// Disconnect is the single cleanup path for a closed handle, whatever the cause.
// Only participants still bound to this handle are removed, so a stale handle
// never evicts a newer connection of the same user.
func (h *Hub) Disconnect(ctx context.Context, handleID, reason string) error {
	return h.exec(ctx, "disconnect", func() error {
		handle, ok := h.registry.Remove(handleID)
		if !ok {
			return nil
		}
		userID := handle.UserID()
		now := h.now()

		for _, room := range h.rooms {
			p := room.Participant(userID)
			if p == nil || p.HandleID != handleID {
				continue
			}
			room.RemoveParticipant(userID)
			p.MarkDisconnected()
			duration := p.Duration(now)

			h.broadcast(room, "", EventParticipantDisconnected, ParticipantDisconnectedEvent{
				RoomID:          room.ID,
				UserID:          userID,
				UserName:        p.DisplayName(),
				Reason:          reason,
				DurationSeconds: int64(duration.Seconds()),
			})
			h.logger.Info("🔌 Participant disconnected",
				zap.String("room_id", room.ID),
				zap.String("user_id", userID),
				zap.String("connection_id", handleID),
				zap.String("reason", reason),
				zap.Duration("duration", duration),
			)
			h.disposeIfEmpty(room)
		}
		return nil
	})
}
